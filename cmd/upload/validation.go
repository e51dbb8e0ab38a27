package upload

import (
	"fmt"

	"github.com/yusufdanis/hidden-character-detector/pkg/shared/config"
	"github.com/yusufdanis/hidden-character-detector/pkg/shared/files"
)

// validateUploadArgs checks that the report exists and that a destination is
// known, from flags or from the configuration.
func validateUploadArgs(cfg *config.Config, options *RunOptionsUpload, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("the command takes no positional arguments")
	}
	if options.InputFile == "" {
		return fmt.Errorf("the --input flag is required")
	}
	if err := files.ValidatePath(options.InputFile); err != nil {
		return fmt.Errorf("report %q is not readable: %w", options.InputFile, err)
	}
	if options.S3Key != "" && options.S3Bucket == "" {
		return fmt.Errorf("the --s3-key flag requires --s3-bucket")
	}
	if options.S3Bucket == "" && options.ServerURL == "" && cfg.Uploader.URL == "" {
		return fmt.Errorf("no destination: set --server or --s3-bucket, or configure the uploader")
	}
	return nil
}
