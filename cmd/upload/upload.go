package upload

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yusufdanis/hidden-character-detector/internal/uploader"
	"github.com/yusufdanis/hidden-character-detector/pkg/shared/artifacts"
	"github.com/yusufdanis/hidden-character-detector/pkg/shared/config"
	"github.com/yusufdanis/hidden-character-detector/pkg/shared/logger"
)

// RunOptionsUpload holds the arguments for the upload command.
type RunOptionsUpload struct {
	InputFile string
	ServerURL string
	Token     string
	S3Bucket  string
	S3Key     string
}

var (
	AppConfig          *config.Config
	uploadOptions      RunOptionsUpload
	exampleUploadUsage = `  # Uploading a SARIF report to the configured results server
  hcd upload --input report.sarif

  # Overriding the results server and token from the command line
  hcd upload --input report.sarif --server https://results.internal.example --token TOKEN

  # Archiving the report in an S3 bucket instead of a results server
  hcd upload --input report.sarif --s3-bucket scan-archive --s3-key reports/my-project.sarif`
)

// UploadCmd represents the upload command.
var UploadCmd = &cobra.Command{
	Use:                   "upload --input/-i PATH [--server URL] [--token TOKEN] [--s3-bucket BUCKET [--s3-key KEY]]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleUploadUsage,
	Short:                 "Uploads a scan report to a results server or an S3 bucket",
	RunE:                  runUploadCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func init() {
	UploadCmd.Flags().StringVarP(&uploadOptions.InputFile, "input", "i", "", "path of the report to upload")
	UploadCmd.Flags().StringVar(&uploadOptions.ServerURL, "server", "", "results server URL (overrides the configuration)")
	UploadCmd.Flags().StringVar(&uploadOptions.Token, "token", "", "results server token (overrides the configuration)")
	UploadCmd.Flags().StringVar(&uploadOptions.S3Bucket, "s3-bucket", "", "S3 bucket to archive the report in")
	UploadCmd.Flags().StringVar(&uploadOptions.S3Key, "s3-key", "", "S3 object key (default is the report file name)")
}

// runUploadCommand executes the upload command.
func runUploadCommand(cmd *cobra.Command, args []string) error {
	logger := logger.NewLogger(AppConfig, "core-upload")

	if err := validateUploadArgs(AppConfig, &uploadOptions, args); err != nil {
		logger.Error("invalid upload arguments", "error", err)
		return err
	}

	if uploadOptions.ServerURL != "" {
		AppConfig.Uploader.URL = uploadOptions.ServerURL
	}
	if uploadOptions.Token != "" {
		AppConfig.Uploader.Token = uploadOptions.Token
	}
	if uploadOptions.S3Bucket != "" {
		AppConfig.S3.Bucket = uploadOptions.S3Bucket
	}

	if uploadOptions.S3Bucket != "" {
		key := uploadOptions.S3Key
		if key == "" {
			key = filepath.Base(uploadOptions.InputFile)
		}
		if err := artifacts.UploadToS3(AppConfig, logger, uploadOptions.InputFile, key); err != nil {
			logger.Error("upload command failed", "error", err)
			return err
		}
		logger.Info("upload command completed successfully", "bucket", AppConfig.S3.Bucket, "key", key)
		return nil
	}

	client := uploader.New(AppConfig, logger)
	sub, result, err := client.UploadReport(uploadOptions.InputFile)
	if err != nil {
		logger.Error("upload command failed", "error", err)
		return err
	}

	logger.Info("upload command completed successfully", "run_id", sub.RunID, "id", result.ID, "status", result.Status)
	fmt.Println(sub.RunID)
	return nil
}
