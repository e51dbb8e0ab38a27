package scan

import (
	"fmt"
	"os"

	"github.com/yusufdanis/hidden-character-detector/pkg/shared/files"
)

// validateScanArgs validates the arguments provided to the scan command.
func validateScanArgs(options *RunOptionsScan, args []string) error {
	if len(args) == 0 && options.InputFile == "" {
		return fmt.Errorf("either 'input-file' flag or a target path must be specified")
	}

	if options.InputFile != "" && len(args) > 0 {
		return fmt.Errorf("you cannot use an 'input-file' flag and a target path at the same time")
	}

	if options.Threads < 0 {
		return fmt.Errorf("the 'threads' flag must be a positive integer")
	}

	switch options.ReportFormat {
	case "json", "sarif":
	default:
		return fmt.Errorf("unsupported report format %q, expected 'json' or 'sarif'", options.ReportFormat)
	}

	if (options.DiffBase == "") != (options.DiffHead == "") {
		return fmt.Errorf("'diff-base' and 'diff-head' must be specified together")
	}
	if options.DiffBase != "" {
		if options.InputFile != "" {
			return fmt.Errorf("a diff-scoped scan takes a repository path, not an input file")
		}
		if len(args) != 1 {
			return fmt.Errorf("a diff-scoped scan takes exactly one repository path")
		}
	}

	for _, target := range args {
		if _, err := os.Stat(target); os.IsNotExist(err) {
			return fmt.Errorf("the target path does not exist: %v", target)
		}
	}

	if options.InputFile != "" {
		if err := files.ValidatePath(options.InputFile); err != nil {
			return fmt.Errorf("cannot read input file %q: %w", options.InputFile, err)
		}
	}

	return nil
}
