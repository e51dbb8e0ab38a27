package scan

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/yusufdanis/hidden-character-detector/internal/cache"
	"github.com/yusufdanis/hidden-character-detector/internal/git"
	"github.com/yusufdanis/hidden-character-detector/internal/scanner"
	"github.com/yusufdanis/hidden-character-detector/pkg/shared"
	"github.com/yusufdanis/hidden-character-detector/pkg/shared/config"
	sharederrors "github.com/yusufdanis/hidden-character-detector/pkg/shared/errors"
	"github.com/yusufdanis/hidden-character-detector/pkg/shared/logger"
)

// RunOptionsScan holds the arguments for the scan command.
type RunOptionsScan struct {
	InputFile      string
	OutputPath     string
	ReportFormat   string
	Threads        int
	Exclude        []string
	Watch          bool
	Interval       time.Duration
	DiffBase       string
	DiffHead       string
	FailOnFindings bool
	NoCache        bool
}

var (
	AppConfig        *config.Config
	scanOptions      RunOptionsScan
	exampleScanUsage = `  # Scanning a project directory
  hcd scan /path/to/my_project

  # Scanning an explicit list of files
  hcd scan --input-file /path/to/list_output.file

  # Scanning only files changed between two commits
  hcd scan --diff-base 2f31ad1 --diff-head 8c0de11 /path/to/my_repo

  # Writing a SARIF report and failing the build when anything is flagged
  hcd scan --format sarif --output report.sarif --fail-on-findings /path/to/my_project

  # Re-scanning the corpus every ten minutes until interrupted
  hcd scan --watch --interval 10m /path/to/my_project`
)

// ScanCmd represents the scan command.
var ScanCmd = &cobra.Command{
	Use:                   "scan [--input-file/-i PATH | PATH...] [--format/-f sarif|json] [--output/-o PATH] [-j THREADS] [--exclude GLOB]... [--watch] [--diff-base HASH --diff-head HASH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleScanUsage,
	Short:                 "Scans files for invisible and deceptive Unicode characters",
	RunE:                  runScanCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func init() {
	ScanCmd.Flags().StringVarP(&scanOptions.InputFile, "input-file", "i", "", "file with one target path per line")
	ScanCmd.Flags().StringVarP(&scanOptions.OutputPath, "output", "o", "", "path of the written report (default is under the artifacts home)")
	ScanCmd.Flags().StringVarP(&scanOptions.ReportFormat, "format", "f", "json", "report format: json or sarif")
	ScanCmd.Flags().IntVarP(&scanOptions.Threads, "threads", "j", 0, "number of concurrent scan workers")
	ScanCmd.Flags().StringArrayVar(&scanOptions.Exclude, "exclude", nil, "glob pattern to exclude, may be repeated")
	ScanCmd.Flags().BoolVar(&scanOptions.Watch, "watch", false, "keep re-scanning the corpus on an interval until interrupted")
	ScanCmd.Flags().DurationVar(&scanOptions.Interval, "interval", 0, "re-scan interval in watch mode")
	ScanCmd.Flags().StringVar(&scanOptions.DiffBase, "diff-base", "", "base commit hash for a diff-scoped scan")
	ScanCmd.Flags().StringVar(&scanOptions.DiffHead, "diff-head", "", "head commit hash for a diff-scoped scan")
	ScanCmd.Flags().BoolVar(&scanOptions.FailOnFindings, "fail-on-findings", false, "exit with a non-zero status when findings exist")
	ScanCmd.Flags().BoolVar(&scanOptions.NoCache, "no-cache", false, "ignore and do not persist the per-document result cache")
}

// runScanCommand executes the scan command.
func runScanCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "core-scan")

	if err := validateScanArgs(&scanOptions, args); err != nil {
		logger.Error("invalid scan arguments", "error", err)
		return err
	}

	if scanOptions.Threads > 0 {
		AppConfig.Scanner.Threads = scanOptions.Threads
	}

	resultCache, cachePath, err := openCache(AppConfig, &scanOptions, logger)
	if err != nil {
		logger.Error("failed to open result cache", "error", err)
		return err
	}

	s := scanner.New(AppConfig, logger, resultCache, scanOptions.Exclude)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if scanOptions.Watch {
		return runWatch(ctx, s, resultCache, cachePath, args, logger)
	}

	result, err := scanOnce(ctx, s, args, logger)
	if err != nil {
		return err
	}
	if resultCache != nil && cachePath != "" {
		if err := resultCache.Save(cachePath); err != nil {
			logger.Warn("failed to persist result cache", "path", cachePath, "error", err)
		}
	}

	reportPath, err := writeOutput(AppConfig, &scanOptions, result, logger)
	if err != nil {
		logger.Error("failed to write scan report", "error", err)
		return err
	}

	logger.Info("scan command completed successfully",
		"scanned", result.ScannedFiles,
		"skipped", result.SkippedFiles,
		"errors", result.ErrorFiles,
		"findings", result.TotalFindings,
		"report", reportPath,
	)

	if scanOptions.FailOnFindings && result.TotalFindings > 0 {
		return sharederrors.NewFindingsError(result.TotalFindings)
	}
	return nil
}

// scanOnce resolves the target file set and runs one corpus scan.
func scanOnce(ctx context.Context, s *scanner.Scanner, args []string, log hclog.Logger) (*scanner.Result, error) {
	if scanOptions.DiffBase != "" {
		repoPath := args[0]
		changed, err := git.ChangedFiles(repoPath, scanOptions.DiffBase, scanOptions.DiffHead)
		if err != nil {
			return nil, err
		}
		paths := make([]string, 0, len(changed))
		for _, rel := range changed {
			paths = append(paths, filepath.Join(repoPath, rel))
		}
		log.Info("diff-scoped scan", "changed_files", len(paths))
		return s.ScanFiles(ctx, paths)
	}

	if scanOptions.InputFile != "" {
		paths, err := readInputFile(scanOptions.InputFile)
		if err != nil {
			return nil, err
		}
		return s.ScanFiles(ctx, paths)
	}

	return s.ScanPaths(ctx, args)
}

// runWatch re-scans the corpus on a fixed interval until the context is
// cancelled. Cancellation granularity is per file: an interrupt finishes the
// in-flight document and stops before the next one.
func runWatch(ctx context.Context, s *scanner.Scanner, resultCache *cache.Cache, cachePath string, args []string, logger hclog.Logger) error {
	interval := scanOptions.Interval
	if interval == 0 {
		interval = config.SetThen(AppConfig.Scanner.RescanInterval, config.DefaultRescanInterval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		result, err := scanOnce(ctx, s, args, logger)
		if err != nil {
			if ctx.Err() != nil {
				logger.Info("watch mode interrupted")
				return nil
			}
			logger.Error("scan pass failed", "error", err)
			return err
		}

		if reportPath, err := writeOutput(AppConfig, &scanOptions, result, logger); err != nil {
			logger.Warn("failed to write scan report", "error", err)
		} else {
			logger.Info("scan pass completed",
				"scanned", result.ScannedFiles,
				"findings", result.TotalFindings,
				"report", reportPath,
			)
		}
		if resultCache != nil && cachePath != "" {
			if err := resultCache.Save(cachePath); err != nil {
				logger.Warn("failed to persist result cache", "path", cachePath, "error", err)
			}
		}

		select {
		case <-ctx.Done():
			logger.Info("watch mode interrupted")
			return nil
		case <-ticker.C:
		}
	}
}
