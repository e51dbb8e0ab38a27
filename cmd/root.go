package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yusufdanis/hidden-character-detector/cmd/fetch"
	"github.com/yusufdanis/hidden-character-detector/cmd/report"
	"github.com/yusufdanis/hidden-character-detector/cmd/scan"
	"github.com/yusufdanis/hidden-character-detector/cmd/upload"
	"github.com/yusufdanis/hidden-character-detector/cmd/version"
	"github.com/yusufdanis/hidden-character-detector/pkg/shared/config"
	sharederrors "github.com/yusufdanis/hidden-character-detector/pkg/shared/errors"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "hcd [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "hcd finds invisible and deceptive Unicode characters in text",
		Long: `hcd scans files for hidden Unicode content: zero-width characters,
	bidirectional control characters, deprecated tag characters, stray variation
	selectors and zero-width runs that encode binary payloads. Reports are
	written as JSON or SARIF and can be rendered to HTML or shipped to a
	results server.
	`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yml)")
	rootCmd.AddCommand(version.NewVersionCmd())
	rootCmd.AddCommand(scan.ScanCmd)
	rootCmd.AddCommand(fetch.FetchCmd)
	rootCmd.AddCommand(report.ReportCmd)
	rootCmd.AddCommand(upload.UploadCmd)
}

// Execute runs the root command and maps the error path to a process exit
// code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		var cmdErr *sharederrors.CommandError
		if errors.As(err, &cmdErr) {
			fmt.Fprintln(os.Stderr, cmdErr.Message)
			return cmdErr.ExitCode
		}
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		return sharederrors.ExitError
	}
	return sharederrors.ExitOK
}

func initConfig() {
	var err error

	if cfgFile == "" {
		cfgFile = "config.yml"
	}
	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(sharederrors.ExitError)
	}

	version.Init(AppConfig)
	scan.Init(AppConfig)
	fetch.Init(AppConfig)
	report.Init(AppConfig)
	upload.Init(AppConfig)
}
