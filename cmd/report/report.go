package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yusufdanis/hidden-character-detector/internal/sarif"
	"github.com/yusufdanis/hidden-character-detector/internal/template"
	"github.com/yusufdanis/hidden-character-detector/pkg/shared/config"
	"github.com/yusufdanis/hidden-character-detector/pkg/shared/logger"
)

// RunOptionsReport holds the arguments for the report command.
type RunOptionsReport struct {
	InputFile  string
	OutputFile string
}

var (
	AppConfig          *config.Config
	reportOptions      RunOptionsReport
	exampleReportUsage = `  # Rendering a SARIF scan report as a standalone HTML page
  hcd report --input report.sarif --output report.html`
)

// ReportCmd represents the report command.
var ReportCmd = &cobra.Command{
	Use:                   "report --input/-i PATH [--output/-o PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleReportUsage,
	Short:                 "Renders a SARIF scan report as an HTML page",
	RunE:                  runReportCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func init() {
	ReportCmd.Flags().StringVarP(&reportOptions.InputFile, "input", "i", "", "path of the SARIF report to render")
	ReportCmd.Flags().StringVarP(&reportOptions.OutputFile, "output", "o", "", "path of the written HTML page (default is next to the input)")
}

// runReportCommand executes the report command.
func runReportCommand(cmd *cobra.Command, args []string) error {
	logger := logger.NewLogger(AppConfig, "core-report")

	if reportOptions.InputFile == "" {
		return fmt.Errorf("the --input flag is required")
	}
	outputFile := reportOptions.OutputFile
	if outputFile == "" {
		outputFile = strings.TrimSuffix(reportOptions.InputFile, ".sarif") + ".html"
	}

	sarifReport, err := sarif.ReadReport(reportOptions.InputFile)
	if err != nil {
		logger.Error("failed to load sarif report", "error", err)
		return err
	}

	version := ""
	if len(sarifReport.Runs) > 0 && sarifReport.Runs[0].Tool.Driver.SemanticVersion != nil {
		version = *sarifReport.Runs[0].Tool.Driver.SemanticVersion
	}

	data := template.FromSarif(sarifReport, sarif.CollectSeverityInfo(sarifReport), version)

	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", outputFile, err)
	}
	defer file.Close()

	if err := template.Render(file, data); err != nil {
		logger.Error("failed to render html report", "error", err)
		return err
	}

	logger.Info("report command completed successfully", "findings", data.Totals["total"], "output", outputFile)
	return nil
}
