package template

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/owenrumney/go-sarif/v2/sarif"
)

//go:embed templates/report.html
var templateFS embed.FS

// Row is one finding rendered in the HTML table.
type Row struct {
	Path    string
	Rule    string
	Level   string
	Line    int
	Column  int
	Message string
}

// ReportData feeds the HTML report template.
type ReportData struct {
	ToolName    string
	Version     string
	GeneratedAt time.Time
	Totals      map[string]int
	Rows        []Row
}

// add adds two integers and returns the result.
// helper function for html template
func add(a, b int) int {
	return a + b
}

// formatDateTime formats a time.Time object for the report header.
// helper function for html template
func formatDateTime(t time.Time) string {
	return t.UTC().Format("2 Jan 2006 15:04:05 MST")
}

func newTemplate() (*template.Template, error) {
	return template.New("report.html").
		Funcs(template.FuncMap{
			"add":            add,
			"formatDateTime": formatDateTime,
		}).
		ParseFS(templateFS, "templates/report.html")
}

// FromSarif flattens a SARIF report into template rows.
func FromSarif(report *sarif.Report, totals map[string]int, version string) ReportData {
	data := ReportData{
		ToolName:    "hidden-character-detector",
		Version:     version,
		GeneratedAt: time.Now(),
		Totals:      totals,
	}

	for _, run := range report.Runs {
		for _, result := range run.Results {
			row := Row{Rule: "unknown", Level: "note"}
			if result.RuleID != nil {
				row.Rule = *result.RuleID
			}
			if result.Level != nil {
				row.Level = *result.Level
			}
			if result.Message.Text != nil {
				row.Message = *result.Message.Text
			}
			if len(result.Locations) > 0 && result.Locations[0].PhysicalLocation != nil {
				loc := result.Locations[0].PhysicalLocation
				if loc.ArtifactLocation != nil && loc.ArtifactLocation.URI != nil {
					row.Path = *loc.ArtifactLocation.URI
				}
				if loc.Region != nil {
					if loc.Region.StartLine != nil {
						row.Line = *loc.Region.StartLine
					}
					if loc.Region.StartColumn != nil {
						row.Column = *loc.Region.StartColumn
					}
				}
			}
			data.Rows = append(data.Rows, row)
		}
	}
	return data
}

// Render writes the HTML report for data to w.
func Render(w io.Writer, data ReportData) error {
	tmpl, err := newTemplate()
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}
