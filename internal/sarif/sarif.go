// Package sarif turns scan results into SARIF 2.1.0 reports for downstream
// diagnostics surfaces. The detector reports 0-based columns inclusive of the
// match's last UTF-16 unit; SARIF wants 1-based columns with an exclusive
// end, so every column is shifted by one and end columns by one more.
package sarif

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/yusufdanis/hidden-character-detector/internal/detector"
	"github.com/yusufdanis/hidden-character-detector/internal/scanner"
)

const (
	toolName = "hidden-character-detector"
	toolURI  = "https://github.com/yusufdanis/hidden-character-detector"
)

var ruleDescriptions = map[detector.Category]string{
	detector.CategoryZeroWidth:             "Zero-width characters hidden in text",
	detector.CategoryBidiControl:           "Bidirectional control characters reordering displayed text",
	detector.CategoryDeprecatedTag:         "Deprecated Unicode tag characters",
	detector.CategoryVariationSelector:     "Variation selectors with no visible base",
	detector.CategoryBinaryEncodingPattern: "Long zero-width runs resembling binary-encoded payloads",
}

// levelForCategory maps finding categories to SARIF severity levels.
func levelForCategory(category detector.Category) string {
	switch category {
	case detector.CategoryBidiControl, detector.CategoryBinaryEncodingPattern:
		return "error"
	default:
		return "warning"
	}
}

// BuildReport converts a corpus scan into a single-run SARIF report. Findings
// whose end coordinates precede their start coordinates (possible only with
// synthetic input from a misbehaving producer) are dropped rather than
// propagated into the rendering layer.
func BuildReport(result *scanner.Result, version, runID string) (*sarif.Report, error) {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create sarif report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(toolName, toolURI)
	run.Tool.Driver.WithVersion(version)
	run.Properties = sarif.Properties{"run_id": runID}

	seenRules := make(map[detector.Category]bool)
	for _, file := range result.Files {
		for _, finding := range file.Findings {
			if !validCoordinates(finding) {
				continue
			}

			ruleID := string(finding.Category)
			if !seenRules[finding.Category] {
				run.AddRule(ruleID).WithDescription(ruleDescriptions[finding.Category])
				seenRules[finding.Category] = true
			}

			region := sarif.NewRegion().
				WithStartLine(finding.StartLine).
				WithStartColumn(finding.StartColumn + 1)
			if finding.End != nil {
				region.WithEndLine(finding.End.Line).WithEndColumn(finding.End.Column + 2)
			} else {
				region.WithEndLine(finding.StartLine).WithEndColumn(finding.StartColumn + 2)
			}

			message := fmt.Sprintf("%s: %s", finding.Display, finding.Message)
			run.CreateResultForRule(ruleID).
				WithLevel(levelForCategory(finding.Category)).
				WithMessage(sarif.NewTextMessage(message)).
				AddLocation(
					sarif.NewLocationWithPhysicalLocation(
						sarif.NewPhysicalLocation().
							WithArtifactLocation(sarif.NewSimpleArtifactLocation(file.Path)).
							WithRegion(region),
					),
				)
		}
	}

	report.AddRun(run)
	return report, nil
}

// validCoordinates rejects range findings that end before they start.
func validCoordinates(finding detector.Finding) bool {
	if finding.End == nil {
		return true
	}
	if finding.End.Line < finding.StartLine {
		return false
	}
	if finding.End.Line == finding.StartLine && finding.End.Column < finding.StartColumn {
		return false
	}
	return finding.End.Index >= finding.StartIndex
}

// WriteReport persists the report as JSON at path.
func WriteReport(report *sarif.Report, path string) error {
	if err := report.WriteFile(path); err != nil {
		return fmt.Errorf("failed to write sarif report to %q: %w", path, err)
	}
	return nil
}

// ReadReport loads a SARIF report from path.
func ReadReport(path string) (*sarif.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sarif report %q: %w", path, err)
	}
	var report sarif.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse sarif report %q: %w", path, err)
	}
	return &report, nil
}

// CollectSeverityInfo tallies results per severity level plus a total, for
// console summaries and gating.
func CollectSeverityInfo(report *sarif.Report) map[string]int {
	severityInfo := map[string]int{
		"error":   0,
		"warning": 0,
		"note":    0,
		"total":   0,
	}

	for _, run := range report.Runs {
		for _, result := range run.Results {
			level := "note"
			if result.Level != nil {
				level = *result.Level
			}
			if _, ok := severityInfo[level]; !ok {
				level = "note"
			}
			severityInfo[level]++
			severityInfo["total"]++
		}
	}
	return severityInfo
}
