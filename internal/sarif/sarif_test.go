package sarif

import (
	"testing"

	"github.com/yusufdanis/hidden-character-detector/internal/detector"
	"github.com/yusufdanis/hidden-character-detector/internal/scanner"
)

func singleFileResult(path, content string) *scanner.Result {
	findings := detector.Scan(content)
	return &scanner.Result{
		Files:         []scanner.FileResult{{Path: path, Findings: findings}},
		ScannedFiles:  1,
		TotalFindings: len(findings),
	}
}

func TestBuildReportSingleFinding(t *testing.T) {
	report, err := BuildReport(singleFileResult("src/app.go", "Hello​world"), "1.0.0", "run-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(report.Runs))
	}
	run := report.Runs[0]
	if got := run.Tool.Driver.Name; got != "hidden-character-detector" {
		t.Errorf("unexpected tool name %q", got)
	}
	if len(run.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(run.Results))
	}

	result := run.Results[0]
	if result.RuleID == nil || *result.RuleID != string(detector.CategoryZeroWidth) {
		t.Errorf("unexpected rule id: %v", result.RuleID)
	}

	region := result.Locations[0].PhysicalLocation.Region
	// Detector column 5 (0-based) becomes SARIF column 6 (1-based), with an
	// exclusive end one unit later.
	if *region.StartLine != 1 || *region.StartColumn != 6 {
		t.Errorf("unexpected start coordinates: line %d col %d", *region.StartLine, *region.StartColumn)
	}
	if *region.EndColumn != 7 {
		t.Errorf("unexpected end column: %d", *region.EndColumn)
	}
}

func TestBuildReportPatternRange(t *testing.T) {
	content := "x" + "​​​​​​​​"
	report, err := BuildReport(singleFileResult("payload.txt", content), "1.0.0", "run-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := report.Runs[0].Results[0]
	if result.Level == nil || *result.Level != "error" {
		t.Errorf("pattern findings should be errors, got %v", result.Level)
	}

	region := result.Locations[0].PhysicalLocation.Region
	if *region.StartColumn != 2 {
		t.Errorf("unexpected start column %d", *region.StartColumn)
	}
	// Last run member sits at detector column 8; inclusive 8 -> exclusive
	// 9 -> 1-based 10.
	if *region.EndColumn != 10 {
		t.Errorf("unexpected end column %d", *region.EndColumn)
	}
}

func TestBuildReportDropsInvalidSyntheticFinding(t *testing.T) {
	bogus := detector.Finding{
		Display:     "U+200B",
		CodePoint:   0x200B,
		StartIndex:  10,
		StartLine:   5,
		StartColumn: 3,
		Category:    detector.CategoryZeroWidth,
		Message:     "synthetic",
		End:         &detector.Position{Index: 2, Line: 1, Column: 0},
	}
	result := &scanner.Result{
		Files: []scanner.FileResult{{Path: "fake.txt", Findings: []detector.Finding{bogus}}},
	}

	report, err := BuildReport(result, "1.0.0", "run-3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Runs[0].Results) != 0 {
		t.Fatalf("invalid finding must be dropped, got %d results", len(report.Runs[0].Results))
	}
}

func TestCollectSeverityInfo(t *testing.T) {
	content := "a​b‮c"
	report, err := BuildReport(singleFileResult("m.txt", content), "1.0.0", "run-4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info := CollectSeverityInfo(report)
	if info["total"] != 2 {
		t.Errorf("expected 2 results, got %d", info["total"])
	}
	if info["warning"] != 1 || info["error"] != 1 {
		t.Errorf("unexpected severity split: %v", info)
	}
}
