package upload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yusufdanis/hidden-character-detector/pkg/shared/config"
)

func TestValidateUploadArgs(t *testing.T) {
	report := filepath.Join(t.TempDir(), "report.sarif")
	if err := os.WriteFile(report, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	configured := &config.Config{}
	configured.Uploader.URL = "https://results.internal.example"

	testCases := []struct {
		name    string
		cfg     *config.Config
		options RunOptionsUpload
		args    []string
		wantErr bool
	}{
		{name: "no input", cfg: &config.Config{}, wantErr: true},
		{name: "positional argument", cfg: &config.Config{}, options: RunOptionsUpload{InputFile: report, ServerURL: "https://x"}, args: []string{"extra"}, wantErr: true},
		{name: "missing report", cfg: &config.Config{}, options: RunOptionsUpload{InputFile: report + ".nope", ServerURL: "https://x"}, wantErr: true},
		{name: "report is a directory", cfg: &config.Config{}, options: RunOptionsUpload{InputFile: filepath.Dir(report), ServerURL: "https://x"}, wantErr: true},
		{name: "no destination", cfg: &config.Config{}, options: RunOptionsUpload{InputFile: report}, wantErr: true},
		{name: "server flag", cfg: &config.Config{}, options: RunOptionsUpload{InputFile: report, ServerURL: "https://x"}},
		{name: "configured server", cfg: configured, options: RunOptionsUpload{InputFile: report}},
		{name: "s3 bucket", cfg: &config.Config{}, options: RunOptionsUpload{InputFile: report, S3Bucket: "archive"}},
		{name: "s3 key without bucket", cfg: &config.Config{}, options: RunOptionsUpload{InputFile: report, ServerURL: "https://x", S3Key: "k"}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateUploadArgs(tc.cfg, &tc.options, tc.args)
			if tc.wantErr && err == nil {
				t.Error("expected an error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
