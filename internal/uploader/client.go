// Package uploader ships SARIF reports to a results-collection server.
package uploader

import (
	"fmt"
	"net/http"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/yusufdanis/hidden-character-detector/pkg/shared/config"
	"github.com/yusufdanis/hidden-character-detector/pkg/shared/httpclient"
)

type Client struct {
	httpc *resty.Client
	url   string
}

// New builds a client for the configured results server. The token is sent
// on every request; an empty token leaves the header unset for anonymous
// endpoints.
func New(cfg *config.Config, logger hclog.Logger) Client {
	httpc := httpclient.InitializeRestyClient(logger, cfg)
	httpc.SetBaseURL(cfg.Uploader.URL)
	if cfg.Uploader.Token != "" {
		httpc.SetHeader("Authorization", fmt.Sprintf("Token %s", cfg.Uploader.Token))
	}

	return Client{
		httpc: httpc,
		url:   cfg.Uploader.URL,
	}
}

// Submission identifies one uploaded report.
type Submission struct {
	RunID string `json:"run_id"`
	Tool  string `json:"tool"`
}

// UploadResult is the server's acknowledgement.
type UploadResult struct {
	ID     int    `json:"id"`
	Status string `json:"status"`
}

// UploadReport posts the SARIF file at reportPath under a fresh run id and
// returns the submission together with the server acknowledgement.
func (c Client) UploadReport(reportPath string) (Submission, *UploadResult, error) {
	sub := Submission{
		RunID: uuid.New().String(),
		Tool:  "hidden-character-detector",
	}

	if _, err := os.Stat(reportPath); err != nil {
		return sub, nil, fmt.Errorf("report %q is not readable: %w", reportPath, err)
	}

	var result UploadResult
	resp, err := c.httpc.R().
		SetFile("file", reportPath).
		SetFormData(map[string]string{
			"run_id": sub.RunID,
			"tool":   sub.Tool,
		}).
		SetResult(&result).
		Post("/api/v1/reports")
	if err != nil {
		return sub, nil, fmt.Errorf("failed to upload report: %w", err)
	}
	if resp.StatusCode() != http.StatusCreated && resp.StatusCode() != http.StatusOK {
		return sub, nil, fmt.Errorf("results server rejected report: %s (%s)", resp.Status(), resp.String())
	}

	return sub, &result, nil
}
