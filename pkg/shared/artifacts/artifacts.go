package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/hashicorp/go-hclog"

	"github.com/yusufdanis/hidden-character-detector/pkg/shared/config"
	"github.com/yusufdanis/hidden-character-detector/pkg/shared/files"
)

// GetArtifactName builds an artifact base name.
// Example: scan_2026-08-31T08:28:46Z.hcd-artifact.
func GetArtifactName(command string, t time.Time) string {
	ts := t.UTC().Format(time.RFC3339)
	return fmt.Sprintf("%s_%s.hcd-artifact", command, ts)
}

// SaveArtifactJSON writes the provided result to <artifacts>/<base>.json and
// returns the full path.
func SaveArtifactJSON(cfg *config.Config, logger hclog.Logger, command string, result interface{}) (string, error) {
	dir := config.GetArtifactsHome(cfg)
	base := GetArtifactName(command, time.Now())
	path := filepath.Join(dir, base+".json")

	resultData, err := json.MarshalIndent(result, "", "    ")
	if err != nil {
		return path, fmt.Errorf("error marshaling the result data: %w", err)
	}

	if err := files.WriteFileAtomic(path, resultData); err != nil {
		return path, fmt.Errorf("error writing result to artifact file: %w", err)
	}
	logger.Info("artifact saved to file", "path", path)

	return path, nil
}

// UploadToS3 puts the file at path into the configured bucket under key.
func UploadToS3(cfg *config.Config, logger hclog.Logger, path, key string) error {
	if cfg.S3.Bucket == "" {
		return fmt.Errorf("s3 bucket is not configured")
	}

	sess, err := session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
		Config: aws.Config{
			Region: aws.String(config.SetThen(cfg.S3.Region, "us-east-1")),
		},
	})
	if err != nil {
		return fmt.Errorf("unable to create s3 session: %w", err)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open artifact %q: %w", path, err)
	}
	defer file.Close()

	svc := s3.New(sess)
	input := &s3.PutObjectInput{
		Bucket: aws.String(cfg.S3.Bucket),
		Key:    aws.String(key),
		Body:   file,
	}

	if _, err := svc.PutObject(input); err != nil {
		if aerr, ok := err.(awserr.Error); ok {
			logger.Error("s3 upload failed", "code", aerr.Code(), "error", aerr)
		}
		return fmt.Errorf("failed to upload %q to s3://%s/%s: %w", path, cfg.S3.Bucket, key, err)
	}

	logger.Info("artifact uploaded", "bucket", cfg.S3.Bucket, "key", key)
	return nil
}
