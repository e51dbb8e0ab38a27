package scan

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/yusufdanis/hidden-character-detector/cmd/version"
	"github.com/yusufdanis/hidden-character-detector/internal/cache"
	"github.com/yusufdanis/hidden-character-detector/internal/sarif"
	"github.com/yusufdanis/hidden-character-detector/internal/scanner"
	"github.com/yusufdanis/hidden-character-detector/pkg/shared/artifacts"
	"github.com/yusufdanis/hidden-character-detector/pkg/shared/config"
)

// readInputFile reads one target path per line, skipping blanks.
func readInputFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file %q: %w", path, err)
	}
	defer file.Close()

	var paths []string
	s := bufio.NewScanner(file)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line != "" {
			paths = append(paths, line)
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input file %q: %w", path, err)
	}
	return paths, nil
}

// openCache loads the persisted result cache unless caching is disabled.
func openCache(cfg *config.Config, options *RunOptionsScan, logger hclog.Logger) (*cache.Cache, string, error) {
	if options.NoCache {
		return nil, "", nil
	}

	cachePath := filepath.Join(config.GetArtifactsHome(cfg), "cache.json")
	resultCache, err := cache.Load(cachePath)
	if err != nil {
		logger.Warn("result cache is unreadable, starting fresh", "path", cachePath, "error", err)
		return cache.New(), cachePath, nil
	}
	logger.Debug("result cache loaded", "path", cachePath, "entries", resultCache.Len())
	return resultCache, cachePath, nil
}

// writeOutput persists the scan result in the requested format and returns
// the report path.
func writeOutput(cfg *config.Config, options *RunOptionsScan, result *scanner.Result, logger hclog.Logger) (string, error) {
	switch options.ReportFormat {
	case "sarif":
		report, err := sarif.BuildReport(result, version.CoreVersion, uuid.New().String())
		if err != nil {
			return "", err
		}
		path := options.OutputPath
		if path == "" {
			base := artifacts.GetArtifactName("scan", time.Now())
			path = filepath.Join(config.GetArtifactsHome(cfg), base+".sarif")
			if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
				return "", err
			}
		}
		if err := sarif.WriteReport(report, path); err != nil {
			return "", err
		}
		return path, nil
	default:
		if options.OutputPath != "" {
			data, err := resultJSON(result)
			if err != nil {
				return "", err
			}
			if err := os.WriteFile(options.OutputPath, data, 0644); err != nil {
				return "", fmt.Errorf("error writing result to %q: %w", options.OutputPath, err)
			}
			return options.OutputPath, nil
		}
		return artifacts.SaveArtifactJSON(cfg, logger, "scan", result)
	}
}

func resultJSON(result *scanner.Result) ([]byte, error) {
	data, err := json.MarshalIndent(result, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("error marshaling the result data: %w", err)
	}
	return data, nil
}
