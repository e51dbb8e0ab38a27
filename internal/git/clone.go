package git

import (
	"context"
	"fmt"

	"github.com/gitsight/go-vcsurl"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/yusufdanis/hidden-character-detector/pkg/shared/config"
	log "github.com/yusufdanis/hidden-character-detector/pkg/shared/logger"
)

// CloneRepository shallow-clones cloneURL into targetFolder so it can be
// scanned. If the target already holds a repository it is opened instead of
// re-cloned. Returns the path of the working tree.
func (c *Client) CloneRepository(cloneURL, branch, targetFolder string) (string, error) {
	info, err := vcsurl.Parse(cloneURL)
	if err != nil {
		c.logger.Error("failed to parse VCS URL", "url", cloneURL, "error", err)
		return "", fmt.Errorf("failed to parse VCS URL: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	output := log.GetLoggerOutput(c.logger)
	options := &git.CloneOptions{
		Auth:            c.auth,
		URL:             cloneURL,
		Progress:        output,
		Depth:           config.SetThen(c.globalConfig.GitClient.Depth, config.DefaultGitDepth),
		InsecureSkipTLS: config.GetBoolValue(c.globalConfig.GitClient, "InsecureTLS", false),
	}
	if branch != "" {
		options.ReferenceName = plumbing.NewBranchReferenceName(branch)
		options.SingleBranch = true
	}

	c.logger.Debug("cloning repository", "repository", info.Name, "branch", branch, "target", targetFolder)
	_, err = git.PlainCloneContext(ctx, targetFolder, false, options)
	if err != nil {
		if err != git.ErrRepositoryAlreadyExists {
			c.logger.Error("error occurred during clone", "error", err, "target", targetFolder)
			return "", fmt.Errorf("error occurred during clone: %w", err)
		}
		c.logger.Info("repository already exists, scanning the existing checkout", "target", targetFolder)
		if _, err := git.PlainOpen(targetFolder); err != nil {
			return "", fmt.Errorf("cannot open existing repository: %w", err)
		}
	}

	c.logger.Info("repository ready for scanning", "repository", info.Name, "target", targetFolder)
	return targetFolder, nil
}
