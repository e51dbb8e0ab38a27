// Package git provides the repository-level operations the scan commands
// need: cloning remote targets and listing files changed between commits for
// diff-scoped scans.
package git

import (
	"fmt"
	"time"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
	"github.com/hashicorp/go-hclog"

	crssh "golang.org/x/crypto/ssh"

	"github.com/yusufdanis/hidden-character-detector/pkg/shared/config"
	"github.com/yusufdanis/hidden-character-detector/pkg/shared/files"
)

// Client wraps go-git operations with configuration and authentication.
type Client struct {
	logger       hclog.Logger
	auth         transport.AuthMethod
	timeout      time.Duration
	globalConfig *config.Config
}

// AuthOptions selects and parameterizes the transport authentication used
// for remote operations. An empty AuthType performs anonymous HTTPS access.
type AuthOptions struct {
	AuthType       string
	SSHKeyPath     string
	SSHKeyPassword string
	Username       string
	Token          string
}

// NewClient builds a git client for the given authentication options.
func NewClient(cfg *config.Config, opts AuthOptions, logger hclog.Logger) (*Client, error) {
	auth, err := setupAuth(opts, logger)
	if err != nil {
		return nil, err
	}

	return &Client{
		logger:       logger,
		auth:         auth,
		timeout:      config.SetThen(cfg.GitClient.Timeout, config.DefaultGitTimeout),
		globalConfig: cfg,
	}, nil
}

func setupAuth(opts AuthOptions, logger hclog.Logger) (transport.AuthMethod, error) {
	switch opts.AuthType {
	case "":
		return nil, nil
	case "ssh-key":
		logger.Debug("setting up SSH key authentication")
		keyPath, err := files.ExpandPath(opts.SSHKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to expand SSH key path %q: %w", opts.SSHKeyPath, err)
		}
		auth, err := ssh.NewPublicKeysFromFile("git", keyPath, opts.SSHKeyPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to set up SSH key authentication: %w", err)
		}
		// Scan targets are provided explicitly; unknown host keys are
		// accepted instead of maintaining a known_hosts file.
		auth.HostKeyCallbackHelper = ssh.HostKeyCallbackHelper{
			HostKeyCallback: crssh.InsecureIgnoreHostKey(),
		}
		return auth, nil
	case "ssh-agent":
		logger.Debug("setting up SSH agent authentication")
		auth, err := ssh.NewSSHAgentAuth("git")
		if err != nil {
			return nil, fmt.Errorf("failed to set up SSH agent authentication: %w", err)
		}
		return auth, nil
	case "http":
		logger.Debug("setting up HTTP basic authentication")
		if opts.Username == "" || opts.Token == "" {
			return nil, fmt.Errorf("http authentication requires a username and a token")
		}
		return &http.BasicAuth{Username: opts.Username, Password: opts.Token}, nil
	default:
		return nil, fmt.Errorf("unknown auth type %q", opts.AuthType)
	}
}
