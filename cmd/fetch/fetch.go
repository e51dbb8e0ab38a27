package fetch

import (
	"fmt"
	"path/filepath"

	"github.com/gitsight/go-vcsurl"
	"github.com/spf13/cobra"

	"github.com/yusufdanis/hidden-character-detector/internal/git"
	"github.com/yusufdanis/hidden-character-detector/pkg/shared"
	"github.com/yusufdanis/hidden-character-detector/pkg/shared/config"
	"github.com/yusufdanis/hidden-character-detector/pkg/shared/logger"
)

// RunOptionsFetch holds the arguments for the fetch command.
type RunOptionsFetch struct {
	AuthType       string
	SSHKey         string
	SSHKeyPassword string
	Username       string
	Token          string
	Branch         string
	TargetFolder   string
}

var (
	AppConfig         *config.Config
	fetchOptions      RunOptionsFetch
	exampleFetchUsage = `  # Fetching over anonymous HTTPS, letting the target folder default to the artifacts home
  hcd fetch https://github.com/yusufdanis/hidden-character-detector

  # Fetching a specific branch using SSH agent authentication
  hcd fetch --auth-type ssh-agent -b develop ssh://git@github.com/yusufdanis/hidden-character-detector.git

  # Fetching using SSH key authentication
  hcd fetch --auth-type ssh-key --ssh-key ~/.ssh/id_ed25519 ssh://git@github.com/yusufdanis/hidden-character-detector.git

  # Fetching using HTTP authentication into an explicit folder
  hcd fetch --auth-type http --username user --token TOKEN --target /tmp/checkout https://github.com/yusufdanis/hidden-character-detector`
)

// FetchCmd represents the fetch command.
var FetchCmd = &cobra.Command{
	Use:                   "fetch [--auth-type/-a AUTH_TYPE] [--ssh-key/-k PATH] [-b BRANCH] [--target PATH] URL",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleFetchUsage,
	Short:                 "Fetches repository code so it can be scanned locally",
	RunE:                  runFetchCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func init() {
	FetchCmd.Flags().StringVarP(&fetchOptions.AuthType, "auth-type", "a", "", "authentication type: http, ssh-key or ssh-agent (default is anonymous)")
	FetchCmd.Flags().StringVarP(&fetchOptions.SSHKey, "ssh-key", "k", "", "path of the private SSH key")
	FetchCmd.Flags().StringVar(&fetchOptions.SSHKeyPassword, "ssh-key-password", "", "passphrase of the private SSH key")
	FetchCmd.Flags().StringVar(&fetchOptions.Username, "username", "", "username for http authentication")
	FetchCmd.Flags().StringVar(&fetchOptions.Token, "token", "", "token for http authentication")
	FetchCmd.Flags().StringVarP(&fetchOptions.Branch, "branch", "b", "", "branch to fetch (default is the remote default branch)")
	FetchCmd.Flags().StringVar(&fetchOptions.TargetFolder, "target", "", "folder to clone into (default is under the artifacts home)")
}

// runFetchCommand executes the fetch command.
func runFetchCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "core-fetch")

	if err := validateFetchArgs(&fetchOptions, args); err != nil {
		logger.Error("invalid fetch arguments", "error", err)
		return err
	}
	cloneURL := args[0]

	target := fetchOptions.TargetFolder
	if target == "" {
		var err error
		target, err = defaultTargetFolder(AppConfig, cloneURL)
		if err != nil {
			logger.Error("failed to derive target folder", "url", cloneURL, "error", err)
			return err
		}
	}

	client, err := git.NewClient(AppConfig, git.AuthOptions{
		AuthType:       fetchOptions.AuthType,
		SSHKeyPath:     fetchOptions.SSHKey,
		SSHKeyPassword: fetchOptions.SSHKeyPassword,
		Username:       fetchOptions.Username,
		Token:          fetchOptions.Token,
	}, logger)
	if err != nil {
		logger.Error("failed to set up git client", "error", err)
		return err
	}

	path, err := client.CloneRepository(cloneURL, fetchOptions.Branch, target)
	if err != nil {
		logger.Error("fetch command failed", "error", err)
		return err
	}

	logger.Info("fetch command completed successfully", "target", path)
	fmt.Println(path)
	return nil
}

// defaultTargetFolder places checkouts under <artifacts-home>/repos/<host>/<full-name>.
func defaultTargetFolder(cfg *config.Config, cloneURL string) (string, error) {
	info, err := vcsurl.Parse(cloneURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse VCS URL %q: %w", cloneURL, err)
	}
	return filepath.Join(config.GetArtifactsHome(cfg), "repos", string(info.Host), info.FullName), nil
}
