package fetch

import "fmt"

// validateFetchArgs checks that exactly one clone URL was given and that the
// selected authentication type carries the options it needs.
func validateFetchArgs(options *RunOptionsFetch, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("the command takes exactly one repository URL argument")
	}

	switch options.AuthType {
	case "", "ssh-agent":
	case "ssh-key":
		if options.SSHKey == "" {
			return fmt.Errorf("'ssh-key' authentication requires the --ssh-key flag")
		}
	case "http":
		if options.Username == "" || options.Token == "" {
			return fmt.Errorf("'http' authentication requires the --username and --token flags")
		}
	default:
		return fmt.Errorf("unknown auth type %q", options.AuthType)
	}
	return nil
}
