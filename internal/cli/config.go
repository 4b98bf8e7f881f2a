package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/njchilds90/gopoly/internal/config"
)

// ConfigInitResult is the JSON payload of the config init command.
type ConfigInitResult struct {
	Path string `json:"path"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the server configuration file",
	}
	cmd.AddCommand(NewConfigInitCommand(rootOpts))
	return cmd
}

// NewConfigInitCommand creates the config init command, which writes the
// default server configuration.
func NewConfigInitCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		path  string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatter(rootOpts, cmd)
			if _, err := os.Stat(path); err == nil && !force {
				return f.Failure(ExitCommandError, "config init", fmt.Errorf("%s already exists (use --force to overwrite)", path))
			}
			if err := config.DefaultConfig().Save(path); err != nil {
				return f.Failure(ExitFailure, "config init", err)
			}
			return f.Success("wrote "+path, ConfigInitResult{Path: path})
		},
	}
	cmd.Flags().StringVarP(&path, "config", "c", "gopoly.yaml", "path of the config file to write")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
