package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/njchilds90/gopoly/internal/config"
	"github.com/njchilds90/gopoly/internal/logging"
	"github.com/njchilds90/gopoly/internal/server"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	ConfigPath string
	Port       int
}

// NewServeCommand creates the serve command, which runs the HTTP tool
// server until interrupted.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP MCP tool server",
		Long: `Serve the polynomial tools over HTTP.

  POST /tool   - execute a tool call
  GET  /schema - tool schema for agent registration
  GET  /health - health check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := LoadServerConfig(opts, rootOpts.Verbose, cmd.Flags().Changed("port"))
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if err := server.New(cfg, logger).Run(ctx); err != nil {
				logger.Error("server stopped", zap.Error(err))
				return exitError(ExitFailure, "serve", err)
			}
			return nil
		},
	}
	AddServeFlags(cmd, opts)
	return cmd
}

// AddServeFlags registers the serve flags on cmd.
func AddServeFlags(cmd *cobra.Command, opts *ServeOptions) {
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "gopoly.yaml", "path to YAML config file")
	cmd.Flags().IntVarP(&opts.Port, "port", "p", 8080, "port to listen on (overrides config)")
}

// LoadServerConfig loads and validates the configuration and builds the
// logger for the server.
func LoadServerConfig(opts *ServeOptions, verbose, portSet bool) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, nil, exitError(ExitCommandError, "load config", err)
	}
	if portSet {
		cfg.Server.Port = opts.Port
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, exitError(ExitCommandError, "invalid config", err)
	}
	logger, err := logging.New(cfg.Logging, verbose)
	if err != nil {
		return nil, nil, exitError(ExitCommandError, "logging", err)
	}
	return cfg, logger, nil
}
