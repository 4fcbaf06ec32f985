// Package cli wires the pantry commands: the interactive planner and a few
// headless helpers around the same engine and API client.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pantry/internal/api"
	"pantry/internal/config"
	"pantry/internal/eventbus"
	"pantry/internal/logging"
	"pantry/internal/session"
)

// skipConfigFile marks commands that must run even when the config file is
// unreadable or invalid. They start from the defaults.
const skipConfigFile = "pantry.skip-config-file"

type options struct {
	configPath string
	apiURL     string
	verbose    bool
}

// app holds everything a command needs once flags are parsed
type app struct {
	configSvc config.ConfigService
	cfg       *config.Config
	logger    *zap.Logger
	bus       eventbus.EventBus
	session   *session.Store
	client    *api.Client
}

// newRootCommand builds the pantry command tree. The caller closes the app
// once Execute returns, whether or not the command failed.
func newRootCommand() (*cobra.Command, *app) {
	opts := &options{}
	a := &app{}

	root := &cobra.Command{
		Use:   "pantry",
		Short: "Plan meals from the storefront's recipes",
		Long: `pantry searches the storefront's recipes as you type, loading more
results as you scroll, and adds ingredients straight to your cart.

Run without arguments to start the interactive planner.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default: ~/.config/pantry/config.toml)")
	root.PersistentFlags().StringVar(&opts.apiURL, "api", "", "Storefront API base URL (overrides config and PANTRY_API_URL)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newSearchCommand(a))
	root.AddCommand(newSignupCommand(a))
	root.AddCommand(newLoginCommand(a))
	root.AddCommand(newLogoutCommand(a))
	root.AddCommand(newCartCommand(a))
	root.AddCommand(newConfigCommand(a))
	return root, a
}

// Execute runs the root command with os.Args
func Execute() error {
	root, a := newRootCommand()
	defer a.close()
	return root.Execute()
}

// setup resolves configuration in order: file, environment, flags
func (a *app) setup(cmd *cobra.Command, opts *options) error {
	a.configSvc = config.NewConfigService(opts.configPath)
	skipFile := cmd.Annotations[skipConfigFile] != ""

	cfg := config.DefaultConfig()
	if !skipFile {
		var err error
		if cfg, err = a.configSvc.Load(); err != nil {
			return err
		}
	}
	config.ApplyEnv(cfg, os.Environ())
	if opts.apiURL != "" {
		cfg.API.BaseURL = opts.apiURL
	}
	if opts.verbose {
		cfg.Logging.Verbose = true
	}
	if err := config.Validate(cfg); err != nil {
		if skipFile {
			logs := cfg.Logging
			cfg = config.DefaultConfig()
			cfg.Logging = logs
		} else {
			return fmt.Errorf("invalid config %s: %w", a.configSvc.Path(), err)
		}
	}
	a.cfg = cfg

	a.logger = logging.MustNew(logging.Options{FilePath: cfg.Logging.File, Verbose: cfg.Logging.Verbose})
	a.logger.Info("starting",
		zap.String("command", cmd.CommandPath()),
		zap.String("config", a.configSvc.Path()),
		zap.String("api", cfg.API.BaseURL))

	a.bus = eventbus.New(a.logger)
	a.session = session.NewStore(session.DefaultPath(a.configSvc.Path()))

	var err error
	a.client, err = api.New(cfg.API.BaseURL, cfg.API.Timeout.Duration,
		api.WithTokenSource(a.session),
		api.WithLogger(a.logger))
	return err
}

func (a *app) close() {
	if a.bus != nil {
		a.bus.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// username is the signed-in user, or "" when there is no usable session
func (a *app) username() string {
	sess, err := a.session.Load()
	if err != nil {
		a.logger.Warn("ignoring unreadable session", zap.Error(err))
		return ""
	}
	if strings.TrimSpace(sess.Tokens.AccessToken) == "" {
		return ""
	}
	return sess.Username
}
