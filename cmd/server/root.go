package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/preston-bernstein/f1-dashboard-service/internal/config"
	"github.com/preston-bernstein/f1-dashboard-service/internal/logging"
)

const (
	envPrefix   = "F1DASH"
	serviceName = "f1-dashboard-service"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	cfgFile         string
	port            string
	apiBaseURL      string
	provider        string
	refreshInterval time.Duration

	v *viper.Viper
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           "f1dash",
		Short:         "Backend for the F1 dashboard",
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is ./.f1dash.yml)")
	flags.StringVar(&opts.port, "port", "", "HTTP port (overrides PORT)")
	flags.StringVar(&opts.apiBaseURL, "api-base-url", "", "analytics backend base URL (overrides API_BASE_URL)")
	flags.StringVar(&opts.provider, "provider", "", "data provider: backend or static (overrides PROVIDER)")
	flags.DurationVar(&opts.refreshInterval, "refresh-interval", 0, "dashboard refresh cadence (overrides REFRESH_INTERVAL)")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newRaceCmd(opts),
		newVisualCmd(),
		newStandingsCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// initConfig reads the optional config file and F1DASH_ env vars, then
// applies them to any flag the user did not set explicitly.
func (o *rootOptions) initConfig(cmd *cobra.Command) error {
	v := o.v
	if o.cfgFile != "" {
		v.SetConfigFile(o.cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".f1dash")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if o.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	bindFlags(cmd.Root().PersistentFlags(), v)
	bindFlags(cmd.Flags(), v)
	return nil
}

// bindFlags applies viper values to flags that were not set on the command line.
func bindFlags(flags *pflag.FlagSet, v *viper.Viper) {
	flags.VisitAll(func(f *pflag.Flag) {
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name, fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				fmt.Fprintf(os.Stderr, "could not bind env var %s: %v\n", f.Name, err)
			}
		}
		if !f.Changed && v.IsSet(f.Name) {
			if err := flags.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name))); err != nil {
				fmt.Fprintf(os.Stderr, "could not set flag %s: %v\n", f.Name, err)
			}
		}
	})
}

// loadConfig returns the env configuration with flag overrides applied.
func (o *rootOptions) loadConfig() config.Config {
	cfg := config.Load()
	if o.port != "" {
		cfg.Port = o.port
	}
	if o.apiBaseURL != "" {
		cfg.Backend.BaseURL = o.apiBaseURL
	}
	if o.provider != "" {
		cfg.Provider = strings.ToLower(o.provider)
	}
	if o.refreshInterval > 0 {
		cfg.RefreshInterval = o.refreshInterval
	}
	return cfg
}

func newLogger(cfg config.Config, out io.Writer) *slog.Logger {
	return logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: serviceName,
		Version: appVersion,
		Output:  out,
	})
}
