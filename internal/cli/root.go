package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kubev2v/threadsched/internal/config"
)

const envPrefix = "THREADSCHED"

// version is overridden at build time with -ldflags "-X".
var version = "dev"

// NewRootCmd creates the root cobra command for the threadsched CLI.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	defaults := config.NewConfigurationWithDefaults()

	root := &cobra.Command{
		Use:          "threadsched",
		Short:        "Single-threaded task scheduler demo",
		Long:         "threadsched drives a scheduler that runs every submitted action on one dedicated worker thread.",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("log-format", defaults.LogFormat, "Log format (console, json)")
	root.PersistentFlags().String("log-level", defaults.LogLevel, "Log level (debug, info, warn, error)")
	cobra.CheckErr(bindFlags(v, root.PersistentFlags(), map[string]string{
		"log-format": "log-format",
		"log-level":  "log-level",
	}))

	root.AddCommand(
		newRunCmd(v, defaults),
		newVersionCmd(),
	)

	return root
}

// bindFlags binds each flag to its viper key.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) error {
	for flag, key := range keys {
		f := fs.Lookup(flag)
		if f == nil {
			return fmt.Errorf("flag %q is not defined", flag)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", flag, err)
		}
	}
	return nil
}

// loadConfiguration layers flags and environment over the struct defaults.
func loadConfiguration(v *viper.Viper) (*config.Configuration, error) {
	cfg := config.NewConfigurationWithDefaults()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
