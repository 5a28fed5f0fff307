package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/todo-service/internal/platform/config"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	profile   string
	configDir string
}

// loadConfig resolves the profile from the flag or APP_PROFILE and loads the
// layered configuration.
func (f *globalFlags) loadConfig() (*config.Config, error) {
	profile := f.profile
	if profile == "" {
		profile = os.Getenv("APP_PROFILE")
	}
	if profile == "" {
		return nil, errors.New("profile is required: pass --profile or set APP_PROFILE (e.g. local, dev, prod)")
	}

	var opts []config.Option
	if f.configDir != "" {
		opts = append(opts, config.WithConfigDir(f.configDir))
	}
	return config.Load(profile, opts...)
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	serveCmd := newServeCmd(flags)

	root := &cobra.Command{
		Use:   "todo-service",
		Short: "HTTP service for creating, filtering and scheduling todos",
		Long: `todo-service exposes CRUD operations over a single todo table.

Without a subcommand it behaves like "serve".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serveCmd.RunE,
	}

	root.PersistentFlags().StringVarP(&flags.profile, "profile", "p", "", "configuration profile (defaults to $APP_PROFILE)")
	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "directory holding base.yaml and the profile files")

	root.AddCommand(serveCmd)
	root.AddCommand(newMigrateCmd(flags))

	return root
}

func newServeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func newMigrateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the todo table if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			return migrate(cmd.Context(), cfg)
		},
	}
}
