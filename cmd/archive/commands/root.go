// Package commands wires the archive's cobra command tree.
package commands

import (
	"context"

	"github.com/spf13/cobra"

	"appeal-archive/internal/config"
	"appeal-archive/internal/db"
	"appeal-archive/internal/printer"
)

// rootOptions holds the global flags shared by every subcommand.
type rootOptions struct {
	envFile string
	dbURL   string
}

// config loads the environment and applies flag overrides.
func (o *rootOptions) config() (config.Config, error) {
	cfg, err := config.Load(o.envFile)
	if err != nil {
		return config.Config{}, err
	}
	if o.dbURL != "" {
		cfg = cfg.WithDatabaseURL(o.dbURL)
	}
	return cfg, nil
}

func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "archive",
		Short: "Municipal archive of citizens' appeals",
		Long: `archive serves the municipal appeal archive website and provides
maintenance commands for its database.

Configuration is read from the environment, optionally preloaded from an
env file (see --env-file).`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "env file loaded before reading the environment")
	root.PersistentFlags().StringVar(&opts.dbURL, "db", "", "database URL or SQLite path (overrides DATABASE_URL)")

	root.AddCommand(
		newServeCmd(opts),
		newInitDBCmd(opts),
		newCreateUserCmd(opts),
		newAppealsCmd(opts),
	)
	return root
}

// Execute runs the command tree against os.Args.
func Execute(version string) error {
	return NewRootCmd(version).Execute()
}

func newPrinter(cmd *cobra.Command) *printer.Printer {
	return printer.New(cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func openStore(ctx context.Context, cfg config.Config) (*db.Store, error) {
	dialect := db.Dialect(cfg.Dialect())
	conn, err := db.Open(ctx, dialect, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return db.NewStore(conn, dialect), nil
}
