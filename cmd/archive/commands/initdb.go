package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"appeal-archive/internal/auth"
	"appeal-archive/internal/config"
	"appeal-archive/internal/db"
)

type provisionResult struct {
	Seeded       bool
	AdminCreated bool
}

// provision loads the demo data set into an empty database and creates the
// configured administrator when there are no users yet.
func provision(ctx context.Context, store *db.Store, cfg config.Config) (provisionResult, error) {
	var res provisionResult

	sd, err := db.DefaultSeed()
	if err != nil {
		return res, err
	}
	if res.Seeded, err = store.Seed(ctx, sd); err != nil {
		return res, fmt.Errorf("seed: %w", err)
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return res, err
	}
	if res.AdminCreated, err = store.SeedAdmin(ctx, cfg.AdminUsername, hash); err != nil {
		return res, fmt.Errorf("seed admin: %w", err)
	}
	return res, nil
}

func newInitDBCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create the schema and seed an empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(cmd)
			cfg, err := opts.config()
			if err != nil {
				return p.Error("Cannot load configuration", err.Error())
			}

			p.Step("opening %s database", cfg.Dialect())
			store, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return p.Error("Cannot open database", err.Error(),
					"check DATABASE_URL or the --db flag")
			}
			defer store.Close()

			res, err := provision(cmd.Context(), store, cfg)
			if err != nil {
				return p.Error("Cannot seed database", err.Error())
			}

			if res.Seeded {
				p.Success("demo categories, appeals and news loaded")
			} else {
				p.Info("database already holds categories, demo data skipped")
			}
			if res.AdminCreated {
				p.Success("administrator %q created", cfg.AdminUsername)
				if cfg.AdminPassword == "changeme" {
					p.Warning("the administrator uses the default password, set ADMIN_PASSWORD")
				}
			}
			p.Success("database initialised")
			return nil
		},
	}
}
