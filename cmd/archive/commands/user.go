package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"appeal-archive/internal/auth"
	"appeal-archive/internal/db"
)

func newCreateUserCmd(opts *rootOptions) *cobra.Command {
	var (
		username string
		password string
		admin    bool
	)

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Add a user who can sign in to the archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(cmd)
			username = strings.TrimSpace(username)
			if username == "" || password == "" {
				return p.Error("Username and password are required", "",
					"archive create-user --username clerk --password s3cret")
			}

			cfg, err := opts.config()
			if err != nil {
				return p.Error("Cannot load configuration", err.Error())
			}
			store, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return p.Error("Cannot open database", err.Error())
			}
			defer store.Close()

			hash, err := auth.HashPassword(password)
			if err != nil {
				return p.Error("Cannot hash password", err.Error())
			}
			if _, err := store.CreateUser(cmd.Context(), username, hash, admin); err != nil {
				if errors.Is(err, db.ErrUserExists) {
					return p.Error("User already exists", "a user named "+username+" is already registered")
				}
				return p.Error("Cannot create user", err.Error())
			}

			role := "user"
			if admin {
				role = "administrator"
			}
			p.Success("%s %q created", role, username)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "login name")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().BoolVar(&admin, "admin", false, "grant news management rights")
	return cmd
}
