package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"appeal-archive/internal/appeals"
)

func newAppealsCmd(opts *rootOptions) *cobra.Command {
	var p appeals.Params

	cmd := &cobra.Command{
		Use:   "appeals",
		Short: "List archived appeals",
		Long: `List archived appeals, newest first, using the same filters as the
archive page. Without any filter only the last year is shown; malformed
values are ignored. Use "all" for the category or status to widen the
listing to every year.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pr := newPrinter(cmd)
			cfg, err := opts.config()
			if err != nil {
				return pr.Error("Cannot load configuration", err.Error())
			}
			store, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return pr.Error("Cannot open database", err.Error())
			}
			defer store.Close()

			listing, err := appeals.NewService(store).List(cmd.Context(), p)
			if err != nil {
				return pr.Error("Cannot list appeals", err.Error())
			}
			pr.Appeals(listing.Appeals)
			if len(listing.Statuses) > 0 {
				pr.Info("statuses: %s", strings.Join(listing.Statuses, ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&p.DateFrom, "date-from", "", "earliest date, YYYY-MM-DD")
	cmd.Flags().StringVar(&p.DateTo, "date-to", "", "latest date, YYYY-MM-DD")
	cmd.Flags().StringVar(&p.CategoryID, "category", "", `category id or "all"`)
	cmd.Flags().StringVar(&p.Status, "status", "", `status or "all"`)
	return cmd
}
