package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"vodsync/internal/config"
	"vodsync/internal/reconcile"
	"vodsync/internal/services/archive"
	"vodsync/internal/services/peertube"
	"vodsync/internal/store"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var skipDates bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Mirror the PeerTube catalog into the local database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store, logger *slog.Logger) error {
				if err := cfg.RequirePeerTube(); err != nil {
					return err
				}
				client := peertube.NewClient(cfg)
				if err := client.Authenticate(cmd.Context()); err != nil {
					return fmt.Errorf("authenticate with %s: %w", cfg.PeerTube.URL, err)
				}

				r := reconcile.New(cfg, st, client, archive.NewClient(cfg), logger,
					reconcile.Options{Progress: stdoutIsTerminal()})

				if cfg.Reconcile.WriteBackDates && !skipDates {
					report, err := r.WriteBackDates(cmd.Context())
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Dates: %d pushed, %d skipped, %d failed\n",
						report.Updated, report.Skipped, report.Failed)
				}

				report, err := r.SyncVideos(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Videos: %d inserted, %d updated, %d unchanged, %d failed\n",
					report.Inserted, report.Updated, report.Skipped, report.Failed)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&skipDates, "skip-dates", false, "Skip the publish-date write-back pass")
	return cmd
}
