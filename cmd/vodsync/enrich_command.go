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

func newEnrichCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "enrich",
		Short: "Fill missing VOD fields from archive.org, chat logs, the schedule, and fetched mirrors",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store, logger *slog.Logger) error {
				r := reconcile.New(cfg, st, peertube.NewClient(cfg), archive.NewClient(cfg), logger,
					reconcile.Options{Progress: stdoutIsTerminal()})

				report, err := r.EnrichVods(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "VODs: %d updated, %d unchanged, %d unmatched, %d failed\n",
					report.Updated, report.Skipped, report.Unmatched, report.Failed)
				return nil
			})
		},
	}
}
