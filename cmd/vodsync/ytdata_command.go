package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"vodsync/internal/config"
	"vodsync/internal/reconcile"
	"vodsync/internal/services/ytdlp"
	"vodsync/internal/store"
)

func newYTDataCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ytdata",
		Short: "Fetch metadata for YouTube mirrors listed in the schedule sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store, logger *slog.Logger) error {
				service := ytdlp.NewService(cfg, logger)
				report, err := reconcile.FetchYouTubeData(cmd.Context(), cfg, st, service, logger)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "YouTube: %d fetched, %d already known, %d failed\n",
					report.Inserted, report.Skipped, report.Failed)
				return nil
			})
		},
	}
}
