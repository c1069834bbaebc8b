package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"vodsync/internal/config"
	"vodsync/internal/snapshot"
	"vodsync/internal/store"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export the database as a chunked static snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store, logger *slog.Logger) error {
				exporter := snapshot.NewExporter(cfg, st, logger)
				target, err := exporter.Run(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Snapshot written to %s\n", target)
				return nil
			})
		},
	}
}
