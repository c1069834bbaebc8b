package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"vodsync/internal/config"
	"vodsync/internal/store"
	"vodsync/internal/transcripts"
)

func newTranscriptsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "transcripts",
		Short: "Import diarized SRT transcripts and register their VODs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store, logger *slog.Logger) error {
				importer := transcripts.NewImporter(cfg, st, logger, stdoutIsTerminal())
				report, err := importer.Run(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Transcripts: %d imported, %d already present, %d failed\n",
					report.Imported, report.Skipped, report.Failed)
				return nil
			})
		},
	}
}
