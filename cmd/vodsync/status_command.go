package main

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"vodsync/internal/config"
	"vodsync/internal/store"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show database row counts and pending enrichment work",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store, logger *slog.Logger) error {
				counts, err := st.Counts(cmd.Context())
				if err != nil {
					return err
				}
				pending, err := st.VodsNeedingEnrichment(cmd.Context())
				if err != nil {
					return err
				}

				tables := make([]string, 0, len(counts))
				for name := range counts {
					tables = append(tables, name)
				}
				sort.Strings(tables)

				out := cmd.OutOrStdout()
				if stdoutIsTerminal() {
					rows := make([][]string, 0, len(tables)+1)
					for _, name := range tables {
						rows = append(rows, []string{name, strconv.FormatInt(counts[name], 10)})
					}
					rows = append(rows, []string{"vods pending enrichment", strconv.Itoa(len(pending))})
					fmt.Fprintln(out, renderTable([]string{"Table", "Rows"}, rows, 1))
				} else {
					for _, name := range tables {
						fmt.Fprintf(out, "%s=%d\n", name, counts[name])
					}
					fmt.Fprintf(out, "vods_pending_enrichment=%d\n", len(pending))
				}
				fmt.Fprintf(out, "Database: %s\n", st.Path())
				return nil
			})
		},
	}
}
