package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vodsync/internal/sheet"
)

func newConvertDatesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "convert-dates",
		Short: "Normalize the schedule sheet's dates into a machine-readable TSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := sheet.ConvertDates(cfg.Sheet.SchedulePath, cfg.Sheet.DatesOutPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", cfg.Sheet.DatesOutPath)
			return nil
		},
	}
}
