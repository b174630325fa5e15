package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/labstock/inventory/config"
	"github.com/labstock/inventory/internal/infrastructure/sqlite"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <snapshot.json>",
		Short: "Load modules, locations and items from a JSON snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open snapshot: %w", err)
			}
			defer f.Close()

			snap, err := sqlite.DecodeSnapshot(f)
			if err != nil {
				return err
			}

			return ctx.withStore(cmd.Context(), func(_ *config.Config, store *sqlite.Store) error {
				summary, err := store.Import(cmd.Context(), snap)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d modules, %d levels, %d locations, %d items into %s\n",
					summary.Modules, summary.Levels, summary.Locations, summary.Items, store.Path())
				return nil
			})
		},
	}
}
