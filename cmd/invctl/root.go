package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var dbFlag string
	var debugFlag bool

	ctx := newCommandContext(&dbFlag, &debugFlag)

	rootCmd := &cobra.Command{
		Use:           "invctl",
		Short:         "Inventory spec extraction and duplicate checks",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "Inventory database path (defaults to the configured storage path)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Log parser and matcher decisions")

	rootCmd.AddCommand(newParseCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newImportCommand(ctx))
	rootCmd.AddCommand(newSuggestCommand(ctx))

	return rootCmd
}
