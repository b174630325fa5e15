package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/labstock/inventory/internal/usecase"
)

func newParseCommand(ctx *commandContext) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "parse <description>...",
		Short: "Extract category, specs and tags from an item description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description := strings.Join(args, " ")
			if strings.TrimSpace(description) == "" {
				return errors.New("description is required")
			}
			parser := usecase.NewSpecificationParser(ctx.debug())
			return writeJSON(cmd, parser.Parse(description, name))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Item name, prepended to the description")
	return cmd
}
