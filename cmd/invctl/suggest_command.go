package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/labstock/inventory/internal/domain"
	"github.com/labstock/inventory/internal/usecase"
)

func newSuggestCommand(ctx *commandContext) *cobra.Command {
	var (
		request    domain.SuggestionRequest
		tags       string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Rank storage locations for an item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tags != "" {
				request.Tags = strings.Split(tags, ",")
			}

			return ctx.withService(cmd.Context(), func(service *usecase.InventoryService) error {
				suggestions, err := service.SuggestLocations(cmd.Context(), request)
				if err != nil {
					return err
				}
				if jsonOutput {
					if suggestions == nil {
						suggestions = []domain.LocationSuggestion{}
					}
					return writeJSON(cmd, suggestions)
				}
				out := cmd.OutOrStdout()
				if len(suggestions) == 0 {
					fmt.Fprintln(out, "No suitable locations.")
					return nil
				}
				fmt.Fprintln(out, renderSuggestions(suggestions))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&request.Category, "category", "", "Item category")
	cmd.Flags().StringVar(&request.ItemType, "item-type", "", "Item type (solid, liquid, smd_component, bulk)")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")
	cmd.Flags().Float64Var(&request.WidthMM, "width", 0, "Item width in mm")
	cmd.Flags().Float64Var(&request.HeightMM, "height", 0, "Item height in mm")
	cmd.Flags().Float64Var(&request.DepthMM, "depth", 0, "Item depth in mm")
	cmd.Flags().IntVar(&request.Limit, "limit", 0, "Maximum number of suggestions (defaults to the configured limit)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the suggestions as JSON")
	return cmd
}

func renderSuggestions(suggestions []domain.LocationSuggestion) string {
	rows := make([][]string, 0, len(suggestions))
	for _, s := range suggestions {
		loc := s.Location
		rows = append(rows, []string{
			loc.Module,
			fmt.Sprintf("%d", loc.LevelNumber),
			loc.Address(),
			loc.LocationType,
			fmt.Sprintf("%.0f", s.Score),
			strings.Join(s.Reasons, "\n"),
		})
	}
	return renderTable(
		[]string{"Module", "Level", "Slot", "Type", "Score", "Why"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignRight, alignLeft},
	)
}
