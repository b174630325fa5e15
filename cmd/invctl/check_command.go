package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/labstock/inventory/internal/domain"
	"github.com/labstock/inventory/internal/usecase"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var (
		name        string
		description string
		category    string
		tags        string
		threshold   float64
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "List stored items that look like duplicates of a new item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			request := domain.CheckRequest{
				Name:        name,
				Description: description,
				Category:    category,
			}
			if tags != "" {
				request.Tags = strings.Split(tags, ",")
			}
			if cmd.Flags().Changed("threshold") {
				request.Threshold = &threshold
			}

			return ctx.withService(cmd.Context(), func(service *usecase.InventoryService) error {
				result, err := service.CheckDuplicates(cmd.Context(), request)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, result)
				}
				out := cmd.OutOrStdout()
				if !result.HasDuplicates {
					fmt.Fprintln(out, "No similar items found.")
					return nil
				}
				fmt.Fprintln(out, renderMatches(result.Matches))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name of the new item")
	cmd.Flags().StringVar(&description, "description", "", "Description of the new item")
	cmd.Flags().StringVar(&category, "category", "", "Category of the new item")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")
	cmd.Flags().Float64Var(&threshold, "threshold", usecase.DefaultSimilarityThreshold, "Minimum similarity score (0-1)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func renderMatches(matches []domain.DuplicateMatch) string {
	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, []string{
			strconv.FormatInt(m.ItemID, 10),
			m.ItemName,
			fmt.Sprintf("%.2f", domain.RoundScore(m.SimilarityScore)),
			fmt.Sprintf("%d %s", m.Quantity, m.Unit),
			formatPlaces(m.Locations),
			strings.Join(m.MatchReasons, "\n"),
		})
	}
	return renderTable(
		[]string{"ID", "Name", "Score", "Stock", "Where", "Why"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignLeft, alignLeft},
	)
}

func formatPlaces(locations []map[string]any) string {
	if len(locations) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(locations))
	for _, loc := range locations {
		parts = append(parts, fmt.Sprintf("%v L%v %v", loc["module"], loc["level"], loc["location"]))
	}
	return strings.Join(parts, "\n")
}
