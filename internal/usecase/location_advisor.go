package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/labstock/inventory/internal/domain"
)

// Location scoring points
const (
	emptySlotPoints       = 10.0
	roomySlotPoints       = 5.0
	occupiedSlotPoints    = 1.0
	sameCategoryPoints    = 15.0
	compatibleTypePoints  = 8.0
	optimalFitPoints      = 12.0
	goodFitPoints         = 8.0
	looseFitPoints        = 4.0
	noFitPenalty          = -20.0
	sharedTagPoints       = 5.0
	specializationPoints  = 10.0
	roomySlotMaxItems     = 2
	specializationMinimum = 5
)

// DefaultSuggestionLimit is used when a request does not set a limit
const DefaultSuggestionLimit = 5

// compatibleLocationTypes maps an item type to the location types suited to it
var compatibleLocationTypes = map[string][]string{
	"solid":         {"general", "small_box", "medium_bin", "large_bin"},
	"liquid":        {"liquid_container"},
	"smd_component": {"smd_container", "small_box"},
	"bulk":          {"large_bin", "bulk_storage"},
}

// SuggestLocations ranks storage slots for an item. Only slots with a
// positive score are returned, best first.
func SuggestLocations(request domain.SuggestionRequest, slots []domain.LocationSlot) []domain.LocationSuggestion {
	limit := request.Limit
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	suggestions := make([]domain.LocationSuggestion, 0)
	for _, slot := range slots {
		score, reasons := scoreLocation(request, slot)
		if score > 0 {
			suggestions = append(suggestions, domain.LocationSuggestion{
				Location: slot,
				Score:    score,
				Reasons:  reasons,
			})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

func scoreLocation(request domain.SuggestionRequest, slot domain.LocationSlot) (float64, []string) {
	var score float64
	var reasons []string

	switch n := len(slot.Items); {
	case n == 0:
		score += emptySlotPoints
		reasons = append(reasons, "Empty location - ready for use")
	case n <= roomySlotMaxItems:
		score += roomySlotPoints
		reasons = append(reasons, fmt.Sprintf("Has space (%d item(s) stored)", n))
	default:
		score += occupiedSlotPoints
		reasons = append(reasons, fmt.Sprintf("Occupied (%d item(s) stored)", n))
	}

	if request.Category != "" {
		if n := countCategory(slot.Items, request.Category); n > 0 {
			score += sameCategoryPoints * float64(n)
			reasons = append(reasons, fmt.Sprintf("Similar category items here (%d %s items)", n, request.Category))
		}
	}

	if request.ItemType != "" {
		compatible, ok := compatibleLocationTypes[request.ItemType]
		if !ok {
			compatible = []string{"general"}
		}
		for _, t := range compatible {
			if slot.LocationType == t {
				score += compatibleTypePoints
				reasons = append(reasons, fmt.Sprintf("Compatible storage type (%s)", slot.LocationType))
				break
			}
		}
	}

	if points, reason, ok := sizeFit(request, slot); ok {
		score += points
		reasons = append(reasons, reason)
	}

	if len(request.Tags) > 0 {
		matches := 0
		for _, item := range slot.Items {
			n, _ := findIntersection(SanitizeTags(strings.Split(item.Tags, ",")), request.Tags)
			matches += n
		}
		if matches > 0 {
			score += sharedTagPoints * float64(matches)
			reasons = append(reasons, fmt.Sprintf("Similar tagged items (%d matching tags)", matches))
		}
	}

	if request.Category != "" && countCategory(slot.LevelItems, request.Category) > specializationMinimum {
		score += specializationPoints
		reasons = append(reasons, "Module specializes in "+request.Category)
	}

	return score, reasons
}

// sizeFit scores how well the item fills the slot. It reports false unless
// all six dimensions are known.
func sizeFit(request domain.SuggestionRequest, slot domain.LocationSlot) (float64, string, bool) {
	dims := []float64{request.WidthMM, request.HeightMM, request.DepthMM, slot.WidthMM, slot.HeightMM, slot.DepthMM}
	for _, d := range dims {
		if d <= 0 {
			return 0, "", false
		}
	}

	if request.WidthMM > slot.WidthMM || request.HeightMM > slot.HeightMM || request.DepthMM > slot.DepthMM {
		return noFitPenalty, "⚠️ Item may not fit", true
	}

	utilization := (request.WidthMM * request.HeightMM * request.DepthMM) /
		(slot.WidthMM * slot.HeightMM * slot.DepthMM)
	switch {
	case utilization >= 0.5 && utilization <= 0.9:
		return optimalFitPoints, "Optimal size fit", true
	case utilization >= 0.3 && utilization < 0.5:
		return goodFitPoints, "Good size fit", true
	default:
		return looseFitPoints, "Fits (large location)", true
	}
}

func countCategory(items []domain.StoredItem, category string) int {
	n := 0
	for _, item := range items {
		if item.Category == category {
			n++
		}
	}
	return n
}
