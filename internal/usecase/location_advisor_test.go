package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labstock/inventory/internal/domain"
)

func TestSuggestLocations(t *testing.T) {
	screws := domain.StoredItem{Category: "Fasteners", Tags: "m3, screw"}
	caps := domain.StoredItem{Category: "Electronics", Tags: "capacitor"}

	empty := domain.LocationSlot{ID: 1, Module: "Cabinet", Row: "A", Column: "1", LocationType: "small_box"}
	oneScrew := domain.LocationSlot{ID: 2, Module: "Cabinet", Row: "A", Column: "2", LocationType: "general",
		Items: []domain.StoredItem{screws}}
	crowded := domain.LocationSlot{ID: 3, Module: "Cabinet", Row: "A", Column: "3", LocationType: "liquid_container",
		Items: []domain.StoredItem{caps, caps, caps}}

	t.Run("empty and category-matching slots rank first", func(t *testing.T) {
		got := SuggestLocations(domain.SuggestionRequest{Category: "Fasteners", Tags: []string{"screw"}},
			[]domain.LocationSlot{empty, oneScrew, crowded})

		require.Len(t, got, 3)
		assert.Equal(t, int64(2), got[0].Location.ID)
		assert.Equal(t, 25.0, got[0].Score)
		assert.Equal(t, []string{
			"Has space (1 item(s) stored)",
			"Similar category items here (1 Fasteners items)",
			"Similar tagged items (1 matching tags)",
		}, got[0].Reasons)
		assert.Equal(t, int64(1), got[1].Location.ID)
		assert.Equal(t, 10.0, got[1].Score)
		assert.Equal(t, []string{"Occupied (3 item(s) stored)"}, got[2].Reasons)
	})

	t.Run("compatible storage type", func(t *testing.T) {
		got := SuggestLocations(domain.SuggestionRequest{ItemType: "liquid"}, []domain.LocationSlot{crowded})

		require.Len(t, got, 1)
		assert.Equal(t, 9.0, got[0].Score)
		assert.Contains(t, got[0].Reasons, "Compatible storage type (liquid_container)")
	})

	t.Run("unknown item type prefers general storage", func(t *testing.T) {
		got := SuggestLocations(domain.SuggestionRequest{ItemType: "gizmo"}, []domain.LocationSlot{oneScrew})

		require.Len(t, got, 1)
		assert.Equal(t, 13.0, got[0].Score)
	})

	t.Run("oversized item drops out", func(t *testing.T) {
		box := empty
		box.WidthMM, box.HeightMM, box.DepthMM = 50, 50, 50

		got := SuggestLocations(domain.SuggestionRequest{WidthMM: 60, HeightMM: 10, DepthMM: 10},
			[]domain.LocationSlot{box})
		assert.Empty(t, got)
	})

	t.Run("oversized item is flagged when the slot still scores", func(t *testing.T) {
		bin := oneScrew
		bin.Items = []domain.StoredItem{screws, screws}
		bin.WidthMM, bin.HeightMM, bin.DepthMM = 50, 50, 50

		got := SuggestLocations(domain.SuggestionRequest{Category: "Fasteners", WidthMM: 60, HeightMM: 10, DepthMM: 10},
			[]domain.LocationSlot{bin})

		require.Len(t, got, 1)
		assert.Equal(t, 15.0, got[0].Score)
		assert.Equal(t, []string{
			"Has space (2 item(s) stored)",
			"Similar category items here (2 Fasteners items)",
			"⚠️ Item may not fit",
		}, got[0].Reasons)
	})

	t.Run("level specialization bonus", func(t *testing.T) {
		slot := empty
		for range 6 {
			slot.LevelItems = append(slot.LevelItems, screws)
		}

		got := SuggestLocations(domain.SuggestionRequest{Category: "Fasteners"}, []domain.LocationSlot{slot})

		require.Len(t, got, 1)
		assert.Equal(t, 20.0, got[0].Score)
		assert.Contains(t, got[0].Reasons, "Module specializes in Fasteners")
	})

	t.Run("limit truncates", func(t *testing.T) {
		slots := make([]domain.LocationSlot, 8)
		for i := range slots {
			slots[i] = domain.LocationSlot{ID: int64(i + 1)}
		}

		assert.Len(t, SuggestLocations(domain.SuggestionRequest{}, slots), DefaultSuggestionLimit)
		got := SuggestLocations(domain.SuggestionRequest{Limit: 2}, slots)
		require.Len(t, got, 2)
		// ties keep input order
		assert.Equal(t, int64(1), got[0].Location.ID)
		assert.Equal(t, int64(2), got[1].Location.ID)
	})
}

func TestSizeFit(t *testing.T) {
	slot := domain.LocationSlot{WidthMM: 100, HeightMM: 100, DepthMM: 100}

	testCases := []struct {
		name   string
		w      float64
		h      float64
		d      float64
		points float64
		reason string
		ok     bool
	}{
		{name: "optimal", w: 90, h: 90, d: 90, points: 12, reason: "Optimal size fit", ok: true},
		{name: "good", w: 100, h: 100, d: 40, points: 8, reason: "Good size fit", ok: true},
		{name: "loose", w: 10, h: 10, d: 10, points: 4, reason: "Fits (large location)", ok: true},
		{name: "too big", w: 101, h: 10, d: 10, points: -20, reason: "⚠️ Item may not fit", ok: true},
		{name: "unknown dimension", w: 10, h: 10, d: 0, ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := domain.SuggestionRequest{WidthMM: tc.w, HeightMM: tc.h, DepthMM: tc.d}
			points, reason, ok := sizeFit(req, slot)
			if ok != tc.ok || points != tc.points || reason != tc.reason {
				t.Errorf("sizeFit() = (%v, %q, %v), want (%v, %q, %v)", points, reason, ok, tc.points, tc.reason, tc.ok)
			}
		})
	}
}
