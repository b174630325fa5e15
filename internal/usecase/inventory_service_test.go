package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/labstock/inventory/internal/domain"
)

// MockItemRepository is a mock implementation of domain.ItemRepository
type MockItemRepository struct {
	items     []domain.ExistingItem
	listError error
	called    bool
}

func (m *MockItemRepository) ListItems(ctx context.Context) ([]domain.ExistingItem, error) {
	m.called = true
	if m.listError != nil {
		return nil, m.listError
	}
	return m.items, nil
}

// MockLocationRepository is a mock implementation of domain.LocationRepository
type MockLocationRepository struct {
	slots     []domain.LocationSlot
	listError error
}

func (m *MockLocationRepository) ListLocationSlots(ctx context.Context) ([]domain.LocationSlot, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	return m.slots, nil
}

func newTestService(items *MockItemRepository, locations *MockLocationRepository) *InventoryService {
	return NewInventoryService(items, locations, nil, InventoryServiceConfig{})
}

func TestNewInventoryService(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		s := newTestService(&MockItemRepository{}, &MockLocationRepository{})
		if s.suggestionLimit != DefaultSuggestionLimit {
			t.Errorf("expected suggestion limit %d, got %d", DefaultSuggestionLimit, s.suggestionLimit)
		}
		if s.Detector().Threshold() != DefaultSimilarityThreshold {
			t.Errorf("expected threshold %v, got %v", DefaultSimilarityThreshold, s.Detector().Threshold())
		}
	})

	t.Run("uses configured values", func(t *testing.T) {
		s := NewInventoryService(&MockItemRepository{}, &MockLocationRepository{}, nil, InventoryServiceConfig{
			SimilarityThreshold: floatPtr(0.5),
			SuggestionLimit:     2,
		})
		if s.suggestionLimit != 2 {
			t.Errorf("expected suggestion limit 2, got %d", s.suggestionLimit)
		}
		if s.Detector().Threshold() != 0.5 {
			t.Errorf("expected threshold 0.5, got %v", s.Detector().Threshold())
		}
	})
}

func TestExtractSpecs(t *testing.T) {
	s := newTestService(&MockItemRepository{}, &MockLocationRepository{})
	ctx := context.Background()

	t.Run("parses description", func(t *testing.T) {
		spec, err := s.ExtractSpecs(ctx, "", "10kΩ 1% 1/4W resistor")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if spec.Category != domain.CategoryResistor {
			t.Errorf("expected resistor, got %q", spec.Category)
		}
	})

	t.Run("rejects blank description", func(t *testing.T) {
		_, err := s.ExtractSpecs(ctx, "M6 screw", "  ")
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("expected ErrInvalidRequest, got %v", err)
		}
	})
}

func TestCheckDuplicates(t *testing.T) {
	ctx := context.Background()

	t.Run("finds near duplicate", func(t *testing.T) {
		repo := &MockItemRepository{items: sampleInventory()}
		s := newTestService(repo, &MockLocationRepository{})

		result, err := s.CheckDuplicates(ctx, domain.CheckRequest{
			Name:        "M6 pan head screw",
			Description: "M6 pan head phillips screw",
			Category:    "Fasteners",
			Tags:        domain.TagList{"m6", " pan-head", "screw"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.HasDuplicates || result.Total != 1 || len(result.Matches) != 1 {
			t.Fatalf("expected one duplicate, got %+v", result)
		}
		if result.Matches[0].ItemID != 7 {
			t.Errorf("expected item 7, got %d", result.Matches[0].ItemID)
		}
	})

	t.Run("blank name skips storage", func(t *testing.T) {
		repo := &MockItemRepository{items: sampleInventory()}
		s := newTestService(repo, &MockLocationRepository{})

		result, err := s.CheckDuplicates(ctx, domain.CheckRequest{Description: "M6 pan head phillips"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.HasDuplicates || result.Total != 0 || result.Matches == nil {
			t.Errorf("expected empty result, got %+v", result)
		}
		if repo.called {
			t.Error("expected repository not to be consulted")
		}
	})

	t.Run("custom threshold", func(t *testing.T) {
		repo := &MockItemRepository{items: sampleInventory()}
		s := newTestService(repo, &MockLocationRepository{})
		threshold := 0.0

		result, err := s.CheckDuplicates(ctx, domain.CheckRequest{
			Name:        "Pan head screw",
			Description: "M6x50 zinc",
			Threshold:   &threshold,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Total != 3 {
			t.Errorf("expected every item at threshold 0, got %d", result.Total)
		}
	})

	t.Run("threshold out of range", func(t *testing.T) {
		s := newTestService(&MockItemRepository{}, &MockLocationRepository{})
		threshold := 1.5

		_, err := s.CheckDuplicates(ctx, domain.CheckRequest{Name: "a", Description: "b", Threshold: &threshold})
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("expected ErrInvalidRequest, got %v", err)
		}
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := &MockItemRepository{listError: errors.New("disk on fire")}
		s := newTestService(repo, &MockLocationRepository{})

		_, err := s.CheckDuplicates(ctx, domain.CheckRequest{Name: "a", Description: "b"})
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			t.Errorf("expected ErrStoreUnavailable, got %v", err)
		}
	})
}

func TestInventoryServiceSuggestLocations(t *testing.T) {
	ctx := context.Background()
	slots := []domain.LocationSlot{
		{ID: 1, LocationType: "small_box"},
		{ID: 2, LocationType: "general", Items: []domain.StoredItem{{Category: "Fasteners", Tags: "screw"}}},
	}

	t.Run("ranks stored locations", func(t *testing.T) {
		s := newTestService(&MockItemRepository{}, &MockLocationRepository{slots: slots})

		got, err := s.SuggestLocations(ctx, domain.SuggestionRequest{Category: "Fasteners", Tags: []string{" screw "}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 || got[0].Location.ID != 2 {
			t.Fatalf("expected slot 2 first, got %+v", got)
		}
		if got[0].Score != 25 {
			t.Errorf("expected score 25, got %v", got[0].Score)
		}
	})

	t.Run("repository failure", func(t *testing.T) {
		s := newTestService(&MockItemRepository{}, &MockLocationRepository{listError: errors.New("locked")})

		_, err := s.SuggestLocations(ctx, domain.SuggestionRequest{})
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			t.Errorf("expected ErrStoreUnavailable, got %v", err)
		}
	})
}
