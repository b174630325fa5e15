package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/labstock/inventory/internal/domain"
)

// InventoryServiceConfig holds configuration for the inventory service
type InventoryServiceConfig struct {
	SimilarityThreshold *float64
	SuggestionLimit     int
	EnableDebugLogging  bool
}

// InventoryService answers spec extraction, duplicate and location queries
// against the stored inventory
type InventoryService struct {
	items              domain.ItemRepository
	locations          domain.LocationRepository
	parser             *SpecificationParser
	detector           *DuplicateDetector
	suggestionLimit    int
	enableDebugLogging bool
}

// NewInventoryService creates a new inventory service with dependencies.
// cache may be nil.
func NewInventoryService(
	items domain.ItemRepository,
	locations domain.LocationRepository,
	cache domain.SpecCache,
	config InventoryServiceConfig,
) *InventoryService {
	parser := NewSpecificationParser(config.EnableDebugLogging)
	detector := NewDuplicateDetector(parser, cache, DetectorConfig{
		SimilarityThreshold: config.SimilarityThreshold,
		EnableDebugLogging:  config.EnableDebugLogging,
	})

	limit := config.SuggestionLimit
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	return &InventoryService{
		items:              items,
		locations:          locations,
		parser:             parser,
		detector:           detector,
		suggestionLimit:    limit,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// ExtractSpecs parses an item description. The name is optional.
func (s *InventoryService) ExtractSpecs(ctx context.Context, name, description string) (domain.ParsedSpec, error) {
	if strings.TrimSpace(description) == "" {
		return domain.ParsedSpec{}, fmt.Errorf("%w: description is required", domain.ErrInvalidRequest)
	}
	return s.parser.Parse(description, name), nil
}

// CheckDuplicates compares a prospective item with the stored inventory.
// Without both a name and a description there is nothing to compare and an
// empty result is returned.
func (s *InventoryService) CheckDuplicates(ctx context.Context, request domain.CheckRequest) (domain.CheckResult, error) {
	result := domain.CheckResult{Matches: []domain.DuplicateMatch{}}

	if strings.TrimSpace(request.Name) == "" || strings.TrimSpace(request.Description) == "" {
		return result, nil
	}

	if request.Threshold != nil && (*request.Threshold < 0 || *request.Threshold > 1) {
		return result, fmt.Errorf("%w: threshold must be between 0 and 1", domain.ErrInvalidRequest)
	}

	existing, err := s.items.ListItems(ctx)
	if err != nil {
		return result, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	candidate := Candidate{
		Name:        request.Name,
		Description: request.Description,
		Category:    request.Category,
		Tags:        strings.Join(request.Tags, ","),
	}
	matches, err := s.detector.FindSimilar(ctx, candidate, existing, request.Threshold)
	if err != nil {
		return result, err
	}

	if s.enableDebugLogging {
		log.Printf("[DUPES] %q: %d of %d items matched", request.Name, len(matches), len(existing))
	}

	result.Matches = matches
	result.Total = len(matches)
	result.HasDuplicates = len(matches) > 0
	return result, nil
}

// SuggestLocations ranks the stored locations for an item
func (s *InventoryService) SuggestLocations(ctx context.Context, request domain.SuggestionRequest) ([]domain.LocationSuggestion, error) {
	if request.Limit <= 0 {
		request.Limit = s.suggestionLimit
	}
	request.Tags = SanitizeTags(request.Tags)

	slots, err := s.locations.ListLocationSlots(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return SuggestLocations(request, slots), nil
}

// Detector exposes the configured duplicate detector
func (s *InventoryService) Detector() *DuplicateDetector {
	return s.detector
}
