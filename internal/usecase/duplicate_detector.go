package usecase

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sort"
	"strings"

	"github.com/labstock/inventory/internal/domain"
)

// Component weights of the similarity score
const (
	nameWeight            = 0.30
	descriptionWeight     = 0.25
	weakDescriptionWeight = 0.15
	categoryWeight        = 0.10
	tagWeight             = 0.15
	specWeight            = 0.20
)

// Ratio cut-offs for each component
const (
	veryCloseNameRatio  = 0.8
	closeNameRatio      = 0.6
	closeDescRatio      = 0.7
	weakDescRatio       = 0.5
	tagOverlapRatio     = 0.5
	sameSpecTypeScore   = 0.3
	specAgreementWeight = 0.7
)

// DefaultSimilarityThreshold is used when no threshold is configured
const DefaultSimilarityThreshold = 0.70

// maxReportedTags caps the tags listed in a "Common tags" reason
const maxReportedTags = 3

// reportedSpecKeys are the agreeing specs worth naming in the reasons
var reportedSpecKeys = map[string]bool{
	"thread_size":     true,
	"package":         true,
	"resistance_str":  true,
	"capacitance_str": true,
}

// DetectorConfig holds configuration for the duplicate detector. A nil
// SimilarityThreshold selects DefaultSimilarityThreshold; zero keeps every item.
type DetectorConfig struct {
	SimilarityThreshold *float64
	EnableDebugLogging  bool
}

// Candidate is the prospective new item. Tags is the raw comma-joined string.
type Candidate struct {
	Name        string
	Description string
	Category    string
	Tags        string
}

// DuplicateDetector scores existing items against a new one
type DuplicateDetector struct {
	parser             *SpecificationParser
	cache              domain.SpecCache
	threshold          float64
	enableDebugLogging bool
}

// NewDuplicateDetector creates a duplicate detector. cache may be nil.
func NewDuplicateDetector(parser *SpecificationParser, cache domain.SpecCache, config DetectorConfig) *DuplicateDetector {
	threshold := DefaultSimilarityThreshold
	if config.SimilarityThreshold != nil {
		threshold = *config.SimilarityThreshold
	}

	if parser == nil {
		parser = NewSpecificationParser(config.EnableDebugLogging)
	}

	return &DuplicateDetector{
		parser:             parser,
		cache:              cache,
		threshold:          threshold,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Threshold returns the configured default threshold
func (d *DuplicateDetector) Threshold() float64 {
	return d.threshold
}

// similarity is the scored comparison of a candidate with one existing item
type similarity struct {
	score       float64
	reasons     []string
	differences []string
}

// FindSimilar returns the existing items scoring at or above the threshold,
// highest score first. A nil threshold uses the configured one.
func (d *DuplicateDetector) FindSimilar(
	ctx context.Context,
	candidate Candidate,
	existing []domain.ExistingItem,
	threshold *float64,
) ([]domain.DuplicateMatch, error) {
	limit := d.threshold
	if threshold != nil {
		limit = *threshold
	}

	if d.enableDebugLogging {
		log.Printf("[DUPES] Checking %q against %d items (threshold %.2f)", candidate.Name, len(existing), limit)
	}

	parsed := d.parser.Parse(candidate.Description, candidate.Name)
	tags := ParseTags(candidate.Tags)

	matches := make([]domain.DuplicateMatch, 0)
	for _, item := range existing {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		sim := d.calculateSimilarity(candidate, tags, parsed, item)

		if d.enableDebugLogging {
			log.Printf("[DUPES] Item %d %q | Score: %.3f | Reasons: %v", item.ID, item.Name, sim.score, sim.reasons)
		}

		if sim.score < limit {
			continue
		}
		matches = append(matches, domain.DuplicateMatch{
			ItemID:          item.ID,
			ItemName:        item.Name,
			ItemDescription: item.Description,
			SimilarityScore: sim.score,
			MatchReasons:    sim.reasons,
			Differences:     sim.differences,
			Locations:       FormatLocations(item.Locations),
			Quantity:        item.Quantity,
			Unit:            item.UnitOrDefault(),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].SimilarityScore > matches[j].SimilarityScore
	})

	return matches, nil
}

// calculateSimilarity combines name, description, category, tag and spec
// agreement into a score capped at 1.0
func (d *DuplicateDetector) calculateSimilarity(
	candidate Candidate,
	tags []string,
	parsed domain.ParsedSpec,
	item domain.ExistingItem,
) similarity {
	var sim similarity

	nameRatio := similarityRatio(lowerText(candidate.Name), lowerText(item.Name))
	switch {
	case nameRatio > veryCloseNameRatio:
		sim.score += nameWeight * nameRatio
		sim.reasons = append(sim.reasons, fmt.Sprintf("Very similar name (%d%% match)", percent(nameRatio)))
	case nameRatio > closeNameRatio:
		sim.score += nameWeight * nameRatio
		sim.reasons = append(sim.reasons, fmt.Sprintf("Similar name (%d%% match)", percent(nameRatio)))
	default:
		sim.differences = append(sim.differences, fmt.Sprintf("Different names: '%s' vs '%s'", candidate.Name, item.Name))
	}

	descRatio := similarityRatio(lowerText(candidate.Description), lowerText(item.Description))
	switch {
	case descRatio > closeDescRatio:
		sim.score += descriptionWeight * descRatio
		sim.reasons = append(sim.reasons, fmt.Sprintf("Similar description (%d%% match)", percent(descRatio)))
	case descRatio > weakDescRatio:
		sim.score += weakDescriptionWeight * descRatio
	default:
		sim.differences = append(sim.differences, "Different descriptions")
	}

	if candidate.Category != "" && item.Category != "" {
		if lowerText(candidate.Category) == lowerText(item.Category) {
			sim.score += categoryWeight
			sim.reasons = append(sim.reasons, "Same category: "+candidate.Category)
		} else {
			sim.differences = append(sim.differences,
				fmt.Sprintf("Different categories: %s vs %s", candidate.Category, item.Category))
		}
	}

	existingTags := ParseTags(item.Tags)
	if len(tags) > 0 && len(existingTags) > 0 {
		common, shared := findIntersection(existingTags, tags)
		if union := findUnion(tags, existingTags); union > 0 {
			if overlap := float64(common) / float64(union); overlap > tagOverlapRatio {
				sim.score += tagWeight * overlap
				sim.reasons = append(sim.reasons, "Common tags: "+strings.Join(shared[:min(len(shared), maxReportedTags)], ", "))
			}
		}
	}

	specs := compareSpecs(parsed, d.parseExisting(item))
	if specs.score > 0 {
		sim.score += specWeight * specs.score
		sim.reasons = append(sim.reasons, specs.reasons...)
		sim.differences = append(sim.differences, specs.differences...)
	}

	sim.score = min(1.0, sim.score)
	if len(sim.differences) == 0 {
		sim.differences = []string{domain.NoDifferencesFound}
	}
	return sim
}

// parseExisting parses an existing item, consulting the cache when one is set
func (d *DuplicateDetector) parseExisting(item domain.ExistingItem) domain.ParsedSpec {
	if d.cache == nil {
		return d.parser.Parse(item.Description, item.Name)
	}

	key := workingText(item.Description, item.Name)
	if cached, ok := d.cache.Get(key); ok {
		return cached
	}
	parsed := d.parser.Parse(item.Description, item.Name)
	d.cache.Set(key, parsed.Clone())
	return parsed
}

// compareSpecs scores the agreement of two parse results. Different
// categories short-circuit to zero.
func compareSpecs(a, b domain.ParsedSpec) similarity {
	var sim similarity
	if len(a.Specs) == 0 || len(b.Specs) == 0 {
		return sim
	}

	if a.HasCategory() && b.HasCategory() {
		if a.Category != b.Category {
			sim.differences = append(sim.differences, fmt.Sprintf("Different types: %s vs %s", a.Category, b.Category))
			return sim
		}
		sim.score += sameSpecTypeScore
		sim.reasons = append(sim.reasons, "Same type: "+a.Category)
	}

	var common []string
	for key := range a.Specs {
		if _, ok := b.Specs[key]; ok {
			common = append(common, key)
		}
	}
	if len(common) == 0 {
		return sim
	}
	slices.Sort(common)

	matching := 0
	for _, key := range common {
		v1, v2 := a.Specs[key], b.Specs[key]
		if v1.Equal(v2) {
			matching++
			if reportedSpecKeys[key] {
				sim.reasons = append(sim.reasons, fmt.Sprintf("Same %s: %s", key, v1))
			}
			continue
		}
		sim.differences = append(sim.differences, fmt.Sprintf("Different %s: %s vs %s", key, v1, v2))
	}

	sim.score += specAgreementWeight * (float64(matching) / float64(len(common)))
	return sim
}

// FormatLocations renders location references for display. Pre-formatted
// references pass through unchanged.
func FormatLocations(locations []domain.LocationRef) []map[string]any {
	out := make([]map[string]any, 0, len(locations))
	for _, loc := range locations {
		if loc.Formatted != nil {
			out = append(out, loc.Formatted)
			continue
		}

		module := loc.Module
		if module == "" {
			module = "Unknown"
		}
		var level any = "?"
		if loc.Level != nil {
			level = *loc.Level
		}
		address := "Unknown"
		if loc.Row != "" {
			address = loc.Row + loc.Column
		}

		out = append(out, map[string]any{
			"module":   module,
			"level":    level,
			"location": address,
			"quantity": loc.Quantity,
		})
	}
	return out
}

// SuggestMerge proposes how to merge two duplicates. Not implemented yet.
func (d *DuplicateDetector) SuggestMerge(ctx context.Context, firstID, secondID int64) error {
	return fmt.Errorf("merge items %d and %d: %w", firstID, secondID, domain.ErrNotImplemented)
}

// QuickSimilarity compares two strings case-insensitively without parsing them
func QuickSimilarity(a, b string) float64 {
	return similarityRatio(lowerText(a), lowerText(b))
}

// percent truncates a ratio to a whole percentage
func percent(ratio float64) int {
	return int(ratio * 100)
}

// findIntersection returns the count of distinct shared tokens and the
// shared tokens in their order of appearance in tokens2
func findIntersection(tokens1, tokens2 []string) (int, []string) {
	set := make(map[string]bool)
	for _, t := range tokens1 {
		set[t] = true
	}

	var matched []string
	seen := make(map[string]bool)
	for _, t := range tokens2 {
		if set[t] && !seen[t] {
			matched = append(matched, t)
			seen[t] = true
		}
	}

	return len(matched), matched
}

// findUnion returns the count of unique tokens across both sets
func findUnion(tokens1, tokens2 []string) int {
	set := make(map[string]bool)
	for _, t := range tokens1 {
		set[t] = true
	}
	for _, t := range tokens2 {
		set[t] = true
	}
	return len(set)
}
