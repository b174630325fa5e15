package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// DefaultUnit is the unit reported for items stored without one
const DefaultUnit = "pieces"

// NoDifferencesFound is the single difference reported when two items
// could not be told apart
const NoDifferencesFound = "No significant differences found"

// LocationRef describes where an existing item is stored.
// When Formatted is set it is reported verbatim and the other fields are ignored.
type LocationRef struct {
	Module    string         `json:"module,omitempty"`
	Level     *int           `json:"level,omitempty"`
	Row       string         `json:"row,omitempty"`
	Column    string         `json:"column,omitempty"`
	Quantity  int            `json:"quantity,omitempty"`
	Formatted map[string]any `json:"formatted,omitempty"`
}

// ExistingItem is an inventory record a new item is compared against.
// Tags is the stored comma-joined tag string.
type ExistingItem struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Category    string        `json:"category,omitempty"`
	ItemType    string        `json:"item_type,omitempty"`
	Tags        string        `json:"tags,omitempty"`
	Quantity    int           `json:"quantity"`
	Unit        string        `json:"unit,omitempty"`
	Locations   []LocationRef `json:"locations,omitempty"`
}

// UnitOrDefault returns the item's unit, falling back to DefaultUnit
func (i ExistingItem) UnitOrDefault() string {
	if i.Unit == "" {
		return DefaultUnit
	}
	return i.Unit
}

// DuplicateMatch is an existing item whose similarity to a new item met the threshold
type DuplicateMatch struct {
	ItemID          int64            `json:"item_id"`
	ItemName        string           `json:"item_name"`
	ItemDescription string           `json:"item_description"`
	SimilarityScore float64          `json:"similarity_score"`
	MatchReasons    []string         `json:"match_reasons"`
	Differences     []string         `json:"differences"`
	Locations       []map[string]any `json:"locations"`
	Quantity        int              `json:"quantity"`
	Unit            string           `json:"unit"`
}

// MarshalJSON rounds the similarity score to two decimals
func (m DuplicateMatch) MarshalJSON() ([]byte, error) {
	type alias DuplicateMatch
	out := alias(m)
	out.SimilarityScore = RoundScore(m.SimilarityScore)
	if out.MatchReasons == nil {
		out.MatchReasons = []string{}
	}
	if out.Locations == nil {
		out.Locations = []map[string]any{}
	}
	return json.Marshal(out)
}

// RoundScore rounds a score to two decimals for display
func RoundScore(score float64) float64 {
	return math.Round(score*100) / 100
}

// TagList accepts either a comma-separated string or a JSON list of strings
type TagList []string

// UnmarshalJSON decodes "a, b" and ["a", "b"] alike
func (t *TagList) UnmarshalJSON(data []byte) error {
	var joined string
	if err := json.Unmarshal(data, &joined); err == nil {
		*t = strings.Split(joined, ",")
		return nil
	}
	var list []any
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("tags must be a string or a list: %w", err)
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v == nil {
			continue
		}
		out = append(out, fmt.Sprint(v))
	}
	*t = out
	return nil
}

// CheckRequest is a duplicate check for a prospective new item
type CheckRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        TagList  `json:"tags"`
	Threshold   *float64 `json:"threshold,omitempty"`
}

// CheckResult is the outcome of a duplicate check
type CheckResult struct {
	HasDuplicates bool             `json:"has_duplicates"`
	Matches       []DuplicateMatch `json:"matches"`
	Total         int              `json:"total"`
}
