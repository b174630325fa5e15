package domain

import "encoding/json"

// StoredItem summarizes an item already stored somewhere
type StoredItem struct {
	Category string `json:"category,omitempty"`
	Tags     string `json:"tags,omitempty"`
}

// LocationSlot is a snapshot of one storage location and what it holds.
// LevelItems covers every item stored on the same level, this slot included.
type LocationSlot struct {
	ID           int64        `json:"id"`
	Module       string       `json:"module"`
	LevelNumber  int          `json:"level"`
	Row          string       `json:"row"`
	Column       string       `json:"column"`
	LocationType string       `json:"location_type"`
	WidthMM      float64      `json:"width_mm,omitempty"`
	HeightMM     float64      `json:"height_mm,omitempty"`
	DepthMM      float64      `json:"depth_mm,omitempty"`
	Items        []StoredItem `json:"-"`
	LevelItems   []StoredItem `json:"-"`
}

// Address returns the row+column address, e.g. "A3"
func (l LocationSlot) Address() string {
	return l.Row + l.Column
}

// SuggestionRequest describes an item looking for a storage location
type SuggestionRequest struct {
	Category string
	ItemType string
	Tags     []string
	WidthMM  float64
	HeightMM float64
	DepthMM  float64
	Limit    int
}

// LocationSuggestion is a scored candidate location with its reasons
type LocationSuggestion struct {
	Location LocationSlot `json:"location"`
	Score    float64      `json:"score"`
	Reasons  []string     `json:"reasons"`
}

// MarshalJSON rounds the score to two decimals
func (s LocationSuggestion) MarshalJSON() ([]byte, error) {
	type alias LocationSuggestion
	out := alias(s)
	out.Score = RoundScore(s.Score)
	return json.Marshal(out)
}
