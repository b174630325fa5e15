package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
)

// Snapshot is the JSON document accepted by Import
type Snapshot struct {
	Modules []ModuleSnapshot `json:"modules"`
	Items   []ItemSnapshot   `json:"items"`
}

// ModuleSnapshot describes a storage module and its levels
type ModuleSnapshot struct {
	Name   string          `json:"name"`
	Levels []LevelSnapshot `json:"levels"`
}

// LevelSnapshot describes one level of a module
type LevelSnapshot struct {
	Number    int        `json:"number"`
	Locations []Location `json:"locations"`
}

// ItemSnapshot describes an item and where it is stored
type ItemSnapshot struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	ItemType    string             `json:"item_type"`
	Tags        string             `json:"tags"`
	Quantity    int                `json:"quantity"`
	Unit        string             `json:"unit"`
	Locations   []PlacementAddress `json:"locations"`
}

// PlacementAddress names a location by module, level, row and column
type PlacementAddress struct {
	Module   string `json:"module"`
	Level    int    `json:"level"`
	Row      string `json:"row"`
	Column   string `json:"column"`
	Quantity int    `json:"quantity"`
}

func (a PlacementAddress) key() string {
	return fmt.Sprintf("%s/%d/%s%s", a.Module, a.Level, a.Row, a.Column)
}

// ImportSummary counts what an import wrote
type ImportSummary struct {
	Modules   int
	Levels    int
	Locations int
	Items     int
}

// DecodeSnapshot reads a snapshot document
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// Import writes a snapshot. Modules, levels and locations are upserted, items
// are always added. Item placements must name a location declared in the
// snapshot or already stored.
func (s *Store) Import(ctx context.Context, snap Snapshot) (ImportSummary, error) {
	var summary ImportSummary
	locationIDs := make(map[string]int64)

	for _, module := range snap.Modules {
		if strings.TrimSpace(module.Name) == "" {
			return summary, errors.New("module without a name")
		}
		moduleID, err := s.SaveModule(ctx, module.Name)
		if err != nil {
			return summary, err
		}
		summary.Modules++

		for _, level := range module.Levels {
			levelID, err := s.SaveLevel(ctx, moduleID, level.Number)
			if err != nil {
				return summary, err
			}
			summary.Levels++

			for _, loc := range level.Locations {
				locationID, err := s.SaveLocation(ctx, levelID, loc)
				if err != nil {
					return summary, err
				}
				summary.Locations++
				addr := PlacementAddress{Module: module.Name, Level: level.Number, Row: loc.Row, Column: loc.Column}
				locationIDs[addr.key()] = locationID
			}
		}
	}

	for _, item := range snap.Items {
		record := Item{
			Name:        item.Name,
			Description: item.Description,
			Category:    item.Category,
			ItemType:    item.ItemType,
			Tags:        item.Tags,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
		}
		for _, addr := range item.Locations {
			locationID, ok := locationIDs[addr.key()]
			if !ok {
				id, err := s.findLocation(ctx, addr)
				if err != nil {
					return summary, fmt.Errorf("item %q: %w", item.Name, err)
				}
				locationID = id
			}
			record.Placements = append(record.Placements, Placement{LocationID: locationID, Quantity: addr.Quantity})
		}

		if _, err := s.SaveItem(ctx, record); err != nil {
			return summary, err
		}
		summary.Items++
	}

	log.Printf("[STORE] Imported %d modules, %d levels, %d locations, %d items",
		summary.Modules, summary.Levels, summary.Locations, summary.Items)
	return summary, nil
}

func (s *Store) findLocation(ctx context.Context, addr PlacementAddress) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT l.id FROM locations l
         JOIN levels lv ON lv.id = l.level_id
         JOIN modules m ON m.id = lv.module_id
         WHERE m.name = ? AND lv.level_number = ? AND l.row_label = ? AND l.col_label = ?`,
		addr.Module, addr.Level, addr.Row, addr.Column,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("unknown location %s: %w", addr.key(), err)
	}
	return id, nil
}
