package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/labstock/inventory/internal/domain"
)

// Location is a storage location as written to the store
type Location struct {
	Row          string  `json:"row"`
	Column       string  `json:"column"`
	LocationType string  `json:"location_type,omitempty"`
	WidthMM      float64 `json:"width_mm,omitempty"`
	HeightMM     float64 `json:"height_mm,omitempty"`
	DepthMM      float64 `json:"depth_mm,omitempty"`
}

// SaveModule inserts a module, or returns the existing one with the same name
func (s *Store) SaveModule(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO modules (name) VALUES (?)
         ON CONFLICT(name) DO UPDATE SET name = excluded.name
         RETURNING id`,
		name,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("save module %q: %w", name, err)
	}
	return id, nil
}

// SaveLevel inserts a module level, or returns the existing one
func (s *Store) SaveLevel(ctx context.Context, moduleID int64, number int) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO levels (module_id, level_number) VALUES (?, ?)
         ON CONFLICT(module_id, level_number) DO UPDATE SET level_number = excluded.level_number
         RETURNING id`,
		moduleID, number,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("save level %d: %w", number, err)
	}
	return id, nil
}

// SaveLocation inserts a location on a level, updating type and dimensions
// when the row and column already exist
func (s *Store) SaveLocation(ctx context.Context, levelID int64, loc Location) (int64, error) {
	locationType := loc.LocationType
	if locationType == "" {
		locationType = "general"
	}

	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO locations (level_id, row_label, col_label, location_type, width_mm, height_mm, depth_mm)
         VALUES (?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(level_id, row_label, col_label) DO UPDATE SET
             location_type = excluded.location_type,
             width_mm = excluded.width_mm,
             height_mm = excluded.height_mm,
             depth_mm = excluded.depth_mm
         RETURNING id`,
		levelID,
		loc.Row,
		loc.Column,
		locationType,
		nullableFloat(loc.WidthMM),
		nullableFloat(loc.HeightMM),
		nullableFloat(loc.DepthMM),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("save location %s%s: %w", loc.Row, loc.Column, err)
	}
	return id, nil
}

// ListLocationSlots returns every location with the items it holds and the
// items held anywhere on its level
func (s *Store) ListLocationSlots(ctx context.Context) ([]domain.LocationSlot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT l.id, l.level_id, m.name, lv.level_number, l.row_label, l.col_label, l.location_type,
                l.width_mm, l.height_mm, l.depth_mm
         FROM locations l
         JOIN levels lv ON lv.id = l.level_id
         JOIN modules m ON m.id = lv.module_id
         ORDER BY m.name, lv.level_number, l.row_label, l.col_label`,
	)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var slots []domain.LocationSlot
	levelOf := make(map[int64]int64)
	for rows.Next() {
		var (
			slot                 domain.LocationSlot
			levelID              int64
			width, height, depth sql.NullFloat64
		)
		if err := rows.Scan(&slot.ID, &levelID, &slot.Module, &slot.LevelNumber, &slot.Row, &slot.Column,
			&slot.LocationType, &width, &height, &depth); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		slot.WidthMM, slot.HeightMM, slot.DepthMM = width.Float64, height.Float64, depth.Float64
		levelOf[slot.ID] = levelID
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locations: %w", err)
	}

	stored, err := s.storedItemsByLocation(ctx)
	if err != nil {
		return nil, err
	}

	byLevel := make(map[int64][]domain.StoredItem)
	for locationID, items := range stored {
		levelID := levelOf[locationID]
		byLevel[levelID] = append(byLevel[levelID], items...)
	}

	for i := range slots {
		slots[i].Items = stored[slots[i].ID]
		slots[i].LevelItems = byLevel[levelOf[slots[i].ID]]
	}
	return slots, nil
}

func (s *Store) storedItemsByLocation(ctx context.Context) (map[int64][]domain.StoredItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT il.location_id, i.category, i.tags
         FROM item_locations il
         JOIN items i ON i.id = il.item_id
         ORDER BY il.location_id, i.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list stored items: %w", err)
	}
	defer rows.Close()

	stored := make(map[int64][]domain.StoredItem)
	for rows.Next() {
		var (
			locationID int64
			item       domain.StoredItem
		)
		if err := rows.Scan(&locationID, &item.Category, &item.Tags); err != nil {
			return nil, fmt.Errorf("scan stored item: %w", err)
		}
		stored[locationID] = append(stored[locationID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stored items: %w", err)
	}
	return stored, nil
}
