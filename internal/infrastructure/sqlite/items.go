package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/labstock/inventory/internal/domain"
)

// Item is an inventory item as written to the store
type Item struct {
	Name        string
	Description string
	Category    string
	ItemType    string
	Tags        string
	Quantity    int
	Unit        string
	Placements  []Placement
}

// Placement links an item to a location with the quantity stored there
type Placement struct {
	LocationID int64
	Quantity   int
}

// SaveItem inserts an item together with its placements
func (s *Store) SaveItem(ctx context.Context, item Item) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin item tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO items (name, description, category, item_type, tags, quantity, unit)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.Name,
		item.Description,
		item.Category,
		item.ItemType,
		item.Tags,
		item.Quantity,
		nullableString(item.Unit),
	)
	if err != nil {
		return 0, fmt.Errorf("insert item %q: %w", item.Name, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	for _, p := range item.Placements {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO item_locations (item_id, location_id, quantity) VALUES (?, ?, ?)
             ON CONFLICT(item_id, location_id) DO UPDATE SET quantity = quantity + excluded.quantity`,
			id, p.LocationID, p.Quantity,
		); err != nil {
			return 0, fmt.Errorf("place item %q at location %d: %w", item.Name, p.LocationID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit item: %w", err)
	}
	return id, nil
}

const itemColumns = "id, name, description, category, item_type, tags, quantity, unit"

// ListItems returns every item with its resolved locations, ordered by id
func (s *Store) ListItems(ctx context.Context) ([]domain.ExistingItem, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+itemColumns+` FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []domain.ExistingItem
	index := make(map[int64]int)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		index[item.ID] = len(items)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}

	refs, err := s.db.QueryContext(ctx,
		`SELECT il.item_id, m.name, lv.level_number, l.row_label, l.col_label, il.quantity
         FROM item_locations il
         JOIN locations l ON l.id = il.location_id
         JOIN levels lv ON lv.id = l.level_id
         JOIN modules m ON m.id = lv.module_id
         ORDER BY il.item_id, m.name, lv.level_number, l.row_label, l.col_label`,
	)
	if err != nil {
		return nil, fmt.Errorf("list item locations: %w", err)
	}
	defer refs.Close()

	for refs.Next() {
		var (
			itemID int64
			level  int
			ref    domain.LocationRef
		)
		if err := refs.Scan(&itemID, &ref.Module, &level, &ref.Row, &ref.Column, &ref.Quantity); err != nil {
			return nil, fmt.Errorf("scan item location: %w", err)
		}
		ref.Level = &level
		if i, ok := index[itemID]; ok {
			items[i].Locations = append(items[i].Locations, ref)
		}
	}
	if err := refs.Err(); err != nil {
		return nil, fmt.Errorf("iterate item locations: %w", err)
	}

	return items, nil
}

func scanItem(scanner interface{ Scan(dest ...any) error }) (domain.ExistingItem, error) {
	var (
		item domain.ExistingItem
		unit sql.NullString
	)
	if err := scanner.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Category,
		&item.ItemType,
		&item.Tags,
		&item.Quantity,
		&unit,
	); err != nil {
		return domain.ExistingItem{}, fmt.Errorf("scan item: %w", err)
	}
	item.Unit = unit.String
	return item, nil
}
