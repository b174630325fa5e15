package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labstock/inventory/internal/infrastructure/sqlite"
)

func mustOpenStore(t testing.TB) *sqlite.Store {
	t.Helper()

	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "inventory.db"))
	if err != nil {
		t.Fatalf("sqlite.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

const sampleSnapshot = `{
  "modules": [
    {
      "name": "Drawer Cabinet",
      "levels": [
        {
          "number": 1,
          "locations": [
            {"row": "A", "column": "1", "location_type": "small_box", "width_mm": 50, "height_mm": 40, "depth_mm": 120},
            {"row": "A", "column": "2"}
          ]
        }
      ]
    }
  ],
  "items": [
    {
      "name": "M6 Pan Head Bolt",
      "description": "M6 pan head phillips",
      "category": "Fasteners",
      "tags": "m6,pan-head",
      "quantity": 10,
      "locations": [{"module": "Drawer Cabinet", "level": 1, "row": "A", "column": "1", "quantity": 10}]
    },
    {
      "name": "Ceramic capacitor",
      "description": "0.1uF 50V",
      "category": "Electronics",
      "quantity": 3,
      "unit": "reels"
    }
  ]
}`

func importSample(t *testing.T, store *sqlite.Store) sqlite.ImportSummary {
	t.Helper()

	snap, err := sqlite.DecodeSnapshot(strings.NewReader(sampleSnapshot))
	require.NoError(t, err)
	summary, err := store.Import(context.Background(), snap)
	require.NoError(t, err)
	return summary
}

func TestOpenCreatesSchemaOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "inventory.db")
	ctx := context.Background()

	first, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, first.Ping(ctx))
	require.NoError(t, first.Close())

	second, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, path, second.Path())
	require.NoError(t, second.Close())
}

func TestImportAndListItems(t *testing.T) {
	store := mustOpenStore(t)
	ctx := context.Background()

	summary := importSample(t, store)
	assert.Equal(t, sqlite.ImportSummary{Modules: 1, Levels: 1, Locations: 2, Items: 2}, summary)

	items, err := store.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)

	bolt := items[0]
	assert.Equal(t, "M6 Pan Head Bolt", bolt.Name)
	assert.Equal(t, "m6,pan-head", bolt.Tags)
	assert.Equal(t, "pieces", bolt.UnitOrDefault())
	require.Len(t, bolt.Locations, 1)
	assert.Equal(t, "Drawer Cabinet", bolt.Locations[0].Module)
	require.NotNil(t, bolt.Locations[0].Level)
	assert.Equal(t, 1, *bolt.Locations[0].Level)
	assert.Equal(t, "A", bolt.Locations[0].Row)
	assert.Equal(t, "1", bolt.Locations[0].Column)
	assert.Equal(t, 10, bolt.Locations[0].Quantity)

	assert.Equal(t, "reels", items[1].Unit)
	assert.Empty(t, items[1].Locations)
}

func TestListLocationSlots(t *testing.T) {
	store := mustOpenStore(t)
	importSample(t, store)

	slots, err := store.ListLocationSlots(context.Background())
	require.NoError(t, err)
	require.Len(t, slots, 2)

	a1 := slots[0]
	assert.Equal(t, "A1", a1.Address())
	assert.Equal(t, "small_box", a1.LocationType)
	assert.Equal(t, 120.0, a1.DepthMM)
	require.Len(t, a1.Items, 1)
	assert.Equal(t, "Fasteners", a1.Items[0].Category)

	a2 := slots[1]
	assert.Equal(t, "general", a2.LocationType)
	assert.Zero(t, a2.WidthMM)
	assert.Empty(t, a2.Items)
	// level-mates see the bolt stored next door
	require.Len(t, a2.LevelItems, 1)
}

func TestSaveLocationUpserts(t *testing.T) {
	store := mustOpenStore(t)
	ctx := context.Background()

	moduleID, err := store.SaveModule(ctx, "Shelf")
	require.NoError(t, err)
	again, err := store.SaveModule(ctx, "Shelf")
	require.NoError(t, err)
	assert.Equal(t, moduleID, again)

	levelID, err := store.SaveLevel(ctx, moduleID, 3)
	require.NoError(t, err)

	first, err := store.SaveLocation(ctx, levelID, sqlite.Location{Row: "B", Column: "2"})
	require.NoError(t, err)
	second, err := store.SaveLocation(ctx, levelID, sqlite.Location{Row: "B", Column: "2", LocationType: "large_bin"})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	slots, err := store.ListLocationSlots(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "large_bin", slots[0].LocationType)
	assert.Equal(t, 3, slots[0].LevelNumber)
}

func TestSaveItemRejectsUnknownLocation(t *testing.T) {
	store := mustOpenStore(t)

	_, err := store.SaveItem(context.Background(), sqlite.Item{
		Name:       "Orphan",
		Placements: []sqlite.Placement{{LocationID: 999, Quantity: 1}},
	})
	assert.Error(t, err)

	items, err := store.ListItems(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items, "failed insert must roll back")
}

func TestImportUnknownPlacement(t *testing.T) {
	store := mustOpenStore(t)

	_, err := store.Import(context.Background(), sqlite.Snapshot{
		Items: []sqlite.ItemSnapshot{{
			Name:      "Lost",
			Locations: []sqlite.PlacementAddress{{Module: "Nowhere", Level: 1, Row: "Z", Column: "9"}},
		}},
	})
	assert.Error(t, err)
}

func TestDecodeSnapshotRejectsUnknownFields(t *testing.T) {
	_, err := sqlite.DecodeSnapshot(strings.NewReader(`{"modulez": []}`))
	assert.Error(t, err)
}

func TestOpenRejectsNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.db")
	ctx := context.Background()

	store, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.SetSchemaVersionForTest(ctx, 99))
	require.NoError(t, store.Close())

	_, err = sqlite.Open(ctx, path)
	assert.True(t, errors.Is(err, sqlite.ErrSchemaMismatch), "got %v", err)
}

func TestOpenRecordsUserVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.db")
	store, err := sqlite.Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var version int
	require.NoError(t, db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, 1, version)

	var tables int
	require.NoError(t, db.QueryRow(
		"SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name IN ('modules','levels','locations','items','item_locations')",
	).Scan(&tables))
	assert.Equal(t, 5, tables)
}

func TestOpenRejectsUnversionedInventoryTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec("CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT)")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = sqlite.Open(context.Background(), path)
	assert.True(t, errors.Is(err, sqlite.ErrSchemaMismatch), "got %v", err)
}

func TestOpenIgnoresUnrelatedTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec("CREATE TABLE notes (body TEXT)")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	store, err := sqlite.Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}
