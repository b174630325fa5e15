package domain

import "context"

// SpecCache memoizes parse results keyed by the parsed working text
type SpecCache interface {
	Get(key string) (ParsedSpec, bool)
	Set(key string, spec ParsedSpec)
}

// ItemRepository provides the existing inventory for duplicate checks
type ItemRepository interface {
	ListItems(ctx context.Context) ([]ExistingItem, error)
}

// LocationRepository provides storage location snapshots for suggestions
type LocationRepository interface {
	ListLocationSlots(ctx context.Context) ([]LocationSlot, error)
}
