package sqlite

import (
	"context"
	"fmt"
)

// SetSchemaVersionForTest overwrites the version stored in the file header
func (s *Store) SetSchemaVersionForTest(ctx context.Context, version int) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", version))
	return err
}
