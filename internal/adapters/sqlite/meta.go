package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lifeflow/core/internal/domain/entities"
	"github.com/lifeflow/core/internal/ports"
)

// MetaStore keeps key/value strings in the app_meta table, which the
// database migrations own. It never touches record collections.
type MetaStore struct {
	db *sqlx.DB
}

var _ ports.MetaStore = (*MetaStore)(nil)

// NewMetaStore returns a meta store over a migrated database.
func NewMetaStore(db *sqlx.DB) (*MetaStore, error) {
	if db == nil {
		return nil, fmt.Errorf("new meta store: db is nil")
	}
	return &MetaStore{db: db}, nil
}

func (m *MetaStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := m.db.GetContext(ctx, &value, `SELECT value FROM app_meta WHERE key = ?`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, entities.NewStorageError("meta get", "", fmt.Errorf("%s: %w", key, err))
	}
	return value, true, nil
}

func (m *MetaStore) Set(ctx context.Context, key, value string) error {
	_, err := m.db.ExecContext(ctx, `INSERT INTO app_meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return entities.NewStorageError("meta set", "", fmt.Errorf("%s: %w", key, err))
	}
	return nil
}
