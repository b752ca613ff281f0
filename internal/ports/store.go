package ports

import (
	"context"

	"github.com/lifeflow/core/internal/domain/entities"
)

// Reader is the read side of the store.
type Reader interface {
	// GetAll returns every record of the collection in unspecified order.
	GetAll(ctx context.Context, collection string) ([]entities.Record, error)
	// GetByID returns entities.ErrNotFound when the id is absent.
	GetByID(ctx context.Context, collection, id string) (entities.Record, error)
	// GetAllByIndex returns records whose indexed field equals value. For a
	// multi-entry index any element of the field may match.
	GetAllByIndex(ctx context.Context, collection, index string, value any) ([]entities.Record, error)
}

// Writer is the write side of the store.
type Writer interface {
	// Add fails with entities.ErrDuplicateKey when the id already exists.
	Add(ctx context.Context, collection string, record entities.Record) error
	// Update replaces the record with the same id, inserting it if absent.
	Update(ctx context.Context, collection string, record entities.Record) error
	// Remove deletes by id; a missing id is not an error.
	Remove(ctx context.Context, collection, id string) error
}

// Tx is a group of reads and writes committed atomically.
type Tx interface {
	Reader
	Writer
}

// Gateway mediates all access to the embedded record store.
type Gateway interface {
	Reader
	Writer

	// Open brings the store up to the schema registry, creating only what is
	// missing. Repeat calls are no-ops.
	Open(ctx context.Context) error

	// Tx runs fn in one transaction. The writes commit together when fn
	// returns nil and are discarded otherwise.
	Tx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
}

// MetaStore persists application-level string values kept outside the
// record collections.
type MetaStore interface {
	// Get returns "", false when the key was never set.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}
