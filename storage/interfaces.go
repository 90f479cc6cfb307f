package storage

import (
	"context"
	"iter"

	"github.com/poiesic/docvault/core"
)

// DocumentRepository is the uniform contract implemented identically by
// every backend. Implementations must be thread-safe and support
// concurrent access.
type DocumentRepository interface {
	// Create persists a document. Upsert: an existing document with the
	// same ID is silently overwritten. A document with an empty ID is
	// assigned a random UUID. Returns the stored document.
	Create(ctx context.Context, doc *core.Document) (*core.Document, error)

	// Retrieve reads a document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	Retrieve(ctx context.Context, id string) (*core.Document, error)

	// Update persists a document with semantics identical to Create.
	Update(ctx context.Context, doc *core.Document) (*core.Document, error)

	// Delete removes a document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	Delete(ctx context.Context, id string) error

	// List enumerates documents in the backend's native key order,
	// starting after the given key (exclusive; empty starts at the first
	// key), yielding up to limit documents. The ordering is not a
	// business ordering guarantee.
	List(ctx context.Context, after string, limit int) iter.Seq2[*core.Document, error]
}

// DocumentFinder extends the contract with the enumeration modes of the
// embedded-engine store.
type DocumentFinder interface {
	// Scan enumerates documents in key order, skipping the first offset
	// raw records before decoding and yielding up to limit decoded
	// documents. Best-effort: records that fail to decode are logged and
	// skipped, never abort the scan, and do not count toward limit.
	Scan(ctx context.Context, offset, limit int) iter.Seq2[*core.Document, error]

	// Find enumerates documents matching the predicate exactly. offset is
	// counted over the raw traversal position before filtering; limit
	// applies to yielded matches. Fail-closed: the first decode error is
	// yielded as ErrValidation and traversal stops.
	Find(ctx context.Context, pred core.Predicate, offset, limit int) iter.Seq2[*core.Document, error]
}

// DocumentStore combines single-record CRUD with the embedded store's
// enumeration modes.
type DocumentStore interface {
	DocumentRepository
	DocumentFinder
}

// StoreManager manages the lifecycle of tenant stores. A store moves
// Absent -> Open on first access, Open -> Destroyed on Destroy, and
// Destroyed -> Open on any subsequent access, which recreates an empty
// store at the same id.
type StoreManager interface {
	// OpenOrCreate opens the tenant store, creating its on-disk
	// structures if absent. Idempotent: never errors because the store
	// already exists.
	OpenOrCreate(storeID string) (DocumentStore, error)

	// Destroy irreversibly deletes all persisted data for the tenant.
	// Returns ErrDestroy if the store is missing or cannot be released.
	Destroy(storeID string) error

	// Flush forces buffered mutations to durable storage before returning.
	Flush(storeID string) error

	// Close releases every open tenant handle.
	Close() error
}
