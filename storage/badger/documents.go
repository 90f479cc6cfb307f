package badger

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/poiesic/docvault/core"
	"github.com/poiesic/docvault/storage"
)

// errStopIteration aborts a WithTx traversal when the consumer of a lazy
// sequence breaks early. Never surfaces to callers.
var errStopIteration = errors.New("stop iteration")

// DocumentRepository implements storage.DocumentStore for one tenant
// store backed by BadgerDB.
type DocumentRepository struct {
	backend *Backend
	storeID string
	logger  *slog.Logger
}

var _ storage.DocumentStore = (*DocumentRepository)(nil)

// NewDocumentRepository creates a DocumentRepository over an open backend.
func NewDocumentRepository(backend *Backend, storeID string) *DocumentRepository {
	return &DocumentRepository{
		backend: backend,
		storeID: storeID,
		logger:  backend.logger,
	}
}

// StoreID returns the tenant store identifier this repository serves.
func (r *DocumentRepository) StoreID() string {
	return r.storeID
}

// Create persists a document under key = document ID. Upsert: an existing
// document with the same ID is silently overwritten. A document with an
// empty ID is assigned a random UUID first.
func (r *DocumentRepository) Create(ctx context.Context, doc *core.Document) (*core.Document, error) {
	if err := core.ValidateDocument(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrValidation, err)
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	value := storage.MarshalDocument(doc)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeDocumentKey(doc.ID), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		r.logger.Error("error storing document", "store", r.storeID, "op", "create", "id", doc.ID, "err", err)
		return nil, fmt.Errorf("%w: %w", storage.ErrBackend, err)
	}
	return doc, nil
}

// Update persists a document with semantics identical to Create.
func (r *DocumentRepository) Update(ctx context.Context, doc *core.Document) (*core.Document, error) {
	return r.Create(ctx, doc)
}

// Retrieve reads a document by ID. Returns ErrNotFound if the key is
// absent. A decode failure surfaces as ErrValidation and is never
// suppressed, in contrast with Scan's tolerant policy.
func (r *DocumentRepository) Retrieve(ctx context.Context, id string) (*core.Document, error) {
	var doc *core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeDocumentKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var uerr error
			doc, uerr = storage.UnmarshalDocument(val)
			return uerr
		})
	}, false)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
		}
		r.logger.Error("error reading document", "store", r.storeID, "op", "retrieve", "id", id, "err", err)
		if errors.Is(err, storage.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", storage.ErrBackend, err)
	}
	return doc, nil
}

// Delete removes a document by ID. Returns ErrNotFound if the key is
// absent.
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeDocumentKey(id)
		if _, err := tx.Get(key); err != nil {
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", storage.ErrNotFound, id)
		}
		r.logger.Error("error deleting document", "store", r.storeID, "op", "delete", "id", id, "err", err)
		return fmt.Errorf("%w: %w", storage.ErrBackend, err)
	}
	return nil
}

// List enumerates documents in key order, starting after the given key
// (exclusive; empty starts at the first key), yielding up to limit
// documents. Shares Scan's best-effort decode policy.
func (r *DocumentRepository) List(ctx context.Context, after string, limit int) iter.Seq2[*core.Document, error] {
	return func(yield func(*core.Document, error) bool) {
		stopped := false
		err := r.backend.WithTx(func(tx *badger.Txn) error {
			it := tx.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()

			if after == "" {
				it.Rewind()
			} else {
				it.Seek([]byte(after))
				if it.Valid() && string(it.Item().Key()) == after {
					it.Next()
				}
			}

			produced := 0
			for ; it.Valid() && produced < limit; it.Next() {
				if err := ctx.Err(); err != nil {
					return err
				}
				doc, err := r.readItem(it)
				if err != nil {
					r.logger.Error("skipping undecodable document",
						"store", r.storeID, "op", "list", "key", string(it.Item().Key()), "err", err)
					continue
				}
				if !yield(doc, nil) {
					stopped = true
					return errStopIteration
				}
				produced++
			}
			return nil
		}, false)
		if err != nil && !stopped {
			yield(nil, r.iterationErr("list", err))
		}
	}
}

// Scan enumerates documents in key order, skipping the first offset raw
// records before any decoding, then yielding up to limit decoded
// documents. Best-effort: a record that fails to decode is logged and
// skipped; it never aborts the scan and does not count toward limit.
// The sequence observes one consistent snapshot of the key order as of
// when the iterator opened and is not restartable.
func (r *DocumentRepository) Scan(ctx context.Context, offset, limit int) iter.Seq2[*core.Document, error] {
	return func(yield func(*core.Document, error) bool) {
		stopped := false
		err := r.backend.WithTx(func(tx *badger.Txn) error {
			it := tx.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()

			skipped, produced := 0, 0
			for it.Rewind(); it.Valid() && produced < limit; it.Next() {
				if err := ctx.Err(); err != nil {
					return err
				}
				if skipped < offset {
					skipped++
					continue
				}
				doc, err := r.readItem(it)
				if err != nil {
					r.logger.Error("skipping undecodable document",
						"store", r.storeID, "op", "scan", "key", string(it.Item().Key()), "err", err)
					continue
				}
				if !yield(doc, nil) {
					stopped = true
					return errStopIteration
				}
				produced++
			}
			return nil
		}, false)
		if err != nil && !stopped {
			yield(nil, r.iterationErr("scan", err))
		}
	}
}

// Find enumerates documents matching every predicate field exactly.
// offset is counted over the raw traversal position before filtering;
// limit applies to yielded matches. Fail-closed: the first decode error
// surfaces as ErrValidation and stops the traversal, diverging from
// Scan's tolerant policy on purpose.
func (r *DocumentRepository) Find(ctx context.Context, pred core.Predicate, offset, limit int) iter.Seq2[*core.Document, error] {
	return func(yield func(*core.Document, error) bool) {
		stopped := false
		err := r.backend.WithTx(func(tx *badger.Txn) error {
			it := tx.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()

			skipped, produced := 0, 0
			for it.Rewind(); it.Valid() && produced < limit; it.Next() {
				if err := ctx.Err(); err != nil {
					return err
				}
				if skipped < offset {
					skipped++
					continue
				}
				doc, err := r.readItem(it)
				if err != nil {
					r.logger.Error("aborting find on undecodable document",
						"store", r.storeID, "op", "find", "key", string(it.Item().Key()), "err", err)
					return err
				}
				if !pred.Matches(doc) {
					continue
				}
				if !yield(doc, nil) {
					stopped = true
					return errStopIteration
				}
				produced++
			}
			return nil
		}, false)
		if err != nil && !stopped {
			yield(nil, r.iterationErr("find", err))
		}
	}
}

// readItem decodes the document under the iterator's current position.
func (r *DocumentRepository) readItem(it *badger.Iterator) (*core.Document, error) {
	var doc *core.Document
	err := it.Item().Value(func(val []byte) error {
		var uerr error
		doc, uerr = storage.UnmarshalDocument(val)
		return uerr
	})
	return doc, err
}

// iterationErr classifies an error escaping a lazy sequence. Validation
// and context errors pass through; everything else is a backend failure.
func (r *DocumentRepository) iterationErr(op string, err error) error {
	if errors.Is(err, storage.ErrValidation) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	r.logger.Error("iteration failed", "store", r.storeID, "op", op, "err", err)
	return fmt.Errorf("%w: %w", storage.ErrBackend, err)
}
