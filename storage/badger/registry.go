package badger

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/poiesic/docvault/storage"
)

// Registry owns the mapping from store_id to one long-lived Backend,
// guarded by a mutex. Every tenant operation routes through it so the
// single-writer engine never sees two concurrent handles for the same
// on-disk path, and destroy acquires the same exclusive access before
// deleting data.
type Registry struct {
	mu      sync.Mutex
	root    string
	opts    []Option
	handles map[string]*Backend
	logger  *slog.Logger
	closed  bool
}

var _ storage.StoreManager = (*Registry)(nil)

// NewRegistry creates a registry rooted at the given directory. Tenant
// stores live at <root>/<store_id>. Backend options apply to every store
// the registry opens.
func NewRegistry(root string, opts ...Option) (*Registry, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty root path", storage.ErrBackend)
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrBackend, err)
	}

	cfg := backendOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Registry{
		root:    root,
		opts:    opts,
		handles: make(map[string]*Backend),
		logger:  cfg.logger,
	}, nil
}

// OpenOrCreate opens the tenant store, creating on-disk structures if
// absent. Idempotent: never errors because the store already exists.
func (r *Registry) OpenOrCreate(storeID string) (storage.DocumentStore, error) {
	backend, err := r.backendFor(storeID)
	if err != nil {
		return nil, err
	}
	return NewDocumentRepository(backend, storeID), nil
}

// Destroy irreversibly deletes all persisted data for the tenant. Any
// open handle is released first under the registry lock, so no racing
// OpenOrCreate can observe a half-deleted store. Returns ErrDestroy if
// the store does not exist or cannot be released.
func (r *Registry) Destroy(storeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return storage.ErrStorageClosed
	}
	if err := validateStoreID(storeID); err != nil {
		return err
	}

	if backend, ok := r.handles[storeID]; ok {
		if err := backend.Close(); err != nil {
			r.logger.Error("error releasing store for destroy", "store", storeID, "op", "destroy", "err", err)
			return fmt.Errorf("%w: %w", storage.ErrDestroy, err)
		}
		delete(r.handles, storeID)
	}

	path := r.storePath(storeID)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: store %q does not exist", storage.ErrDestroy, storeID)
		}
		return fmt.Errorf("%w: %w", storage.ErrDestroy, err)
	}
	if err := os.RemoveAll(path); err != nil {
		r.logger.Error("error destroying store", "store", storeID, "op", "destroy", "err", err)
		return fmt.Errorf("%w: %w", storage.ErrDestroy, err)
	}

	r.logger.Info("store destroyed", "store", storeID)
	return nil
}

// Flush forces buffered mutations of the tenant store to durable storage
// before returning. Opens the store first if needed.
func (r *Registry) Flush(storeID string) error {
	backend, err := r.backendFor(storeID)
	if err != nil {
		return err
	}
	if err := backend.Sync(); err != nil {
		r.logger.Error("error flushing store", "store", storeID, "op", "flush", "err", err)
		return fmt.Errorf("%w: %w", storage.ErrBackend, err)
	}
	return nil
}

// Close releases every open tenant handle. The registry cannot be used
// afterwards.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var errs []error
	for storeID, backend := range r.handles {
		if err := backend.Close(); err != nil {
			r.logger.Error("error closing store", "store", storeID, "err", err)
			errs = append(errs, err)
		}
		delete(r.handles, storeID)
	}
	return errors.Join(errs...)
}

// backendFor returns the long-lived handle for a tenant, opening it
// lazily. This is the implicit Absent -> Open transition shared by every
// first access.
func (r *Registry) backendFor(storeID string) (*Backend, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, storage.ErrStorageClosed
	}
	if err := validateStoreID(storeID); err != nil {
		return nil, err
	}

	if backend, ok := r.handles[storeID]; ok {
		return backend, nil
	}

	backend, err := OpenBackend(r.storePath(storeID), false, r.opts...)
	if err != nil {
		r.logger.Error("error opening store", "store", storeID, "op", "open_or_create", "err", err)
		return nil, fmt.Errorf("%w: %w", storage.ErrBackend, err)
	}
	r.handles[storeID] = backend
	return backend, nil
}

func (r *Registry) storePath(storeID string) string {
	return filepath.Join(r.root, storeID)
}

// validateStoreID rejects identifiers that would escape the registry
// root or collide with engine internals.
func validateStoreID(storeID string) error {
	if storeID == "" {
		return fmt.Errorf("%w: empty", storage.ErrInvalidStoreID)
	}
	if strings.ContainsAny(storeID, `/\`) || storeID == "." || storeID == ".." {
		return fmt.Errorf("%w: %q", storage.ErrInvalidStoreID, storeID)
	}
	return nil
}
