// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package docvault is a multi-tenant document store over an embedded
// ordered key-value engine. Each tenant store is an isolated,
// independently lifecycle-managed container created on first access,
// destroyed explicitly, and flushed on demand.
package docvault

import (
	"log/slog"

	"github.com/poiesic/docvault/config"
	"github.com/poiesic/docvault/storage"
	"github.com/poiesic/docvault/storage/badger"
)

// Vault manages tenant document stores rooted at one directory prefix.
type Vault struct {
	registry *badger.Registry
	logger   *slog.Logger
}

// VaultOption configures a Vault.
type VaultOption func(*vaultOptions)

type vaultOptions struct {
	compression string
	zstdLevel   int
	logger      *slog.Logger
}

// WithCompression selects the value codec: zstd (default), snappy, none.
func WithCompression(name string) VaultOption {
	return func(o *vaultOptions) {
		if name != "" {
			o.compression = name
		}
	}
}

// WithZSTDLevel sets the zstd compression level. Default is 3.
func WithZSTDLevel(level int) VaultOption {
	return func(o *vaultOptions) {
		if level > 0 {
			o.zstdLevel = level
		}
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) VaultOption {
	return func(o *vaultOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Open creates a Vault rooted at the given directory. Tenant stores live
// at <root>/<store_id> and are materialized lazily on first access.
func Open(root string, opts ...VaultOption) (*Vault, error) {
	o := vaultOptions{
		compression: "zstd",
		zstdLevel:   3,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	codec, err := badger.CompressionFromName(o.compression)
	if err != nil {
		return nil, err
	}

	registry, err := badger.NewRegistry(root,
		badger.WithCompression(codec),
		badger.WithZSTDLevel(o.zstdLevel),
		badger.WithLogger(o.logger),
	)
	if err != nil {
		return nil, err
	}

	return &Vault{
		registry: registry,
		logger:   o.logger,
	}, nil
}

// FromConfig opens a Vault from loaded configuration.
func FromConfig(cfg *config.Config, opts ...VaultOption) (*Vault, error) {
	base := []VaultOption{
		WithCompression(cfg.Store.Compression),
		WithZSTDLevel(cfg.Store.ZSTDLevel),
	}
	return Open(cfg.Store.Root, append(base, opts...)...)
}

// Store resolves the tenant store handle, creating the store if absent.
// Idempotent: never errors because the store already exists.
func (v *Vault) Store(storeID string) (storage.DocumentStore, error) {
	return v.registry.OpenOrCreate(storeID)
}

// Destroy irreversibly deletes all persisted data for the tenant.
// A subsequent access recreates an empty store at the same id.
func (v *Vault) Destroy(storeID string) error {
	return v.registry.Destroy(storeID)
}

// Flush forces buffered mutations of the tenant store to durable
// storage before returning.
func (v *Vault) Flush(storeID string) error {
	return v.registry.Flush(storeID)
}

// Close releases every open tenant handle.
func (v *Vault) Close() error {
	return v.registry.Close()
}
