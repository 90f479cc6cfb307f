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


// Package async exposes the repository contract without blocking the
// caller. The embedded engine performs synchronous I/O; this wrapper
// dispatches each call to a worker pool and hands back a future so
// asynchronous callers never stall their scheduler on engine calls.
package async

import (
	"context"
	"runtime"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/docvault/core"
	"github.com/poiesic/docvault/storage"
)

// Result is a future for one asynchronous repository operation.
type Result[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newResult[T any]() *Result[T] {
	return &Result[T]{done: make(chan struct{})}
}

func (r *Result[T]) complete(val T, err error) {
	r.val = val
	r.err = err
	close(r.done)
}

// Wait blocks until the operation completes or ctx is done. Abandoning a
// Result never leaks the worker: the dispatched call still runs to
// completion and releases its resources.
func (r *Result[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-r.done:
		return r.val, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel that is closed when the result is ready.
func (r *Result[T]) Done() <-chan struct{} {
	return r.done
}

// Repository wraps any storage.DocumentRepository and runs every
// operation on a worker pool, returning futures immediately.
type Repository struct {
	inner storage.DocumentRepository
	pool  *ants.Pool
	owned bool
}

// Option configures a Repository.
type Option func(*repoOptions)

type repoOptions struct {
	pool *ants.Pool
	size int
}

// WithPool shares an existing worker pool. The caller keeps ownership
// and must release it.
func WithPool(pool *ants.Pool) Option {
	return func(o *repoOptions) { o.pool = pool }
}

// WithPoolSize sets the worker pool size for a pool owned by the
// repository. Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(o *repoOptions) {
		if size >= 1 {
			o.size = size
		}
	}
}

// New creates an asynchronous view over a repository.
func New(inner storage.DocumentRepository, opts ...Option) (*Repository, error) {
	cfg := repoOptions{size: runtime.NumCPU() / 2}
	if cfg.size < 1 {
		cfg.size = 1
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.pool != nil {
		return &Repository{inner: inner, pool: cfg.pool}, nil
	}

	pool, err := ants.NewPool(cfg.size)
	if err != nil {
		return nil, err
	}
	return &Repository{inner: inner, pool: pool, owned: true}, nil
}

// Release shuts down the worker pool if the repository owns it.
// Outstanding futures still complete.
func (r *Repository) Release() {
	if r.owned {
		r.pool.Release()
	}
}

// submit dispatches fn to the pool. A pool that refuses the task (closed
// or overloaded) completes the future with that error instead.
func submit[T any](r *Repository, fn func() (T, error)) *Result[T] {
	res := newResult[T]()
	if err := r.pool.Submit(func() {
		res.complete(fn())
	}); err != nil {
		var zero T
		res.complete(zero, err)
	}
	return res
}

// Create persists a document on the worker pool; upsert semantics of the
// wrapped repository apply.
func (r *Repository) Create(ctx context.Context, doc *core.Document) *Result[*core.Document] {
	return submit(r, func() (*core.Document, error) {
		return r.inner.Create(ctx, doc)
	})
}

// Retrieve reads a document by ID on the worker pool.
func (r *Repository) Retrieve(ctx context.Context, id string) *Result[*core.Document] {
	return submit(r, func() (*core.Document, error) {
		return r.inner.Retrieve(ctx, id)
	})
}

// Update persists a document with semantics identical to Create.
func (r *Repository) Update(ctx context.Context, doc *core.Document) *Result[*core.Document] {
	return submit(r, func() (*core.Document, error) {
		return r.inner.Update(ctx, doc)
	})
}

// Delete removes a document by ID on the worker pool.
func (r *Repository) Delete(ctx context.Context, id string) *Result[struct{}] {
	return submit(r, func() (struct{}, error) {
		return struct{}{}, r.inner.Delete(ctx, id)
	})
}

// List collects the wrapped repository's lazy sequence into a slice on
// the worker pool. Partial results collected before an error are
// returned alongside it.
func (r *Repository) List(ctx context.Context, after string, limit int) *Result[[]*core.Document] {
	return submit(r, func() ([]*core.Document, error) {
		var docs []*core.Document
		for doc, err := range r.inner.List(ctx, after, limit) {
			if err != nil {
				return docs, err
			}
			docs = append(docs, doc)
		}
		return docs, nil
	})
}
