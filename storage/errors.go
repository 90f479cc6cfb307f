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


package storage

import "errors"

var (
	// ErrNotFound indicates that the requested document was not found.
	ErrNotFound = errors.New("document not found")

	// ErrValidation indicates stored bytes failed to decode into a document.
	ErrValidation = errors.New("document validation failed")

	// ErrBackend indicates an engine-level failure: I/O, lock contention
	// or resource exhaustion.
	ErrBackend = errors.New("backend failure")

	// ErrDestroy indicates destroy was requested on a missing or
	// concurrently locked store.
	ErrDestroy = errors.New("store destroy failed")

	// ErrInvalidStoreID indicates a malformed tenant store identifier.
	ErrInvalidStoreID = errors.New("invalid store id")

	// ErrStorageClosed indicates that the storage backend is closed.
	ErrStorageClosed = errors.New("storage is closed")
)
