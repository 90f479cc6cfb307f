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


// Package storage provides the storage abstraction layer for docvault.
//
// It defines the uniform repository contract that every backend implements
// identically: the embedded-engine store in the badger subpackage here,
// and external object-storage and wide-column backends elsewhere. Consumers
// of DocumentRepository must not depend on backend identity.
//
// # Contract
//
//   - Create / Update: upsert, silent overwrite under key = document ID
//   - Retrieve / Delete: fail with ErrNotFound when the key is absent
//   - List: paginated enumeration in the backend's native key order
//
// The embedded backend additionally supports Scan (offset-paginated,
// best-effort decode) and Find (predicate-filtered, fail-closed decode)
// through the DocumentFinder interface.
//
// # Lazy sequences
//
// List, Scan and Find return iter.Seq2 sequences. A sequence is lazy,
// finite and not restartable: it holds an engine iterator for its
// lifetime and releases it on every exit path, including an early break
// by the consumer. Reuse requires opening a new sequence.
//
// # Error taxonomy
//
//   - ErrNotFound: key absent on retrieve/delete
//   - ErrValidation: stored bytes fail to decode into a document
//   - ErrBackend: engine I/O failure, lock contention, exhaustion
//   - ErrDestroy: destroy of a missing or still-locked store
//
// Single-record operations fail closed. Scan fails open per record,
// logging and skipping undecodable entries. Find fails closed on the
// first decode error. The scan/find asymmetry is part of the contract.
//
// # Thread safety
//
// All repository implementations must be safe for concurrent use.
package storage
