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

import (
	"fmt"

	"github.com/poiesic/docvault/core"
)

// MarshalDocument serializes a Document to bytes.
func MarshalDocument(doc *core.Document) []byte {
	buf := make([]byte, core.DocumentMUS.Size(*doc))
	core.DocumentMUS.Marshal(*doc, buf)
	return buf
}

// UnmarshalDocument deserializes a Document from bytes.
// Decode failures are reported as ErrValidation.
func UnmarshalDocument(data []byte) (*core.Document, error) {
	doc, _, err := core.DocumentMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return &doc, nil
}

// MarshalValue serializes a single Value to bytes.
func MarshalValue(v core.Value) []byte {
	buf := make([]byte, core.ValueMUS.Size(v))
	core.ValueMUS.Marshal(v, buf)
	return buf
}

// UnmarshalValue deserializes a single Value from bytes.
func UnmarshalValue(data []byte) (core.Value, error) {
	v, _, err := core.ValueMUS.Unmarshal(data)
	if err != nil {
		return core.Value{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return v, nil
}
