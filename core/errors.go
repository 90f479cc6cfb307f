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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrEmptyFieldName indicates a document field with an empty name.
	ErrEmptyFieldName = errors.New("field name cannot be empty")

	// ErrUnknownValueKind indicates a Value with an out-of-range kind tag.
	ErrUnknownValueKind = errors.New("unknown value kind")

	// ErrTruncatedValue indicates serialized bytes ended mid-value.
	ErrTruncatedValue = errors.New("truncated value bytes")
)
