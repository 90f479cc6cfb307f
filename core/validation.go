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

import "fmt"

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - Document must not be nil
//   - Field names must not be empty (including nested map keys)
//   - Every value must carry a known kind tag
//
// NOT validated:
//   - ID (empty is valid; backends assign a UUID on create)
//   - Kind (display metadata only, empty is allowed)
func ValidateDocument(d *Document) error {
	if d == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	for name, v := range d.Fields {
		if name == "" {
			return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyFieldName)
		}
		if err := validateValue(v); err != nil {
			return fmt.Errorf("%w: field %q: %w", ErrInvalidDocument, name, err)
		}
	}

	return nil
}

func validateValue(v Value) error {
	switch v.Kind {
	case KindNull, KindString, KindInt, KindFloat, KindBool, KindBytes, KindVector:
		return nil
	case KindList:
		for i, e := range v.List {
			if err := validateValue(e); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}
		return nil
	case KindMap:
		for name, e := range v.Map {
			if name == "" {
				return ErrEmptyFieldName
			}
			if err := validateValue(e); err != nil {
				return fmt.Errorf("key %q: %w", name, err)
			}
		}
		return nil
	}
	return fmt.Errorf("%w: %d", ErrUnknownValueKind, v.Kind)
}
