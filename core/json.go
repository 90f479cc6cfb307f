package core

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
)

// JSON codec for documents, used by the CLI and for display. Byte blobs
// render as base64 strings; JSON input infers value kinds, so bytes and
// the int/float distinction do not survive a JSON round trip. The binary
// mus codec remains the storage contract.

// MarshalJSON encodes the value as its natural JSON representation.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.Str)
	case KindInt:
		return json.Marshal(v.Int)
	case KindFloat:
		return json.Marshal(v.Float)
	case KindBool:
		return json.Marshal(v.Bool)
	case KindBytes:
		return json.Marshal(base64.StdEncoding.EncodeToString(v.Blob))
	case KindVector:
		return json.Marshal(v.Vector)
	case KindList:
		return json.Marshal(v.List)
	case KindMap:
		return json.Marshal(v.Map)
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownValueKind, v.Kind)
}

// UnmarshalJSON decodes JSON into a value, inferring the kind:
// numbers become Int when integral and Float otherwise, arrays of
// numbers become Vector, other arrays become List, objects become Map.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	out, err := valueFromJSON(raw)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

func valueFromJSON(raw any) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		if i, err := strconv.ParseInt(string(t), 10, 64); err == nil {
			return Int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return Value{}, err
		}
		return Float(f), nil
	case []any:
		if vec, ok := numericArray(t); ok {
			return Vector(vec), nil
		}
		list := make([]Value, len(t))
		for i, e := range t {
			v, err := valueFromJSON(e)
			if err != nil {
				return Value{}, err
			}
			list[i] = v
		}
		return List(list...), nil
	case map[string]any:
		m := make(map[string]Value, len(t))
		for name, e := range t {
			v, err := valueFromJSON(e)
			if err != nil {
				return Value{}, err
			}
			m[name] = v
		}
		return Map(m), nil
	}
	return Value{}, fmt.Errorf("unsupported JSON value %T", raw)
}

// numericArray reports whether every element is a number; empty arrays
// stay lists so they round-trip as [].
func numericArray(raw []any) ([]float64, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	vec := make([]float64, len(raw))
	for i, e := range raw {
		num, ok := e.(json.Number)
		if !ok {
			return nil, false
		}
		f, err := num.Float64()
		if err != nil {
			return nil, false
		}
		vec[i] = f
	}
	return vec, true
}

// MarshalJSON flattens the document into one object carrying "id" and
// "kind" alongside the open fields.
func (d *Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Fields)+2)
	for name, v := range d.Fields {
		out[name] = v
	}
	out["id"] = d.ID
	out["kind"] = d.Kind
	return json.Marshal(out)
}

// UnmarshalJSON decodes a flat document object, pulling "id" and "kind"
// into the header and inferring kinds for the remaining fields.
func (d *Document) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	doc := Document{Fields: make(map[string]Value, len(raw))}
	for name, e := range raw {
		switch name {
		case "id":
			s, ok := e.(string)
			if !ok {
				return fmt.Errorf("%w: id must be a string", ErrInvalidDocument)
			}
			doc.ID = s
		case "kind":
			s, ok := e.(string)
			if !ok {
				return fmt.Errorf("%w: kind must be a string", ErrInvalidDocument)
			}
			doc.Kind = s
		default:
			v, err := valueFromJSON(e)
			if err != nil {
				return fmt.Errorf("%w: field %q: %w", ErrInvalidDocument, name, err)
			}
			doc.Fields[name] = v
		}
	}
	*d = doc
	return nil
}
