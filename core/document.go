package core

import (
	"encoding/hex"

	"github.com/go-crypt/x/blake2b"
	"github.com/google/uuid"
)

// Document is the serializable unit of data stored in a tenant store.
// ID is unique within a tenant; documents of different kinds share one
// flat key space keyed by ID alone. Kind is a stable per-type tag used
// for display and metadata, never for key-space partitioning.
type Document struct {
	ID     string
	Kind   string
	Fields map[string]Value
}

// NewDocument creates a document of the given kind with a random UUID.
func NewDocument(kind string) *Document {
	return &Document{
		ID:     uuid.NewString(),
		Kind:   kind,
		Fields: make(map[string]Value),
	}
}

// IDFromContent derives a deterministic document ID from text content
// using BLAKE2b hashing. Identical content produces identical IDs.
func IDFromContent(text string) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// Set stores a field value and returns the document for chaining.
func (d *Document) Set(name string, v Value) *Document {
	if d.Fields == nil {
		d.Fields = make(map[string]Value)
	}
	d.Fields[name] = v
	return d
}

// Field returns the named field value and whether it is present.
func (d *Document) Field(name string) (Value, bool) {
	v, ok := d.Fields[name]
	return v, ok
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := &Document{
		ID:     d.ID,
		Kind:   d.Kind,
		Fields: make(map[string]Value, len(d.Fields)),
	}
	for name, v := range d.Fields {
		out.Fields[name] = v.Clone()
	}
	return out
}

// Equal reports whether two documents agree on ID, Kind and all fields.
func (d *Document) Equal(o *Document) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.ID != o.ID || d.Kind != o.Kind || len(d.Fields) != len(o.Fields) {
		return false
	}
	for name, a := range d.Fields {
		b, ok := o.Fields[name]
		if !ok || !a.Equal(b) {
			return false
		}
	}
	return true
}
