package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument(t *testing.T) {
	a := NewDocument("note")
	b := NewDocument("note")

	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, b.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "note", a.Kind)
	assert.NotNil(t, a.Fields)
}

func TestIDFromContent(t *testing.T) {
	a := IDFromContent("hello")
	b := IDFromContent("hello")
	c := IDFromContent("world")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16) // 8 bytes hex encoded
}

func TestDocumentEqual(t *testing.T) {
	a := &Document{ID: "x1", Kind: "note", Fields: map[string]Value{
		"title": String("hello"),
		"vec":   Vector([]float64{1, 2}),
	}}
	b := a.Clone()
	require.True(t, a.Equal(b))

	b.Fields["title"] = String("bye")
	assert.False(t, a.Equal(b))

	c := a.Clone()
	c.ID = "x2"
	assert.False(t, a.Equal(c))

	var nilDoc *Document
	assert.False(t, a.Equal(nilDoc))
	assert.True(t, nilDoc.Equal(nil))
}

func TestDocumentSetAndField(t *testing.T) {
	doc := &Document{ID: "x1"}
	doc.Set("a", Int(1)).Set("b", String("two"))

	v, ok := doc.Field("a")
	require.True(t, ok)
	assert.Equal(t, int64(1), v.Int)

	_, ok = doc.Field("missing")
	assert.False(t, ok)
}

func TestPredicateMatches(t *testing.T) {
	doc := &Document{ID: "x1", Kind: "note", Fields: map[string]Value{
		"author": String("alice"),
		"stars":  Int(5),
	}}

	tests := []struct {
		name string
		pred Predicate
		want bool
	}{
		{"empty predicate matches all", Predicate{}, true},
		{"single field match", Predicate{"author": String("alice")}, true},
		{"single field mismatch", Predicate{"author": String("bob")}, false},
		{"all fields must match", Predicate{"author": String("alice"), "stars": Int(4)}, false},
		{"conjunction matches", Predicate{"author": String("alice"), "stars": Int(5)}, true},
		{"id header match", Predicate{"id": String("x1")}, true},
		{"id header mismatch", Predicate{"id": String("x2")}, false},
		{"kind header match", Predicate{"kind": String("note")}, true},
		{"kind header mismatch", Predicate{"kind": String("task")}, false},
		{"absent field never matches", Predicate{"missing": Null()}, false},
		{"kind of value matters", Predicate{"stars": Float(5)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pred.Matches(doc))
		})
	}

	t.Run("nil document never matches", func(t *testing.T) {
		assert.False(t, Predicate{}.Matches(nil))
	})
}
