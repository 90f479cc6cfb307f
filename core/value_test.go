package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueEqual(t *testing.T) {
	tests := []struct {
		name string
		a    Value
		b    Value
		want bool
	}{
		{"null equals null", Null(), Null(), true},
		{"strings equal", String("a"), String("a"), true},
		{"strings differ", String("a"), String("b"), false},
		{"kind mismatch", String("1"), Int(1), false},
		{"ints equal", Int(42), Int(42), true},
		{"floats equal", Float(3.14), Float(3.14), true},
		{"floats differ", Float(3.14), Float(2.71), false},
		{"bools equal", Bool(true), Bool(true), true},
		{"bytes equal", Bytes([]byte{1, 2, 3}), Bytes([]byte{1, 2, 3}), true},
		{"bytes differ", Bytes([]byte{1, 2, 3}), Bytes([]byte{1, 2}), false},
		{"vectors equal", Vector([]float64{0.1, 0.2}), Vector([]float64{0.1, 0.2}), true},
		{"vectors differ", Vector([]float64{0.1}), Vector([]float64{0.2}), false},
		{"lists equal", List(String("a"), Int(1)), List(String("a"), Int(1)), true},
		{"lists differ", List(String("a")), List(String("b")), false},
		{
			"maps equal",
			Map(map[string]Value{"x": Int(1), "y": String("z")}),
			Map(map[string]Value{"y": String("z"), "x": Int(1)}),
			true,
		},
		{
			"maps differ",
			Map(map[string]Value{"x": Int(1)}),
			Map(map[string]Value{"x": Int(2)}),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
			assert.Equal(t, tt.want, tt.b.Equal(tt.a))
		})
	}
}

func TestValueClone(t *testing.T) {
	original := Map(map[string]Value{
		"blob": Bytes([]byte{1, 2, 3}),
		"vec":  Vector([]float64{0.5, 0.6}),
		"list": List(String("a"), Int(7)),
	})

	clone := original.Clone()
	require.True(t, original.Equal(clone))

	// Mutating the clone must not leak into the original.
	clone.Map["blob"].Blob[0] = 99
	clone.Map["vec"].Vector[0] = -1
	assert.Equal(t, byte(1), original.Map["blob"].Blob[0])
	assert.Equal(t, 0.5, original.Map["vec"].Vector[0])
}

func TestValueKindString(t *testing.T) {
	assert.Equal(t, "string", KindString.String())
	assert.Equal(t, "vector", KindVector.String())
	assert.Equal(t, "unknown", ValueKind(99).String())
}

func TestValidateDocument(t *testing.T) {
	t.Run("nil document", func(t *testing.T) {
		err := ValidateDocument(nil)
		assert.ErrorIs(t, err, ErrInvalidDocument)
	})

	t.Run("valid document", func(t *testing.T) {
		doc := NewDocument("note").
			Set("title", String("hello")).
			Set("nested", Map(map[string]Value{"x": Int(1)}))
		assert.NoError(t, ValidateDocument(doc))
	})

	t.Run("empty id is valid", func(t *testing.T) {
		doc := &Document{Kind: "note"}
		assert.NoError(t, ValidateDocument(doc))
	})

	t.Run("empty field name", func(t *testing.T) {
		doc := &Document{Fields: map[string]Value{"": String("x")}}
		err := ValidateDocument(doc)
		assert.ErrorIs(t, err, ErrEmptyFieldName)
	})

	t.Run("unknown kind tag", func(t *testing.T) {
		doc := &Document{Fields: map[string]Value{"bad": {Kind: ValueKind(42)}}}
		err := ValidateDocument(doc)
		assert.ErrorIs(t, err, ErrUnknownValueKind)
	})

	t.Run("nested empty map key", func(t *testing.T) {
		doc := &Document{Fields: map[string]Value{
			"m": Map(map[string]Value{"": Int(1)}),
		}}
		err := ValidateDocument(doc)
		assert.ErrorIs(t, err, ErrEmptyFieldName)
	})
}
