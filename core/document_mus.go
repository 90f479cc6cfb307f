package core

import (
	"fmt"
	"slices"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written mus-format serializers for Value and Document. The Value
// tagged union and the open field map are outside what musgen can generate,
// and field maps must encode deterministically (names sorted) so identical
// documents produce identical bytes.

var (
	// ValueMUS serializes the Value tagged union.
	ValueMUS = valueMUS{}
	// DocumentMUS serializes a complete Document.
	DocumentMUS = documentMUS{}
)

var (
	_ mus.Serializer[Value]    = ValueMUS
	_ mus.Serializer[Document] = DocumentMUS
)

type valueMUS struct{}

func (s valueMUS) Marshal(v Value, bs []byte) (n int) {
	n = varint.Int.Marshal(int(v.Kind), bs)
	switch v.Kind {
	case KindString:
		n += ord.String.Marshal(v.Str, bs[n:])
	case KindInt:
		n += varint.Int64.Marshal(v.Int, bs[n:])
	case KindFloat:
		n += varint.Float64.Marshal(v.Float, bs[n:])
	case KindBool:
		n += ord.Bool.Marshal(v.Bool, bs[n:])
	case KindBytes:
		n += varint.Int.Marshal(len(v.Blob), bs[n:])
		n += copy(bs[n:], v.Blob)
	case KindVector:
		n += varint.Int.Marshal(len(v.Vector), bs[n:])
		for _, f := range v.Vector {
			n += varint.Float64.Marshal(f, bs[n:])
		}
	case KindList:
		n += varint.Int.Marshal(len(v.List), bs[n:])
		for _, e := range v.List {
			n += s.Marshal(e, bs[n:])
		}
	case KindMap:
		n += s.marshalMap(v.Map, bs[n:])
	}
	return
}

func (s valueMUS) Unmarshal(bs []byte) (v Value, n int, err error) {
	kind, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	if kind < int(KindNull) || kind > int(KindMap) {
		err = fmt.Errorf("%w: %d", ErrUnknownValueKind, kind)
		return
	}
	v.Kind = ValueKind(kind)

	var n1 int
	switch v.Kind {
	case KindNull:
	case KindString:
		v.Str, n1, err = ord.String.Unmarshal(bs[n:])
	case KindInt:
		v.Int, n1, err = varint.Int64.Unmarshal(bs[n:])
	case KindFloat:
		v.Float, n1, err = varint.Float64.Unmarshal(bs[n:])
	case KindBool:
		v.Bool, n1, err = ord.Bool.Unmarshal(bs[n:])
	case KindBytes:
		v.Blob, n1, err = s.unmarshalBytes(bs[n:])
	case KindVector:
		v.Vector, n1, err = s.unmarshalVector(bs[n:])
	case KindList:
		v.List, n1, err = s.unmarshalList(bs[n:])
	case KindMap:
		v.Map, n1, err = s.unmarshalMap(bs[n:])
	}
	n += n1
	return
}

func (s valueMUS) Size(v Value) (size int) {
	size = varint.Int.Size(int(v.Kind))
	switch v.Kind {
	case KindString:
		size += ord.String.Size(v.Str)
	case KindInt:
		size += varint.Int64.Size(v.Int)
	case KindFloat:
		size += varint.Float64.Size(v.Float)
	case KindBool:
		size += ord.Bool.Size(v.Bool)
	case KindBytes:
		size += varint.Int.Size(len(v.Blob)) + len(v.Blob)
	case KindVector:
		size += varint.Int.Size(len(v.Vector))
		for _, f := range v.Vector {
			size += varint.Float64.Size(f)
		}
	case KindList:
		size += varint.Int.Size(len(v.List))
		for _, e := range v.List {
			size += s.Size(e)
		}
	case KindMap:
		size += s.sizeMap(v.Map)
	}
	return
}

func (s valueMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

func (s valueMUS) unmarshalBytes(bs []byte) (v []byte, n int, err error) {
	l, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	if l < 0 || l > len(bs)-n {
		err = ErrTruncatedValue
		return
	}
	v = make([]byte, l)
	n += copy(v, bs[n:n+l])
	return
}

func (s valueMUS) unmarshalVector(bs []byte) (v []float64, n int, err error) {
	l, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	if l < 0 || l > len(bs)-n {
		err = ErrTruncatedValue
		return
	}
	v = make([]float64, l)
	var n1 int
	for i := range v {
		v[i], n1, err = varint.Float64.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

func (s valueMUS) unmarshalList(bs []byte) (v []Value, n int, err error) {
	l, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	if l < 0 || l > len(bs)-n {
		err = ErrTruncatedValue
		return
	}
	v = make([]Value, l)
	var n1 int
	for i := range v {
		v[i], n1, err = s.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

// marshalMap encodes a field map as a count followed by name/value pairs
// in sorted name order.
func (s valueMUS) marshalMap(m map[string]Value, bs []byte) (n int) {
	n = varint.Int.Marshal(len(m), bs)
	for _, name := range sortedNames(m) {
		n += ord.String.Marshal(name, bs[n:])
		n += s.Marshal(m[name], bs[n:])
	}
	return
}

func (s valueMUS) unmarshalMap(bs []byte) (m map[string]Value, n int, err error) {
	l, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	if l < 0 || l > len(bs)-n {
		err = ErrTruncatedValue
		return
	}
	m = make(map[string]Value, l)
	var (
		name string
		v    Value
		n1   int
	)
	for i := 0; i < l; i++ {
		name, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
		v, n1, err = s.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
		m[name] = v
	}
	return
}

func (s valueMUS) sizeMap(m map[string]Value) (size int) {
	size = varint.Int.Size(len(m))
	for name, v := range m {
		size += ord.String.Size(name) + s.Size(v)
	}
	return
}

func sortedNames(m map[string]Value) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

type documentMUS struct{}

func (documentMUS) Marshal(d Document, bs []byte) (n int) {
	n = ord.String.Marshal(d.ID, bs)
	n += ord.String.Marshal(d.Kind, bs[n:])
	n += ValueMUS.marshalMap(d.Fields, bs[n:])
	return
}

func (documentMUS) Unmarshal(bs []byte) (d Document, n int, err error) {
	d.ID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	d.Kind, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	d.Fields, n1, err = ValueMUS.unmarshalMap(bs[n:])
	n += n1
	return
}

func (documentMUS) Size(d Document) int {
	return ord.String.Size(d.ID) + ord.String.Size(d.Kind) + ValueMUS.sizeMap(d.Fields)
}

func (documentMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = DocumentMUS.Unmarshal(bs)
	return
}
