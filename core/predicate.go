package core

// Predicate is an exact-match filter over document fields. A document
// matches only if every entry matches, a logical AND across all supplied
// fields. The names "id" and "kind" match the document header; all other
// names match the open field set. Documents with an open field literally
// named "id" or "kind" cannot be filtered on it: the header wins.
type Predicate map[string]Value

// Matches reports whether the document satisfies every predicate entry.
// An empty predicate matches every document.
func (p Predicate) Matches(d *Document) bool {
	if d == nil {
		return false
	}
	for name, want := range p {
		switch name {
		case "id":
			if want.Kind != KindString || want.Str != d.ID {
				return false
			}
		case "kind":
			if want.Kind != KindString || want.Str != d.Kind {
				return false
			}
		default:
			got, ok := d.Fields[name]
			if !ok || !got.Equal(want) {
				return false
			}
		}
	}
	return true
}
