package badger

// Documents of every kind share one flat key space per tenant: the key is
// the document ID alone, with no kind namespacing. Enumeration across
// kinds disambiguates by filtering on the "kind" predicate field.
func makeDocumentKey(id string) []byte {
	return []byte(id)
}
