package flickrwarc

// Document is a parsed HTML page that can be queried with CSS selectors.
type Document interface {
	// SelectOne returns the only element matching selector.
	// Returns ENOTFOUND if nothing matches and ECONFLICT if several do.
	SelectOne(selector string) (Element, error)

	// Has reports whether at least one element matches selector.
	Has(selector string) bool
}

// Element is a single node selected from a Document.
type Element interface {
	// Attr returns the value of the named attribute.
	Attr(name string) (string, bool)

	// Text returns the combined text content of the element.
	Text() string
}
