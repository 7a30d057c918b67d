package mock

import "github.com/fwojciec/flickrwarc"

var (
	_ flickrwarc.Document = (*Document)(nil)
	_ flickrwarc.Element  = (*Element)(nil)
)

// Document is a mock implementation of flickrwarc.Document.
type Document struct {
	SelectOneFn func(selector string) (flickrwarc.Element, error)
	HasFn       func(selector string) bool
}

func (d *Document) SelectOne(selector string) (flickrwarc.Element, error) {
	return d.SelectOneFn(selector)
}

func (d *Document) Has(selector string) bool {
	return d.HasFn(selector)
}

// Element is a mock implementation of flickrwarc.Element.
type Element struct {
	AttrFn func(name string) (string, bool)
	TextFn func() string
}

func (e *Element) Attr(name string) (string, bool) {
	return e.AttrFn(name)
}

func (e *Element) Text() string {
	return e.TextFn()
}
