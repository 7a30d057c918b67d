// Package goquery implements flickrwarc.Document and the photo page
// extractor on top of goquery.
package goquery

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/flickrwarc"
)

// Compile-time interface verification.
var (
	_ flickrwarc.Document = (*Document)(nil)
	_ flickrwarc.Element  = (*Element)(nil)
)

// Document wraps a parsed goquery document.
type Document struct {
	doc *goquery.Document
}

// Parse parses an HTML page.
func Parse(html []byte) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, flickrwarc.Errorf(flickrwarc.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Document{doc: doc}, nil
}

// SelectOne returns the only element matching selector.
func (d *Document) SelectOne(selector string) (flickrwarc.Element, error) {
	sel := d.doc.Find(selector)
	switch n := sel.Length(); n {
	case 0:
		return nil, flickrwarc.Errorf(flickrwarc.ENOTFOUND, "no element matches %s", selector)
	case 1:
		return &Element{sel: sel}, nil
	default:
		return nil, flickrwarc.Errorf(flickrwarc.ECONFLICT, "%d elements match %s", n, selector)
	}
}

// Has reports whether any element matches selector.
func (d *Document) Has(selector string) bool {
	return d.doc.Find(selector).Length() > 0
}

// Element is a single-node selection.
type Element struct {
	sel *goquery.Selection
}

// Attr returns the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

// Text returns the text of the element and its descendants.
func (e *Element) Text() string {
	return e.sel.Text()
}
