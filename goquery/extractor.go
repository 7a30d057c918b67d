package goquery

import (
	"fmt"

	"github.com/fwojciec/flickrwarc"
)

// Ensure Extractor implements flickrwarc.MetadataExtractor.
var _ flickrwarc.MetadataExtractor = (*Extractor)(nil)

// Extractor reads photo metadata from Flickr photo pages.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses the page and applies the photo page rules.
// Error codes from the rules are preserved through wrapping.
func (e *Extractor) Extract(html []byte, pageURL string) (*flickrwarc.ImageMetadata, error) {
	doc, err := Parse(html)
	if err != nil {
		return nil, err
	}

	meta, err := flickrwarc.ExtractImageMetadata(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pageURL, err)
	}
	return meta, nil
}
