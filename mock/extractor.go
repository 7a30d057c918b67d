package mock

import "github.com/fwojciec/flickrwarc"

var _ flickrwarc.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor is a mock implementation of flickrwarc.MetadataExtractor.
type MetadataExtractor struct {
	ExtractFn func(html []byte, pageURL string) (*flickrwarc.ImageMetadata, error)
}

func (e *MetadataExtractor) Extract(html []byte, pageURL string) (*flickrwarc.ImageMetadata, error) {
	return e.ExtractFn(html, pageURL)
}
