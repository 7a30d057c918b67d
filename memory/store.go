// Package memory provides the in-memory correlation store.
package memory

import (
	"github.com/fwojciec/flickrwarc"
	"github.com/fwojciec/flickrwarc/bloom"
)

// Compile-time interface verification.
var _ flickrwarc.CorrelationStore = (*Store)(nil)

// Store maps canonical image URLs to page metadata waiting for its image.
// Consumed URLs are remembered in a Bloom filter so a repeated image can be
// reported as such.
type Store struct {
	pending  map[string]*flickrwarc.ImageMetadata
	consumed *bloom.Filter
}

// NewStore creates a Store. consumed may be nil, in which case a repeated
// image is reported as a plain miss.
func NewStore(consumed *bloom.Filter) *Store {
	return &Store{
		pending:  make(map[string]*flickrwarc.ImageMetadata),
		consumed: consumed,
	}
}

// Insert stores meta under url. A later page for the same image wins.
func (s *Store) Insert(url string, meta *flickrwarc.ImageMetadata) {
	s.pending[url] = meta
}

// Take removes and returns the metadata for url.
func (s *Store) Take(url string) (*flickrwarc.ImageMetadata, error) {
	meta, ok := s.pending[url]
	if !ok {
		if s.consumed != nil && s.consumed.Contains(url) {
			return nil, flickrwarc.Errorf(flickrwarc.ENOTFOUND, "image not in meta (already consumed): %s", url)
		}
		return nil, flickrwarc.Errorf(flickrwarc.ENOTFOUND, "image not in meta: %s", url)
	}

	delete(s.pending, url)
	if s.consumed != nil {
		s.consumed.Add(url)
	}
	return meta, nil
}

// Len returns the number of entries still waiting for their image.
func (s *Store) Len() int {
	return len(s.pending)
}
