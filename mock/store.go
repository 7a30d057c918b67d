package mock

import "github.com/fwojciec/flickrwarc"

var _ flickrwarc.CorrelationStore = (*CorrelationStore)(nil)

// CorrelationStore is a mock implementation of flickrwarc.CorrelationStore.
type CorrelationStore struct {
	InsertFn func(url string, meta *flickrwarc.ImageMetadata)
	TakeFn   func(url string) (*flickrwarc.ImageMetadata, error)
	LenFn    func() int
}

func (s *CorrelationStore) Insert(url string, meta *flickrwarc.ImageMetadata) {
	s.InsertFn(url, meta)
}

func (s *CorrelationStore) Take(url string) (*flickrwarc.ImageMetadata, error) {
	return s.TakeFn(url)
}

func (s *CorrelationStore) Len() int {
	return s.LenFn()
}
