package mock

import "github.com/fwojciec/flickrwarc"

var _ flickrwarc.RecordReader = (*RecordReader)(nil)

// RecordReader is a mock implementation of flickrwarc.RecordReader.
type RecordReader struct {
	NextFn func() (*flickrwarc.Record, error)
}

func (r *RecordReader) Next() (*flickrwarc.Record, error) {
	return r.NextFn()
}
