package mock

import (
	"context"

	"github.com/fwojciec/flickrwarc"
)

var _ flickrwarc.ExampleWriter = (*ExampleWriter)(nil)

// ExampleWriter is a mock implementation of flickrwarc.ExampleWriter.
type ExampleWriter struct {
	WriteExampleFn func(ctx context.Context, ex *flickrwarc.ImageExample) error
}

func (w *ExampleWriter) WriteExample(ctx context.Context, ex *flickrwarc.ImageExample) error {
	return w.WriteExampleFn(ctx, ex)
}
