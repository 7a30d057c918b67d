package mock

import "github.com/fwojciec/flickrwarc"

var _ flickrwarc.DimensionDecoder = (*DimensionDecoder)(nil)

// DimensionDecoder is a mock implementation of flickrwarc.DimensionDecoder.
type DimensionDecoder struct {
	DecodeDimensionsFn func(data []byte) (flickrwarc.Dimensions, error)
}

func (d *DimensionDecoder) DecodeDimensions(data []byte) (flickrwarc.Dimensions, error) {
	return d.DecodeDimensionsFn(data)
}
