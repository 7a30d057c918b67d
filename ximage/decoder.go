// Package ximage decodes image dimensions with the standard image codecs
// plus the extra formats from golang.org/x/image.
package ximage

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/fwojciec/flickrwarc"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Ensure Decoder implements flickrwarc.DimensionDecoder.
var _ flickrwarc.DimensionDecoder = (*Decoder)(nil)

// Decoder reads dimensions from the image header without decoding pixels.
type Decoder struct{}

// NewDecoder creates a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// DecodeDimensions returns the width and height of an encoded image.
func (d *Decoder) DecodeDimensions(data []byte) (flickrwarc.Dimensions, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return flickrwarc.Dimensions{}, flickrwarc.Errorf(flickrwarc.EINVALID, "decode image: %v", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return flickrwarc.Dimensions{}, flickrwarc.Errorf(flickrwarc.EINVALID, "%s image has empty dimensions", format)
	}
	return flickrwarc.Dimensions{Width: cfg.Width, Height: cfg.Height}, nil
}
