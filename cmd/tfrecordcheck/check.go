package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fwojciec/flickrwarc"
	"github.com/fwojciec/flickrwarc/tfrecord"
)

// Report counts the examples of one or more files.
type Report struct {
	Examples int
	Invalid  int
}

// Checker verifies example files.
type Checker struct {
	Decoder flickrwarc.DimensionDecoder
}

// CheckFile reads every record of path. Invalid examples are described on
// problems and counted; framing errors stop the file and are returned.
func (c *Checker) CheckFile(path string, compression tfrecord.Compression, problems io.Writer) (Report, error) {
	var report Report

	r, err := tfrecord.Open(path, compression)
	if err != nil {
		return report, err
	}
	defer r.Close()

	for {
		data, err := r.Next()
		if errors.Is(err, io.EOF) {
			return report, nil
		}
		if err != nil {
			return report, fmt.Errorf("record %d: %w", report.Examples, err)
		}

		if err := c.CheckRecord(data); err != nil {
			report.Invalid++
			fmt.Fprintf(problems, "%s: record %d: %v\n", path, report.Examples, err)
		}
		report.Examples++
	}
}

// CheckRecord verifies one serialized example: every feature is present
// with exactly one value of the expected type, and the image decodes to
// the stored dimensions.
func (c *Checker) CheckRecord(data []byte) error {
	features, err := tfrecord.UnmarshalExample(data)
	if err != nil {
		return err
	}

	for _, name := range flickrwarc.Int64FeatureNames {
		f, ok := features[name]
		if !ok {
			return fmt.Errorf("missing feature %q", name)
		}
		if f.Kind != flickrwarc.FeatureKindInt64 || len(f.Int64) != 1 {
			return fmt.Errorf("feature %q: want one int64 value", name)
		}
	}
	for _, name := range flickrwarc.BytesFeatureNames {
		f, ok := features[name]
		if !ok {
			return fmt.Errorf("missing feature %q", name)
		}
		if f.Kind != flickrwarc.FeatureKindBytes || len(f.Bytes) != 1 {
			return fmt.Errorf("feature %q: want one bytes value", name)
		}
	}

	file, _ := features.Bytes(flickrwarc.FeatureImage)
	dims, err := c.Decoder.DecodeDimensions(file)
	if err != nil {
		return err
	}

	width, _ := features.Int64(flickrwarc.FeatureWidth)
	height, _ := features.Int64(flickrwarc.FeatureHeight)
	if int64(dims.Width) != width || int64(dims.Height) != height {
		return fmt.Errorf("image is %dx%d, features say %dx%d", dims.Width, dims.Height, width, height)
	}
	return nil
}
