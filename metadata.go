package flickrwarc

import "context"

// ImageMetadata is the metadata scraped from one photo page.
type ImageMetadata struct {
	CommentCount uint64
	FaveCount    uint64
	ViewCount    uint64

	License string

	Tags        string
	Title       string
	Description string

	Owner string

	// ImgSrc is the absolute URL of the main photo and the correlation key.
	ImgSrc string
}

// MetadataExtractor extracts image metadata from a photo page.
type MetadataExtractor interface {
	// Extract parses the page HTML and returns its metadata.
	// Pages that are deliberately skipped return an EFILTERED error.
	Extract(html []byte, pageURL string) (*ImageMetadata, error)
}

// CorrelationStore holds page metadata until the matching image record
// arrives. It is owned by a single pipeline run and is not safe for
// concurrent use.
type CorrelationStore interface {
	// Insert stores meta under url, replacing any earlier entry.
	Insert(url string, meta *ImageMetadata)

	// Take removes and returns the metadata stored under url.
	// Returns ENOTFOUND if there is none.
	Take(url string) (*ImageMetadata, error)

	// Len returns the number of entries waiting for their image.
	Len() int
}

// Dimensions are the pixel dimensions of a decoded image.
type Dimensions struct {
	Width  int
	Height int
}

// DimensionDecoder reads image dimensions from encoded image bytes.
type DimensionDecoder interface {
	DecodeDimensions(data []byte) (Dimensions, error)
}

// ExampleWriter appends examples to durable output.
type ExampleWriter interface {
	WriteExample(ctx context.Context, ex *ImageExample) error
}
