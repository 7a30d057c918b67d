package flickrwarc

// Feature names written for every example.
const (
	FeatureCommentCount = "comment_count"
	FeatureFaveCount    = "fave_count"
	FeatureViewCount    = "view_count"
	FeatureHeight       = "height"
	FeatureWidth        = "width"
	FeatureLicense      = "license"
	FeatureTags         = "tags"
	FeatureTitle        = "title"
	FeatureDescription  = "description"
	FeatureOwner        = "owner"
	FeatureImgSrc       = "img_src"
	FeatureImage        = "image"
)

// Int64FeatureNames lists the features stored as int64 lists.
var Int64FeatureNames = []string{
	FeatureCommentCount,
	FeatureFaveCount,
	FeatureViewCount,
	FeatureHeight,
	FeatureWidth,
}

// BytesFeatureNames lists the features stored as bytes lists.
var BytesFeatureNames = []string{
	FeatureLicense,
	FeatureTags,
	FeatureTitle,
	FeatureDescription,
	FeatureOwner,
	FeatureImgSrc,
	FeatureImage,
}

// ImageExample pairs an image payload with its page metadata.
type ImageExample struct {
	Metadata ImageMetadata

	File   []byte
	Width  int
	Height int
}

// NewImageExample assembles an example from consumed metadata, the image
// payload and its decoded dimensions.
func NewImageExample(meta *ImageMetadata, file []byte, dims Dimensions) *ImageExample {
	return &ImageExample{
		Metadata: *meta,
		File:     file,
		Width:    dims.Width,
		Height:   dims.Height,
	}
}

// FeatureKind is the value list type of a Feature.
type FeatureKind int

const (
	FeatureKindBytes FeatureKind = iota
	FeatureKindInt64
)

// Feature is one named value list in an output record.
type Feature struct {
	Kind  FeatureKind
	Bytes [][]byte
	Int64 []int64
}

// Int64Feature returns a single-value int64 feature.
func Int64Feature(v int64) Feature {
	return Feature{Kind: FeatureKindInt64, Int64: []int64{v}}
}

// BytesFeature returns a single-value bytes feature.
func BytesFeature(b []byte) Feature {
	return Feature{Kind: FeatureKindBytes, Bytes: [][]byte{b}}
}

// StringFeature returns a single-value bytes feature holding s.
func StringFeature(s string) Feature {
	return BytesFeature([]byte(s))
}

// Features is the feature mapping written to the output sink per example.
type Features map[string]Feature

// Features converts the example to its output feature mapping.
func (e *ImageExample) Features() Features {
	m := e.Metadata
	return Features{
		FeatureCommentCount: Int64Feature(int64(m.CommentCount)),
		FeatureFaveCount:    Int64Feature(int64(m.FaveCount)),
		FeatureViewCount:    Int64Feature(int64(m.ViewCount)),
		FeatureHeight:       Int64Feature(int64(e.Height)),
		FeatureWidth:        Int64Feature(int64(e.Width)),
		FeatureLicense:      StringFeature(m.License),
		FeatureTags:         StringFeature(m.Tags),
		FeatureTitle:        StringFeature(m.Title),
		FeatureDescription:  StringFeature(m.Description),
		FeatureOwner:        StringFeature(m.Owner),
		FeatureImgSrc:       StringFeature(m.ImgSrc),
		FeatureImage:        BytesFeature(e.File),
	}
}

// Int64 returns the first value of an int64 feature.
func (f Features) Int64(name string) (int64, bool) {
	v, ok := f[name]
	if !ok || v.Kind != FeatureKindInt64 || len(v.Int64) == 0 {
		return 0, false
	}
	return v.Int64[0], true
}

// Bytes returns the first value of a bytes feature.
func (f Features) Bytes(name string) ([]byte, bool) {
	v, ok := f[name]
	if !ok || v.Kind != FeatureKindBytes || len(v.Bytes) == 0 {
		return nil, false
	}
	return v.Bytes[0], true
}

// String returns the first value of a bytes feature as a string.
func (f Features) String(name string) (string, bool) {
	b, ok := f.Bytes(name)
	return string(b), ok
}
