package flickrwarc_test

import (
	"testing"

	"github.com/fwojciec/flickrwarc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageExample_Features(t *testing.T) {
	t.Parallel()

	meta := &flickrwarc.ImageMetadata{
		CommentCount: 1234,
		FaveCount:    56,
		ViewCount:    789,
		License:      "https://creativecommons.org/licenses/by/2.0/",
		Tags:         "sunset, bay",
		Title:        "Sunset",
		Description:  "A view.",
		Owner:        "alice",
		ImgSrc:       "https://live.staticflickr.com/123_abc.jpg",
	}
	file := []byte{0xff, 0xd8, 0xff}

	ex := flickrwarc.NewImageExample(meta, file, flickrwarc.Dimensions{Width: 640, Height: 480})
	f := ex.Features()

	t.Run("contains every named feature with its kind", func(t *testing.T) {
		t.Parallel()

		assert.Len(t, f, len(flickrwarc.Int64FeatureNames)+len(flickrwarc.BytesFeatureNames))
		for _, name := range flickrwarc.Int64FeatureNames {
			assert.Equal(t, flickrwarc.FeatureKindInt64, f[name].Kind, name)
		}
		for _, name := range flickrwarc.BytesFeatureNames {
			assert.Equal(t, flickrwarc.FeatureKindBytes, f[name].Kind, name)
		}
	})

	t.Run("carries metadata and dimensions", func(t *testing.T) {
		t.Parallel()

		v, ok := f.Int64(flickrwarc.FeatureCommentCount)
		require.True(t, ok)
		assert.Equal(t, int64(1234), v)

		v, _ = f.Int64(flickrwarc.FeatureWidth)
		assert.Equal(t, int64(640), v)
		v, _ = f.Int64(flickrwarc.FeatureHeight)
		assert.Equal(t, int64(480), v)

		s, ok := f.String(flickrwarc.FeatureOwner)
		require.True(t, ok)
		assert.Equal(t, "alice", s)

		img, ok := f.Bytes(flickrwarc.FeatureImage)
		require.True(t, ok)
		assert.Equal(t, file, img)
	})

	t.Run("empty strings are still present", func(t *testing.T) {
		t.Parallel()

		ex := flickrwarc.NewImageExample(&flickrwarc.ImageMetadata{}, nil, flickrwarc.Dimensions{})

		s, ok := ex.Features().String(flickrwarc.FeatureTitle)
		assert.True(t, ok)
		assert.Empty(t, s)
	})

	t.Run("typed accessors reject the wrong kind", func(t *testing.T) {
		t.Parallel()

		_, ok := f.Int64(flickrwarc.FeatureTitle)
		assert.False(t, ok)
		_, ok = f.Bytes(flickrwarc.FeatureWidth)
		assert.False(t, ok)
		_, ok = f.Bytes("missing")
		assert.False(t, ok)
	})
}

func TestNewImageExample_CopiesMetadata(t *testing.T) {
	t.Parallel()

	meta := &flickrwarc.ImageMetadata{Title: "before"}
	ex := flickrwarc.NewImageExample(meta, nil, flickrwarc.Dimensions{})
	meta.Title = "after"

	assert.Equal(t, "before", ex.Metadata.Title)
}
