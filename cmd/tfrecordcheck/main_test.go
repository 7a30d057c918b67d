package main_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/flickrwarc"
	main "github.com/fwojciec/flickrwarc/cmd/tfrecordcheck"
	"github.com/fwojciec/flickrwarc/tfrecord"
	"github.com/fwojciec/flickrwarc/ximage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngImage(t *testing.T, w, h int) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func validExample(t *testing.T) *flickrwarc.ImageExample {
	t.Helper()

	return flickrwarc.NewImageExample(&flickrwarc.ImageMetadata{
		CommentCount: 1,
		Title:        "Pier",
		ImgSrc:       "https://live.staticflickr.com/1_a.jpg",
	}, pngImage(t, 5, 4), flickrwarc.Dimensions{Width: 5, Height: 4})
}

func writeFile(t *testing.T, c tfrecord.Compression, records ...[]byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "out.tfrecord")
	w, err := tfrecord.Create(path, tfrecord.WithCompression(c))
	require.NoError(t, err)
	for _, r := range records {
		require.NoError(t, w.Write(r))
	}
	require.NoError(t, w.Close())
	return path
}

func TestCLI_ShowsHelpWhenAsked(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := main.NewMain().Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "tfrecordcheck")
	assert.Contains(t, stdout.String(), "--compressed")
}

func TestCLI_ChecksFiles(t *testing.T) {
	t.Parallel()

	t.Run("accepts valid examples", func(t *testing.T) {
		t.Parallel()

		record := tfrecord.MarshalExample(validExample(t).Features())
		path := writeFile(t, tfrecord.CompressionNone, record, record)

		var stdout, stderr bytes.Buffer
		err := main.NewMain().Run(context.Background(), []string{path}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "2 examples, 0 invalid")
		assert.Empty(t, stderr.String())
	})

	t.Run("reads compressed files", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, tfrecord.CompressionGzip, tfrecord.MarshalExample(validExample(t).Features()))

		var stdout, stderr bytes.Buffer
		err := main.NewMain().Run(context.Background(), []string{"--compressed", path}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "1 examples, 0 invalid")
	})

	t.Run("reports invalid examples and totals", func(t *testing.T) {
		t.Parallel()

		good := writeFile(t, tfrecord.CompressionNone, tfrecord.MarshalExample(validExample(t).Features()))

		missing := validExample(t).Features()
		delete(missing, flickrwarc.FeatureOwner)
		bad := writeFile(t, tfrecord.CompressionNone, tfrecord.MarshalExample(missing))

		var stdout, stderr bytes.Buffer
		err := main.NewMain().Run(context.Background(), []string{good, bad}, &stdout, &stderr)

		require.Error(t, err)
		assert.Contains(t, stdout.String(), "total: 2 examples, 1 invalid")
		assert.Contains(t, stderr.String(), `missing feature "owner"`)
	})

	t.Run("fails on corrupt framing", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, tfrecord.CompressionNone, tfrecord.MarshalExample(validExample(t).Features()))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		data[len(data)-1] ^= 0xff
		require.NoError(t, os.WriteFile(path, data, 0o644))

		var stdout, stderr bytes.Buffer
		err = main.NewMain().Run(context.Background(), []string{path}, &stdout, &stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "corrupt record data")
	})
}

func TestChecker_CheckRecord(t *testing.T) {
	t.Parallel()

	checker := &main.Checker{Decoder: ximage.NewDecoder()}

	t.Run("detects dimension mismatch", func(t *testing.T) {
		t.Parallel()

		ex := validExample(t)
		ex.Width = 6

		err := checker.CheckRecord(tfrecord.MarshalExample(ex.Features()))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "image is 5x4, features say 6x4")
	})

	t.Run("detects wrong feature type", func(t *testing.T) {
		t.Parallel()

		features := validExample(t).Features()
		features[flickrwarc.FeatureWidth] = flickrwarc.StringFeature("5")

		err := checker.CheckRecord(tfrecord.MarshalExample(features))

		require.Error(t, err)
		assert.Contains(t, err.Error(), `feature "width": want one int64 value`)
	})

	t.Run("detects undecodable image", func(t *testing.T) {
		t.Parallel()

		features := validExample(t).Features()
		features[flickrwarc.FeatureImage] = flickrwarc.BytesFeature([]byte("not an image"))

		err := checker.CheckRecord(tfrecord.MarshalExample(features))

		require.Error(t, err)
	})
}
