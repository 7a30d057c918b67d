package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/flickrwarc"
	"github.com/fwojciec/flickrwarc/mock"
	"github.com/fwojciec/flickrwarc/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifestWriter_WriteExample(t *testing.T) {
	t.Parallel()

	newExample := func(src string) *flickrwarc.ImageExample {
		return flickrwarc.NewImageExample(&flickrwarc.ImageMetadata{
			ImgSrc:  src,
			Title:   "Sunset",
			Owner:   "alice",
			License: "https://creativecommons.org/licenses/by/2.0/",
		}, []byte("jpeg bytes "+src), flickrwarc.Dimensions{Width: 8, Height: 6})
	}

	t.Run("indexes written examples", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewManifestService(setupTestDB(t))
		ctx := context.Background()
		run := createTestRun(t, svc)

		var written int
		next := &mock.ExampleWriter{
			WriteExampleFn: func(context.Context, *flickrwarc.ImageExample) error {
				written++
				return nil
			},
		}
		w := sqlite.NewManifestWriter(next, svc, run.ID)

		require.NoError(t, w.WriteExample(ctx, newExample("https://live.staticflickr.com/1_a.jpg")))
		require.NoError(t, w.WriteExample(ctx, newExample("https://live.staticflickr.com/2_b.jpg")))

		assert.Equal(t, 2, written)
		entries, err := svc.FindEntries(ctx, run.ID)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, 1, entries[1].Position)
		assert.Equal(t, "alice", entries[0].Owner)
		assert.Equal(t, len("jpeg bytes https://live.staticflickr.com/1_a.jpg"), entries[0].Size)
		assert.Equal(t, sqlite.HashContent([]byte("jpeg bytes https://live.staticflickr.com/1_a.jpg")), entries[0].ContentHash)
	})

	t.Run("does not index failed writes", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewManifestService(setupTestDB(t))
		ctx := context.Background()
		run := createTestRun(t, svc)

		next := &mock.ExampleWriter{
			WriteExampleFn: func(context.Context, *flickrwarc.ImageExample) error {
				return errors.New("disk full")
			},
		}
		w := sqlite.NewManifestWriter(next, svc, run.ID)

		err := w.WriteExample(ctx, newExample("https://live.staticflickr.com/1_a.jpg"))

		require.Error(t, err)
		entries, err := svc.FindEntries(ctx, run.ID)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
