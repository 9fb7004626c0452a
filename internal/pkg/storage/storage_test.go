package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "upload/ab/photo.jpg", strings.NewReader("catch of the day")))

	rc, err := s.Get(ctx, "upload/ab/photo.jpg")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "catch of the day", string(data))

	require.NoError(t, s.Delete(ctx, "upload/ab/photo.jpg"))
	require.NoError(t, s.Delete(ctx, "upload/ab/photo.jpg"), "deleting twice is fine")

	_, err = s.Get(ctx, "upload/ab/photo.jpg")
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestLocalStorage_RejectsEscapingPaths(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	for _, p := range []string{"../outside", "/etc/passwd", "a/../../b", ""} {
		assert.ErrorIs(t, s.Save(ctx, p, strings.NewReader("x")), ErrInvalidPath, p)
	}
}

func TestImageProcessor_GenerateThumbnail(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 800, 400))
	for x := 0; x < 800; x++ {
		src.Set(x, 10, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	p := NewImageProcessor()
	thumb, err := p.GenerateThumbnail(&buf, 200, 200)
	require.NoError(t, err)

	img, format, err := image.Decode(thumb)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())

	_, err = p.GenerateThumbnail(strings.NewReader("not an image"), 200, 200)
	assert.Error(t, err)
}
