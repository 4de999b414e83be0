package gallery

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNewImage(t *testing.T) {
	data := pngBytes(t, color.RGBA{R: 200, A: 255})

	img, err := New("red.png", data)
	require.NoError(t, err)

	assert.NotEmpty(t, img.ID)
	assert.True(t, strings.HasPrefix(img.Data, "data:image/png;base64,"))
	assert.Equal(t, "image/png", img.MimeType())
	assert.Equal(t, "red.png", img.Label())
	assert.False(t, img.CreatedAt.IsZero())

	decoded, err := img.Bytes()
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestNewImageIDsAreUnique(t *testing.T) {
	data := pngBytes(t, color.White)
	a, err := New("", data)
	require.NoError(t, err)
	b, err := New("", data)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.ID[:8], a.Label())
}

func TestNewRejectsNonImage(t *testing.T) {
	_, err := New("notes.txt", []byte("just some text"))
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wall.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, color.Black), 0644))

	img, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "wall.png", img.Name)
	assert.Equal(t, "image/png", img.MimeType())

	_, err = FromFile(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

func TestBytesRejectsBadData(t *testing.T) {
	cases := []string{
		"",
		"https://example.com/a.png",
		"data:image/png,rawpayload",
		"data:image/png;base64,!!!",
	}
	for _, data := range cases {
		_, err := Image{ID: "x", Data: data}.Bytes()
		assert.Error(t, err, data)
	}
	assert.Equal(t, "", Image{Data: "nope"}.MimeType())
}
