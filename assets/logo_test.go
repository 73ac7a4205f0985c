package assets

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	img.Set(1, 1, color.RGBA{G: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoadPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kite.png")
	data := samplePNG(t)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	res := NewLoader(path).Load()
	require.NoError(t, res.Err)
	require.NotNil(t, res.Image)
	assert.Equal(t, "png", res.Image.Format)
	assert.Equal(t, 20, res.Image.PixelWidth)
	assert.Equal(t, 10, res.Image.PixelHeight)
	assert.Equal(t, data, res.Image.Data)
}

func TestLoadIsComputedOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kite.png")
	require.NoError(t, os.WriteFile(path, samplePNG(t), 0o644))

	l := NewLoader(path)
	first := l.Load()
	require.NoError(t, os.Remove(path))
	second := l.Load()
	assert.Same(t, first.Image, second.Image)
}

func TestLoadFailuresAreCaptured(t *testing.T) {
	res := NewLoader(filepath.Join(t.TempDir(), "missing.webp")).Load()
	assert.Nil(t, res.Image)
	var loadErr *LoadError
	require.True(t, errors.As(res.Err, &loadErr))
	assert.True(t, errors.Is(res.Err, os.ErrNotExist))

	res = NewLoader("").Load()
	assert.True(t, errors.Is(res.Err, ErrNoLogo))

	corrupt := filepath.Join(t.TempDir(), "corrupt.png")
	require.NoError(t, os.WriteFile(corrupt, []byte("not an image"), 0o644))
	res = NewLoader(corrupt).Load()
	assert.Nil(t, res.Image)
	assert.Error(t, res.Err)

	truncated := filepath.Join(t.TempDir(), "truncated.png")
	data := samplePNG(t)
	require.NoError(t, os.WriteFile(truncated, data[:len(data)-20], 0o644))
	res = NewLoader(truncated).Load()
	assert.Error(t, res.Err)
}

// 非 PNG/JPEG 的格式会被转码为 PNG。
func TestDecodeTranscodesToPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, image.NewPaletted(image.Rect(0, 0, 8, 4), color.Palette{color.Black, color.White}), nil))

	res, err := Decode("logo.gif", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "png", res.Format)
	assert.Equal(t, 8, res.PixelWidth)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 4, cfg.Height)
}
