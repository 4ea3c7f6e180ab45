package image

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func TestSaveAndLoadPNG(t *testing.T) {
	t.Parallel()

	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	src.SetRGBA(2, 1, color.RGBA{R: 255, G: 88, A: 255})

	path := filepath.Join(t.TempDir(), "nested", "face.png")
	require.NoError(t, SavePNG(path, src))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), got.Bounds())
	r, g, b, _ := got.At(2, 1).RGBA()
	assert.Equal(t, []uint32{255, 88, 0}, []uint32{r >> 8, g >> 8, b >> 8})
}

func TestLoadBMP(t *testing.T) {
	t.Parallel()

	src := image.NewRGBA(image.Rect(0, 0, 5, 5))
	src.SetRGBA(0, 0, color.RGBA{B: 173, G: 70, A: 255})

	path := filepath.Join(t.TempDir(), "face.bmp")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, bmp.Encode(f, src))
	require.NoError(t, f.Close())

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Bounds().Dx())
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "garbage.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "failed to decode")
}

func TestIsSupportedFormat(t *testing.T) {
	t.Parallel()

	assert.True(t, IsSupportedFormat("a/b/FACE.JPG"))
	assert.True(t, IsSupportedFormat("scan.tif"))
	assert.False(t, IsSupportedFormat("notes.txt"))
}
