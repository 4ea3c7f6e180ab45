package facelet

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cube-scanner/pkg/geometry"
)

func uniform(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

func TestSimilarityPaletteSelf(t *testing.T) {
	t.Parallel()

	entries := DefaultPalette().Entries()
	for _, e := range entries {
		t.Run(e.Name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, 100.0, Similarity(e.Colour, e.Colour))
			for _, other := range entries {
				if other.Name == e.Name {
					continue
				}
				assert.Less(t, Similarity(e.Colour, other.Colour), 100.0, "against %s", other.Name)
			}
			assert.Equal(t, e.Name, DefaultPalette().Classify(e.Colour))
		})
	}
}

func TestSimilarityRange(t *testing.T) {
	t.Parallel()

	black := Colour{}
	white := Colour{R: 255, G: 255, B: 255}
	assert.Equal(t, 0.0, Similarity(black, white))
	assert.InDelta(t, 100-10.0/255*100, Similarity(Colour{R: 10, G: 10, B: 10}, black), 1e-9)
}

func TestRankTieKeepsPaletteOrder(t *testing.T) {
	t.Parallel()

	p, err := NewPalette(
		Entry{Name: "first", Colour: Colour{R: 100}},
		Entry{Name: "second", Colour: Colour{R: 100}},
		Entry{Name: "far", Colour: Colour{G: 255}},
	)
	require.NoError(t, err)

	scores := p.Rank(Colour{R: 90})
	require.Len(t, scores, 3)
	assert.Equal(t, "first", scores[0].Name)
	assert.Equal(t, "second", scores[1].Name)
	assert.Equal(t, scores[0].Similarity, scores[1].Similarity)
	assert.Equal(t, "far", scores[2].Name)
	assert.Equal(t, "first", p.Classify(Colour{R: 90}))
}

func TestClassifyAll(t *testing.T) {
	t.Parallel()

	p := DefaultPalette()
	got := p.ClassifyAll([]Colour{
		{R: 240, G: 235, B: 230}, // washed-out white
		{R: 20, G: 140, B: 80},   // dark green
		{R: 250, G: 120, B: 20},  // orange under warm light
		{R: 240, G: 200, B: 40},  // yellow
		{R: 10, G: 60, B: 150},   // blue
		{R: 160, G: 30, B: 50},   // red
	})
	assert.Equal(t, []string{White, Green, Orange, Yellow, Blue, Red}, got)
}

func TestNewPalette(t *testing.T) {
	t.Parallel()

	_, err := NewPalette()
	assert.ErrorIs(t, err, ErrEmptyPalette)

	_, err = NewPalette(Entry{Name: "a"}, Entry{Name: "a"})
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = NewPalette(Entry{Name: ""})
	assert.Error(t, err)

	entries := []Entry{{Name: "a"}, {Name: "b", Colour: Colour{B: 9}}}
	p, err := NewPalette(entries...)
	require.NoError(t, err)
	entries[0].Name = "mutated"
	assert.Equal(t, "a", p.Entries()[0].Name, "palette must not alias caller slice")
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, Colour{B: 9}, p.Entries()[1].Colour)
	assert.Equal(t, 0, Palette{}.Len())
}

func TestSampleQuadraticMean(t *testing.T) {
	t.Parallel()

	img := uniform(3, 3, color.Black)
	for x := 0; x < 3; x++ {
		img.SetRGBA(x, 2, color.RGBA{R: 255, G: 100, A: 255})
	}

	got, err := Sample(img, geometry.NewPoint2D(1.9, 1.2), 1)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(3*255*255/9.0), got.R, 1e-9)
	assert.InDelta(t, math.Sqrt(3*100*100/9.0), got.G, 1e-9)
	assert.Equal(t, 0.0, got.B)
	// Quadratic mean weighs the bright row above the arithmetic mean.
	assert.Greater(t, got.R, 255.0/3)
}

func TestSampleSquareSize(t *testing.T) {
	t.Parallel()

	// A bright pixel just inside the inclusive edge of the square must count.
	img := uniform(50, 50, color.Black)
	img.SetRGBA(30, 30, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	got, err := Sample(img, geometry.NewPoint2D(25, 25), 5)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(255*255/121.0), got.R, 1e-9)

	got, err = Sample(img, geometry.NewPoint2D(24, 24), 5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.R)
}

func TestSampleClipsToImage(t *testing.T) {
	t.Parallel()

	green := color.RGBA{R: 0, G: 155, B: 72, A: 255}
	img := uniform(10, 10, green)

	got, err := Sample(img, geometry.NewPoint2D(0, 0), DefaultOffset)
	require.NoError(t, err)
	assert.Equal(t, Colour{R: 0, G: 155, B: 72}, got)

	_, err = Sample(img, geometry.NewPoint2D(100, -100), 3)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestSampleAll(t *testing.T) {
	t.Parallel()

	img := uniform(40, 40, color.White)
	colours, err := SampleAll(img, []geometry.Point2D{{X: 5, Y: 5}, {X: 30, Y: 30}}, 2)
	require.NoError(t, err)
	assert.Len(t, colours, 2)

	_, err = SampleAll(img, []geometry.Point2D{{X: 5, Y: 5}, {X: 500, Y: 500}}, 2)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.Contains(t, err.Error(), "point 1")
}

func TestColourRGBA(t *testing.T) {
	t.Parallel()

	assert.Equal(t, color.RGBA{R: 183, G: 18, B: 52, A: 255}, Colour{R: 182.6, G: 18.2, B: 52}.RGBA())
}
