// Package facelet samples the colour at each facelet centre and classifies
// it against a reference palette.
package facelet

import (
	"errors"
	"fmt"
	"image/color"

	"cube-scanner/pkg/colorutil"
)

// Colour is a sampled or reference colour with channels in [0, 255].
type Colour struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// RGBA returns the nearest opaque 8-bit colour.
func (c Colour) RGBA() color.RGBA {
	return colorutil.RGBA8(c.R, c.G, c.B)
}

func (c Colour) String() string {
	return fmt.Sprintf("rgb(%.0f, %.0f, %.0f)", c.R, c.G, c.B)
}

// Reference colour names of a standard cube.
const (
	White  = "white"
	Green  = "green"
	Red    = "red"
	Blue   = "blue"
	Orange = "orange"
	Yellow = "yellow"
)

// Entry is one named reference colour.
type Entry struct {
	Name   string
	Colour Colour
}

// Palette is an ordered, immutable set of reference colours. Earlier
// entries win classification ties.
type Palette struct {
	entries []Entry
}

var (
	// ErrEmptyPalette is returned by NewPalette without entries.
	ErrEmptyPalette = errors.New("palette has no entries")
	// ErrDuplicateName is returned by NewPalette when a name repeats.
	ErrDuplicateName = errors.New("duplicate palette name")
)

// NewPalette creates a palette from the given entries, in order.
func NewPalette(entries ...Entry) (Palette, error) {
	if len(entries) == 0 {
		return Palette{}, ErrEmptyPalette
	}
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			return Palette{}, fmt.Errorf("palette entry with empty name")
		}
		if seen[e.Name] {
			return Palette{}, fmt.Errorf("%w: %q", ErrDuplicateName, e.Name)
		}
		seen[e.Name] = true
	}
	return Palette{entries: append([]Entry(nil), entries...)}, nil
}

// DefaultPalette returns the six colours of a standard cube, measured
// under indoor lighting.
func DefaultPalette() Palette {
	return Palette{entries: []Entry{
		{Name: White, Colour: Colour{R: 255, G: 255, B: 255}},
		{Name: Green, Colour: Colour{R: 0, G: 155, B: 72}},
		{Name: Red, Colour: Colour{R: 183, G: 18, B: 52}},
		{Name: Blue, Colour: Colour{R: 0, G: 70, B: 173}},
		{Name: Orange, Colour: Colour{R: 255, G: 88, B: 0}},
		{Name: Yellow, Colour: Colour{R: 255, G: 213, B: 0}},
	}}
}

// Len returns the number of entries. The zero Palette is empty.
func (p Palette) Len() int { return len(p.entries) }

// Entries returns a copy of the palette entries in declaration order.
func (p Palette) Entries() []Entry {
	return append([]Entry(nil), p.entries...)
}
