package export

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"

	"github.com/san-kum/isinglab/internal/ising"
	"github.com/san-kum/isinglab/internal/viz"
)

// Animation accumulates lattice frames and encodes them as a looping
// GIF. All frames must share one lattice size.
type Animation struct {
	size    int
	cell    int
	palette color.Palette
	frames  []*image.Paletted
	delay   int
}

// NewAnimation prepares an encoder for size×size lattices rendered at
// cell pixels per spin with the theme's colors. delay is in hundredths
// of a second per frame.
func NewAnimation(size, cell, delay int, theme viz.Theme) *Animation {
	return &Animation{
		size:    size,
		cell:    cell,
		palette: color.Palette{theme.BgRGBA, theme.UpRGBA, theme.DownRGBA},
		delay:   delay,
	}
}

// AddFrame renders one snapshot into the animation.
func (a *Animation) AddFrame(snap *ising.Snapshot) error {
	if snap.Size != a.size {
		return fmt.Errorf("export: frame size %d does not match animation size %d", snap.Size, a.size)
	}

	dim := a.size * a.cell
	img := image.NewPaletted(image.Rect(0, 0, dim, dim), a.palette)

	for i := 0; i < a.size; i++ {
		for j := 0; j < a.size; j++ {
			idx := uint8(2)
			if snap.Spins[i*a.size+j] > 0 {
				idx = 1
			}
			for py := 0; py < a.cell; py++ {
				for px := 0; px < a.cell; px++ {
					img.SetColorIndex(j*a.cell+px, i*a.cell+py, idx)
				}
			}
		}
	}

	a.frames = append(a.frames, img)
	return nil
}

// FrameCount returns how many frames have been added.
func (a *Animation) FrameCount() int { return len(a.frames) }

// Encode writes the accumulated frames as a looping GIF.
func (a *Animation) Encode(w io.Writer) error {
	if len(a.frames) == 0 {
		return fmt.Errorf("export: no frames to encode")
	}

	anim := gif.GIF{LoopCount: 0}
	for _, frame := range a.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, a.delay)
	}
	return gif.EncodeAll(w, &anim)
}
