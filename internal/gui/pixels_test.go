package gui

import (
	"image/color"
	"testing"
)

func TestFillSpinRGBA(t *testing.T) {
	up := color.RGBA{0xff, 0x00, 0x00, 0xff}
	down := color.RGBA{0x00, 0x00, 0xff, 0xff}

	spins := []int8{1, -1, -1, 1}
	buf := make([]byte, 16)
	fillSpinRGBA(buf, spins, up, down)

	for i, s := range spins {
		base := i * 4
		want := down
		if s > 0 {
			want = up
		}
		got := color.RGBA{buf[base], buf[base+1], buf[base+2], buf[base+3]}
		if got != want {
			t.Errorf("pixel %d: got %v, want %v", i, got, want)
		}
	}
}
