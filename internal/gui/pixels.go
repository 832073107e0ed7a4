package gui

import "image/color"

// fillSpinRGBA converts a ±1 spin lattice into RGBA pixels in buf, one
// pixel per site.
func fillSpinRGBA(buf []byte, spins []int8, up, down color.RGBA) {
	for i, s := range spins {
		base := i * 4
		c := down
		if s > 0 {
			c = up
		}
		buf[base+0] = c.R
		buf[base+1] = c.G
		buf[base+2] = c.B
		buf[base+3] = c.A
	}
}
