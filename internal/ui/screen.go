package ui

import (
	"image/color"

	"github.com/nevisdale/amichip/internal/amiga"
	"github.com/nevisdale/amichip/internal/video"
)

// a low resolution line is 20 words of each bitplane
const (
	wordsPerLine = screenWidth / 16
	bytesPerLine = wordsPerLine * 2
)

// snapshot is what the machine goroutine hands to the UI. pixels are colour
// register numbers.
type snapshot struct {
	state  amiga.State
	pixels []uint8
}

// capture decodes the bitplanes from the current pointers and modulos. It
// must run on the machine goroutine. Reads are peeks so no register or
// breakpoint sees them.
func capture(m *amiga.Machine) snapshot {
	s := snapshot{
		state:  m.State(),
		pixels: make([]uint8, screenWidth*screenHeight),
	}

	words := make([]uint16, wordsPerLine)
	planes := min(s.state.Video.Bitplanes, len(s.state.Video.Pointers))
	for p := 0; p < planes; p++ {
		addr := s.state.Video.Pointers[p]
		mod := int32(s.state.Video.Modulos[p%2])
		for y := 0; y < screenHeight; y++ {
			for i := range words {
				words[i], _ = m.Mem.Peek16((addr + uint32(i*2)) &^ 1)
			}
			planar(words, s.pixels[y*screenWidth:(y+1)*screenWidth], p)
			addr = uint32(int32(addr) + bytesPerLine + mod)
		}
	}
	return s
}

// planar sets bit plane of dst for every set bit of words, most significant
// bit first
func planar(words []uint16, dst []uint8, plane int) {
	for i, w := range words {
		for b := 0; b < 16; b++ {
			if w&(0x8000>>b) != 0 {
				dst[i*16+b] |= 1 << plane
			}
		}
	}
}

// rgb expands a 12 bit colour register
func rgb(c uint16) color.RGBA {
	return color.RGBA{
		R: uint8(c>>8&0xf) * 17,
		G: uint8(c>>4&0xf) * 17,
		B: uint8(c&0xf) * 17,
		A: 0xff,
	}
}

// render writes RGBA pixels to dst. With plane set to n > 0 only bitplane n
// is shown, in white on black.
func render(pixels []uint8, colors [video.NumColors]uint16, plane int, dst []byte) {
	for i, p := range pixels {
		var c color.RGBA
		if plane == 0 {
			c = rgb(colors[p%video.NumColors])
		} else if p&(1<<(plane-1)) != 0 {
			c = color.RGBA{0xff, 0xff, 0xff, 0xff}
		} else {
			c = color.RGBA{A: 0xff}
		}
		dst[i*4] = c.R
		dst[i*4+1] = c.G
		dst[i*4+2] = c.B
		dst[i*4+3] = c.A
	}
}
