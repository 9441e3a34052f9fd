package stream

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/tweencap/scene"
)

// Frame represents a frame of RGB pixels, one per element of a scene.
type Frame struct {
	pixels []colorful.Color
}

// NewFrame creates a new black Frame instance.
func NewFrame(numPixels int) *Frame {
	f := new(Frame)
	f.pixels = make([]colorful.Color, numPixels)
	return f
}

// FrameOf captures the current colours of sel.
func FrameOf(sel scene.Selection) *Frame {
	f := NewFrame(len(sel))
	for i, e := range sel {
		f.pixels[i] = e.Colour()
	}
	return f
}

// Len returns the number of pixels.
func (f *Frame) Len() int {
	return len(f.pixels)
}

func (f *Frame) Pixel(i int) colorful.Color {
	return f.pixels[i]
}

// MarshalBinary converts a Frame into binary data: a little endian pixel
// count followed by one RGB triplet per pixel.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	if len(f.pixels) > math.MaxUint16 {
		return nil, fmt.Errorf("frame has %d pixels, at most %d fit", len(f.pixels), math.MaxUint16)
	}
	data = make([]byte, 2, (len(f.pixels)*3)+2)
	binary.LittleEndian.PutUint16(data, uint16(len(f.pixels)))
	for _, p := range f.pixels {
		r, g, b := p.Clamped().RGB255()
		data = append(data, r, g, b)
	}

	return data, nil
}

// Image renders the frame as a strip of scale x scale squares.
func (f *Frame) Image(scale int) image.Image {
	if scale < 1 {
		scale = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, len(f.pixels)*scale, scale))
	for i, p := range f.pixels {
		r, g, b := p.Clamped().RGB255()
		c := color.RGBA{R: r, G: g, B: b, A: 0xff}
		for x := i * scale; x < (i+1)*scale; x++ {
			for y := 0; y < scale; y++ {
				img.SetRGBA(x, y, c)
			}
		}
	}
	return img
}
