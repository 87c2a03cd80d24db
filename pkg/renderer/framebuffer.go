package renderer

import (
	"image"
	"image/color"
)

// Framebuffer is a row-major, top-to-bottom, interleaved RGB byte buffer
type Framebuffer struct {
	Width  int
	Height int
	Pix    []byte // len(Pix) == Width*Height*3
}

// NewFramebuffer allocates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*3),
	}
}

// Rows returns the sub-slice holding rows [start, end). Slices returned for
// disjoint row ranges never alias, so each may be written by its own goroutine.
func (fb *Framebuffer) Rows(start, end int) []byte {
	stride := fb.Width * 3
	return fb.Pix[start*stride : end*stride : end*stride]
}

// At returns the RGB bytes of pixel (x, y)
func (fb *Framebuffer) At(x, y int) (r, g, b uint8) {
	i := (y*fb.Width + x) * 3
	return fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2]
}

// ToRGBA converts the framebuffer to an opaque image.RGBA
func (fb *Framebuffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			r, g, b := fb.At(x, y)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}
