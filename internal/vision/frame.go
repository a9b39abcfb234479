package vision

import (
	"image"
	"image/color"
)

// Frame is one observation: a dense RGB pixel grid stored row-major,
// three bytes per pixel.
type Frame struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewFrame allocates a frame filled with black.
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

// FrameFromPix wraps an existing row-major RGB buffer without copying.
// Returns nil if the buffer length does not match the dimensions.
func FrameFromPix(width, height int, pix []uint8) *Frame {
	if width <= 0 || height <= 0 || len(pix) != width*height*3 {
		return nil
	}
	return &Frame{Width: width, Height: height, Pix: pix}
}

// FrameFromImage converts any decoded image into a frame.
// Alpha is discarded; colors are reduced to 8 bits per channel.
func FrameFromImage(img image.Image) *Frame {
	b := img.Bounds()
	f := NewFrame(b.Dx(), b.Dy())
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			f.Set(x, y, RGB{c.R, c.G, c.B})
		}
	}
	return f
}

// In reports whether (x, y) lies inside the frame.
func (f *Frame) In(x, y int) bool {
	return x >= 0 && x < f.Width && y >= 0 && y < f.Height
}

// At returns the color at (x, y). Out-of-bounds reads return black.
func (f *Frame) At(x, y int) RGB {
	if !f.In(x, y) {
		return RGB{}
	}
	i := (y*f.Width + x) * 3
	return RGB{f.Pix[i], f.Pix[i+1], f.Pix[i+2]}
}

// Set writes a color at (x, y). Out-of-bounds writes are ignored.
func (f *Frame) Set(x, y int, c RGB) {
	if !f.In(x, y) {
		return
	}
	i := (y*f.Width + x) * 3
	f.Pix[i], f.Pix[i+1], f.Pix[i+2] = c[0], c[1], c[2]
}

// Fill paints the whole frame with one color.
func (f *Frame) Fill(c RGB) {
	for i := 0; i < len(f.Pix); i += 3 {
		f.Pix[i], f.Pix[i+1], f.Pix[i+2] = c[0], c[1], c[2]
	}
}

// FillRect paints an axis-aligned rectangle, clipped to the frame.
func (f *Frame) FillRect(x, y, w, h int, c RGB) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			f.Set(xx, yy, c)
		}
	}
}

// Image exposes the frame as an image.Image, mainly for dumping frames to disk.
func (f *Frame) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := f.At(x, y)
			img.SetNRGBA(x, y, color.NRGBA{R: c[0], G: c[1], B: c[2], A: 0xff})
		}
	}
	return img
}
