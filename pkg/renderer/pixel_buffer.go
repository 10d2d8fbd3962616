package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// intensity is the range linear color components are clamped to before quantizing
var intensity = core.NewInterval(0.0, 0.999)

// PixelBuffer is an 8-bit RGB image, row-major with the top row first.
// Workers may write disjoint pixels concurrently.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8 // 3 bytes per pixel
}

// NewPixelBuffer creates a black buffer of the given size
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

// Set stores a linear color at (i, j) after gamma correction and quantization
func (b *PixelBuffer) Set(i, j int, c core.Vec3) {
	offset := (j*b.Width + i) * 3
	b.Pix[offset] = toByte(c.X)
	b.Pix[offset+1] = toByte(c.Y)
	b.Pix[offset+2] = toByte(c.Z)
}

// At returns the stored bytes at (i, j)
func (b *PixelBuffer) At(i, j int) (r, g, bl uint8) {
	offset := (j*b.Width + i) * 3
	return b.Pix[offset], b.Pix[offset+1], b.Pix[offset+2]
}

// ToRGBA converts the buffer into an opaque image for encoding
func (b *PixelBuffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for j := 0; j < b.Height; j++ {
		for i := 0; i < b.Width; i++ {
			r, g, bl := b.At(i, j)
			img.SetRGBA(i, j, color.RGBA{R: r, G: g, B: bl, A: 255})
		}
	}
	return img
}

// toByte gamma-corrects (gamma 2) one linear component and quantizes it.
// NaN and negative values map to 0.
func toByte(linear float64) uint8 {
	if math.IsNaN(linear) || linear <= 0 {
		return 0
	}
	return uint8(256 * intensity.Clamp(math.Sqrt(linear)))
}
