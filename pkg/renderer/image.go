package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Image is an RGB8 pixel buffer stored as rows of Width*3 bytes
type Image struct {
	Width  int
	Height int
	Rows   [][]byte
}

// NewImage allocates a black image
func NewImage(width, height int) *Image {
	rows := make([][]byte, height)
	for y := range rows {
		rows[y] = make([]byte, width*3)
	}
	return &Image{Width: width, Height: height, Rows: rows}
}

// RGB returns the colour of pixel (x, y)
func (img *Image) RGB(x, y int) (r, g, b uint8) {
	px := img.Rows[y][x*3 : x*3+3]
	return px[0], px[1], px[2]
}

// ToRGBA converts the image for use with the standard image encoders
func (img *Image) ToRGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y, row := range img.Rows {
		for x := 0; x < img.Width; x++ {
			out.SetRGBA(x, y, color.RGBA{R: row[x*3], G: row[x*3+1], B: row[x*3+2], A: 255})
		}
	}
	return out
}

// toRGB averages accumulated samples, applies gamma 2 and quantises to 8 bits
func toRGB(sum core.Vec3, samples int) [3]byte {
	c := sum.Multiply(1 / float64(samples)).Sqrt().Clamp(0, 0.999)
	return [3]byte{quantise(c.X), quantise(c.Y), quantise(c.Z)}
}

func quantise(c float64) byte {
	if math.IsNaN(c) {
		return 0
	}
	return byte(256 * c)
}
