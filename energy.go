package seamcarve

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"gonum.org/v1/gonum/mat"
)

// ComputeEnergy builds the energy map of the image: the gradient magnitude
// of the luminance, computed for every pixel.
//
// Interior pixels use the central difference, border pixels the one sided
// difference towards the inside of the image, so the map keeps the exact image size.
func (c *Carver) ComputeEnergy(img *image.NRGBA) *mat.Dense {
	var (
		width  = c.Width
		height = c.Height
		lum    = grayscale(img)
		energy = mat.NewDense(height, width, nil)
	)

	for y := 0; y < height; y++ {
		row := energy.RawRowView(y)
		for x := 0; x < width; x++ {
			pos := y*width + x
			gx := gradient(lum, pos, x, width, 1)
			gy := gradient(lum, pos, y, height, width)

			row[x] = math.Sqrt(float64(gx*gx + gy*gy))
		}
	}
	return energy
}

// gradient returns the luminance difference at position pos along one axis,
// where i is the coordinate on that axis, n the axis length and
// stride the distance between two neighbors in the buffer.
func gradient(lum []uint8, pos, i, n, stride int) int {
	switch {
	case n < 2:
		return 0
	case i == 0:
		return int(lum[pos+stride]) - int(lum[pos])
	case i == n-1:
		return int(lum[pos]) - int(lum[pos-stride])
	}
	return int(lum[pos+stride]) - int(lum[pos-stride])
}

// grayscale converts the image to grayscale mode and
// returns the luminance values as an one dimensional array.
func grayscale(src *image.NRGBA) []uint8 {
	gray := imaging.Grayscale(src)
	width, height := gray.Bounds().Dx(), gray.Bounds().Dy()
	lum := make([]uint8, width*height)

	for y := 0; y < height; y++ {
		i := gray.PixOffset(0, y)
		for x := 0; x < width; x++ {
			// R, G and B are equal after the conversion.
			lum[y*width+x] = gray.Pix[i]
			i += 4
		}
	}
	return lum
}
