package seamcarve

import (
	"image"
	"image/color"
	"image/draw"
	"math/rand"
	"testing"

	"github.com/seamcarve/seamcarve/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const (
	imgWidth  = 10
	imgHeight = 10
)

func TestCarver_EnergySeamShouldNotBeDetected(t *testing.T) {
	assert := assert.New(t)

	var totalEnergySeams int

	img := image.NewNRGBA(image.Rect(0, 0, imgWidth, imgHeight))
	for i := 0; i < imgWidth-1; i++ {
		c := NewCarver(img.Bounds().Dx(), img.Bounds().Dy())

		seam := c.FindLowestEnergySeam(c.ComputeEnergy(img))
		for _, x := range seam {
			totalEnergySeams += x
		}
		img = c.RemoveSeam(img, seam)
	}
	// On a uniform image every seam has the same cost, and the leftmost one wins.
	assert.Equal(0, totalEnergySeams)
	assert.Equal(1, img.Bounds().Dx())
}

func TestCarver_DetectVerticalEnergySeam(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, imgWidth, imgHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{image.White}, image.Point{}, draw.Src)

	// Replace the pixel colors in column 5 with a lower intensity and make
	// column 0 noisy. The columns around them carry a high energy, which
	// the seam detector should avoid.
	for y := 0; y < imgHeight; y++ {
		img.SetNRGBA(5, y, color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff})
		img.SetNRGBA(0, y, color.NRGBA{R: uint8(y * 20), A: 0xff})
	}

	c := NewCarver(imgWidth, imgHeight)
	energy := c.ComputeEnergy(img)
	seam := c.FindLowestEnergySeam(energy)

	var total float64
	for y, x := range seam {
		total += energy.At(y, x)
		assert.NotContains(t, []int{0, 1, 4, 6}, x)
	}
	assert.Zero(t, total)
}

func TestCarver_FindLowestEnergySeamTieBreak(t *testing.T) {
	testCases := []struct {
		name   string
		energy []float64
		want   Seam
	}{
		{
			name: "straight wins over left",
			energy: []float64{
				0, 0, 5,
				9, 0, 9,
			},
			want: Seam{1, 1},
		},
		{
			name: "left wins over right",
			energy: []float64{
				0, 3, 0,
				9, 0, 9,
			},
			want: Seam{0, 1},
		},
		{
			name: "right when strictly lower",
			energy: []float64{
				1, 3, 0,
				9, 0, 9,
			},
			want: Seam{2, 1},
		},
		{
			name: "leftmost minimum on the bottom row",
			energy: []float64{
				4, 1, 1, 4,
				4, 1, 1, 4,
			},
			want: Seam{1, 1},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			energy := mat.NewDense(2, len(tc.energy)/2, tc.energy)
			rows, cols := energy.Dims()

			c := NewCarver(cols, rows)
			assert.Equal(t, tc.want, c.FindLowestEnergySeam(energy))
		})
	}
}

func TestCarver_FindLowestEnergySeamFollowsCumulativeMinimum(t *testing.T) {
	energy := mat.NewDense(4, 4, []float64{
		9, 1, 9, 9,
		9, 9, 1, 9,
		9, 9, 9, 1,
		9, 9, 1, 9,
	})

	c := NewCarver(4, 4)
	assert.Equal(t, Seam{1, 2, 3, 2}, c.FindLowestEnergySeam(energy))
}

func TestCarver_FindLowestEnergySeamDoesNotModifyEnergy(t *testing.T) {
	data := []float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}
	energy := mat.NewDense(3, 3, append([]float64(nil), data...))

	NewCarver(3, 3).FindLowestEnergySeam(energy)
	assert.Equal(t, data, energy.RawMatrix().Data)
}

func TestCarver_SingleRowAndSingleColumn(t *testing.T) {
	row := mat.NewDense(1, 4, []float64{3, 2, 2, 5})
	assert.Equal(t, Seam{1}, NewCarver(4, 1).FindLowestEnergySeam(row))

	column := mat.NewDense(3, 1, []float64{3, 2, 1})
	assert.Equal(t, Seam{0, 0, 0}, NewCarver(1, 3).FindLowestEnergySeam(column))
}

func TestCarver_SeamShouldBeConnected(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))

	for i := 0; i < 20; i++ {
		width, height := 2+rnd.Intn(30), 1+rnd.Intn(30)
		img := randomImage(rnd, width, height)

		c := NewCarver(width, height)
		seam := c.FindLowestEnergySeam(c.ComputeEnergy(img))

		require.Len(t, seam, height)
		for y, x := range seam {
			assert.GreaterOrEqual(t, x, 0)
			assert.Less(t, x, width)
			if y > 0 {
				assert.LessOrEqual(t, utils.Abs(seam[y]-seam[y-1]), 1, "seam %v is not connected", seam)
			}
		}
	}
}

func TestCarver_RemoveSeam(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	img := randomImage(rnd, 6, 4)
	// Make the alpha channel vary too, it must be preserved as well.
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(i)
	}
	seam := Seam{0, 1, 2, 5}

	c := NewCarver(6, 4)
	res := c.RemoveSeam(img, seam)
	require.Equal(t, image.Rect(0, 0, 5, 4), res.Bounds())

	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			sx := x
			if x >= seam[y] {
				sx = x + 1
			}
			assert.Equal(t, img.NRGBAAt(sx, y), res.NRGBAAt(x, y), "pixel (%d, %d)", x, y)
		}
	}
}

func TestCarver_RemoveSeamKeepsSource(t *testing.T) {
	img := brightColumnImage(3, 2, 1)
	orig := append([]uint8(nil), img.Pix...)

	NewCarver(3, 2).RemoveSeam(img, Seam{1, 1})
	assert.Equal(t, orig, img.Pix)
}
