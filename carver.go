package seamcarve

import (
	"image"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Seam holds the column index of the removable pixel for every image row.
// Adjacent entries never differ by more than one.
type Seam []int

// Carver is the seam carving engine bound to a fixed image size.
// A new Carver is needed after every seam removal, since the image shrinks by one column.
type Carver struct {
	Width  int
	Height int
}

// NewCarver returns an initialized Carver structure.
func NewCarver(width, height int) *Carver {
	return &Carver{
		Width:  width,
		Height: height,
	}
}

// FindLowestEnergySeam computes the cumulative minimum energy for all the possible
// connected seams and walks it back from the bottom row to obtain the cheapest vertical seam.
//
// The cumulative energy M of the entry (i, j) is the energy of the pixel itself
// plus the minimum of M over its (at most three) neighbors from the previous row.
func (c *Carver) FindLowestEnergySeam(energy *mat.Dense) Seam {
	rows, cols := energy.Dims()
	cum := mat.DenseCopyOf(energy)

	for i := 1; i < rows; i++ {
		// prev and curr are disjoint views over the backing array: curr is
		// accumulated in place and no update reads a cell of its own row.
		prev, curr := cum.RawRowView(i-1), cum.RawRowView(i)
		for j := range curr {
			best := prev[j]
			if j > 0 {
				best = math.Min(best, prev[j-1])
			}
			if j < cols-1 {
				best = math.Min(best, prev[j+1])
			}
			curr[j] += best
		}
	}

	seam := make(Seam, rows)
	// MinIdx returns the first minimum, so ties go to the leftmost column.
	seam[rows-1] = floats.MinIdx(cum.RawRowView(rows - 1))

	// Walk up in the table. Strict comparisons in the order
	// straight, left, right decide the ties.
	for i := rows - 2; i >= 0; i-- {
		row := cum.RawRowView(i)
		px := seam[i+1]

		col, minE := px, row[px]
		if px > 0 && row[px-1] < minE {
			col, minE = px-1, row[px-1]
		}
		if px < cols-1 && row[px+1] < minE {
			col = px + 1
		}
		seam[i] = col
	}
	return seam
}

// RemoveSeam returns a new image, one pixel narrower than the source,
// in which every row is compacted over the pixel marked by the seam.
func (c *Carver) RemoveSeam(img *image.NRGBA, seam Seam) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, c.Width-1, c.Height))
	rowSize := (c.Width - 1) * 4

	for y, x := range seam {
		si := img.PixOffset(0, y)
		di := dst.PixOffset(0, y)
		off := x * 4

		copy(dst.Pix[di:di+off], img.Pix[si:si+off])
		copy(dst.Pix[di+off:di+rowSize], img.Pix[si+off+4:si+rowSize+4])
	}
	return dst
}
