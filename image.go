package seamcarve

import (
	"fmt"
	"image"
	"io"
	"path/filepath"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// DefaultQuality is the JPEG quality used when none is given.
const DefaultQuality = 100

// Decode reads an image and converts it to *image.NRGBA with min-point at (0, 0).
// The EXIF orientation of JPEG images is applied.
func Decode(r io.Reader) (*image.NRGBA, error) {
	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("could not decode the source image: %w", err)
	}
	return toNRGBA(src), nil
}

// Encode writes the image to w in the format deduced from the file name extension.
// Images without a known file name are encoded as JPEG.
func Encode(w io.Writer, img image.Image, name string, quality int) error {
	format := imaging.JPEG
	if filepath.Ext(name) != "" {
		f, err := imaging.FormatFromFilename(name)
		if err != nil {
			return err
		}
		format = f
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return imaging.Encode(w, img, format, imaging.JPEGQuality(quality))
}

// toNRGBA converts any image type to *image.NRGBA with min-point at (0, 0).
// Images already in this form are returned as they are.
func toNRGBA(img image.Image) *image.NRGBA {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	if src, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return src
	}
	return imaging.Clone(img)
}
