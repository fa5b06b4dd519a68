package seamcarve

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
	"github.com/seamcarve/seamcarve/utils"
)

var (
	// ErrInvalidTarget is returned when a target dimension is not strictly
	// smaller than the corresponding image dimension.
	ErrInvalidTarget = errors.New("invalid target size")

	// ErrEmptyImage is returned when the source image has no pixels.
	ErrEmptyImage = errors.New("empty image")
)

// SeamCarver is the interface implemented by Processor to resize an image.
type SeamCarver interface {
	Resize(*image.NRGBA) (*image.NRGBA, error)
}

var _ SeamCarver = (*Processor)(nil)

// Axis identifies the image dimension being reduced.
type Axis int

const (
	AxisWidth  Axis = iota // vertical seams are removed
	AxisHeight             // horizontal seams are removed
)

func (a Axis) String() string {
	if a == AxisHeight {
		return "height"
	}
	return "width"
}

// Progress is reported after every removed seam.
type Progress struct {
	Axis  Axis
	Done  int
	Total int
}

// Processor options
type Processor struct {
	// NewWidth and NewHeight hold the target size. A zero value leaves the axis untouched.
	NewWidth  int
	NewHeight int

	// OnSeam, if set, is called after each seam removal.
	OnSeam func(Progress)

	Logger *zerolog.Logger
}

// state of the reduction loop.
type state int

const (
	reducingWidth state = iota
	reducingHeight
	done
)

// Resize reduces the image to exactly width x height pixels by removing
// vertical seams first and horizontal seams afterwards.
// Both targets must be positive and strictly smaller than the image size.
func Resize(img image.Image, width, height int) (*image.NRGBA, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d, both dimensions must be at least 1", ErrInvalidTarget, width, height)
	}
	p := &Processor{
		NewWidth:  width,
		NewHeight: height,
	}
	return p.Resize(toNRGBA(img))
}

// Resize implements the SeamCarver interface.
func (p *Processor) Resize(img *image.NRGBA) (*image.NRGBA, error) {
	return p.ResizeContext(context.Background(), img)
}

// ResizeContext runs the reduction loop. The context is checked between
// two seam removals; on cancellation no image is returned.
func (p *Processor) ResizeContext(ctx context.Context, img *image.NRGBA) (*image.NRGBA, error) {
	if err := p.validate(img); err != nil {
		return nil, err
	}
	img = toNRGBA(img)
	log := p.logger()

	var err error
	st := p.initialState(img)
	for st != done {
		switch st {
		case reducingWidth:
			log.Debug().
				Int("from", img.Bounds().Dx()).
				Int("to", p.NewWidth).
				Msg("reducing width")

			img, err = p.shrink(ctx, img, p.NewWidth, AxisWidth)
			if err != nil {
				return nil, err
			}
			st = done
			if p.NewHeight > 0 {
				st = reducingHeight
			}
		case reducingHeight:
			log.Debug().
				Int("from", img.Bounds().Dy()).
				Int("to", p.NewHeight).
				Msg("reducing height")

			// Horizontal seams are the vertical seams of the transposed image.
			img, err = p.shrink(ctx, imaging.Transpose(img), p.NewHeight, AxisHeight)
			if err != nil {
				return nil, err
			}
			img = imaging.Transpose(img)
			st = done
		}
	}
	return img, nil
}

// validate checks the targets against the image size.
func (p *Processor) validate(img *image.NRGBA) error {
	if img == nil || img.Bounds().Empty() {
		return ErrEmptyImage
	}
	width, height := img.Bounds().Dx(), img.Bounds().Dy()

	switch {
	case p.NewWidth < 0 || p.NewHeight < 0:
		return fmt.Errorf("%w: %dx%d, negative dimension", ErrInvalidTarget, p.NewWidth, p.NewHeight)
	case p.NewWidth == 0 && p.NewHeight == 0:
		return fmt.Errorf("%w: no target width or height given", ErrInvalidTarget)
	case p.NewWidth >= width:
		return fmt.Errorf("%w: new width %d should be less than image width %d", ErrInvalidTarget, p.NewWidth, width)
	case p.NewHeight >= height:
		return fmt.Errorf("%w: new height %d should be less than image height %d", ErrInvalidTarget, p.NewHeight, height)
	}
	return nil
}

func (p *Processor) initialState(img *image.NRGBA) state {
	switch {
	case p.NewWidth > 0 && p.NewWidth < img.Bounds().Dx():
		return reducingWidth
	case p.NewHeight > 0 && p.NewHeight < img.Bounds().Dy():
		return reducingHeight
	}
	return done
}

// shrink removes vertical seams one by one until the image width reaches the target.
// The energy map is rebuilt before every seam search, since each removal
// changes the neighborhood of the pixels along the seam.
func (p *Processor) shrink(ctx context.Context, img *image.NRGBA, target int, axis Axis) (*image.NRGBA, error) {
	log := p.logger()
	total := utils.Abs(img.Bounds().Dx() - target)

	for n := 1; img.Bounds().Dx() > target; n++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("resize interrupted while reducing the %s after %d of %d seams: %w", axis, n-1, total, err)
		}
		c := NewCarver(img.Bounds().Dx(), img.Bounds().Dy())

		energy := c.ComputeEnergy(img)
		seam := c.FindLowestEnergySeam(energy)
		img = c.RemoveSeam(img, seam)

		log.Trace().
			Stringer("axis", axis).
			Int("seam", n).
			Int("bottom", seam[len(seam)-1]).
			Msg("seam removed")

		if p.OnSeam != nil {
			p.OnSeam(Progress{Axis: axis, Done: n, Total: total})
		}
	}
	return img, nil
}

func (p *Processor) logger() *zerolog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	nop := zerolog.Nop()
	return &nop
}
