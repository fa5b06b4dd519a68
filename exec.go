package seamcarve

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/seamcarve/seamcarve/utils"
)

var (
	// ErrFileNotFound is returned when the source image can't be opened or decoded.
	ErrFileNotFound = errors.New("source image not found")

	// ErrWriteFailed is returned when the resized image can't be saved.
	ErrWriteFailed = errors.New("could not save the resized image")
)

// Ops describes a single resize operation between two files.
type Ops struct {
	// Src is a local file path or an http(s) URL.
	Src string
	// Dst is the output file path; its extension selects the image format.
	Dst string
	// Quality is the JPEG encoding quality.
	Quality int
}

// Execute loads the source image, resizes it with the processor and saves the result.
// In case of an error no output file is left behind.
func (op *Ops) Execute(ctx context.Context, p *Processor) error {
	src, err := op.open(ctx)
	if err != nil {
		return err
	}
	defer src.Close()

	img, err := Decode(src)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFileNotFound, err)
	}
	p.logger().Debug().
		Str("src", op.Src).
		Int("width", img.Bounds().Dx()).
		Int("height", img.Bounds().Dy()).
		Msg("image decoded")

	res, err := p.ResizeContext(ctx, img)
	if err != nil {
		return err
	}

	if err := op.save(res); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

// save encodes the image into a temporary file next to the destination
// and moves it in place, so an existing destination survives a failed write.
func (op *Ops) save(img *image.NRGBA) error {
	tmp, err := os.CreateTemp(filepath.Dir(op.Dst), "."+filepath.Base(op.Dst)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, img, op.Dst, op.Quality); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), op.Dst)
}

// open returns a reader over the source image. Remote images are
// downloaded into a temporary file which is removed on Close.
func (op *Ops) open(ctx context.Context) (io.ReadCloser, error) {
	if utils.IsValidUrl(op.Src) {
		f, err := utils.DownloadImage(ctx, op.Src)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFileNotFound, err)
		}
		return &tempFile{f}, nil
	}

	ctype, err := utils.DetectContentType(op.Src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileNotFound, err)
	}
	if !strings.Contains(ctype, "image") {
		return nil, fmt.Errorf("%w: %s is not an image file (%s)", ErrFileNotFound, op.Src, ctype)
	}

	f, err := os.Open(op.Src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileNotFound, err)
	}
	return f, nil
}

// tempFile removes the underlying file once it is closed.
type tempFile struct {
	*os.File
}

func (t *tempFile) Close() error {
	err := t.File.Close()
	os.Remove(t.Name())
	return err
}
