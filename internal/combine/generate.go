package combine

import (
	"fmt"
	stdimage "image"

	"github.com/gogpu/composite/internal/image"
)

// GenerateRow combines one row of width pixels. out and every ins[i] hold
// width pixels of Bands()+1 samples; ins[0] is the bottom layer.
func GenerateRow[T image.Element](cfg *Config, out []T, ins [][]T, width int) {
	newKernel[T](cfg).row(out, ins, width)
}

// Generate combines the region r of ins and writes it to out with r.Min
// placed at dst. Every buffer must have the same format and Bands()+1
// bands; ins must hold Layers() buffers.
//
// A layer that cannot supply a row of r fails the whole region with
// ErrRowUnavailable. Generate may run concurrently for disjoint regions of
// out.
func Generate(cfg *Config, out *image.Buf, dst stdimage.Point, ins []*image.Buf, r stdimage.Rectangle) error {
	if len(ins) != cfg.Layers() {
		return fmt.Errorf("%w: %d buffers for %d layers", ErrLayerMismatch, len(ins), cfg.Layers())
	}
	format := ins[0].Format()
	for i, b := range append([]*image.Buf{out}, ins...) {
		if b.Format() != format || b.Bands() != cfg.bands+1 {
			return fmt.Errorf("%w: buffer %d is %v with %d bands, want %v with %d",
				ErrLayerMismatch, i, b.Format(), b.Bands(), format, cfg.bands+1)
		}
	}
	if r.Empty() {
		return nil
	}

	switch format {
	case image.FormatUchar:
		return generateTile[uint8](cfg, out, dst, ins, r)
	case image.FormatChar:
		return generateTile[int8](cfg, out, dst, ins, r)
	case image.FormatUshort:
		return generateTile[uint16](cfg, out, dst, ins, r)
	case image.FormatShort:
		return generateTile[int16](cfg, out, dst, ins, r)
	case image.FormatUint:
		return generateTile[uint32](cfg, out, dst, ins, r)
	case image.FormatInt:
		return generateTile[int32](cfg, out, dst, ins, r)
	case image.FormatFloat:
		return generateTile[float32](cfg, out, dst, ins, r)
	case image.FormatDouble:
		return generateTile[float64](cfg, out, dst, ins, r)
	}
	return fmt.Errorf("%w: %v", image.ErrInvalidFormat, format)
}

// generateTile walks the rows of r for one sample type.
func generateTile[T image.Element](cfg *Config, out *image.Buf, dst stdimage.Point, ins []*image.Buf, r stdimage.Rectangle) error {
	k := newKernel[T](cfg)
	rows := make([][]T, len(ins))
	w := r.Dx()

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for i, in := range ins {
			span, err := image.Span[T](in, r.Min.X, y, w)
			if err != nil {
				return fmt.Errorf("%w: layer %d, row %d: %w", ErrRowUnavailable, i, y, err)
			}
			rows[i] = span
		}

		q, err := image.Span[T](out, dst.X, dst.Y+y-r.Min.Y, w)
		if err != nil {
			return fmt.Errorf("combine: output row %d: %w", y, err)
		}

		k.row(q, rows, w)
	}
	return nil
}
