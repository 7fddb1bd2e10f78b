package image

import (
	"fmt"
	"image"

	"github.com/gogpu/composite/internal/color"
)

// Cast returns b with its samples converted to format f. Integer targets
// are rounded to nearest and clipped to their range. If b already has
// format f it is returned unchanged.
func Cast(b *Buf, f Format) (*Buf, error) {
	if !f.IsValid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, f)
	}
	if b.format == f {
		return b, nil
	}

	out := *b
	out.format = f
	out.pix = makePix(f, pixLen(b.pix))
	castPix(out.pix, b.pix)
	return &out, nil
}

// Embed returns b placed at the top-left of a zeroed width x height buffer.
// Pixels of b that fall outside are dropped. If b already has that size it
// is returned unchanged.
func Embed(b *Buf, width, height int) (*Buf, error) {
	if b.width == width && b.height == height {
		return b, nil
	}
	out, err := NewBuf(width, height, b.bands, b.format, b.space)
	if err != nil {
		return nil, err
	}

	w := min(width, b.width)
	h := min(height, b.height)
	srcStride := b.width * b.bands
	dstStride := width * b.bands
	for y := range h {
		copyPix(out.pix, y*dstStride, b.pix, y*srcStride, w*b.bands)
	}
	return out, nil
}

// copyPix copies n samples between two slices of the same type.
func copyPix(dst any, di int, src any, si int, n int) {
	switch d := dst.(type) {
	case []uint8:
		copy(d[di:di+n], src.([]uint8)[si:])
	case []int8:
		copy(d[di:di+n], src.([]int8)[si:])
	case []uint16:
		copy(d[di:di+n], src.([]uint16)[si:])
	case []int16:
		copy(d[di:di+n], src.([]int16)[si:])
	case []uint32:
		copy(d[di:di+n], src.([]uint32)[si:])
	case []int32:
		copy(d[di:di+n], src.([]int32)[si:])
	case []float32:
		copy(d[di:di+n], src.([]float32)[si:])
	case []float64:
		copy(d[di:di+n], src.([]float64)[si:])
	}
}

// AddAlpha returns b with an extra, fully opaque band appended. Opaque is
// the maximum alpha of b's space.
func AddAlpha(b *Buf) (*Buf, error) {
	out, err := NewBuf(b.width, b.height, b.bands+1, b.format, b.space)
	if err != nil {
		return nil, err
	}

	alpha := b.space.MaxAlpha()
	n := b.width * b.height
	for p := range n {
		for c := range b.bands {
			out.store(p*out.bands+c, b.load(p*b.bands+c))
		}
		out.store(p*out.bands+b.bands, alpha)
	}
	return out, nil
}

// colourBands returns the number of leading bands of b that carry colour,
// which is every band but alpha.
func colourBands(b *Buf) int {
	if b.HasAlpha() {
		return b.bands - 1
	}
	return b.bands
}

// Convert returns b in colour space to. Alpha and any extra bands are
// carried over, rescaled when the two spaces use different alpha ranges.
//
// An image whose band count does not fit its own space, a multiband image
// for instance, cannot be converted; it is relabelled instead when its
// colour band count matches to, and rejected otherwise.
func Convert(b *Buf, to color.Space) (*Buf, error) {
	if b.space == to {
		return b, nil
	}

	colour := colourBands(b)
	if b.space.Bands() != colour {
		if to.Bands() == colour || to == color.SpaceMultiband {
			return b.WithSpace(to), nil
		}
		return nil, fmt.Errorf("%w: %d-band %v image to %v",
			color.ErrUnsupportedConversion, b.bands, b.space, to)
	}
	if to == color.SpaceMultiband {
		return b.WithSpace(to), nil
	}

	tr, err := color.NewTransform(b.space, to)
	if err != nil {
		return nil, err
	}

	extra := b.bands - colour
	out, err := NewBuf(b.width, b.height, to.Bands()+extra, formatForSpace(to), to)
	if err != nil {
		return nil, err
	}

	alphaScale := to.MaxAlpha() / b.space.MaxAlpha()
	src := make([]float64, colour)
	dst := make([]float64, to.Bands())
	n := b.width * b.height
	for p := range n {
		si := p * b.bands
		di := p * out.bands
		for c := range src {
			src[c] = b.load(si + c)
		}
		tr.Apply(dst, src)
		for c, v := range dst {
			out.store(di+c, v)
		}
		for e := range extra {
			out.store(di+len(dst)+e, b.load(si+colour+e)*alphaScale)
		}
	}
	return out, nil
}

// formatForSpace returns the format images in s are stored in.
func formatForSpace(s color.Space) Format {
	switch s {
	case color.SpaceBW, color.SpaceSRGB, color.SpaceHSV:
		return FormatUchar
	case color.SpaceGrey16, color.SpaceRGB16:
		return FormatUshort
	default:
		return FormatFloat
	}
}

// Paste copies src into dst with its top-left corner at (x, y), converting
// samples to dst's format. Both buffers must have the same band count.
// Parts of src outside dst are dropped.
func Paste(dst, src *Buf, x, y int) error {
	if dst.bands != src.bands {
		return fmt.Errorf("%w: paste %d bands into %d", ErrInvalidBands, src.bands, dst.bands)
	}
	r := src.Bounds().Add(image.Pt(x, y)).Intersect(dst.Bounds())
	if r.Empty() {
		return nil
	}

	n := r.Dx() * dst.bands
	for row := r.Min.Y; row < r.Max.Y; row++ {
		di := dst.offset(r.Min.X, row)
		si := src.offset(r.Min.X-x, row-y)
		castPix(subPix(dst.pix, di, di+n), subPix(src.pix, si, si+n))
	}
	return nil
}

// subPix returns pix[i:j] for any supported sample slice.
func subPix(pix any, i, j int) any {
	switch p := pix.(type) {
	case []uint8:
		return p[i:j]
	case []int8:
		return p[i:j]
	case []uint16:
		return p[i:j]
	case []int16:
		return p[i:j]
	case []uint32:
		return p[i:j]
	case []int32:
		return p[i:j]
	case []float32:
		return p[i:j]
	case []float64:
		return p[i:j]
	}
	return nil
}
