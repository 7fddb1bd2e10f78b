package image

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/composite/internal/color"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidBands is returned when the band count is non-positive.
	ErrInvalidBands = errors.New("image: invalid band count")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("image: invalid format")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("image: data buffer too small")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")

	// ErrFormatMismatch is returned when samples are requested as a Go type
	// that does not match the buffer's format.
	ErrFormatMismatch = errors.New("image: sample type does not match format")
)

// Buf is a band-interleaved pixel buffer: each pixel is Bands consecutive
// samples, rows are packed with no padding. The samples are stored as a
// slice of the Go type of Format.
//
// Thread safety: Buf is safe for concurrent read access. Writes to disjoint
// regions may run concurrently; anything else requires external
// synchronization.
type Buf struct {
	pix    any
	width  int
	height int
	bands  int
	format Format
	space  color.Space
}

// NewBuf creates a zeroed buffer.
func NewBuf(width, height, bands int, format Format, space color.Space) (*Buf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if bands <= 0 {
		return nil, ErrInvalidBands
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}

	return &Buf{
		pix:    makePix(format, width*height*bands),
		width:  width,
		height: height,
		bands:  bands,
		format: format,
		space:  space,
	}, nil
}

// FromPix wraps existing samples without copying. The caller must not
// retain pix for other uses.
func FromPix[T Element](pix []T, width, height, bands int, space color.Space) (*Buf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if bands <= 0 {
		return nil, ErrInvalidBands
	}
	n := width * height * bands
	if len(pix) < n {
		return nil, ErrDataTooSmall
	}

	return &Buf{
		pix:    pix[:n],
		width:  width,
		height: height,
		bands:  bands,
		format: FormatOf[T](),
		space:  space,
	}, nil
}

// Pix returns the samples of b as []T. It returns nil if T does not match
// b's format.
func Pix[T Element](b *Buf) []T {
	p, _ := b.pix.([]T)
	return p
}

// Row returns the samples of row y, or nil if y is out of range or T does
// not match b's format.
func Row[T Element](b *Buf, y int) []T {
	if y < 0 || y >= b.height {
		return nil
	}
	p := Pix[T](b)
	if p == nil {
		return nil
	}
	n := b.width * b.bands
	return p[y*n : (y+1)*n]
}

// Span returns the samples of the w pixels starting at (x, y). The slice
// aliases b.
func Span[T Element](b *Buf, x, y, w int) ([]T, error) {
	if x < 0 || y < 0 || w < 0 || x+w > b.width || y >= b.height {
		return nil, fmt.Errorf("%w: span (%d,%d)+%d in %dx%d",
			ErrOutOfBounds, x, y, w, b.width, b.height)
	}
	p := Pix[T](b)
	if p == nil {
		return nil, fmt.Errorf("%w: %v buffer", ErrFormatMismatch, b.format)
	}
	start := (y*b.width + x) * b.bands
	return p[start : start+w*b.bands], nil
}

// Clone creates a deep copy of the buffer.
func (b *Buf) Clone() *Buf {
	c := *b
	c.pix = makePix(b.format, pixLen(b.pix))
	castPix(c.pix, b.pix)
	return &c
}

// Width returns the image width in pixels.
func (b *Buf) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *Buf) Height() int {
	return b.height
}

// Bands returns the number of samples per pixel, alpha included.
func (b *Buf) Bands() int {
	return b.bands
}

// Format returns the sample format.
func (b *Buf) Format() Format {
	return b.format
}

// Space returns the colour space the bands are interpreted in.
func (b *Buf) Space() color.Space {
	return b.space
}

// Bounds returns the image rectangle, anchored at the origin.
func (b *Buf) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// HasAlpha reports whether the last band of b is alpha.
func (b *Buf) HasAlpha() bool {
	return HasAlpha(b.space, b.bands)
}

// WithSpace returns a view of b with the same samples labelled as space.
func (b *Buf) WithSpace(space color.Space) *Buf {
	c := *b
	c.space = space
	return &c
}

// GuessSpace returns the space b's samples most likely describe. A
// multiband image of one or two bands reads as grey, of three or four as
// RGB, in the 16-bit variant when stored as ushort. Any other image keeps
// its own space.
func GuessSpace(b *Buf) color.Space {
	if b.space != color.SpaceMultiband || b.bands > 4 {
		return b.space
	}
	deep := b.format == FormatUshort
	switch {
	case b.bands <= 2 && deep:
		return color.SpaceGrey16
	case b.bands <= 2:
		return color.SpaceBW
	case deep:
		return color.SpaceRGB16
	}
	return color.SpaceSRGB
}

// HasAlpha reports whether an image with the given space and band count
// carries alpha: two bands for a grey space, four bands for anything but
// CMYK, or more than four bands.
func HasAlpha(space color.Space, bands int) bool {
	return (bands == 2 && space.IsGrey()) ||
		(bands == 4 && space != color.SpaceCMYK) ||
		bands > 4
}

// offset returns the index of the first sample of pixel (x, y), or -1.
func (b *Buf) offset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return (y*b.width + x) * b.bands
}

// At returns one sample as float64. It returns 0 outside the image.
func (b *Buf) At(x, y, band int) float64 {
	i := b.offset(x, y)
	if i < 0 || band < 0 || band >= b.bands {
		return 0
	}
	return b.load(i + band)
}

// Set stores one sample, rounding and clipping for integer formats. It
// does nothing outside the image.
func (b *Buf) Set(x, y, band int, v float64) {
	i := b.offset(x, y)
	if i < 0 || band < 0 || band >= b.bands {
		return
	}
	b.store(i+band, v)
}

// Fill sets every pixel to px, which must have Bands values.
func (b *Buf) Fill(px ...float64) {
	n := b.width * b.height
	for p := range n {
		for c := range b.bands {
			b.store(p*b.bands+c, px[c])
		}
	}
}

func (b *Buf) load(i int) float64 {
	switch p := b.pix.(type) {
	case []uint8:
		return float64(p[i])
	case []int8:
		return float64(p[i])
	case []uint16:
		return float64(p[i])
	case []int16:
		return float64(p[i])
	case []uint32:
		return float64(p[i])
	case []int32:
		return float64(p[i])
	case []float32:
		return float64(p[i])
	case []float64:
		return p[i]
	}
	return 0
}

func (b *Buf) store(i int, v float64) {
	lo, hi, isFloat := b.format.Min(), b.format.Max(), b.format.IsFloat()
	switch p := b.pix.(type) {
	case []uint8:
		p[i] = Clip[uint8](v, lo, hi, isFloat)
	case []int8:
		p[i] = Clip[int8](v, lo, hi, isFloat)
	case []uint16:
		p[i] = Clip[uint16](v, lo, hi, isFloat)
	case []int16:
		p[i] = Clip[int16](v, lo, hi, isFloat)
	case []uint32:
		p[i] = Clip[uint32](v, lo, hi, isFloat)
	case []int32:
		p[i] = Clip[int32](v, lo, hi, isFloat)
	case []float32:
		p[i] = float32(v)
	case []float64:
		p[i] = v
	}
}
