package composite

import (
	"fmt"
	"slices"

	"github.com/gogpu/composite/internal/combine"
	"github.com/gogpu/composite/internal/image"
)

// Build validates a stack and aligns its images, returning an Operation
// ready to generate the composite. images[0] is the bottom layer and
// modes[i] blends images[i+1] onto everything below it, so there must be
// exactly len(images)-1 modes.
//
// Images are normalized in this order:
//
//  1. Multiband images of up to four bands are read as grey or RGB by
//     their band count, so a second or fourth band counts as alpha.
//  2. The topmost image without an alpha band gets an opaque one and
//     becomes the bottom layer. Images below it are dropped, since they
//     would be hidden, and so are the modes that blended them: each
//     remaining image keeps its own mode. libvips keeps the first
//     len(images)-1 modes of the original list instead.
//  3. Every image is converted to the compositing space (see
//     WithCompositingSpace). All must then have the same band count.
//  4. Every image is cast to the largest format present, in the order
//     uchar, char, ushort, short, uint, int, float, double.
//  5. Every image is embedded at the top-left of the largest width and
//     height present, padded with transparent black.
//
// Build does not modify its arguments.
func Build(images []*Image, modes []BlendMode, opts ...Option) (*Operation, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if len(images) == 0 {
		return nil, ErrEmptyStack
	}
	for i, im := range images {
		if im == nil || im.buf == nil {
			return nil, fmt.Errorf("%w: image %d", ErrNilImage, i)
		}
	}
	if len(modes) != len(images)-1 {
		return nil, fmt.Errorf("%w: %d images need %d modes, have %d",
			ErrOperatorCountMismatch, len(images), len(images)-1, len(modes))
	}
	for i, m := range modes {
		if !m.IsValid() {
			return nil, fmt.Errorf("composite: mode %d (%d): %w", i, uint8(m), ErrInvalidOperator)
		}
	}

	layers := make([]*image.Buf, len(images))
	for i, im := range images {
		layers[i] = im.buf
		if space := image.GuessSpace(im.buf); space != im.buf.Space() {
			layers[i] = im.buf.WithSpace(space)
		}
	}
	modes = slices.Clone(modes)

	layers, modes, err := synthesizeAlpha(layers, modes)
	if err != nil {
		return nil, err
	}

	if len(layers) > MaxImages {
		return nil, fmt.Errorf("%w: %d images, limit %d", ErrTooManyImages, len(layers), MaxImages)
	}

	space := o.space
	if !o.spaceSet {
		space = defaultSpace(layers)
	}

	for i, b := range layers {
		c, err := image.Convert(b, space)
		if err != nil {
			return nil, fmt.Errorf("composite: image %d to %v: %w", i, space, err)
		}
		layers[i] = c
	}
	for i, b := range layers[1:] {
		if b.Bands() != layers[0].Bands() {
			return nil, fmt.Errorf("%w: image %d has %d, image 0 has %d",
				ErrChannelCountMismatch, i+1, b.Bands(), layers[0].Bands())
		}
	}

	cfg, err := combine.NewConfig(combine.Params{
		Modes:         modes,
		Bands:         layers[0].Bands() - 1,
		Space:         space,
		Premultiplied: o.premultiplied,
		DisableVector: o.noVector,
	})
	if err != nil {
		return nil, fmt.Errorf("composite: %w", err)
	}

	formats := make([]Format, len(layers))
	width, height := 0, 0
	for i, b := range layers {
		formats[i] = b.Format()
		width = max(width, b.Width())
		height = max(height, b.Height())
	}
	format := image.CommonFormat(formats...)

	for i, b := range layers {
		if b, err = image.Cast(b, format); err != nil {
			return nil, fmt.Errorf("composite: image %d: %w", i, err)
		}
		if b, err = image.Embed(b, width, height); err != nil {
			return nil, fmt.Errorf("composite: image %d: %w", i, err)
		}
		layers[i] = b
	}

	op := &Operation{
		cfg:       cfg,
		layers:    layers,
		modes:     modes,
		space:     space,
		format:    format,
		outFormat: outputFormat(format, o.native),
		width:     width,
		height:    height,
		opts:      o,
		scratch:   image.NewPool(0),
	}

	Logger().Debug("composite: stack normalized",
		"layers", len(layers),
		"space", space,
		"bands", cfg.Bands(),
		"format", format,
		"output", op.outFormat,
		"width", width,
		"height", height,
		"premultiplied", cfg.Premultiplied())

	return op, nil
}

// synthesizeAlpha gives the topmost layer without alpha an opaque alpha
// band and drops every layer below it, with their modes.
func synthesizeAlpha(layers []*image.Buf, modes []BlendMode) ([]*image.Buf, []BlendMode, error) {
	top := -1
	for i := len(layers) - 1; i >= 0; i-- {
		if !layers[i].HasAlpha() {
			top = i
			break
		}
	}
	if top < 0 {
		return layers, modes, nil
	}

	b, err := image.AddAlpha(layers[top])
	if err != nil {
		return nil, nil, fmt.Errorf("composite: add alpha to image %d: %w", top, err)
	}
	if top > 0 {
		Logger().Warn("composite: discarding layers hidden below an image without alpha",
			"image", top, "discarded", top)
	}

	layers = append([]*image.Buf{b}, layers[top+1:]...)
	return layers, modes[top:], nil
}

// defaultSpace picks sRGB, or B_W when no layer has more than two bands,
// switching to the 16-bit variant when any layer is RGB16 or Grey16.
func defaultSpace(layers []*image.Buf) Space {
	grey, deep := true, false
	for _, b := range layers {
		if b.Bands() > 2 {
			grey = false
		}
		if b.Space().Is16Bit() {
			deep = true
		}
	}

	switch {
	case deep && grey:
		return SpaceGrey16
	case deep:
		return SpaceRGB16
	case grey:
		return SpaceBW
	}
	return SpaceSRGB
}

// outputFormat returns the format Run produces for layers in format.
func outputFormat(format Format, native bool) Format {
	switch {
	case native:
		return format
	case format == FormatDouble:
		return FormatDouble
	}
	return FormatFloat
}
