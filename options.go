package composite

import "github.com/gogpu/composite/internal/parallel"

// Option configures Build, Composite and Composite2.
//
// Example:
//
//	out, err := composite.Composite(layers, modes,
//	    composite.WithCompositingSpace(composite.SpaceLab),
//	    composite.WithWorkers(4))
type Option func(*options)

type options struct {
	space         Space
	spaceSet      bool
	premultiplied bool
	workers       int
	tileW, tileH  int
	native        bool
	noVector      bool
}

func defaultOptions() options {
	return options{
		tileW: parallel.TileWidth,
		tileH: parallel.TileHeight,
	}
}

// WithCompositingSpace blends in space instead of the default, which is
// sRGB, or B_W when no input has more than two bands, or their 16-bit
// counterparts when any input is RGB16 or Grey16.
//
// Inputs are converted from the grey, sRGB, scRGB, XYZ, Lab, LCh, HSV and
// Yxy families. CMC and CMYK have no conversion: for those, every input
// must already be in space.
func WithCompositingSpace(space Space) Option {
	return func(o *options) {
		o.space = space
		o.spaceSet = true
	}
}

// WithPremultiplied declares that every input is already premultiplied by
// its alpha. The output is then premultiplied too.
func WithPremultiplied(premultiplied bool) Option {
	return func(o *options) {
		o.premultiplied = premultiplied
	}
}

// WithWorkers sets the number of goroutines Run uses. Zero or less means
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithTileSize sets the tile dimensions Run splits the output into.
// Non-positive values keep the default of 64.
func WithTileSize(w, h int) Option {
	return func(o *options) {
		if w > 0 {
			o.tileW = w
		}
		if h > 0 {
			o.tileH = h
		}
	}
}

// WithNativeFormat makes the output use the common input format instead of
// float or double.
func WithNativeFormat() Option {
	return func(o *options) {
		o.native = true
	}
}

// WithVector enables or disables the 4-lane path for three-band stacks.
// It is enabled by default; results differ only by float32 rounding.
func WithVector(enabled bool) Option {
	return func(o *options) {
		o.noVector = !enabled
	}
}
