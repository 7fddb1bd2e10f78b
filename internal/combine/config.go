// Package combine reduces a stack of aligned pixel buffers to one buffer,
// blending every layer onto the accumulated result from the bottom up.
//
// The combiner is generic over the sample type. Each sample type gets its
// own instantiation, so clipping bounds and conversions are resolved once
// per tile rather than per pixel. Stacks of three colour bands plus alpha
// in uchar, ushort or float take a 4-lane float32 path.
package combine

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/composite/internal/blend"
	"github.com/gogpu/composite/internal/color"
	"github.com/gogpu/composite/internal/wide"
)

// Limits on a stack.
const (
	// MaxBands is the largest number of colour bands, alpha excluded.
	MaxBands = 64

	// MaxImages is the largest number of layers.
	MaxImages = 64
)

// Errors returned by NewConfig and Generate.
var (
	// ErrInvalidOperator is returned for a blend mode outside the defined set.
	ErrInvalidOperator = errors.New("combine: invalid blend mode")

	// ErrTooManyImages is returned when a stack has more than MaxImages layers.
	ErrTooManyImages = errors.New("combine: too many images")

	// ErrTooManyChannels is returned when layers have more than MaxBands
	// colour bands.
	ErrTooManyChannels = errors.New("combine: too many channels")

	// ErrRowUnavailable is returned when a layer cannot supply a row of a
	// requested tile.
	ErrRowUnavailable = errors.New("combine: input row unavailable")

	// ErrLayerMismatch is returned when the buffers handed to Generate do
	// not share one format and band count.
	ErrLayerMismatch = errors.New("combine: layers are not aligned")
)

// Params describes the stack a Config is built for.
type Params struct {
	// Modes holds one blend mode per layer above the bottom one; Modes[i]
	// blends layer i+1 onto the result so far.
	Modes []blend.BlendMode

	// Bands is the number of colour bands, alpha excluded.
	Bands int

	// Space selects the per-band value limits.
	Space color.Space

	// Premultiplied marks layers whose colour is already scaled by alpha.
	// The result is then left premultiplied too.
	Premultiplied bool

	// DisableVector forces the scalar path for every stack.
	DisableVector bool
}

// Config is the frozen description of a stack. It is immutable after
// NewConfig and safe to share between goroutines.
type Config struct {
	modes         []blend.BlendMode
	bands         int
	maxBand       []float64
	maxBand4      wide.F32x4
	premultiplied bool
	vector        bool
}

// NewConfig validates p and returns the Config for it.
func NewConfig(p Params) (*Config, error) {
	if len(p.Modes)+1 > MaxImages {
		return nil, fmt.Errorf("%w: %d layers, limit %d", ErrTooManyImages, len(p.Modes)+1, MaxImages)
	}
	for i, m := range p.Modes {
		if !m.IsValid() {
			return nil, fmt.Errorf("%w: mode %d is %d", ErrInvalidOperator, i, uint8(m))
		}
	}
	if p.Bands < 1 {
		return nil, fmt.Errorf("combine: need at least one colour band, have %d", p.Bands)
	}
	if p.Bands > MaxBands {
		return nil, fmt.Errorf("%w: %d bands, limit %d", ErrTooManyChannels, p.Bands, MaxBands)
	}

	maxBand, err := color.MaxBand(p.Space, p.Bands)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		modes:         slices.Clone(p.Modes),
		bands:         p.Bands,
		maxBand:       maxBand,
		premultiplied: p.Premultiplied,
		vector:        p.Bands == 3 && !p.DisableVector,
	}
	if cfg.vector {
		for i := range 4 {
			cfg.maxBand4[i] = float32(maxBand[i])
		}
	}
	return cfg, nil
}

// Layers returns the number of layers the Config combines.
func (c *Config) Layers() int {
	return len(c.modes) + 1
}

// Bands returns the number of colour bands, alpha excluded.
func (c *Config) Bands() int {
	return c.bands
}

// Premultiplied reports whether layers are premultiplied.
func (c *Config) Premultiplied() bool {
	return c.premultiplied
}
