package combine

import (
	"github.com/gogpu/composite/internal/blend"
	"github.com/gogpu/composite/internal/image"
	"github.com/gogpu/composite/internal/wide"
)

// kernel is a Config bound to one sample type. It carries scratch space,
// so each goroutine needs its own.
type kernel[T image.Element] struct {
	cfg     *Config
	lo, hi  float64
	isFloat bool
	vector  bool

	// pixel holds the samples of each layer at the current position.
	pixel [][]T
}

func newKernel[T image.Element](cfg *Config) *kernel[T] {
	f := image.FormatOf[T]()
	return &kernel[T]{
		cfg:     cfg,
		lo:      f.Min(),
		hi:      f.Max(),
		isFloat: f.IsFloat(),
		vector:  cfg.vector && vectorFormat(f),
		pixel:   make([][]T, cfg.Layers()),
	}
}

// vectorFormat reports whether the 4-lane path handles samples of f.
func vectorFormat(f image.Format) bool {
	return f == image.FormatUchar || f == image.FormatUshort || f == image.FormatFloat
}

// row combines width pixels. ins[i] holds the samples of layer i.
func (k *kernel[T]) row(out []T, ins [][]T, width int) {
	n := k.cfg.bands + 1
	for x := range width {
		off := x * n
		for i, in := range ins {
			k.pixel[i] = in[off : off+n]
		}
		if k.vector {
			k.combine4(out[off:off+n], k.pixel)
		} else {
			k.combine(out[off:off+n], k.pixel)
		}
	}
}

// load scales one layer pixel to 0-1 and premultiplies it unless the stack
// already is.
func (k *kernel[T]) load(dst []float64, src []T) {
	for b := range dst {
		dst[b] = float64(src[b]) / k.cfg.maxBand[b]
	}
	if !k.cfg.premultiplied {
		blend.Premultiply(dst)
	}
}

// combine is the scalar path for any band count.
func (k *kernel[T]) combine(out []T, layers [][]T) {
	n := k.cfg.bands + 1

	var acc, layer [MaxBands + 1]float64
	b := acc[:n]
	a := layer[:n]

	k.load(b, layers[0])
	for i := 1; i < len(layers); i++ {
		k.load(a, layers[i])
		blend.Blend(k.cfg.modes[i-1], b, a)
	}

	if !k.cfg.premultiplied {
		blend.Unpremultiply(b)
	}

	for i, v := range b {
		out[i] = image.Clip[T](v*k.cfg.maxBand[i], k.lo, k.hi, k.isFloat)
	}
}

// load4 is load for three bands plus alpha.
func (k *kernel[T]) load4(src []T) wide.F32x4 {
	v := wide.F32x4{float32(src[0]), float32(src[1]), float32(src[2]), float32(src[3])}
	v = v.Div(k.cfg.maxBand4)
	if !k.cfg.premultiplied {
		a := v[3]
		v = v.Scale(a)
		v[3] = a
	}
	return v
}

// combine4 is the 4-lane path for three bands plus alpha.
func (k *kernel[T]) combine4(out []T, layers [][]T) {
	b := k.load4(layers[0])
	for i := 1; i < len(layers); i++ {
		blend.Blend4(k.cfg.modes[i-1], &b, k.load4(layers[i]))
	}

	if !k.cfg.premultiplied {
		aR := b[3]
		if aR == 0 {
			b = wide.F32x4{}
		} else {
			b = b.Div(wide.SplatF32x4(aR))
		}
		b[3] = aR
	}

	b = b.Mul(k.cfg.maxBand4)
	for i, v := range b {
		out[i] = image.Clip[T](float64(v), k.lo, k.hi, k.isFloat)
	}
}
