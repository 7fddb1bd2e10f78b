package blend

import "github.com/gogpu/composite/internal/wide"

// Lane constants shared by the 4-lane kernel.
var (
	zero4    = wide.SplatF32x4(0)
	quarter4 = wide.SplatF32x4(0.25)
	half4    = wide.SplatF32x4(0.5)
	one4     = wide.SplatF32x4(1)
	two4     = wide.SplatF32x4(2)
	four4    = wide.SplatF32x4(4)
	twelve4  = wide.SplatF32x4(12)
	sixteen4 = wide.SplatF32x4(16)
)

// Blend4 is Blend specialized to three bands plus alpha held in one F32x4,
// alpha in lane 3. a must already be premultiplied. The result matches
// Blend to float32 precision.
func Blend4(mode BlendMode, b *wide.F32x4, a wide.F32x4) {
	aA := a[3]
	aB := b[3]

	var aR float32

	switch mode {
	case BlendClear:
		aR = 0
		*b = zero4

	case BlendSource:
		aR = aA
		*b = a

	case BlendOver:
		aR = aA + aB*(1-aA)
		*b = a.Add(b.Scale(1 - aA))

	case BlendIn:
		aR = aA * aB
		*b = a

	case BlendOut:
		aR = aA * (1 - aB)
		*b = a

	case BlendAtop:
		aR = aB
		*b = a.Add(b.Scale(1 - aA))

	case BlendDest:
		aR = aB

	case BlendDestOver:
		aR = aB + aA*(1-aB)
		*b = b.Add(a.Scale(1 - aB))

	case BlendDestIn:
		aR = aA * aB

	case BlendDestOut:
		aR = (1 - aA) * aB

	case BlendDestAtop:
		aR = aA
		*b = a.Scale(1 - aA).Add(*b)

	case BlendXor:
		aR = aA + aB - 2*aA*aB
		*b = a.Scale(1 - aB).Add(b.Scale(1 - aA))

	case BlendAdd:
		aR = min(1, aA+aB)
		*b = a.Add(*b)

	case BlendSaturate:
		aR = min(1, aA+aB)
		*b = a.Scale(min(aA, 1-aB)).Add(*b)

	default:
		aR = aA + aB*(1-aA)
		f := separable4(mode, a, *b)
		*b = a.Scale(1 - aB).Add(b.Scale(1 - aA)).Add(f.Scale(aA * aB))
	}

	b[3] = aR
}

// separable4 is separable over four lanes. Lane 3 of the result is
// meaningless; Blend4 overwrites it with the result alpha.
func separable4(mode BlendMode, a, b wide.F32x4) wide.F32x4 {
	switch mode {
	case BlendMultiply:
		return a.Mul(b)

	case BlendScreen:
		return a.Add(b).Sub(a.Mul(b))

	case BlendOverlay:
		return b.Le(half4).Select(
			two4.Mul(a).Mul(b),
			one4.Sub(two4.Mul(one4.Sub(a)).Mul(one4.Sub(b))))

	case BlendDarken:
		return a.Min(b)

	case BlendLighten:
		return a.Max(b)

	case BlendColorDodge:
		live := a.Lt(one4)
		den := live.Select(one4.Sub(a), one4)
		return live.Select(one4.Min(b.Div(den)), one4)

	case BlendColorBurn:
		live := a.Gt(zero4)
		den := live.Select(a, one4)
		return live.Select(one4.Sub(one4.Min(one4.Sub(b).Div(den))), zero4)

	case BlendHardLight:
		return a.Lt(half4).Select(
			two4.Mul(a).Mul(b),
			one4.Sub(two4.Mul(one4.Sub(a)).Mul(one4.Sub(b))))

	case BlendSoftLight:
		g := b.Le(quarter4).Select(
			sixteen4.Mul(b).Sub(twelve4).Mul(b).Add(four4).Mul(b),
			b.Sqrt())
		return a.Le(half4).Select(
			b.Sub(one4.Sub(two4.Mul(a)).Mul(b).Mul(one4.Sub(b))),
			b.Add(two4.Mul(a).Sub(one4).Mul(g.Sub(b))))

	case BlendDifference:
		return b.Sub(a).Abs()

	case BlendExclusion:
		return a.Add(b).Sub(two4.Mul(a).Mul(b))
	}

	panic("blend: Blend4 called with invalid mode " + mode.String())
}
