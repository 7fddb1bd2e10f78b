// PDF separable blend modes. Each mode is a per-channel blend function
// f(A, B); every mode then shares one combine step:
//
//	aR = aA + aB*(1-aA)
//	xR = (1-aB)*xA + (1-aA)*xB + aA*aB*f(xA, xB)
//
// Reference: PDF Blend Modes: Addendum (ISO 32000-1:2008)

package blend

import "math"

// Advanced separable blend modes (extend BlendMode enum)
const (
	BlendMultiply   BlendMode = iota + 14 // f = A * B
	BlendScreen                           // f = A + B - A*B
	BlendOverlay                          // HardLight with swapped layers
	BlendDarken                           // f = min(A, B)
	BlendLighten                          // f = max(A, B)
	BlendColorDodge                       // f = min(1, B / (1 - A))
	BlendColorBurn                        // f = 1 - min(1, (1 - B) / A)
	BlendHardLight                        // Multiply or Screen depending on A
	BlendSoftLight                        // Soft version of HardLight
	BlendDifference                       // f = |B - A|
	BlendExclusion                        // f = A + B - 2*A*B

	// blendModeCount is the number of modes (for internal use).
	blendModeCount
)

// separable computes the blend function f(A, B) for one channel.
func separable(mode BlendMode, a, b float64) float64 {
	switch mode {
	case BlendMultiply:
		return a * b

	case BlendScreen:
		return a + b - a*b

	case BlendOverlay:
		if b <= 0.5 {
			return 2 * a * b
		}
		return 1 - 2*(1-a)*(1-b)

	case BlendDarken:
		return min(a, b)

	case BlendLighten:
		return max(a, b)

	case BlendColorDodge:
		if a < 1 {
			return min(1, b/(1-a))
		}
		return 1

	case BlendColorBurn:
		if a > 0 {
			return 1 - min(1, (1-b)/a)
		}
		return 0

	case BlendHardLight:
		if a < 0.5 {
			return 2 * a * b
		}
		return 1 - 2*(1-a)*(1-b)

	case BlendSoftLight:
		return softLight(a, b)

	case BlendDifference:
		return math.Abs(b - a)

	case BlendExclusion:
		return a + b - 2*a*b
	}

	panic("blend: unknown separable mode " + mode.String())
}

// softLight is the PDF soft light function.
//
//	f = B - (1-2A)*B*(1-B)        if A <= 0.5
//	f = B + (2A-1)*(g(B) - B)     otherwise
//
// with g(B) a cubic below 0.25 and sqrt(B) above.
func softLight(a, b float64) float64 {
	if a <= 0.5 {
		return b - (1-2*a)*b*(1-b)
	}
	return b + (2*a-1)*(softLightG(b)-b)
}

func softLightG(b float64) float64 {
	if b <= 0.25 {
		return ((16*b-12)*b + 4) * b
	}
	return math.Sqrt(b)
}

// pdf applies a separable mode to b in place and returns the result alpha.
func pdf(mode BlendMode, b, a []float64, bands int) float64 {
	aA := a[bands]
	aB := b[bands]

	t1 := 1 - aB
	t2 := 1 - aA
	t3 := aA * aB
	for i := range bands {
		f := separable(mode, a[i], b[i])
		b[i] = t1*a[i] + t2*b[i] + t3*f
	}

	return aA + aB*(1-aA)
}
