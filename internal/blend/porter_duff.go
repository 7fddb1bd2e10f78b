// Package blend implements Porter-Duff compositing operators and PDF blend modes
// over normalized, premultiplied channel values.
//
// A pixel is a slice of bands+1 float64 values in the range 0-1 with alpha
// last. B is the accumulated backdrop, A the incoming layer. Both are
// premultiplied by their alpha before they reach this package.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
//   - Cairo operators: https://www.cairographics.org/operators/
package blend

// BlendMode represents a compositing operation. The numeric values are
// stable; they are the operator codes accepted from callers.
type BlendMode uint8

const (
	// Porter-Duff modes (standard compositing operators)
	BlendClear    BlendMode = iota // aR = 0
	BlendSource                    // aR = aA, xR = xA
	BlendOver                      // aR = aA + aB*(1-aA), xR = xA + xB*(1-aA) [default]
	BlendIn                        // aR = aA*aB, xR = xA
	BlendOut                       // aR = aA*(1-aB), xR = xA
	BlendAtop                      // aR = aB, xR = xA + xB*(1-aA)
	BlendDest                      // aR = aB, xR = xB
	BlendDestOver                  // aR = aB + aA*(1-aB), xR = xB + xA*(1-aB)
	BlendDestIn                    // aR = aA*aB, xR = xB
	BlendDestOut                   // aR = (1-aA)*aB, xR = xB
	BlendDestAtop                  // aR = aA, xR = xA*(1-aA) + xB
	BlendXor                       // aR = aA + aB - 2*aA*aB
	BlendAdd                       // aR = min(1, aA + aB), xR = xA + xB
	BlendSaturate                  // aR = min(1, aA + aB), xR = min(aA, 1-aB)*xA + xB
)

// porterDuff applies one of the Porter-Duff operators to b in place and
// returns the result alpha. The caller stores the alpha.
func porterDuff(mode BlendMode, b, a []float64, bands int) float64 {
	aA := a[bands]
	aB := b[bands]

	switch mode {
	case BlendClear:
		for i := range bands {
			b[i] = 0
		}
		return 0

	case BlendSource:
		copy(b[:bands], a[:bands])
		return aA

	case BlendOver:
		t1 := 1 - aA
		for i := range bands {
			b[i] = a[i] + t1*b[i]
		}
		return aA + aB*(1-aA)

	case BlendIn:
		copy(b[:bands], a[:bands])
		return aA * aB

	case BlendOut:
		copy(b[:bands], a[:bands])
		return aA * (1 - aB)

	case BlendAtop:
		t1 := 1 - aA
		for i := range bands {
			b[i] = a[i] + t1*b[i]
		}
		return aB

	case BlendDest:
		return aB

	case BlendDestOver:
		t1 := 1 - aB
		for i := range bands {
			b[i] += t1 * a[i]
		}
		return aB + aA*(1-aB)

	case BlendDestIn:
		return aA * aB

	case BlendDestOut:
		return (1 - aA) * aB

	case BlendDestAtop:
		t1 := 1 - aA
		for i := range bands {
			b[i] += t1 * a[i]
		}
		return aA

	case BlendXor:
		t1 := 1 - aB
		t2 := 1 - aA
		for i := range bands {
			b[i] = t1*a[i] + t2*b[i]
		}
		return aA + aB - 2*aA*aB

	case BlendAdd:
		for i := range bands {
			b[i] += a[i]
		}
		return min(1, aA+aB)

	case BlendSaturate:
		t1 := min(aA, 1-aB)
		for i := range bands {
			b[i] += t1 * a[i]
		}
		return min(1, aA+aB)
	}

	panic("blend: porterDuff called with separable mode " + mode.String())
}
