package blend

import (
	"math"
	"testing"
)

func TestSeparableFunctions(t *testing.T) {
	tests := []struct {
		name string
		mode BlendMode
		a, b float64
		want float64
	}{
		{"multiply", BlendMultiply, 0.5, 0.5, 0.25},
		{"multiply white", BlendMultiply, 0.3, 1, 0.3},
		{"screen", BlendScreen, 0.5, 0.5, 0.75},
		{"screen black", BlendScreen, 0.3, 0, 0.3},
		{"overlay dark backdrop", BlendOverlay, 0.5, 0.25, 0.25},
		{"overlay light backdrop", BlendOverlay, 0.5, 0.75, 0.75},
		{"overlay at half", BlendOverlay, 0.8, 0.5, 0.8},
		{"darken", BlendDarken, 0.3, 0.6, 0.3},
		{"lighten", BlendLighten, 0.3, 0.6, 0.6},
		{"color dodge", BlendColorDodge, 0.5, 0.25, 0.5},
		{"color dodge saturates", BlendColorDodge, 0.75, 0.5, 1},
		{"color dodge A=1", BlendColorDodge, 1, 0, 1},
		{"color burn", BlendColorBurn, 0.5, 0.75, 0.5},
		{"color burn saturates", BlendColorBurn, 0.25, 0.5, 0},
		{"color burn A=0", BlendColorBurn, 0, 1, 0},
		{"hard light dark source", BlendHardLight, 0.25, 0.5, 0.25},
		{"hard light light source", BlendHardLight, 0.75, 0.5, 0.75},
		{"soft light dark source", BlendSoftLight, 0.25, 0.5, 0.375},
		{"soft light light source, cubic", BlendSoftLight, 0.75, 0.25, 0.375},
		{"soft light light source, sqrt", BlendSoftLight, 1, 0.36, 0.6},
		{"difference", BlendDifference, 0.25, 0.75, 0.5},
		{"difference reversed", BlendDifference, 0.75, 0.25, 0.5},
		{"exclusion", BlendExclusion, 0.5, 0.5, 0.5},
		{"exclusion black", BlendExclusion, 0, 0.4, 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := separable(tt.mode, tt.a, tt.b)
			if !almostEqual(got, tt.want, 1e-12) {
				t.Errorf("f(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// TestSeparableCombine checks the shared PDF combine step for every
// separable mode.
func TestSeparableCombine(t *testing.T) {
	const aA, aB = 0.8, 0.4
	a := pixel(0.7, 0.2, 0.5, aA)
	b := pixel(0.3, 0.9, 0.5, aB)

	for _, mode := range Modes() {
		if !mode.IsSeparable() {
			continue
		}
		t.Run(mode.String(), func(t *testing.T) {
			got := append([]float64(nil), b...)
			Blend(mode, got, a)

			wantAlpha := aA + aB*(1-aA)
			if !almostEqual(got[3], wantAlpha, eps) {
				t.Errorf("alpha = %v, want %v", got[3], wantAlpha)
			}
			for i := range 3 {
				f := separable(mode, a[i], b[i])
				want := (1-aB)*a[i] + (1-aA)*b[i] + aA*aB*f
				if !almostEqual(got[i], want, eps) {
					t.Errorf("band %d = %v, want %v", i, got[i], want)
				}
			}
		})
	}
}

// TestSeparableNeverNaN drives the division-guarded modes through their
// degenerate inputs.
func TestSeparableNeverNaN(t *testing.T) {
	values := []float64{0, 1e-9, 0.25, 0.5, 1 - 1e-9, 1}
	for _, mode := range Modes() {
		if !mode.IsSeparable() {
			continue
		}
		for _, a := range values {
			for _, b := range values {
				f := separable(mode, a, b)
				if math.IsNaN(f) || math.IsInf(f, 0) {
					t.Errorf("%v: f(%v, %v) = %v", mode, a, b, f)
				}
				if f < -1e-12 || f > 1+1e-12 {
					t.Errorf("%v: f(%v, %v) = %v outside [0, 1]", mode, a, b, f)
				}
			}
		}
	}
}

func TestMultiplyWhiteIsIdentity(t *testing.T) {
	b := pixel(1, 1, 1, 1)
	a := pixel(0.2, 0.5, 0.8, 1)
	Blend(BlendMultiply, b, a)
	for i := range 3 {
		if !almostEqual(b[i], a[i], eps) {
			t.Errorf("band %d = %v, want %v", i, b[i], a[i])
		}
	}
}

func TestDifferenceOfEqualIsZero(t *testing.T) {
	b := pixel(0.2, 0.5, 0.8, 1)
	a := pixel(0.2, 0.5, 0.8, 1)
	Blend(BlendDifference, b, a)
	for i := range 3 {
		if !almostEqual(b[i], 0, eps) {
			t.Errorf("band %d = %v, want 0", i, b[i])
		}
	}
	if b[3] != 1 {
		t.Errorf("alpha = %v, want 1", b[3])
	}
}
