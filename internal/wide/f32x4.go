package wide

import "math"

// F32x4 represents 4 float32 values for SIMD-style operations.
// Designed for Go compiler auto-vectorization with fixed-size arrays.
// One F32x4 holds a whole three-band pixel plus alpha, alpha in lane 3.
type F32x4 [4]float32

// M32x4 is a per-lane mask produced by the F32x4 comparisons.
type M32x4 [4]bool

// SplatF32x4 creates F32x4 with all elements set to n.
func SplatF32x4(n float32) F32x4 {
	return F32x4{n, n, n, n}
}

// Add performs element-wise addition.
func (v F32x4) Add(other F32x4) F32x4 {
	var result F32x4
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

// Sub performs element-wise subtraction.
func (v F32x4) Sub(other F32x4) F32x4 {
	var result F32x4
	for i := range v {
		result[i] = v[i] - other[i]
	}
	return result
}

// Mul performs element-wise multiplication.
func (v F32x4) Mul(other F32x4) F32x4 {
	var result F32x4
	for i := range v {
		result[i] = v[i] * other[i]
	}
	return result
}

// Scale multiplies every element by s.
func (v F32x4) Scale(s float32) F32x4 {
	var result F32x4
	for i := range v {
		result[i] = v[i] * s
	}
	return result
}

// Div performs element-wise division.
// Division by zero follows IEEE 754; callers guard degenerate divisors.
func (v F32x4) Div(other F32x4) F32x4 {
	var result F32x4
	for i := range v {
		result[i] = v[i] / other[i]
	}
	return result
}

// Min performs element-wise minimum.
func (v F32x4) Min(other F32x4) F32x4 {
	var result F32x4
	for i := range v {
		if v[i] < other[i] {
			result[i] = v[i]
		} else {
			result[i] = other[i]
		}
	}
	return result
}

// Max performs element-wise maximum.
func (v F32x4) Max(other F32x4) F32x4 {
	var result F32x4
	for i := range v {
		if v[i] > other[i] {
			result[i] = v[i]
		} else {
			result[i] = other[i]
		}
	}
	return result
}

// Abs returns the absolute value of each element.
func (v F32x4) Abs() F32x4 {
	var result F32x4
	for i := range v {
		result[i] = float32(math.Abs(float64(v[i])))
	}
	return result
}

// Sqrt computes square root of each element.
func (v F32x4) Sqrt() F32x4 {
	var result F32x4
	for i := range v {
		result[i] = float32(math.Sqrt(float64(v[i])))
	}
	return result
}

// Lt reports, per lane, whether v[i] < other[i].
func (v F32x4) Lt(other F32x4) M32x4 {
	var m M32x4
	for i := range v {
		m[i] = v[i] < other[i]
	}
	return m
}

// Le reports, per lane, whether v[i] <= other[i].
func (v F32x4) Le(other F32x4) M32x4 {
	var m M32x4
	for i := range v {
		m[i] = v[i] <= other[i]
	}
	return m
}

// Gt reports, per lane, whether v[i] > other[i].
func (v F32x4) Gt(other F32x4) M32x4 {
	var m M32x4
	for i := range v {
		m[i] = v[i] > other[i]
	}
	return m
}

// Select returns a[i] where the mask is set and b[i] elsewhere.
func (m M32x4) Select(a, b F32x4) F32x4 {
	var result F32x4
	for i := range m {
		if m[i] {
			result[i] = a[i]
		} else {
			result[i] = b[i]
		}
	}
	return result
}
