package image

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Element is the constraint on the Go types that hold samples.
//
// Only uint8, int8, uint16, int16, uint32, int32, float32 and float64 have
// a Format; the generic helpers panic for any other instantiation.
type Element interface {
	constraints.Integer | constraints.Float
}

// FormatOf returns the Format whose samples are stored as T.
func FormatOf[T Element]() Format {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return FormatUchar
	case int8:
		return FormatChar
	case uint16:
		return FormatUshort
	case int16:
		return FormatShort
	case uint32:
		return FormatUint
	case int32:
		return FormatInt
	case float32:
		return FormatFloat
	case float64:
		return FormatDouble
	}
	panic("image: no format for sample type")
}

// Clip converts v to T. Integer results are rounded to nearest and clipped
// to [lo, hi]; float results are converted unchanged. lo and hi are the
// bounds of T's format and are passed in so hot loops resolve them once.
func Clip[T Element](v, lo, hi float64, isFloat bool) T {
	if isFloat {
		return T(v)
	}
	v = math.Round(v)
	if v < lo {
		v = lo
	} else if v > hi {
		v = hi
	}
	return T(v)
}

// makePix allocates n samples of format f.
func makePix(f Format, n int) any {
	switch f {
	case FormatUchar:
		return make([]uint8, n)
	case FormatChar:
		return make([]int8, n)
	case FormatUshort:
		return make([]uint16, n)
	case FormatShort:
		return make([]int16, n)
	case FormatUint:
		return make([]uint32, n)
	case FormatInt:
		return make([]int32, n)
	case FormatFloat:
		return make([]float32, n)
	case FormatDouble:
		return make([]float64, n)
	}
	return nil
}

// pixLen returns the number of samples held by pix.
func pixLen(pix any) int {
	switch p := pix.(type) {
	case []uint8:
		return len(p)
	case []int8:
		return len(p)
	case []uint16:
		return len(p)
	case []int16:
		return len(p)
	case []uint32:
		return len(p)
	case []int32:
		return len(p)
	case []float32:
		return len(p)
	case []float64:
		return len(p)
	}
	return 0
}

// castSlice converts every sample of src into dst, clipping to D's range.
func castSlice[D, S Element](dst []D, src []S) {
	f := FormatOf[D]()
	lo, hi, isFloat := f.Min(), f.Max(), f.IsFloat()
	for i, v := range src {
		dst[i] = Clip[D](float64(v), lo, hi, isFloat)
	}
}

// castInto converts the samples of src, any supported slice type, into dst.
func castInto[D Element](dst []D, src any) {
	switch s := src.(type) {
	case []uint8:
		castSlice(dst, s)
	case []int8:
		castSlice(dst, s)
	case []uint16:
		castSlice(dst, s)
	case []int16:
		castSlice(dst, s)
	case []uint32:
		castSlice(dst, s)
	case []int32:
		castSlice(dst, s)
	case []float32:
		castSlice(dst, s)
	case []float64:
		castSlice(dst, s)
	}
}

// castPix converts src into the already allocated dst.
func castPix(dst, src any) {
	switch d := dst.(type) {
	case []uint8:
		castInto(d, src)
	case []int8:
		castInto(d, src)
	case []uint16:
		castInto(d, src)
	case []int16:
		castInto(d, src)
	case []uint32:
		castInto(d, src)
	case []int32:
		castInto(d, src)
	case []float32:
		castInto(d, src)
	case []float64:
		castInto(d, src)
	}
}
