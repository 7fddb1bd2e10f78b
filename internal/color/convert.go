package color

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnsupportedConversion is returned by NewTransform when no conversion
// path exists between two spaces.
var ErrUnsupportedConversion = errors.New("color: unsupported conversion")

// SRGBToLinear converts an sRGB component to linear (EOTF - Electro-Optical Transfer Function).
// Formula: if s <= 0.04045: s/12.92; else: pow((s+0.055)/1.055, 2.4)
// Input and output are in range [0,1].
func SRGBToLinear(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// LinearToSRGB converts a linear component to sRGB (OETF - Opto-Electronic Transfer Function).
// Formula: if l <= 0.0031308: l*12.92; else: 1.055*pow(l, 1/2.4)-0.055
// Input and output are in range [0,1].
func LinearToSRGB(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1.0/2.4) - 0.055
}

// Linear sRGB primaries to XYZ, D65, Y = 100. The reverse matrix is the
// exact inverse so that RGB round trips are lossless.
var (
	rgbToXYZ = [3][3]float64{
		{41.24564, 35.75761, 18.04375},
		{21.26729, 71.51522, 7.21750},
		{1.93339, 11.91920, 95.03041},
	}
	xyzToRGB = invert3(rgbToXYZ)
)

func invert3(m [3][3]float64) [3][3]float64 {
	det := m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])

	var r [3][3]float64
	r[0][0] = (m[1][1]*m[2][2] - m[1][2]*m[2][1]) / det
	r[0][1] = (m[0][2]*m[2][1] - m[0][1]*m[2][2]) / det
	r[0][2] = (m[0][1]*m[1][2] - m[0][2]*m[1][1]) / det
	r[1][0] = (m[1][2]*m[2][0] - m[1][0]*m[2][2]) / det
	r[1][1] = (m[0][0]*m[2][2] - m[0][2]*m[2][0]) / det
	r[1][2] = (m[0][2]*m[1][0] - m[0][0]*m[1][2]) / det
	r[2][0] = (m[1][0]*m[2][1] - m[1][1]*m[2][0]) / det
	r[2][1] = (m[0][1]*m[2][0] - m[0][0]*m[2][1]) / det
	r[2][2] = (m[0][0]*m[1][1] - m[0][1]*m[1][0]) / det
	return r
}

// CIE constants for the Lab transfer function.
const (
	labEpsilon = 216.0 / 24389.0
	labKappa   = 24389.0 / 27.0
)

// Transform converts the colour bands of single pixels between two spaces.
// Conversions go through XYZ. A Transform is immutable and safe for
// concurrent use.
type Transform struct {
	from, to Space
}

// convertible lists the spaces Transform can reach through XYZ.
func convertible(s Space) bool {
	switch s {
	case SpaceBW, SpaceGrey16, SpaceSRGB, SpaceRGB16, SpaceScRGB,
		SpaceXYZ, SpaceLab, SpaceLCh, SpaceHSV, SpaceYxy:
		return true
	}
	return false
}

// NewTransform returns a Transform from one space to another. Converting a
// space to itself is always possible.
func NewTransform(from, to Space) (*Transform, error) {
	if from != to && (!convertible(from) || !convertible(to)) {
		return nil, fmt.Errorf("%w: %v to %v", ErrUnsupportedConversion, from, to)
	}
	return &Transform{from: from, to: to}, nil
}

// From returns the source space.
func (t *Transform) From() Space { return t.from }

// To returns the destination space.
func (t *Transform) To() Space { return t.to }

// Apply converts src, holding t.From().Bands() values, into dst, which must
// hold t.To().Bands() values. Alpha is not part of either slice.
func (t *Transform) Apply(dst, src []float64) {
	if t.from == t.to {
		copy(dst, src)
		return
	}
	x, y, z := toXYZ(t.from, src)
	fromXYZ(t.to, dst, x, y, z)
}

func toXYZ(s Space, v []float64) (x, y, z float64) {
	switch s {
	case SpaceBW:
		return greyToXYZ(decodeSRGB8(v[0]))
	case SpaceGrey16:
		return greyToXYZ(SRGBToLinear(v[0] / 65535))
	case SpaceSRGB:
		return linearRGBToXYZ(decodeSRGB8(v[0]), decodeSRGB8(v[1]), decodeSRGB8(v[2]))
	case SpaceRGB16:
		return linearRGBToXYZ(
			SRGBToLinear(v[0]/65535), SRGBToLinear(v[1]/65535), SRGBToLinear(v[2]/65535))
	case SpaceScRGB:
		return linearRGBToXYZ(v[0], v[1], v[2])
	case SpaceXYZ:
		return v[0], v[1], v[2]
	case SpaceLab:
		return labToXYZ(v[0], v[1], v[2])
	case SpaceLCh:
		h := v[2] * math.Pi / 180
		return labToXYZ(v[0], v[1]*math.Cos(h), v[1]*math.Sin(h))
	case SpaceHSV:
		r, g, b := hsvToRGB(v[0], v[1], v[2])
		return linearRGBToXYZ(decodeSRGB8(r), decodeSRGB8(g), decodeSRGB8(b))
	case SpaceYxy:
		if v[2] == 0 {
			return 0, 0, 0
		}
		return v[1] * v[0] / v[2], v[0], (1 - v[1] - v[2]) * v[0] / v[2]
	}
	panic("color: no conversion from " + s.String())
}

func fromXYZ(s Space, dst []float64, x, y, z float64) {
	switch s {
	case SpaceBW:
		dst[0] = 255 * LinearToSRGB(clamp01(y/whiteY))
	case SpaceGrey16:
		dst[0] = 65535 * LinearToSRGB(clamp01(y/whiteY))
	case SpaceSRGB, SpaceRGB16, SpaceHSV:
		scale := 255.0
		if s == SpaceRGB16 {
			scale = 65535
		}
		r, g, b := xyzToLinearRGB(x, y, z)
		dst[0] = scale * LinearToSRGB(clamp01(r))
		dst[1] = scale * LinearToSRGB(clamp01(g))
		dst[2] = scale * LinearToSRGB(clamp01(b))
		if s == SpaceHSV {
			dst[0], dst[1], dst[2] = rgbToHSV(dst[0], dst[1], dst[2])
		}
	case SpaceScRGB:
		dst[0], dst[1], dst[2] = xyzToLinearRGB(x, y, z)
	case SpaceXYZ:
		dst[0], dst[1], dst[2] = x, y, z
	case SpaceLab:
		dst[0], dst[1], dst[2] = xyzToLab(x, y, z)
	case SpaceLCh:
		l, a, b := xyzToLab(x, y, z)
		h := math.Atan2(b, a) * 180 / math.Pi
		if h < 0 {
			h += 360
		}
		dst[0], dst[1], dst[2] = l, math.Hypot(a, b), h
	case SpaceYxy:
		dst[0] = y
		dst[1], dst[2] = 0, 0
		if sum := x + y + z; sum != 0 {
			dst[1], dst[2] = x/sum, y/sum
		}
	default:
		panic("color: no conversion to " + s.String())
	}
}

// whiteY is the luminance of linear RGB white under rgbToXYZ.
var whiteY = rgbToXYZ[1][0] + rgbToXYZ[1][1] + rgbToXYZ[1][2]

func greyToXYZ(lin float64) (x, y, z float64) {
	return linearRGBToXYZ(lin, lin, lin)
}

func linearRGBToXYZ(r, g, b float64) (x, y, z float64) {
	m := &rgbToXYZ
	x = m[0][0]*r + m[0][1]*g + m[0][2]*b
	y = m[1][0]*r + m[1][1]*g + m[1][2]*b
	z = m[2][0]*r + m[2][1]*g + m[2][2]*b
	return x, y, z
}

func xyzToLinearRGB(x, y, z float64) (r, g, b float64) {
	m := &xyzToRGB
	r = m[0][0]*x + m[0][1]*y + m[0][2]*z
	g = m[1][0]*x + m[1][1]*y + m[1][2]*z
	b = m[2][0]*x + m[2][1]*y + m[2][2]*z
	return r, g, b
}

func labF(t float64) float64 {
	if t > labEpsilon {
		return math.Cbrt(t)
	}
	return (labKappa*t + 16) / 116
}

func labFInv(f float64) float64 {
	if f3 := f * f * f; f3 > labEpsilon {
		return f3
	}
	return (116*f - 16) / labKappa
}

func xyzToLab(x, y, z float64) (l, a, b float64) {
	fx := labF(x / D65X0)
	fy := labF(y / D65Y0)
	fz := labF(z / D65Z0)
	return 116*fy - 16, 500 * (fx - fy), 200 * (fy - fz)
}

func labToXYZ(l, a, b float64) (x, y, z float64) {
	fy := (l + 16) / 116
	fx := fy + a/500
	fz := fy - b/200

	yr := l / labKappa
	if l > labKappa*labEpsilon {
		yr = fy * fy * fy
	}
	return labFInv(fx) * D65X0, yr * D65Y0, labFInv(fz) * D65Z0
}

func clamp01(v float64) float64 {
	return min(1, max(0, v))
}

// rgbToHSV converts sRGB on the 0-255 scale to HSV with every band on the
// 0-255 scale, hue included.
func rgbToHSV(r, g, b float64) (h, s, v float64) {
	hi := max(r, g, b)
	d := hi - min(r, g, b)
	if hi > 0 {
		s = 255 * d / hi
	}
	if d == 0 {
		return 0, s, hi
	}

	var deg float64
	switch hi {
	case r:
		deg = 60 * math.Mod((g-b)/d, 6)
	case g:
		deg = 60 * ((b-r)/d + 2)
	default:
		deg = 60 * ((r-g)/d + 4)
	}
	if deg < 0 {
		deg += 360
	}
	return deg * 255 / 360, s, hi
}

func hsvToRGB(h, s, v float64) (r, g, b float64) {
	c := v * s / 255
	sector := math.Mod(h*6/255, 6)
	if sector < 0 {
		sector += 6
	}
	x := c * (1 - math.Abs(math.Mod(sector, 2)-1))
	m := v - c

	switch {
	case sector < 1:
		r, g, b = c, x, 0
	case sector < 2:
		r, g, b = x, c, 0
	case sector < 3:
		r, g, b = 0, c, x
	case sector < 4:
		r, g, b = 0, x, c
	case sector < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return r + m, g + m, b + m
}
