package color

import (
	"errors"
	"fmt"
)

// ErrUnsupportedSpace is returned by MaxBand for spaces with no limit table.
var ErrUnsupportedSpace = errors.New("color: unsupported compositing space")

// D65 reference white, Y scaled to 100.
const (
	D65X0 = 95.047
	D65Y0 = 100.0
	D65Z0 = 108.883
)

// MaxBand returns the value that maps to 1.0 for each band of an image in
// space with the given number of colour bands. The slice has bands+1
// entries; the last one is the alpha maximum.
//
// Bands without a space-specific maximum use the alpha maximum.
func MaxBand(space Space, bands int) ([]float64, error) {
	var fixed []float64

	switch space {
	case SpaceXYZ:
		fixed = []float64{D65X0, D65Y0, D65Z0}
	case SpaceLab:
		fixed = []float64{100, 128, 128}
	case SpaceLCh, SpaceCMC:
		fixed = []float64{100, 128, 360}
	case SpaceScRGB:
		fixed = []float64{1, 1, 1}
	case SpaceSRGB, SpaceHSV:
		fixed = []float64{255, 255, 255}
	case SpaceRGB16:
		fixed = []float64{65535, 65535, 65535}
	case SpaceGrey16:
		fixed = []float64{65535}
	case SpaceYxy:
		fixed = []float64{100, 1, 1}
	case SpaceBW:
		fixed = []float64{256}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedSpace, space)
	}

	limits := make([]float64, bands+1)
	maxAlpha := space.MaxAlpha()
	for i := range limits {
		limits[i] = maxAlpha
	}
	// alpha is never overridden
	copy(limits[:bands], fixed)

	return limits, nil
}
