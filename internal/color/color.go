// Package color provides the colour spaces pixels are composited in, the
// per-band value limits of each space, and conversion between spaces.
package color

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// ErrUnknownSpace is returned when a space name is not recognized.
var ErrUnknownSpace = errors.New("color: unknown color space")

// Space describes how the bands of an image are interpreted.
type Space uint8

const (
	// SpaceMultiband is a generic image with no colour meaning.
	SpaceMultiband Space = iota
	// SpaceBW is 8-bit greyscale.
	SpaceBW
	// SpaceGrey16 is 16-bit greyscale.
	SpaceGrey16
	// SpaceSRGB is 8-bit sRGB.
	SpaceSRGB
	// SpaceRGB16 is 16-bit sRGB.
	SpaceRGB16
	// SpaceScRGB is linear-light RGB in the range 0-1.
	SpaceScRGB
	// SpaceXYZ is CIE XYZ with a D65 white scaled to Y = 100.
	SpaceXYZ
	// SpaceLab is CIE L*a*b* relative to D65.
	SpaceLab
	// SpaceLCh is the polar form of Lab, hue in degrees.
	SpaceLCh
	// SpaceCMC is the CMC(l:c) uniform space.
	SpaceCMC
	// SpaceYxy is CIE Yxy.
	SpaceYxy
	// SpaceHSV is 8-bit hue, saturation, value.
	SpaceHSV
	// SpaceCMYK is four-ink colour.
	SpaceCMYK

	spaceCount
)

var spaceNames = [spaceCount]string{
	SpaceMultiband: "multiband",
	SpaceBW:        "b-w",
	SpaceGrey16:    "grey16",
	SpaceSRGB:      "srgb",
	SpaceRGB16:     "rgb16",
	SpaceScRGB:     "scrgb",
	SpaceXYZ:       "xyz",
	SpaceLab:       "lab",
	SpaceLCh:       "lch",
	SpaceCMC:       "cmc",
	SpaceYxy:       "yxy",
	SpaceHSV:       "hsv",
	SpaceCMYK:      "cmyk",
}

var spaceAliases = map[string]Space{
	"bw":     SpaceBW,
	"grey":   SpaceBW,
	"gray":   SpaceBW,
	"gray16": SpaceGrey16,
	"rgb":    SpaceSRGB,
	"linear": SpaceScRGB,
}

// String returns the space name as accepted by ParseSpace.
func (s Space) String() string {
	if s >= spaceCount {
		return fmt.Sprintf("Space(%d)", uint8(s))
	}
	return spaceNames[s]
}

// ParseSpace parses a space name, ignoring case.
func ParseSpace(name string) (Space, error) {
	key := cases.Fold().String(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "_", "-")

	for s, n := range spaceNames {
		if n == key {
			return Space(s), nil
		}
	}
	if s, ok := spaceAliases[key]; ok {
		return s, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSpace, name)
}

// Bands returns the number of colour bands an image in s has, not counting
// alpha. Multiband images have no fixed count and report 0.
func (s Space) Bands() int {
	switch s {
	case SpaceMultiband:
		return 0
	case SpaceBW, SpaceGrey16:
		return 1
	case SpaceCMYK:
		return 4
	default:
		return 3
	}
}

// IsGrey reports whether s is one of the single-band grey spaces.
func (s Space) IsGrey() bool {
	return s == SpaceBW || s == SpaceGrey16
}

// Is16Bit reports whether s holds 16-bit values.
func (s Space) Is16Bit() bool {
	return s == SpaceGrey16 || s == SpaceRGB16
}

// MaxAlpha returns the value of a fully opaque alpha in s.
func (s Space) MaxAlpha() float64 {
	if s.Is16Bit() {
		return 65535
	}
	return 255
}
