package blend

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// ErrUnknownMode is returned when a blend mode name is not recognized.
var ErrUnknownMode = errors.New("blend: unknown blend mode")

var modeNames = [blendModeCount]string{
	BlendClear:      "clear",
	BlendSource:     "source",
	BlendOver:       "over",
	BlendIn:         "in",
	BlendOut:        "out",
	BlendAtop:       "atop",
	BlendDest:       "dest",
	BlendDestOver:   "dest-over",
	BlendDestIn:     "dest-in",
	BlendDestOut:    "dest-out",
	BlendDestAtop:   "dest-atop",
	BlendXor:        "xor",
	BlendAdd:        "add",
	BlendSaturate:   "saturate",
	BlendMultiply:   "multiply",
	BlendScreen:     "screen",
	BlendOverlay:    "overlay",
	BlendDarken:     "darken",
	BlendLighten:    "lighten",
	BlendColorDodge: "color-dodge",
	BlendColorBurn:  "color-burn",
	BlendHardLight:  "hard-light",
	BlendSoftLight:  "soft-light",
	BlendDifference: "difference",
	BlendExclusion:  "exclusion",
}

// aliases maps alternative spellings onto modes.
var aliases = map[string]BlendMode{
	"colour-dodge": BlendColorDodge,
	"colour-burn":  BlendColorBurn,
	"src":          BlendSource,
	"src-over":     BlendOver,
	"dst":          BlendDest,
	"dst-over":     BlendDestOver,
	"dst-in":       BlendDestIn,
	"dst-out":      BlendDestOut,
	"dst-atop":     BlendDestAtop,
}

// String returns the canonical name of the mode.
func (m BlendMode) String() string {
	if !m.IsValid() {
		return fmt.Sprintf("BlendMode(%d)", uint8(m))
	}
	return modeNames[m]
}

// IsValid reports whether m is one of the defined modes.
func (m BlendMode) IsValid() bool {
	return m < blendModeCount
}

// IsSeparable reports whether m is a PDF separable blend mode.
func (m BlendMode) IsSeparable() bool {
	return m >= BlendMultiply && m < blendModeCount
}

// Modes returns every defined mode in code order.
func Modes() []BlendMode {
	modes := make([]BlendMode, blendModeCount)
	for i := range modes {
		modes[i] = BlendMode(i)
	}
	return modes
}

// ParseBlendMode parses a mode name. Matching ignores case, and '_' or ' '
// may be used in place of '-' ("DEST_OVER", "Soft Light").
func ParseBlendMode(name string) (BlendMode, error) {
	key := cases.Fold().String(strings.TrimSpace(name))
	key = strings.NewReplacer("_", "-", " ", "-").Replace(key)

	for m, n := range modeNames {
		if n == key {
			return BlendMode(m), nil
		}
	}
	if m, ok := aliases[key]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}
