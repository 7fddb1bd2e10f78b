package composite

import (
	"github.com/gogpu/composite/internal/blend"
	"github.com/gogpu/composite/internal/color"
	"github.com/gogpu/composite/internal/image"
)

// BlendMode selects how a layer is blended onto the layers below it.
type BlendMode = blend.BlendMode

// Porter-Duff operators.
const (
	BlendClear    = blend.BlendClear
	BlendSource   = blend.BlendSource
	BlendOver     = blend.BlendOver
	BlendIn       = blend.BlendIn
	BlendOut      = blend.BlendOut
	BlendAtop     = blend.BlendAtop
	BlendDest     = blend.BlendDest
	BlendDestOver = blend.BlendDestOver
	BlendDestIn   = blend.BlendDestIn
	BlendDestOut  = blend.BlendDestOut
	BlendDestAtop = blend.BlendDestAtop
	BlendXor      = blend.BlendXor
	BlendAdd      = blend.BlendAdd
	BlendSaturate = blend.BlendSaturate
)

// PDF separable blend modes.
const (
	BlendMultiply   = blend.BlendMultiply
	BlendScreen     = blend.BlendScreen
	BlendOverlay    = blend.BlendOverlay
	BlendDarken     = blend.BlendDarken
	BlendLighten    = blend.BlendLighten
	BlendColorDodge = blend.BlendColorDodge
	BlendColorBurn  = blend.BlendColorBurn
	BlendHardLight  = blend.BlendHardLight
	BlendSoftLight  = blend.BlendSoftLight
	BlendDifference = blend.BlendDifference
	BlendExclusion  = blend.BlendExclusion
)

// ParseBlendMode parses a blend mode name such as "over" or "soft-light".
func ParseBlendMode(name string) (BlendMode, error) {
	return blend.ParseBlendMode(name)
}

// BlendModes returns every blend mode in order.
func BlendModes() []BlendMode {
	return blend.Modes()
}

// Space is the colour interpretation of an image's bands.
type Space = color.Space

// Colour spaces.
const (
	SpaceMultiband = color.SpaceMultiband
	SpaceBW        = color.SpaceBW
	SpaceGrey16    = color.SpaceGrey16
	SpaceSRGB      = color.SpaceSRGB
	SpaceRGB16     = color.SpaceRGB16
	SpaceScRGB     = color.SpaceScRGB
	SpaceXYZ       = color.SpaceXYZ
	SpaceLab       = color.SpaceLab
	SpaceLCh       = color.SpaceLCh
	SpaceCMC       = color.SpaceCMC
	SpaceYxy       = color.SpaceYxy
	SpaceHSV       = color.SpaceHSV
	SpaceCMYK      = color.SpaceCMYK
)

// ParseSpace parses a colour space name such as "srgb" or "lab".
func ParseSpace(name string) (Space, error) {
	return color.ParseSpace(name)
}

// Format is the element type of an image's samples.
type Format = image.Format

// Sample formats, in the order used to pick a common format.
const (
	FormatUchar  = image.FormatUchar
	FormatChar   = image.FormatChar
	FormatUshort = image.FormatUshort
	FormatShort  = image.FormatShort
	FormatUint   = image.FormatUint
	FormatInt    = image.FormatInt
	FormatFloat  = image.FormatFloat
	FormatDouble = image.FormatDouble
)

// ParseFormat parses a format name such as "uchar" or "float".
func ParseFormat(name string) (Format, error) {
	return image.ParseFormat(name)
}
