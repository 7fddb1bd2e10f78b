package composite

import (
	"errors"

	"github.com/gogpu/composite/internal/color"
	"github.com/gogpu/composite/internal/combine"
)

// Errors returned by Build, and by Run for tile failures. Every error
// wraps one of these and can be matched with errors.Is.
var (
	// ErrEmptyStack is returned when no images are given.
	ErrEmptyStack = errors.New("composite: no input images")

	// ErrNilImage is returned when a stack contains a nil image.
	ErrNilImage = errors.New("composite: nil image")

	// ErrOperatorCountMismatch is returned when there is not exactly one
	// blend mode per image above the bottom one.
	ErrOperatorCountMismatch = errors.New("composite: wrong number of blend modes")

	// ErrChannelCountMismatch is returned when the images still differ in
	// band count after conversion to the compositing space.
	ErrChannelCountMismatch = errors.New("composite: images do not have the same number of bands")

	// ErrInvalidOperator is returned for a blend mode outside the defined set.
	ErrInvalidOperator = combine.ErrInvalidOperator

	// ErrTooManyImages is returned for stacks of more than MaxImages images
	// after layers hidden below an image without alpha are dropped.
	ErrTooManyImages = combine.ErrTooManyImages

	// ErrTooManyChannels is returned when the images have more than
	// MaxBands colour bands.
	ErrTooManyChannels = combine.ErrTooManyChannels

	// ErrUnsupportedSpace is returned for a compositing space with no
	// channel limits, such as CMYK.
	ErrUnsupportedSpace = color.ErrUnsupportedSpace

	// ErrUnsupportedConversion is returned when an image cannot be
	// converted to the compositing space.
	ErrUnsupportedConversion = color.ErrUnsupportedConversion

	// ErrRowUnavailable is returned when an input cannot supply a row of a
	// requested region.
	ErrRowUnavailable = combine.ErrRowUnavailable
)

// Stack limits.
const (
	MaxImages = combine.MaxImages
	MaxBands  = combine.MaxBands
)
