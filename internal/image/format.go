// Package image provides the multi-band pixel buffers a composite reads and
// writes, their sample formats, and the codecs that move them to and from
// files.
package image

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
)

// Format is the element type of every sample in a buffer. The order is
// significant: when layers of different formats meet, all are cast to the
// one that sorts last.
type Format uint8

const (
	// FormatUchar is unsigned 8-bit.
	FormatUchar Format = iota

	// FormatChar is signed 8-bit.
	FormatChar

	// FormatUshort is unsigned 16-bit.
	FormatUshort

	// FormatShort is signed 16-bit.
	FormatShort

	// FormatUint is unsigned 32-bit.
	FormatUint

	// FormatInt is signed 32-bit.
	FormatInt

	// FormatFloat is 32-bit IEEE floating point.
	FormatFloat

	// FormatDouble is 64-bit IEEE floating point.
	FormatDouble

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatInfo contains metadata about a sample format.
type FormatInfo struct {
	// Name is the lower-case format name.
	Name string

	// BytesPerSample is the storage size of one sample.
	BytesPerSample int

	// Min and Max bound the representable range. Float formats report
	// infinities; their values are never clipped.
	Min, Max float64

	// IsFloat indicates a floating point format.
	IsFloat bool

	// IsSigned indicates the format holds negative values.
	IsSigned bool
}

// formatInfoTable contains metadata for each format.
var formatInfoTable = [formatCount]FormatInfo{
	FormatUchar: {
		Name:           "uchar",
		BytesPerSample: 1,
		Min:            0,
		Max:            math.MaxUint8,
	},
	FormatChar: {
		Name:           "char",
		BytesPerSample: 1,
		Min:            math.MinInt8,
		Max:            math.MaxInt8,
		IsSigned:       true,
	},
	FormatUshort: {
		Name:           "ushort",
		BytesPerSample: 2,
		Min:            0,
		Max:            math.MaxUint16,
	},
	FormatShort: {
		Name:           "short",
		BytesPerSample: 2,
		Min:            math.MinInt16,
		Max:            math.MaxInt16,
		IsSigned:       true,
	},
	FormatUint: {
		Name:           "uint",
		BytesPerSample: 4,
		Min:            0,
		Max:            math.MaxUint32,
	},
	FormatInt: {
		Name:           "int",
		BytesPerSample: 4,
		Min:            math.MinInt32,
		Max:            math.MaxInt32,
		IsSigned:       true,
	},
	FormatFloat: {
		Name:           "float",
		BytesPerSample: 4,
		Min:            math.Inf(-1),
		Max:            math.Inf(1),
		IsFloat:        true,
		IsSigned:       true,
	},
	FormatDouble: {
		Name:           "double",
		BytesPerSample: 8,
		Min:            math.Inf(-1),
		Max:            math.Inf(1),
		IsFloat:        true,
		IsSigned:       true,
	},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// BytesPerSample returns the storage size of one sample.
func (f Format) BytesPerSample() int {
	return f.Info().BytesPerSample
}

// Min returns the smallest representable value.
func (f Format) Min() float64 {
	return f.Info().Min
}

// Max returns the largest representable value.
func (f Format) Max() float64 {
	return f.Info().Max
}

// IsFloat returns true for the floating point formats.
func (f Format) IsFloat() bool {
	return f.Info().IsFloat
}

// Is16Bit returns true for the 16-bit integer formats.
func (f Format) Is16Bit() bool {
	return f == FormatUshort || f == FormatShort
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// String returns a string representation of the format.
func (f Format) String() string {
	if !f.IsValid() {
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
	return formatInfoTable[f].Name
}

// ParseFormat parses a format name such as "uchar" or "Float".
func ParseFormat(name string) (Format, error) {
	key := cases.Fold().String(strings.TrimSpace(name))
	for f := range formatCount {
		if formatInfoTable[f].Name == key {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, name)
}

// CommonFormat returns the format every layer of a stack is cast to: the
// one that sorts last. It returns FormatUchar for no formats.
func CommonFormat(formats ...Format) Format {
	common := FormatUchar
	for _, f := range formats {
		common = max(common, f)
	}
	return common
}
