package image

import (
	"errors"
	"math"
	"testing"
)

func TestFormat_Info(t *testing.T) {
	tests := []struct {
		format  Format
		bytes   int
		min     float64
		max     float64
		isFloat bool
	}{
		{FormatUchar, 1, 0, 255, false},
		{FormatChar, 1, -128, 127, false},
		{FormatUshort, 2, 0, 65535, false},
		{FormatShort, 2, -32768, 32767, false},
		{FormatUint, 4, 0, 4294967295, false},
		{FormatInt, 4, -2147483648, 2147483647, false},
		{FormatFloat, 4, math.Inf(-1), math.Inf(1), true},
		{FormatDouble, 8, math.Inf(-1), math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			if got := tt.format.BytesPerSample(); got != tt.bytes {
				t.Errorf("BytesPerSample() = %d, want %d", got, tt.bytes)
			}
			if got := tt.format.Min(); got != tt.min {
				t.Errorf("Min() = %v, want %v", got, tt.min)
			}
			if got := tt.format.Max(); got != tt.max {
				t.Errorf("Max() = %v, want %v", got, tt.max)
			}
			if got := tt.format.IsFloat(); got != tt.isFloat {
				t.Errorf("IsFloat() = %v, want %v", got, tt.isFloat)
			}
		})
	}
}

func TestFormat_Invalid(t *testing.T) {
	f := Format(200)
	if f.IsValid() {
		t.Error("IsValid() = true")
	}
	if f.String() != "Format(200)" {
		t.Errorf("String() = %q", f.String())
	}
	if f.Info() != (FormatInfo{}) {
		t.Errorf("Info() = %+v, want zero", f.Info())
	}
}

func TestParseFormat(t *testing.T) {
	for f := range formatCount {
		got, err := ParseFormat(f.String())
		if err != nil || got != f {
			t.Errorf("ParseFormat(%q) = %v, %v", f.String(), got, err)
		}
	}
	if got, err := ParseFormat(" UShort "); err != nil || got != FormatUshort {
		t.Errorf("ParseFormat(UShort) = %v, %v", got, err)
	}
	if _, err := ParseFormat("half"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("ParseFormat(half) error = %v, want ErrInvalidFormat", err)
	}
}

func TestCommonFormat(t *testing.T) {
	tests := []struct {
		name    string
		formats []Format
		want    Format
	}{
		{"none", nil, FormatUchar},
		{"single", []Format{FormatShort}, FormatShort},
		{"uchar and ushort", []Format{FormatUchar, FormatUshort}, FormatUshort},
		{"char beats uchar", []Format{FormatChar, FormatUchar}, FormatChar},
		{"float beats int", []Format{FormatInt, FormatFloat, FormatUchar}, FormatFloat},
		{"double wins", []Format{FormatDouble, FormatFloat}, FormatDouble},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CommonFormat(tt.formats...); got != tt.want {
				t.Errorf("CommonFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		got, want Format
	}{
		{FormatOf[uint8](), FormatUchar},
		{FormatOf[int8](), FormatChar},
		{FormatOf[uint16](), FormatUshort},
		{FormatOf[int16](), FormatShort},
		{FormatOf[uint32](), FormatUint},
		{FormatOf[int32](), FormatInt},
		{FormatOf[float32](), FormatFloat},
		{FormatOf[float64](), FormatDouble},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("FormatOf = %v, want %v", tt.got, tt.want)
		}
	}
}

func TestClip(t *testing.T) {
	lo, hi := FormatUchar.Min(), FormatUchar.Max()
	tests := []struct {
		in   float64
		want uint8
	}{
		{-5, 0},
		{0, 0},
		{1.4, 1},
		{1.5, 2},
		{254.6, 255},
		{300, 255},
	}
	for _, tt := range tests {
		if got := Clip[uint8](tt.in, lo, hi, false); got != tt.want {
			t.Errorf("Clip[uint8](%v) = %d, want %d", tt.in, got, tt.want)
		}
	}

	if got := Clip[float32](1e6, math.Inf(-1), math.Inf(1), true); got != 1e6 {
		t.Errorf("Clip[float32](1e6) = %v, want unclipped", got)
	}
	if got := Clip[int16](-40000, FormatShort.Min(), FormatShort.Max(), false); got != -32768 {
		t.Errorf("Clip[int16](-40000) = %d, want -32768", got)
	}
}
