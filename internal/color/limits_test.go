package color

import (
	"errors"
	"testing"
)

func TestMaxBand(t *testing.T) {
	tests := []struct {
		name  string
		space Space
		bands int
		want  []float64
	}{
		{"srgb", SpaceSRGB, 3, []float64{255, 255, 255, 255}},
		{"rgb16", SpaceRGB16, 3, []float64{65535, 65535, 65535, 65535}},
		{"grey16", SpaceGrey16, 1, []float64{65535, 65535}},
		{"b-w", SpaceBW, 1, []float64{256, 255}},
		{"xyz", SpaceXYZ, 3, []float64{D65X0, D65Y0, D65Z0, 255}},
		{"lab", SpaceLab, 3, []float64{100, 128, 128, 255}},
		{"lch", SpaceLCh, 3, []float64{100, 128, 360, 255}},
		{"cmc", SpaceCMC, 3, []float64{100, 128, 360, 255}},
		{"scrgb", SpaceScRGB, 3, []float64{1, 1, 1, 255}},
		{"hsv", SpaceHSV, 3, []float64{255, 255, 255, 255}},
		{"yxy", SpaceYxy, 3, []float64{100, 1, 1, 255}},
		{"srgb extra bands", SpaceSRGB, 5, []float64{255, 255, 255, 255, 255, 255}},
		{"b-w extra bands", SpaceBW, 3, []float64{256, 255, 255, 255}},
		{"lab one band keeps alpha", SpaceLab, 1, []float64{100, 255}},
		{"xyz two bands keeps alpha", SpaceXYZ, 2, []float64{D65X0, D65Y0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MaxBand(tt.space, tt.bands)
			if err != nil {
				t.Fatalf("MaxBand: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("band %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMaxBandUnsupported(t *testing.T) {
	for _, s := range []Space{SpaceMultiband, SpaceCMYK, Space(99)} {
		if _, err := MaxBand(s, 3); !errors.Is(err, ErrUnsupportedSpace) {
			t.Errorf("MaxBand(%v) error = %v, want ErrUnsupportedSpace", s, err)
		}
	}
}
