package composite

import (
	"testing"

	"github.com/gogpu/composite/internal/parallel"
)

func TestOptions(t *testing.T) {
	tests := []struct {
		name  string
		opts  []Option
		check func(t *testing.T, o options)
	}{
		{"defaults", nil, func(t *testing.T, o options) {
			if o.spaceSet || o.premultiplied || o.native || o.noVector || o.workers != 0 {
				t.Errorf("defaults = %+v", o)
			}
			if o.tileW != parallel.TileWidth || o.tileH != parallel.TileHeight {
				t.Errorf("tile = %dx%d, want %dx%d", o.tileW, o.tileH, parallel.TileWidth, parallel.TileHeight)
			}
		}},
		{"space", []Option{WithCompositingSpace(SpaceLab)}, func(t *testing.T, o options) {
			if !o.spaceSet || o.space != SpaceLab {
				t.Errorf("space = %v (set %v), want lab", o.space, o.spaceSet)
			}
		}},
		{"premultiplied", []Option{WithPremultiplied(true)}, func(t *testing.T, o options) {
			if !o.premultiplied {
				t.Error("premultiplied not set")
			}
		}},
		{"workers", []Option{WithWorkers(3)}, func(t *testing.T, o options) {
			if o.workers != 3 {
				t.Errorf("workers = %d, want 3", o.workers)
			}
		}},
		{"tile size", []Option{WithTileSize(16, 8)}, func(t *testing.T, o options) {
			if o.tileW != 16 || o.tileH != 8 {
				t.Errorf("tile = %dx%d, want 16x8", o.tileW, o.tileH)
			}
		}},
		{"tile size ignores non-positive", []Option{WithTileSize(0, -3)}, func(t *testing.T, o options) {
			if o.tileW != parallel.TileWidth || o.tileH != parallel.TileHeight {
				t.Errorf("tile = %dx%d, want defaults", o.tileW, o.tileH)
			}
		}},
		{"native", []Option{WithNativeFormat()}, func(t *testing.T, o options) {
			if !o.native {
				t.Error("native not set")
			}
		}},
		{"vector off then on", []Option{WithVector(false), WithVector(true)}, func(t *testing.T, o options) {
			if o.noVector {
				t.Error("last WithVector should win")
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := defaultOptions()
			for _, opt := range tt.opts {
				opt(&o)
			}
			tt.check(t, o)
		})
	}
}
