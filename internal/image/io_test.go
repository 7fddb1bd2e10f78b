package image

import (
	"bytes"
	"errors"
	"image"
	stdcolor "image/color"
	"math"
	"path/filepath"
	"testing"

	"github.com/gogpu/composite/internal/color"
)

func TestFileFormat(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a.png", "png"},
		{"dir/B.JPG", "jpeg"},
		{"c.jpeg", "jpeg"},
		{"d.tif", "tiff"},
		{"e.TIFF", "tiff"},
		{"f.bmp", "bmp"},
		{"g.gif", "gif"},
		{"h.webp", "webp"},
		{"i.exr", "exr"},
	}
	for _, tt := range tests {
		got, err := FileFormat(tt.path)
		if err != nil || got != tt.want {
			t.Errorf("FileFormat(%q) = %q, %v; want %q", tt.path, got, err, tt.want)
		}
	}
	if _, err := FileFormat("x.psd"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("FileFormat(x.psd) error = %v, want ErrUnsupportedFormat", err)
	}
}

// roundTrip encodes b in format and decodes the result.
func roundTrip(t *testing.T, b *Buf, format string) *Buf {
	t.Helper()
	var w bytes.Buffer
	if err := Encode(&w, b, format); err != nil {
		t.Fatalf("Encode(%s): %v", format, err)
	}
	out, err := Decode(&w)
	if err != nil {
		t.Fatalf("Decode(%s): %v", format, err)
	}
	return out
}

func TestLosslessRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		format string
		bands  int
		fmt    Format
		space  color.Space
		px     []float64
	}{
		{"png rgba", "png", 4, FormatUchar, color.SpaceSRGB, []float64{10, 20, 30, 200}},
		{"png rgb", "png", 3, FormatUchar, color.SpaceSRGB, []float64{10, 20, 30}},
		{"png grey", "png", 1, FormatUchar, color.SpaceBW, []float64{77}},
		{"png rgba16", "png", 4, FormatUshort, color.SpaceRGB16, []float64{1000, 20000, 65535, 30000}},
		{"png grey16", "png", 1, FormatUshort, color.SpaceGrey16, []float64{4242}},
		{"tiff rgba", "tiff", 4, FormatUchar, color.SpaceSRGB, []float64{1, 2, 3, 128}},
		{"bmp rgb", "bmp", 3, FormatUchar, color.SpaceSRGB, []float64{9, 99, 199}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, _ := NewBuf(5, 3, tt.bands, tt.fmt, tt.space)
			buf.Fill(tt.px...)

			out := roundTrip(t, buf, tt.format)
			if out.Width() != 5 || out.Height() != 3 {
				t.Fatalf("size = %dx%d", out.Width(), out.Height())
			}
			if out.Bands() != tt.bands || out.Space() != tt.space || out.Format() != tt.fmt {
				t.Fatalf("got %d bands %v %v, want %d %v %v",
					out.Bands(), out.Space(), out.Format(), tt.bands, tt.space, tt.fmt)
			}
			for c, want := range tt.px {
				if got := out.At(4, 2, c); got != want {
					t.Errorf("band %d = %v, want %v", c, got, want)
				}
			}
		})
	}
}

func TestToStdConvertsFloatSpaces(t *testing.T) {
	buf, _ := NewBuf(2, 2, 4, FormatFloat, color.SpaceScRGB)
	buf.Fill(1, 0, 0, 51)

	out := roundTrip(t, buf, "png")
	if out.Space() != color.SpaceRGB16 || out.Bands() != 4 {
		t.Fatalf("got %v with %d bands, want rgb16 with 4", out.Space(), out.Bands())
	}
	if out.At(0, 0, 0) != 65535 || out.At(0, 0, 1) != 0 || out.At(0, 0, 3) != 51*257 {
		t.Errorf("pixel = %v %v %v %v",
			out.At(0, 0, 0), out.At(0, 0, 1), out.At(0, 0, 2), out.At(0, 0, 3))
	}
}

func TestToStdUnsupportedBands(t *testing.T) {
	buf, _ := NewBuf(1, 1, 5, FormatUchar, color.SpaceSRGB)
	if _, err := ToStd(buf); !errors.Is(err, ErrUnsupportedBands) {
		t.Errorf("error = %v, want ErrUnsupportedBands", err)
	}
}

func TestEncodeEXRNeedsSeeker(t *testing.T) {
	buf, _ := NewBuf(1, 1, 4, FormatFloat, color.SpaceScRGB)
	var w bytes.Buffer
	if err := Encode(&w, buf, "exr"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestSaveLoadEXR(t *testing.T) {
	buf, _ := NewBuf(4, 2, 4, FormatUchar, color.SpaceSRGB)
	buf.Fill(255, 128, 0, 255)

	path := filepath.Join(t.TempDir(), "layer.exr")
	if err := Save(buf, path); err != nil {
		t.Fatal(err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if out.Space() != color.SpaceScRGB || out.Format() != FormatFloat || out.Bands() != 4 {
		t.Fatalf("got %v %v %d bands", out.Space(), out.Format(), out.Bands())
	}
	want := []float64{1, color.SRGBToLinear(128.0 / 255), 0, 255}
	tol := []float64{1e-3, 1e-3, 1e-3, 0.5}
	for c := range want {
		if got := out.At(3, 1, c); math.Abs(got-want[c]) > tol[c] {
			t.Errorf("band %d = %v, want %v", c, got, want[c])
		}
	}
}

func TestSaveLoadJPEG(t *testing.T) {
	buf, _ := NewBuf(16, 8, 3, FormatUchar, color.SpaceSRGB)
	buf.Fill(200, 100, 50)

	path := filepath.Join(t.TempDir(), "photo.jpg")
	if err := Save(buf, path); err != nil {
		t.Fatal(err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if out.Width() != 16 || out.Height() != 8 || out.Bands() != 3 {
		t.Fatalf("got %dx%dx%d", out.Width(), out.Height(), out.Bands())
	}
	if got := out.At(8, 4, 0); math.Abs(got-200) > 8 {
		t.Errorf("red = %v, want about 200", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Load of a missing file succeeded")
	}
}

func TestFromStdPacked(t *testing.T) {
	nrgba := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	copy(nrgba.Pix, []uint8{10, 20, 30, 40, 50, 60, 70, 255})
	gray := image.NewGray(image.Rect(0, 0, 3, 1))
	copy(gray.Pix, []uint8{1, 2, 3})
	// a sub-image has a stride wider than its width
	sub := image.NewNRGBA(image.Rect(0, 0, 4, 2)).SubImage(image.Rect(1, 0, 3, 2)).(*image.NRGBA)
	sub.SetNRGBA(1, 1, stdcolor.NRGBA{R: 9, A: 7})

	tests := []struct {
		name  string
		img   image.Image
		bands int
		space color.Space
		x, y  int
		want  []float64
	}{
		{"nrgba", nrgba, 4, color.SpaceSRGB, 1, 0, []float64{50, 60, 70, 255}},
		{"gray", gray, 1, color.SpaceBW, 2, 0, []float64{3}},
		{"padded nrgba", sub, 4, color.SpaceSRGB, 0, 1, []float64{9, 0, 0, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := FromStd(tt.img)
			if b.Bands() != tt.bands || b.Space() != tt.space || b.Format() != FormatUchar {
				t.Fatalf("got %d bands %v %v", b.Bands(), b.Space(), b.Format())
			}
			for k, v := range tt.want {
				if got := b.At(tt.x, tt.y, k); got != v {
					t.Errorf("band %d = %v, want %v", k, got, v)
				}
			}
		})
	}

	b := FromStd(nrgba)
	nrgba.Pix[0] = 99
	if b.At(0, 0, 0) != 10 {
		t.Error("FromStd shares samples with its source")
	}
}
