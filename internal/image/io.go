package image

import (
	"errors"
	"fmt"
	"image"
	imgcolor "image/color"
	_ "image/gif" // register GIF decoder
	"image/png"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/mrjoshuak/go-openexr/exr"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/gogpu/composite/internal/color"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the file format is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported file format")

	// ErrUnsupportedBands is returned when a buffer's bands cannot be
	// represented in the target file format.
	ErrUnsupportedBands = errors.New("image: unsupported band layout")
)

// JPEGQuality is the quality used when saving JPEG files.
const JPEGQuality = 90

// FileFormat returns the canonical file format name for a path's
// extension: "png", "jpeg", "gif", "tiff", "bmp", "webp" or "exr".
func FileFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png", nil
	case ".jpg", ".jpeg":
		return "jpeg", nil
	case ".gif":
		return "gif", nil
	case ".tif", ".tiff":
		return "tiff", nil
	case ".bmp":
		return "bmp", nil
	case ".webp":
		return "webp", nil
	case ".exr":
		return "exr", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Load loads an image from the given file path. JPEG files are rotated
// according to their EXIF orientation. EXR files load as 4-band scRGB.
func Load(path string) (*Buf, error) {
	format, _ := FileFormat(path)
	switch format {
	case "exr":
		img, err := exr.DecodeFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("image: decode EXR: %w", err)
		}
		return checked(FromEXR(img))

	case "jpeg":
		img, err := imaging.Open(filepath.Clean(path), imaging.AutoOrientation(true))
		if err != nil {
			return nil, fmt.Errorf("image: decode JPEG: %w", err)
		}
		return checked(FromStd(img))

	default:
		f, err := os.Open(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("image: open file: %w", err)
		}
		defer func() { _ = f.Close() }()

		return Decode(f)
	}
}

// Decode decodes an image from the given reader, auto-detecting the format.
func Decode(r io.Reader) (*Buf, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return checked(FromStd(img))
}

func checked(b *Buf) (*Buf, error) {
	if b == nil {
		return nil, ErrInvalidDimensions
	}
	return b, nil
}

// Save saves b to path in the format named by its extension.
func Save(b *Buf, path string) error {
	format, err := FileFormat(path)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := Encode(f, b, format); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// Encode writes b to w as format, one of the names FileFormat returns.
// EXR output needs w to be an io.WriteSeeker.
func Encode(w io.Writer, b *Buf, format string) error {
	if format == "exr" {
		ws, ok := w.(io.WriteSeeker)
		if !ok {
			return fmt.Errorf("%w: EXR needs a seekable writer", ErrUnsupportedFormat)
		}
		img, err := ToEXR(b)
		if err != nil {
			return err
		}
		if err := exr.Encode(ws, img); err != nil {
			return fmt.Errorf("image: encode EXR: %w", err)
		}
		return nil
	}

	img, err := ToStd(b)
	if err != nil {
		return err
	}

	switch format {
	case "png":
		err = png.Encode(w, img)
	case "jpeg":
		err = imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality))
	case "gif":
		err = imaging.Encode(w, img, imaging.GIF)
	case "tiff":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case "bmp":
		err = bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: cannot encode %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("image: encode %s: %w", strings.ToUpper(format), err)
	}
	return nil
}

// FromStd converts a standard library image to a Buf. Grey images become
// BW or Grey16, everything else sRGB or RGB16, 16-bit when the source is.
// An alpha band is added unless the source is opaque.
func FromStd(img image.Image) *Buf {
	r := img.Bounds()
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}

	if buf := packedStd(img, w, h); buf != nil {
		return buf
	}

	deep, grey := false, false
	switch img.(type) {
	case *image.Gray:
		grey = true
	case *image.Gray16:
		grey, deep = true, true
	case *image.RGBA64, *image.NRGBA64:
		deep = true
	}

	opaque := false
	if o, ok := img.(interface{ Opaque() bool }); ok {
		opaque = o.Opaque()
	}

	colour, space, format := 3, color.SpaceSRGB, FormatUchar
	if grey {
		colour, space = 1, color.SpaceBW
	}
	if deep {
		format = FormatUshort
		space = color.SpaceRGB16
		if grey {
			space = color.SpaceGrey16
		}
	}
	bands := colour
	if !opaque {
		bands++
	}

	buf, _ := NewBuf(w, h, bands, format, space)
	shift := 8
	if deep {
		shift = 0
	}

	at := stdPixelReader(img)
	i := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			px := at(x, y)
			for k := range colour {
				buf.store(i+k, float64(px[k]>>shift))
			}
			if !opaque {
				buf.store(i+colour, float64(px[3]>>shift))
			}
			i += bands
		}
	}
	return buf
}

// packedStd copies the samples of an unpadded Gray, or an NRGBA with
// some transparency, straight into a Buf: their layout is already ours.
// It returns nil for any other image.
func packedStd(img image.Image, w, h int) *Buf {
	var pix []uint8
	var bands int
	var space color.Space
	switch m := img.(type) {
	case *image.Gray:
		if m.Stride != w {
			return nil
		}
		pix, bands, space = m.Pix, 1, color.SpaceBW
	case *image.NRGBA:
		if m.Stride != 4*w || m.Opaque() {
			return nil
		}
		pix, bands, space = m.Pix, 4, color.SpaceSRGB
	default:
		return nil
	}

	buf, err := FromPix(slices.Clone(pix[:min(len(pix), w*h*bands)]), w, h, bands, space)
	if err != nil {
		return nil
	}
	return buf
}

// stdPixelReader returns a function reading unpremultiplied 16-bit RGBA
// from img. The common non-premultiplied types are read directly so 8-bit
// values survive exactly.
func stdPixelReader(img image.Image) func(x, y int) [4]uint16 {
	switch m := img.(type) {
	case *image.NRGBA:
		return func(x, y int) [4]uint16 {
			c := m.NRGBAAt(x, y)
			return [4]uint16{uint16(c.R) * 0x101, uint16(c.G) * 0x101, uint16(c.B) * 0x101, uint16(c.A) * 0x101}
		}
	case *image.NRGBA64:
		return func(x, y int) [4]uint16 {
			c := m.NRGBA64At(x, y)
			return [4]uint16{c.R, c.G, c.B, c.A}
		}
	case *image.Gray:
		return func(x, y int) [4]uint16 {
			v := uint16(m.GrayAt(x, y).Y) * 0x101
			return [4]uint16{v, v, v, 0xffff}
		}
	case *image.Gray16:
		return func(x, y int) [4]uint16 {
			v := m.Gray16At(x, y).Y
			return [4]uint16{v, v, v, 0xffff}
		}
	}
	return func(x, y int) [4]uint16 {
		c := imgcolor.NRGBA64Model.Convert(img.At(x, y)).(imgcolor.NRGBA64)
		return [4]uint16{c.R, c.G, c.B, c.A}
	}
}

// displayable returns b in a space the standard image types can hold.
func displayable(b *Buf) (*Buf, error) {
	switch b.space {
	case color.SpaceBW, color.SpaceGrey16, color.SpaceSRGB, color.SpaceRGB16, color.SpaceMultiband:
		return b, nil
	}
	if colourBands(b) == 1 {
		return Convert(b, color.SpaceGrey16)
	}
	return Convert(b, color.SpaceRGB16)
}

// ToStd converts b to a standard library image. Buffers in spaces other
// than the grey and sRGB families are converted to 16-bit first. Only one
// or three colour bands, with or without alpha, can be represented.
func ToStd(b *Buf) (image.Image, error) {
	b, err := displayable(b)
	if err != nil {
		return nil, err
	}

	colour := colourBands(b)
	alpha := b.HasAlpha()
	if b.space == color.SpaceMultiband {
		// no alpha rule for multiband; 2 and 4 bands read as grey or RGB plus alpha
		alpha = b.bands == 2 || b.bands == 4
		colour = b.bands
		if alpha {
			colour--
		}
	}
	if colour != 1 && colour != 3 {
		return nil, fmt.Errorf("%w: %d bands", ErrUnsupportedBands, b.bands)
	}

	deep := b.space.Is16Bit() || (b.format != FormatUchar && b.format != FormatChar && !b.format.IsFloat())
	target := FormatUchar
	if deep {
		target = FormatUshort
	}
	b, err = Cast(b, target)
	if err != nil {
		return nil, err
	}

	rect := b.Bounds()
	if colour == 1 && !alpha {
		if deep {
			img := image.NewGray16(rect)
			for i, v := range Pix[uint16](b) {
				img.Pix[2*i] = uint8(v >> 8)
				img.Pix[2*i+1] = uint8(v)
			}
			return img, nil
		}
		img := image.NewGray(rect)
		copy(img.Pix, Pix[uint8](b))
		return img, nil
	}

	var img interface {
		image.Image
		Set(x, y int, c imgcolor.Color)
	}
	if deep {
		img = image.NewNRGBA64(rect)
	} else {
		img = image.NewNRGBA(rect)
	}

	for y := range b.height {
		for x := range b.width {
			i := b.offset(x, y)
			var px [4]float64
			for k := range colour {
				px[k] = b.load(i + k)
			}
			if colour == 1 {
				px[1], px[2] = px[0], px[0]
			}
			px[3] = 255
			if deep {
				px[3] = 65535
			}
			if alpha {
				px[3] = b.load(i + colour)
			}

			if deep {
				img.Set(x, y, imgcolor.NRGBA64{
					R: uint16(px[0]), G: uint16(px[1]), B: uint16(px[2]), A: uint16(px[3]),
				})
			} else {
				img.Set(x, y, imgcolor.NRGBA{
					R: uint8(px[0]), G: uint8(px[1]), B: uint8(px[2]), A: uint8(px[3]),
				})
			}
		}
	}
	return img, nil
}

// FromEXR converts a decoded EXR image to a 4-band scRGB buffer. EXR
// colour is premultiplied; the buffer is not. Alpha is rescaled to the
// 0-255 range every non-16-bit space uses.
func FromEXR(img *exr.RGBAImage) *Buf {
	r := img.Rect
	buf, err := NewBuf(r.Dx(), r.Dy(), 4, FormatFloat, color.SpaceScRGB)
	if err != nil {
		return nil
	}

	pix := Pix[float32](buf)
	i := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			cr, cg, cb, ca := img.RGBA(x, y)
			if ca > 0 {
				cr, cg, cb = cr/ca, cg/ca, cb/ca
			} else {
				cr, cg, cb = 0, 0, 0
			}
			pix[i], pix[i+1], pix[i+2], pix[i+3] = cr, cg, cb, ca*255
			i += 4
		}
	}
	return buf
}

// ToEXR converts b to a premultiplied EXR image via scRGB.
func ToEXR(b *Buf) (*exr.RGBAImage, error) {
	b, err := Convert(b, color.SpaceScRGB)
	if err != nil {
		return nil, err
	}
	colour := colourBands(b)
	if colour != 3 && colour != 1 {
		return nil, fmt.Errorf("%w: %d bands", ErrUnsupportedBands, b.bands)
	}
	alpha := b.HasAlpha()

	img := exr.NewRGBAImage(b.Bounds())
	for y := range b.height {
		for x := range b.width {
			i := b.offset(x, y)
			var c [3]float32
			for k := range 3 {
				c[k] = float32(b.load(i + min(k, colour-1)))
			}
			a := float32(1)
			if alpha {
				a = float32(b.load(i+colour) / 255)
			}
			img.SetRGBA(x, y, c[0]*a, c[1]*a, c[2]*a, a)
		}
	}
	return img, nil
}
