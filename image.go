package composite

import (
	"fmt"
	stdimage "image"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/gogpu/composite/internal/cache"
	"github.com/gogpu/composite/internal/image"
)

// Image is a band-interleaved pixel buffer with a colour space and a
// sample format. The zero value is not usable; create images with
// NewImage, FromStd, Load or Decode.
type Image struct {
	buf *image.Buf
}

// NewImage creates a zeroed image.
func NewImage(width, height, bands int, format Format, space Space) (*Image, error) {
	b, err := image.NewBuf(width, height, bands, format, space)
	if err != nil {
		return nil, fmt.Errorf("composite: new image: %w", err)
	}
	return &Image{buf: b}, nil
}

// FromStd converts a standard library image. Grey images become B_W or
// Grey16, everything else sRGB or RGB16. An alpha band is added unless the
// source reports itself opaque. It returns nil for an empty image.
func FromStd(img stdimage.Image) *Image {
	b := image.FromStd(img)
	if b == nil {
		return nil
	}
	return &Image{buf: b}
}

// Std converts the image to a standard library image. Images in spaces
// other than the grey and sRGB families are converted to 16-bit sRGB or
// Grey16 first.
func (im *Image) Std() (stdimage.Image, error) {
	return image.ToStd(im.buf)
}

// Width returns the image width in pixels.
func (im *Image) Width() int { return im.buf.Width() }

// Height returns the image height in pixels.
func (im *Image) Height() int { return im.buf.Height() }

// Bands returns the number of samples per pixel, alpha included.
func (im *Image) Bands() int { return im.buf.Bands() }

// Format returns the sample format.
func (im *Image) Format() Format { return im.buf.Format() }

// Space returns the colour space.
func (im *Image) Space() Space { return im.buf.Space() }

// Bounds returns the image rectangle, anchored at (0, 0).
func (im *Image) Bounds() stdimage.Rectangle { return im.buf.Bounds() }

// HasAlpha reports whether the last band is alpha: two bands in a grey
// space, four in a three-colour space, or more than four.
func (im *Image) HasAlpha() bool { return im.buf.HasAlpha() }

// At returns one sample. It returns 0 outside the image.
func (im *Image) At(x, y, band int) float64 { return im.buf.At(x, y, band) }

// Pixel returns every band of pixel (x, y).
func (im *Image) Pixel(x, y int) []float64 {
	px := make([]float64, im.buf.Bands())
	for i := range px {
		px[i] = im.buf.At(x, y, i)
	}
	return px
}

// Set stores one sample, rounding and clipping it for integer formats.
func (im *Image) Set(x, y, band int, v float64) { im.buf.Set(x, y, band, v) }

// Fill sets every pixel to px, which must hold Bands values.
func (im *Image) Fill(px ...float64) error {
	if len(px) != im.buf.Bands() {
		return fmt.Errorf("composite: fill with %d values, image has %d bands", len(px), im.buf.Bands())
	}
	im.buf.Fill(px...)
	return nil
}

// Clone returns a deep copy.
func (im *Image) Clone() *Image {
	return &Image{buf: im.buf.Clone()}
}

// Convert returns the image in another colour space. Alpha is carried
// over. It returns the image itself when it is already in space.
func (im *Image) Convert(space Space) (*Image, error) {
	b, err := image.Convert(im.buf, space)
	if err != nil {
		return nil, fmt.Errorf("composite: convert %v to %v: %w", im.buf.Space(), space, err)
	}
	if b == im.buf {
		return im, nil
	}
	return &Image{buf: b}, nil
}

// Cast returns the image with its samples converted to format. Integer
// targets are rounded and clipped.
func (im *Image) Cast(format Format) (*Image, error) {
	b, err := image.Cast(im.buf, format)
	if err != nil {
		return nil, fmt.Errorf("composite: cast to %v: %w", format, err)
	}
	if b == im.buf {
		return im, nil
	}
	return &Image{buf: b}, nil
}

// Load reads an image file. The format is chosen by extension: PNG, JPEG,
// GIF, TIFF, BMP, WebP or OpenEXR. JPEG files are rotated by their EXIF
// orientation; EXR files load as float scRGB with alpha.
func Load(path string) (*Image, error) {
	b, err := image.Load(path)
	if err != nil {
		return nil, err
	}
	return &Image{buf: b}, nil
}

// Decode reads an image in any registered standard library format.
func Decode(r io.Reader) (*Image, error) {
	b, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return &Image{buf: b}, nil
}

// Save writes the image to path in the format named by its extension.
func (im *Image) Save(path string) error {
	return image.Save(im.buf, path)
}

// Encode writes the image to w. format is one of "png", "jpeg", "gif",
// "tiff", "bmp" or "exr"; EXR needs w to be an io.WriteSeeker.
func (im *Image) Encode(w io.Writer, format string) error {
	return image.Encode(w, im.buf, format)
}

// Loader loads image files through a cache of decoded images, so a file
// used several times in a stack is decoded once. A cached entry is reused
// while the file's size and modification time are unchanged; once they
// change, the stale decode is dropped.
//
// Loader is safe for concurrent use.
type Loader struct {
	cache *cache.Cache[loadKey, *image.Buf]

	mu     sync.Mutex
	latest map[string]loadKey
}

type loadKey struct {
	path    string
	size    int64
	modTime int64
}

// LoaderStats reports a Loader's cache counters.
type LoaderStats = cache.Stats

// NewLoader creates a Loader caching up to capacity decoded images. Zero
// or less means unlimited.
func NewLoader(capacity int) *Loader {
	return &Loader{
		cache:  cache.New[loadKey, *image.Buf](capacity),
		latest: make(map[string]loadKey),
	}
}

// Load reads path, or returns a copy of the cached decode of it.
func (l *Loader) Load(path string) (*Image, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("composite: load %s: %w", path, err)
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("composite: load: %w", err)
	}

	key := loadKey{path: abs, size: fi.Size(), modTime: fi.ModTime().UnixNano()}
	l.forgetStale(key)

	b, err := l.cache.GetOrCreate(key, func() (*image.Buf, error) {
		Logger().Debug("composite: decoding", "path", abs)
		return image.Load(abs)
	})
	if err != nil {
		return nil, err
	}
	return &Image{buf: b.Clone()}, nil
}

// forgetStale drops the cached decode of key's file if it was made from
// a different version of the file.
func (l *Loader) forgetStale(key loadKey) {
	l.mu.Lock()
	old, ok := l.latest[key.path]
	l.latest[key.path] = key
	l.mu.Unlock()

	if ok && old != key {
		l.cache.Delete(old)
	}
}

// Len returns the number of cached images.
func (l *Loader) Len() int {
	return l.cache.Len()
}

// Stats returns the cache hit, miss and eviction counters.
func (l *Loader) Stats() LoaderStats {
	return l.cache.Stats()
}
