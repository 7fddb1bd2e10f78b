package composite

import (
	"context"
	"fmt"
	stdimage "image"

	"github.com/gogpu/composite/internal/combine"
	"github.com/gogpu/composite/internal/image"
	"github.com/gogpu/composite/internal/parallel"
)

// Operation is a validated, normalized stack. It is immutable and may be
// run any number of times, concurrently.
type Operation struct {
	cfg       *combine.Config
	layers    []*image.Buf
	modes     []BlendMode
	space     Space
	format    Format
	outFormat Format
	width     int
	height    int
	opts      options
	scratch   *image.Pool
}

// Layers returns the number of layers left after normalization.
func (op *Operation) Layers() int { return len(op.layers) }

// Modes returns a copy of the blend modes left after normalization.
func (op *Operation) Modes() []BlendMode { return append([]BlendMode(nil), op.modes...) }

// Space returns the compositing space, which is also the output space.
func (op *Operation) Space() Space { return op.space }

// Format returns the output format.
func (op *Operation) Format() Format { return op.outFormat }

// Bands returns the number of output bands, alpha included.
func (op *Operation) Bands() int { return op.cfg.Bands() + 1 }

// Bounds returns the output rectangle.
func (op *Operation) Bounds() stdimage.Rectangle {
	return stdimage.Rect(0, 0, op.width, op.height)
}

// Run generates the whole composite. The output is split into tiles that
// are generated in parallel; ctx is checked before each tile, and the
// first failing tile aborts the run.
func (op *Operation) Run(ctx context.Context) (*Image, error) {
	out, err := image.NewBuf(op.width, op.height, op.Bands(), op.outFormat, op.space)
	if err != nil {
		return nil, fmt.Errorf("composite: %w", err)
	}

	grid := parallel.NewTileGrid(out.Bounds(), op.opts.tileW, op.opts.tileH)
	pool := parallel.NewWorkerPool(op.opts.workers)
	defer pool.Close()

	tileW, tileH := grid.TileSize()
	Logger().Debug("composite: generating",
		"tiles", grid.TileCount(),
		"columns", grid.TilesX(),
		"rows", grid.TilesY(),
		"tile_width", tileW,
		"tile_height", tileH,
		"workers", pool.Workers())

	err = pool.ExecuteAll(ctx, grid.Tasks(func(ctx context.Context, t parallel.Tile) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return op.generate(out, t.Rect.Min, t.Rect)
	}))
	if err != nil {
		return nil, err
	}
	return &Image{buf: out}, nil
}

// GenerateTile computes the output pixels of r and writes them to out
// with r.Min at out's top-left. out must have Bands bands and room for r;
// its format may differ from Format, in which case samples are converted.
//
// GenerateTile lets callers pull regions on demand instead of running the
// whole image. A region reaching outside Bounds fails with
// ErrRowUnavailable.
func (op *Operation) GenerateTile(out *Image, r stdimage.Rectangle) error {
	if out == nil || out.buf == nil {
		return ErrNilImage
	}
	if out.Bands() != op.Bands() {
		return fmt.Errorf("composite: tile has %d bands, want %d", out.Bands(), op.Bands())
	}
	if out.Width() < r.Dx() || out.Height() < r.Dy() {
		return fmt.Errorf("composite: %dx%d tile cannot hold %v", out.Width(), out.Height(), r)
	}
	return op.generate(out.buf, stdimage.Point{}, r)
}

// generate combines r into out at dst. The combiner writes in the layers'
// format; for any other output format the region goes through a pooled
// scratch buffer and is converted on paste.
func (op *Operation) generate(out *image.Buf, dst stdimage.Point, r stdimage.Rectangle) error {
	if r.Empty() {
		return nil
	}
	if out.Format() == op.format {
		return combine.Generate(op.cfg, out, dst, op.layers, r)
	}

	tile, err := op.scratch.Get(r.Dx(), r.Dy(), op.Bands(), op.format, op.space)
	if err != nil {
		return fmt.Errorf("composite: %w", err)
	}
	defer op.scratch.Put(tile)

	if err := combine.Generate(op.cfg, tile, stdimage.Point{}, op.layers, r); err != nil {
		return err
	}
	return image.Paste(out, tile, dst.X, dst.Y)
}

// Composite blends images bottom to top with one mode per image above the
// bottom one. The output has the size of the largest input, an alpha band,
// the compositing space, and float samples unless an input is double (see
// WithNativeFormat).
//
// Composite is Build followed by Run with a background context.
func Composite(images []*Image, modes []BlendMode, opts ...Option) (*Image, error) {
	op, err := Build(images, modes, opts...)
	if err != nil {
		return nil, err
	}
	return op.Run(context.Background())
}

// Composite2 blends overlay onto base with mode.
func Composite2(base, overlay *Image, mode BlendMode, opts ...Option) (*Image, error) {
	return Composite([]*Image{base, overlay}, []BlendMode{mode}, opts...)
}
