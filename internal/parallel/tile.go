// Package parallel splits an output region into tiles and runs them on a
// work-stealing worker pool.
//
// Tiles default to 64x64 pixels. Edge tiles are clipped to the region, so
// a grid always covers the region exactly with no overlap.
package parallel

import (
	"context"
	"image"
)

// Default tile dimensions.
const (
	TileWidth  = 64
	TileHeight = 64
)

// Tile is one rectangle of a TileGrid.
type Tile struct {
	// X and Y are the column and row of the tile in its grid.
	X, Y int

	// Rect is the tile's area in output coordinates. Edge tiles may be
	// narrower or shorter than the grid's tile size.
	Rect image.Rectangle
}

// TileGrid divides a rectangle into tiles stored in row-major order.
type TileGrid struct {
	bounds image.Rectangle
	tileW  int
	tileH  int
	tilesX int
	tilesY int
	tiles  []Tile
}

// NewTileGrid covers r with tiles of tileW x tileH pixels. Non-positive
// tile dimensions fall back to TileWidth and TileHeight. An empty r gives
// an empty grid.
func NewTileGrid(r image.Rectangle, tileW, tileH int) *TileGrid {
	if tileW <= 0 {
		tileW = TileWidth
	}
	if tileH <= 0 {
		tileH = TileHeight
	}

	g := &TileGrid{bounds: r.Canon(), tileW: tileW, tileH: tileH}
	if g.bounds.Empty() {
		g.bounds = image.Rectangle{}
		return g
	}

	g.tilesX = (g.bounds.Dx() + tileW - 1) / tileW
	g.tilesY = (g.bounds.Dy() + tileH - 1) / tileH
	g.tiles = make([]Tile, 0, g.tilesX*g.tilesY)

	for ty := range g.tilesY {
		for tx := range g.tilesX {
			origin := g.bounds.Min.Add(image.Pt(tx*tileW, ty*tileH))
			rect := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(tileW, tileH))}
			g.tiles = append(g.tiles, Tile{X: tx, Y: ty, Rect: rect.Intersect(g.bounds)})
		}
	}
	return g
}

// TileSize returns the nominal tile dimensions.
func (g *TileGrid) TileSize() (w, h int) { return g.tileW, g.tileH }

// TilesX returns the number of tile columns.
func (g *TileGrid) TilesX() int { return g.tilesX }

// TilesY returns the number of tile rows.
func (g *TileGrid) TilesY() int { return g.tilesY }

// TileCount returns the number of tiles.
func (g *TileGrid) TileCount() int { return len(g.tiles) }

// Tasks turns every tile into a Task calling fn, ready for
// WorkerPool.ExecuteAll.
func (g *TileGrid) Tasks(fn func(ctx context.Context, t Tile) error) []Task {
	tasks := make([]Task, len(g.tiles))
	for i, t := range g.tiles {
		tasks[i] = func(ctx context.Context) error { return fn(ctx, t) }
	}
	return tasks
}
