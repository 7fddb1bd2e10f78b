package image

import (
	"sync"

	"github.com/gogpu/composite/internal/color"
)

// shape is what two buffers must share for one to stand in for the other.
type shape struct {
	w, h, bands int
	format      Format
}

func (b *Buf) shape() shape {
	return shape{w: b.width, h: b.height, bands: b.bands, format: b.format}
}

// Pool recycles tile buffers between generate calls. Buffers are keyed by
// shape; the space is restamped on every Get. All methods are safe for
// concurrent use.
type Pool struct {
	mu       sync.Mutex
	free     map[shape][]*Buf
	perShape int
}

// NewPool returns a pool keeping at most perShape idle buffers of each
// shape, or any number when perShape is 0.
func NewPool(perShape int) *Pool {
	return &Pool{free: make(map[shape][]*Buf), perShape: perShape}
}

// Get hands out a zeroed buffer, reusing an idle one when available.
func (p *Pool) Get(width, height, bands int, format Format, space color.Space) (*Buf, error) {
	if b := p.take(shape{w: width, h: height, bands: bands, format: format}); b != nil {
		b.space = space
		return b, nil
	}
	return NewBuf(width, height, bands, format, space)
}

func (p *Pool) take(s shape) *Buf {
	p.mu.Lock()
	defer p.mu.Unlock()

	idle := p.free[s]
	if len(idle) == 0 {
		return nil
	}
	b := idle[len(idle)-1]
	p.free[s] = idle[:len(idle)-1]
	return b
}

// Put zeroes buf and keeps it for a later Get. nil is ignored.
func (p *Pool) Put(buf *Buf) {
	if buf == nil {
		return
	}
	buf.Clear()

	s := buf.shape()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.perShape > 0 && len(p.free[s]) >= p.perShape {
		return
	}
	p.free[s] = append(p.free[s], buf)
}

// Clear zeroes every sample.
func (b *Buf) Clear() {
	switch s := b.pix.(type) {
	case []uint8:
		clear(s)
	case []int8:
		clear(s)
	case []uint16:
		clear(s)
	case []int16:
		clear(s)
	case []uint32:
		clear(s)
	case []int32:
		clear(s)
	case []float32:
		clear(s)
	case []float64:
		clear(s)
	}
}
