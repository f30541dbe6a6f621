package pixel

import "sync"

// Pool recycles buffers of a single size across frames. Buffers of other
// sizes (one-off exports) bypass the pool.
type Pool struct {
	w, h int
	pool sync.Pool
}

// NewPool creates a pool for w×h buffers.
func NewPool(w, h int) *Pool {
	p := &Pool{w: w, h: h}
	p.pool.New = func() any {
		return NewBuffer(w, h)
	}
	return p
}

// Get returns a buffer of the pool's size. Contents are unspecified; the base
// field generator overwrites every pixel.
func (p *Pool) Get() *Buffer {
	return p.pool.Get().(*Buffer)
}

// Put returns a buffer to the pool. Foreign-sized buffers are dropped.
func (p *Pool) Put(b *Buffer) {
	if b == nil || b.W != p.w || b.H != p.h {
		return
	}
	p.pool.Put(b)
}
