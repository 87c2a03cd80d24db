package renderer

import "sync/atomic"

// Progress counts finished pixels across all workers of one render
type Progress struct {
	pixels atomic.Int64
}

// Increment records one finished pixel
func (p *Progress) Increment() {
	p.pixels.Add(1)
}

// Load returns the number of pixels finished so far
func (p *Progress) Load() int64 {
	return p.pixels.Load()
}

// Reset sets the counter back to zero
func (p *Progress) Reset() {
	p.pixels.Store(0)
}
