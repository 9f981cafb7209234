// Package frame renders views of the complex plane into RGB pixel buffers.
package frame

import (
	"image/color"
	"sync"
	"time"
)

// Frame is one rendered image. Pix holds 3 bytes per pixel in row-major
// order; Counts holds the iteration count behind each pixel.
type Frame struct {
	Width   int
	Height  int
	Pix     []byte
	Counts  []int
	Seq     uint64
	Elapsed time.Duration

	pool *Pool
}

func (f *Frame) Count(x, y int) int { return f.Counts[y*f.Width+x] }

func (f *Frame) RGB(x, y int) (r, g, b byte) {
	i := 3 * (y*f.Width + x)
	return f.Pix[i], f.Pix[i+1], f.Pix[i+2]
}

// FillRGBA copies the frame into an opaque RGBA pixel slice of the same
// size, the layout GPU textures take.
func (f *Frame) FillRGBA(dst []color.RGBA) {
	for i := range dst[:f.Width*f.Height] {
		p := f.Pix[3*i : 3*i+3]
		dst[i] = color.RGBA{R: p[0], G: p[1], B: p[2], A: 255}
	}
}

// Release hands the buffers back for reuse. The frame must not be used
// afterwards.
func (f *Frame) Release() {
	if f.pool != nil {
		f.pool.Put(f)
	}
}

// Pool recycles frames of one size.
type Pool struct {
	pool          sync.Pool
	width, height int
}

func NewPool(width, height int) *Pool {
	p := &Pool{width: width, height: height}
	p.pool.New = func() interface{} {
		return &Frame{
			Width:  width,
			Height: height,
			Pix:    make([]byte, 3*width*height),
			Counts: make([]int, width*height),
		}
	}
	return p
}

func (p *Pool) Size() (width, height int) { return p.width, p.height }

func (p *Pool) Get() *Frame {
	f := p.pool.Get().(*Frame)
	f.pool = p
	return f
}

func (p *Pool) Put(f *Frame) {
	if f.Width != p.width || f.Height != p.height {
		return
	}
	f.Seq = 0
	f.Elapsed = 0
	f.pool = nil
	p.pool.Put(f)
}

// Stats summarises the iteration counts of a frame.
type Stats struct {
	Pixels   int
	Interior int
	Min, Max int
	Mean     float64
}

// Stats counts pixels at maxIter as interior.
func (f *Frame) Stats(maxIter int) Stats {
	s := Stats{Pixels: len(f.Counts)}
	if s.Pixels == 0 {
		return s
	}
	s.Min = f.Counts[0]
	total := 0
	for _, c := range f.Counts {
		total += c
		if c >= maxIter {
			s.Interior++
		}
		s.Min = min(s.Min, c)
		s.Max = max(s.Max, c)
	}
	s.Mean = float64(total) / float64(s.Pixels)
	return s
}
