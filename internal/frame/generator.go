package frame

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/mandel/internal/gradient"
	"github.com/san-kum/mandel/internal/numeric"
	"github.com/san-kum/mandel/internal/view"
)

const (
	DefaultTileWidth  = 64
	DefaultTileHeight = 16
)

type Options struct {
	Workers    int
	TileWidth  int
	TileHeight int
}

type tile struct {
	x0, y0, x1, y1 int
}

// Generator fills frames tile by tile on a bounded set of goroutines. Every
// pixel is computed independently, so the result does not depend on the
// worker count or the tile size.
type Generator[T numeric.Real[T]] struct {
	kernel  Kernel[T]
	table   *gradient.Table
	workers int
	tileW   int
	tileH   int

	mu   sync.Mutex
	pool *Pool
	seq  atomic.Uint64
}

func NewGenerator[T numeric.Real[T]](k Kernel[T], table *gradient.Table, opts Options) *Generator[T] {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.TileWidth <= 0 {
		opts.TileWidth = DefaultTileWidth
	}
	if opts.TileHeight <= 0 {
		opts.TileHeight = DefaultTileHeight
	}
	lanes := k.Lanes()
	if rem := opts.TileWidth % lanes; rem != 0 {
		opts.TileWidth += lanes - rem
	}

	return &Generator[T]{
		kernel:  k,
		table:   table,
		workers: opts.Workers,
		tileW:   opts.TileWidth,
		tileH:   opts.TileHeight,
	}
}

func (g *Generator[T]) Workers() int { return g.workers }

func (g *Generator[T]) framePool(width, height int) *Pool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pool == nil {
		g.pool = NewPool(width, height)
	} else if w, h := g.pool.Size(); w != width || h != height {
		g.pool = NewPool(width, height)
	}
	return g.pool
}

func (g *Generator[T]) tiles(width, height int) []tile {
	var ts []tile
	for y := 0; y < height; y += g.tileH {
		for x := 0; x < width; x += g.tileW {
			ts = append(ts, tile{
				x0: x,
				y0: y,
				x1: min(x+g.tileW, width),
				y1: min(y+g.tileH, height),
			})
		}
	}
	return ts
}

// Render computes the frame seen through m. It returns ctx.Err() if ctx is
// cancelled before every tile is done; the partial frame is discarded.
func (g *Generator[T]) Render(ctx context.Context, m *view.Mapper[T]) (*Frame, error) {
	start := time.Now()
	width, height := m.Size()
	f := g.framePool(width, height).Get()

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)

	for _, t := range g.tiles(width, height) {
		if gctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			g.renderTile(m, f, t)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		f.Release()
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		f.Release()
		return nil, err
	}

	f.Seq = g.seq.Add(1)
	f.Elapsed = time.Since(start)
	return f, nil
}

func (g *Generator[T]) renderTile(m *view.Mapper[T], f *Frame, t tile) {
	lanes := g.kernel.Lanes()
	counts := make([]int, lanes)

	for y := t.y0; y < t.y1; y++ {
		row := y * f.Width
		for x := t.x0; x < t.x1; x += lanes {
			g.kernel.Iterate(m, x, y, counts)
			for l := 0; l < lanes && x+l < t.x1; l++ {
				i := row + x + l
				f.Counts[i] = counts[l]
				g.table.Put(f.Pix[3*i:], counts[l])
			}
		}
	}
}
