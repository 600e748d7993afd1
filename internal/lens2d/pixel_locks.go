package lens2d

import (
	"sync"

	"gonum.org/v1/gonum/mat"
)

// pixelLocks serializes increments of one sensor pixel. Pixels share
// NumShards mutexes by their flat row-major index.
type pixelLocks struct {
	mu   [NumShards]sync.Mutex
	cols int
}

func newPixelLocks(cols int) *pixelLocks { return &pixelLocks{cols: cols} }

func (pl *pixelLocks) shard(row, col int) *sync.Mutex {
	return &pl.mu[(row*pl.cols+col)&(NumShards-1)]
}

// add increments g at (row, col) by v under that pixel's shard.
func (pl *pixelLocks) add(g *mat.Dense, row, col int, v Real) {
	m := pl.shard(row, col)
	m.Lock()
	g.Set(row, col, g.At(row, col)+v)
	m.Unlock()
}
