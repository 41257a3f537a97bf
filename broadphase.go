package arcade

import (
	"math"
	"slices"
)

const (
	// bruteForceLimit is the largest candidate product checked with a plain
	// nested loop. Above it the uniform grid is used.
	bruteForceLimit = 64
	// maxCellsPerBody caps how many cells one body is inserted into. Larger
	// bodies go into the oversized list and are tested against everything.
	maxCellsPerBody = 64
	minCellSize     = 1.0
)

// indexPair is a candidate pair: I indexes the first list, J the second.
type indexPair struct {
	I, J int
}

type cellKey struct {
	X, Y int
}

// spatialGrid is a uniform hash grid for broad-phase collision detection.
// Bodies are inserted into every cell their bounding box covers; any two
// overlapping boxes therefore share at least one cell. The grid is rebuilt
// from scratch for every query, so it never holds a stale body.
type spatialGrid struct {
	cellSize  float64
	inv       float64
	cells     map[cellKey][]int
	oversized []int
	stamp     []int
	cand      []int
	pairs     []indexPair
}

func newSpatialGrid() *spatialGrid {
	return &spatialGrid{cells: make(map[cellKey][]int)}
}

// cellSizeFor returns the configured size, or twice the mean body extent of
// the given lists when size <= 0.
func cellSizeFor(size float64, lists ...[]*Body) float64 {
	if size > 0 {
		return size
	}
	var sum float64
	var n int
	for _, l := range lists {
		for _, b := range l {
			sum += max(b.bounds.Width, b.bounds.Height)
			n++
		}
	}
	if n == 0 {
		return minCellSize
	}
	return max(2*sum/float64(n), minCellSize)
}

func (g *spatialGrid) cellRange(r Rect) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(r.X * g.inv))
	y0 = int(math.Floor(r.Y * g.inv))
	x1 = int(math.Floor(r.Right() * g.inv))
	y1 = int(math.Floor(r.Bottom() * g.inv))
	return
}

func (g *spatialGrid) reset(cellSize float64, n int) {
	g.cellSize = cellSize
	g.inv = 1 / cellSize
	clear(g.cells)
	g.oversized = g.oversized[:0]
	g.pairs = g.pairs[:0]
	if cap(g.stamp) < n {
		g.stamp = make([]int, n)
	}
	g.stamp = g.stamp[:n]
	for i := range g.stamp {
		g.stamp[i] = -1
	}
}

func (g *spatialGrid) insert(idx int, r Rect) {
	x0, y0, x1, y1 := g.cellRange(r)
	if (x1-x0+1)*(y1-y0+1) > maxCellsPerBody {
		g.oversized = append(g.oversized, idx)
		return
	}
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			k := cellKey{cx, cy}
			g.cells[k] = append(g.cells[k], idx)
		}
	}
}

// query collects into g.cand every index in b sharing a cell with r (plus
// the oversized indices), each at most once per owner i.
func (g *spatialGrid) query(owner int, r Rect, nb int) {
	g.cand = g.cand[:0]
	add := func(j int) {
		if g.stamp[j] == owner {
			return
		}
		g.stamp[j] = owner
		g.cand = append(g.cand, j)
	}
	x0, y0, x1, y1 := g.cellRange(r)
	if (x1-x0+1)*(y1-y0+1) > maxCellsPerBody {
		for j := 0; j < nb; j++ {
			add(j)
		}
		return
	}
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			for _, j := range g.cells[cellKey{cx, cy}] {
				add(j)
			}
		}
	}
	for _, j := range g.oversized {
		add(j)
	}
}

// crossPairs returns every (i, j) with a[i] and b[j] having intersecting
// bounds, in ascending (i, j) order. For self queries (self == true, a and b
// the same list) only pairs with i < j are returned.
func (g *spatialGrid) crossPairs(a, b []*Body, cellSize float64, self bool) []indexPair {
	g.pairs = g.pairs[:0]
	if len(a) == 0 || len(b) == 0 {
		return g.pairs
	}
	if len(a)*len(b) <= bruteForceLimit {
		return g.bruteForce(a, b, self)
	}

	g.reset(cellSize, len(b))
	for j, bj := range b {
		g.insert(j, bj.bounds)
	}
	for i, ai := range a {
		g.query(i, ai.bounds, len(b))
		slices.Sort(g.cand)
		for _, j := range g.cand {
			if self && j <= i {
				continue
			}
			if ai.bounds.Intersects(b[j].bounds) {
				g.pairs = append(g.pairs, indexPair{i, j})
			}
		}
	}
	return g.pairs
}

func (g *spatialGrid) bruteForce(a, b []*Body, self bool) []indexPair {
	for i, ai := range a {
		j0 := 0
		if self {
			j0 = i + 1
		}
		for j := j0; j < len(b); j++ {
			if ai.bounds.Intersects(b[j].bounds) {
				g.pairs = append(g.pairs, indexPair{i, j})
			}
		}
	}
	return g.pairs
}
