package hex

import "termhex/types"

// Region labels. Each player's home edges are seeded with the two sentinel
// labels before play, so they merge with stone groups like any other region.
// Dynamic labels start at 3 and are always larger than both sentinels, which
// means a merge touching both edges always settles on labelNear.
const (
	labelNone = 0 // unassigned
	labelNear = 1 // near home edge (top for Black, left for White)
	labelFar  = 2 // far home edge (bottom for Black, right for White)
)

// Neighbor offsets within the padded grid, relative to a cell index: the
// 3x3 square block minus its top-left and bottom-right corners, which are
// square-adjacent but not hex-adjacent.
func hexOffsets(stride int) [6]int {
	return [6]int{-stride, -stride + 1, -1, 1, stride - 1, stride}
}

// regionGrid tracks connectivity groups for one color on a board of side
// size. The label grid has side size+2: one ring of virtual border cells
// around the real board, so edge stones merge with the sentinel groups
// without any edge special-casing.
type regionGrid struct {
	size   int
	stride int   // size + 2
	labels []int // stride*stride, row-major
	next   int   // next dynamic label to allocate
}

// newRegionGrid creates a grid for c with its two home edges seeded. Black
// connects top to bottom, White connects left to right. The four padded
// corners are written by both colors' seeding; both leave labelFar there.
func newRegionGrid(size int, c types.Color) *regionGrid {
	stride := size + 2
	g := &regionGrid{
		size:   size,
		stride: stride,
		labels: make([]int, stride*stride),
	}
	if c == types.Black {
		for x := 0; x < stride; x++ {
			g.labels[x] = labelNear
			g.labels[(stride-1)*stride+x] = labelFar
		}
	} else {
		for y := 0; y < stride; y++ {
			g.labels[y*stride] = labelNear
			g.labels[y*stride+stride-1] = labelFar
		}
	}
	g.resetNext()
	return g
}

// resetNext initializes the label counter to one past the largest label in
// the grid, so fresh labels never collide with sentinels or with labels
// inherited from a supplied starting position.
func (g *regionGrid) resetNext() {
	max := 0
	for _, l := range g.labels {
		if l > max {
			max = l
		}
	}
	g.next = max + 1
}

// insert registers a freshly placed stone at board coordinates (y, x) and
// unifies every group adjacent to it. The smallest neighboring label wins;
// all other neighboring labels are rewritten to it with a full-grid scan.
// O(size^2) worst case, which is fine for the board sizes Hex is played on.
func (g *regionGrid) insert(y, x int) {
	p := (y+1)*g.stride + (x + 1)

	var adjacent [6]int
	n := 0
	for _, off := range hexOffsets(g.stride) {
		l := g.labels[p+off]
		if l == labelNone {
			continue
		}
		seen := false
		for i := 0; i < n; i++ {
			if adjacent[i] == l {
				seen = true
				break
			}
		}
		if !seen {
			adjacent[n] = l
			n++
		}
	}

	if n == 0 {
		g.labels[p] = g.next
		g.next++
		return
	}

	min := adjacent[0]
	for i := 1; i < n; i++ {
		if adjacent[i] < min {
			min = adjacent[i]
		}
	}
	g.labels[p] = min
	for i := 0; i < n; i++ {
		if adjacent[i] != min {
			g.relabel(adjacent[i], min)
		}
	}
}

// relabel rewrites every cell holding from to to.
func (g *regionGrid) relabel(from, to int) {
	for i, l := range g.labels {
		if l == from {
			g.labels[i] = to
		}
	}
}

// connected reports whether this color's two home edges are joined through
// one group. The padded bottom-right corner starts at labelFar and only a
// merge that includes the near-edge group can overwrite it with labelNear.
func (g *regionGrid) connected() bool {
	return g.labels[len(g.labels)-1] == labelNear
}

// labelAt returns the region label of the real board cell (y, x).
func (g *regionGrid) labelAt(y, x int) int {
	return g.labels[(y+1)*g.stride+(x+1)]
}

func (g *regionGrid) clone() *regionGrid {
	cp := &regionGrid{
		size:   g.size,
		stride: g.stride,
		labels: make([]int, len(g.labels)),
		next:   g.next,
	}
	copy(cp.labels, g.labels)
	return cp
}

// Regions captures both colors' connectivity grids for a position. Callers
// that reset to the same starting position many times can pass a snapshot
// back to NewGameFromBoard instead of replaying every stone's insert.
type Regions struct {
	black *regionGrid
	white *regionGrid
}

func (r *Regions) clone() *Regions {
	return &Regions{black: r.black.clone(), white: r.white.clone()}
}
