// Package vptree implements an exact k-nearest-neighbour index backed by a
// vantage-point tree. Partitioning and pruning use the Euclidean metric;
// ranking uses squared Euclidean distance so results match a flat scan.
package vptree

import (
	"math"
	"sort"

	"github.com/viant/vec/search"

	"docsearch/internal/domain"
	"docsearch/internal/vectorstore/vecmath"
)

// slack absorbs float32 rounding in the metric so pruning never drops a
// candidate that an exact scan would keep.
const slack = 1e-4

type node struct {
	idx   int
	thr   float64
	left  *node
	right *node
}

// Index is a vantage-point tree over a fixed set of vectors.
type Index struct {
	vecs  [][]float32
	dim   int
	root  *node
	built bool
}

func New() *Index { return &Index{} }

// Build copies vectors and constructs the tree. It may be called only once.
func (i *Index) Build(vectors [][]float32) error {
	if i.built {
		return vecmath.ErrAlreadyBuilt
	}
	dim, err := vecmath.Dimension(vectors)
	if err != nil {
		return err
	}
	i.dim = dim
	i.vecs = vecmath.Copy(vectors)
	idxs := make([]int, len(i.vecs))
	for k := range idxs {
		idxs[k] = k
	}
	i.root = i.buildVP(idxs)
	i.built = true
	return nil
}

func (i *Index) metric(a, b []float32) float64 {
	return float64(search.Float32s(a).EuclideanDistance(b))
}

func (i *Index) buildVP(idxs []int) *node {
	if len(idxs) == 0 {
		return nil
	}
	// last element is the vantage point
	vp := idxs[len(idxs)-1]
	idxs = idxs[:len(idxs)-1]
	if len(idxs) == 0 {
		return &node{idx: vp}
	}
	dists := make([]float64, len(idxs))
	for k, j := range idxs {
		dists[k] = i.metric(i.vecs[vp], i.vecs[j])
	}
	order := make([]int, len(idxs))
	for k := range order {
		order[k] = k
	}
	sort.Slice(order, func(a, b int) bool { return dists[order[a]] < dists[order[b]] })
	mid := len(order) / 2
	thr := dists[order[mid]]
	left := make([]int, 0, mid+1)
	right := make([]int, 0, len(order)-mid-1)
	for rank, k := range order {
		if rank <= mid {
			left = append(left, idxs[k])
		} else {
			right = append(right, idxs[k])
		}
	}
	return &node{
		idx:   vp,
		thr:   thr,
		left:  i.buildVP(left),
		right: i.buildVP(right),
	}
}

// Search returns the min(k, Len()) nearest positions, closest first, ties
// broken by ascending position.
func (i *Index) Search(query []float32, k int) ([]domain.Neighbor, error) {
	if k <= 0 || len(i.vecs) == 0 {
		return []domain.Neighbor{}, nil
	}
	if err := vecmath.CheckQuery(query, i.dim); err != nil {
		return nil, err
	}
	if k > len(i.vecs) {
		k = len(i.vecs)
	}

	best := make([]domain.Neighbor, 0, k)
	worst := -1
	radius := math.Inf(1)

	offer := func(c domain.Neighbor) {
		switch {
		case len(best) < k:
			best = append(best, c)
		case vecmath.Less(c, best[worst]):
			best[worst] = c
		default:
			return
		}
		if len(best) < k {
			return
		}
		worst = 0
		for t := 1; t < len(best); t++ {
			if vecmath.Less(best[worst], best[t]) {
				worst = t
			}
		}
		radius = math.Sqrt(best[worst].Distance) + slack
	}

	var walk func(n *node)
	walk = func(n *node) {
		if n == nil {
			return
		}
		offer(domain.Neighbor{Position: n.idx, Distance: vecmath.SquaredL2(query, i.vecs[n.idx])})
		d := i.metric(query, i.vecs[n.idx])
		thr := n.thr + slack
		if d < n.thr {
			if d-radius <= thr {
				walk(n.left)
			}
			if d+radius >= n.thr-slack {
				walk(n.right)
			}
		} else {
			if d+radius >= n.thr-slack {
				walk(n.right)
			}
			if d-radius <= thr {
				walk(n.left)
			}
		}
	}
	walk(i.root)

	vecmath.Sort(best)
	return best, nil
}

// Len returns the number of indexed vectors.
func (i *Index) Len() int { return len(i.vecs) }
