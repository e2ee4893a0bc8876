// Package collision answers point-intersection queries against axis-aligned
// shapes, backed by an R-tree.
package collision

import (
	"fmt"
	"sort"

	"gatos/pkg/geometry"

	"github.com/dhconnelly/rtreego"
)

const (
	treeMinChildren = 25
	treeMaxChildren = 50

	// minExtent keeps degenerate shapes and point probes valid R-tree rects.
	minExtent = 1e-6
)

// shape is one indexed entry.
type shape[K comparable] struct {
	id     K
	rect   geometry.Rect
	seq    uint64
	bounds rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (s *shape[K]) Bounds() rtreego.Rect {
	return s.bounds
}

// Index maps identities to shapes and supports point queries.
// Hits are ordered most recently inserted first, which makes the first hit
// of an overlapping stack the topmost drawn entity.
type Index[K comparable] struct {
	tree   *rtreego.Rtree
	shapes map[K]*shape[K]
	seq    uint64
}

// NewIndex creates an empty index.
func NewIndex[K comparable]() *Index[K] {
	return &Index[K]{
		tree:   rtreego.NewTree(2, treeMinChildren, treeMaxChildren),
		shapes: make(map[K]*shape[K]),
	}
}

// Insert adds or replaces the shape for id.
func (ix *Index[K]) Insert(id K, rect geometry.Rect) error {
	bounds, err := toRTree(rect)
	if err != nil {
		return fmt.Errorf("collision shape %v: %w", id, err)
	}
	ix.Remove(id)

	ix.seq++
	s := &shape[K]{id: id, rect: rect, seq: ix.seq, bounds: bounds}
	ix.shapes[id] = s
	ix.tree.Insert(s)
	return nil
}

// Remove deletes the shape for id if present.
func (ix *Index[K]) Remove(id K) {
	s, ok := ix.shapes[id]
	if !ok {
		return
	}
	ix.tree.Delete(s)
	delete(ix.shapes, id)
}

// Clear removes every shape.
func (ix *Index[K]) Clear() {
	ix.tree = rtreego.NewTree(2, treeMinChildren, treeMaxChildren)
	ix.shapes = make(map[K]*shape[K])
}

// Len returns the number of indexed shapes.
func (ix *Index[K]) Len() int {
	return len(ix.shapes)
}

// QueryPoint returns every id whose shape contains p, most recent first.
func (ix *Index[K]) QueryPoint(p geometry.Point2D) []K {
	probe, err := rtreego.NewRect(
		rtreego.Point{p.X - minExtent, p.Y - minExtent},
		[]float64{2 * minExtent, 2 * minExtent},
	)
	if err != nil {
		return nil
	}

	var hits []*shape[K]
	for _, sp := range ix.tree.SearchIntersect(probe) {
		s, ok := sp.(*shape[K])
		if !ok || !s.rect.Contains(p) {
			continue
		}
		hits = append(hits, s)
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].seq > hits[j].seq })

	ids := make([]K, len(hits))
	for i, s := range hits {
		ids[i] = s.id
	}
	return ids
}

// First returns the topmost id containing p.
func (ix *Index[K]) First(p geometry.Point2D) (K, bool) {
	hits := ix.QueryPoint(p)
	if len(hits) == 0 {
		var zero K
		return zero, false
	}
	return hits[0], true
}

func toRTree(r geometry.Rect) (rtreego.Rect, error) {
	w, h := r.Width, r.Height
	if w < minExtent {
		w = minExtent
	}
	if h < minExtent {
		h = minExtent
	}
	return rtreego.NewRect(rtreego.Point{r.X, r.Y}, []float64{w, h})
}
