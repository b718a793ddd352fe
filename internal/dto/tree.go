package dto

// childIndex groups nodes under their parent id.
func childIndex[T any](nodes []T, parentOf func(T) *uint) map[uint][]T {
	index := make(map[uint][]T)
	for _, n := range nodes {
		if p := parentOf(n); p != nil {
			index[*p] = append(index[*p], n)
		}
	}
	return index
}

// treeMapper maps a node and its descendants, visiting each id at most once.
type treeMapper[T, D any] struct {
	index   map[uint][]T
	idOf    func(T) uint
	convert func(T, []D) D
	visited map[uint]bool
}

func (m *treeMapper[T, D]) mapNode(n T) D {
	m.visited[m.idOf(n)] = true

	var children []D
	for _, child := range m.index[m.idOf(n)] {
		if m.visited[m.idOf(child)] {
			continue
		}
		children = append(children, m.mapNode(child))
	}
	return m.convert(n, children)
}

func mapForest[T, D any](roots, descendants []T, idOf func(T) uint, parentOf func(T) *uint, convert func(T, []D) D) []D {
	m := &treeMapper[T, D]{
		index:   childIndex(descendants, parentOf),
		idOf:    idOf,
		convert: convert,
		visited: make(map[uint]bool, len(roots)+len(descendants)),
	}
	out := make([]D, 0, len(roots))
	for _, r := range roots {
		if m.visited[idOf(r)] {
			continue
		}
		out = append(out, m.mapNode(r))
	}
	return out
}
