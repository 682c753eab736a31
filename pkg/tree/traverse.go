package tree

import (
	"iter"

	"github.com/aretw0/espalier/pkg/domain"
)

// LevelOrder returns a lazy breadth-first sequence over the tree: the root
// first, then its children in attachment order, then their children, level
// by level. The sequence is restartable; every range over it walks the tree
// from the top again. Stopping a range early abandons the walk without
// visiting the rest.
func LevelOrder(root *domain.Node) iter.Seq[*domain.Node] {
	return func(yield func(*domain.Node) bool) {
		if root == nil {
			return
		}
		queue := []*domain.Node{root}
		for len(queue) > 0 {
			node := queue[0]
			queue = queue[1:]
			if !yield(node) {
				return
			}
			queue = append(queue, node.Children...)
		}
	}
}
