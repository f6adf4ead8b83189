package tree

// Predicate is a function type to match against nodes of a tree.
type Predicate[T comparable] func(test *Node[T]) bool

// Action is called for nodes visited during a traversal. Returning false
// prunes the subtree below the node (top-down) or stops the traversal
// (bottom-up).
type Action[T comparable] func(node *Node[T], depth int) bool

// Whatever is a predicate to match anything (see type Predicate).
// It is useful to match the first node in a given direction.
func Whatever[T comparable]() Predicate[T] {
	return func(*Node[T]) bool {
		return true
	}
}

// NodeIsLeaf is a predicate to match leafs of a tree.
func NodeIsLeaf[T comparable]() Predicate[T] {
	return func(test *Node[T]) bool {
		return test.ChildCount() == 0
	}
}

// TopDown visits node and its descendants in pre-order.
func TopDown[T comparable](node *Node[T], action Action[T]) {
	if node == nil || action == nil {
		return
	}
	topDown(node, action, 0)
}

func topDown[T comparable](node *Node[T], action Action[T], depth int) {
	if !action(node, depth) {
		return
	}
	for _, ch := range node.Children() {
		topDown(ch, action, depth+1)
	}
}

// BottomUp visits the descendants of node in post-order, node last.
// It returns false if action stopped the traversal.
func BottomUp[T comparable](node *Node[T], action Action[T]) bool {
	if node == nil || action == nil {
		return true
	}
	return bottomUp(node, action, 0)
}

func bottomUp[T comparable](node *Node[T], action Action[T], depth int) bool {
	for _, ch := range node.Children() {
		if !bottomUp(ch, action, depth+1) {
			return false
		}
	}
	return action(node, depth)
}

// Collect returns all nodes of the subtree at node matching predicate, in
// pre-order.
func Collect[T comparable](node *Node[T], predicate Predicate[T]) []*Node[T] {
	var result []*Node[T]
	TopDown(node, func(n *Node[T], _ int) bool {
		if predicate(n) {
			result = append(result, n)
		}
		return true
	})
	tracer().Debugf("collected %d nodes", len(result))
	return result
}

// AncestorWith finds an ancestor matching the given predicate.
// The search does not include the start node.
func AncestorWith[T comparable](node *Node[T], predicate Predicate[T]) *Node[T] {
	if node == nil {
		return nil
	}
	for anc := node.Parent(); anc != nil; anc = anc.Parent() {
		if predicate(anc) {
			return anc
		}
	}
	return nil
}
