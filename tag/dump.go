package tag

import (
	"fmt"

	tp "github.com/xlab/treeprint"
)

// Dump renders the subtree at t as an indented tree, for debugging.
func Dump(t *Tag) string {
	unlock := rlockTag(t)
	defer unlock()
	root := tp.New()
	dumpInto(root, t)
	return root.String()
}

func dumpInto(branch tp.Tree, t *Tag) {
	if t.IsText() {
		branch.AddNode(fmt.Sprintf("%q", t.text))
		return
	}
	label := t.name
	for _, a := range t.attrs {
		label += " " + a.WireString()
	}
	if id := t.ID(); id != "" {
		label += " [" + id + "]"
	}
	b := branch.AddBranch(label)
	for _, ch := range t.children() {
		dumpInto(b, ch)
	}
}
