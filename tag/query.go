package tag

import (
	"fmt"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// QueryAll returns the tags of the subtree at root, root included, matching
// a CSS selector, in document order.
func QueryAll(root *Tag, selector string) ([]*Tag, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSelector, selector, err)
	}
	unlock := rlockTag(root)
	doc, back := mirror(root)
	unlock()
	nodes := sel.MatchAll(doc)
	tags := make([]*Tag, 0, len(nodes))
	for _, n := range nodes {
		tags = append(tags, back[n])
	}
	return tags, nil
}

// Query returns the first tag matching selector, or nil.
func Query(root *Tag, selector string) (*Tag, error) {
	tags, err := QueryAll(root, selector)
	if err != nil || len(tags) == 0 {
		return nil, err
	}
	return tags[0], nil
}

// mirror builds an html.Node tree for the subtree at t. The caller holds
// the read lock.
func mirror(t *Tag) (*html.Node, map[*html.Node]*Tag) {
	back := make(map[*html.Node]*Tag)
	var build func(*Tag) *html.Node
	build = func(x *Tag) *html.Node {
		if x.IsText() {
			return &html.Node{Type: html.TextNode, Data: x.text}
		}
		n := &html.Node{Type: html.ElementNode, Data: x.name, DataAtom: atom.Lookup([]byte(x.name))}
		for _, a := range x.attrs {
			n.Attr = append(n.Attr, html.Attribute{Key: a.name, Val: a.Value()})
		}
		if id := x.ID(); id != "" {
			n.Attr = append(n.Attr, html.Attribute{Key: DataWffID, Val: id})
		}
		back[n] = x
		for _, ch := range x.children() {
			n.AppendChild(build(ch))
		}
		return n
	}
	return build(t), back
}
