package tag

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseFragment parses markup as content of a body element and returns the
// top-level tags. Tags are created through reg; comments are dropped, as are
// data-wff-id attributes found in the markup.
func ParseFragment(reg *Registry, markup string) ([]*Tag, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("tag: cannot parse fragment: %w", err)
	}
	var tags []*Tag
	for _, n := range nodes {
		if t := fromHTMLNode(reg, n); t != nil {
			tags = append(tags, t)
		}
	}
	tracer().Debugf("parsed fragment into %d tags", len(tags))
	return tags, nil
}

func fromHTMLNode(reg *Registry, n *html.Node) *Tag {
	switch n.Type {
	case html.TextNode:
		return NewText(n.Data, nil)
	case html.ElementNode:
	default:
		return nil
	}
	attrs := make([]*Attribute, 0, len(n.Attr))
	for _, a := range n.Attr {
		if a.Key == DataWffID {
			continue
		}
		key := a.Key
		if a.Namespace != "" {
			key = a.Namespace + ":" + a.Key
		}
		attrs = append(attrs, NewAttribute(key, a.Val))
	}
	var t *Tag
	if reg != nil {
		t = reg.New(n.Data, nil, attrs...)
	} else {
		t = New(n.Data, nil, attrs...)
	}
	var children []*Tag
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if ct := fromHTMLNode(reg, c); ct != nil {
			children = append(children, ct)
		}
	}
	if err := t.AppendChildren(children...); err != nil {
		tracer().Errorf("parsed %v: %v", t, err)
	}
	return t
}

// SetInnerHTML replaces the children of t by the tags parsed from markup.
func (t *Tag) SetInnerHTML(reg *Registry, markup string) error {
	tags, err := ParseFragment(reg, markup)
	if err != nil {
		return err
	}
	return t.AddInnerHTML(tags...)
}
