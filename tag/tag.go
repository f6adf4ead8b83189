package tag

import (
	"fmt"
	"sync/atomic"

	"github.com/webfirmframework/wff-sub006/tree"
)

// Tag is a node of a tag tree: an element with a tag name and attributes,
// or a text node (empty tag name) carrying content.
type Tag struct {
	node   tree.Node[*Tag]
	name   string
	text   string
	attrs  []*Attribute // guarded by the hierarchy lock
	shared atomic.Pointer[SharedObject]
	id     atomic.Pointer[string]
}

func newTag(name string) *Tag {
	t := &Tag{name: name}
	t.node.Payload = t
	t.shared.Store(newSharedObject(t))
	return t
}

// New creates an element tag. If parent is not nil, the tag is appended to
// parent, notifying the listeners of parent's hierarchy. Invalid attributes
// are dropped.
func New(name string, parent *Tag, attrs ...*Attribute) *Tag {
	t := newTag(name)
	for _, a := range attrs {
		if err := checkAttribute(a); err != nil {
			tracer().Errorf("tag %s: dropping attribute: %v", name, err)
			continue
		}
		t.putAttribute(a)
	}
	t.appendTo(parent)
	return t
}

// NewText creates a text node. If parent is not nil, the node is appended
// to parent.
func NewText(text string, parent *Tag) *Tag {
	t := newTag("")
	t.text = text
	t.appendTo(parent)
	return t
}

func (t *Tag) appendTo(parent *Tag) {
	if parent == nil {
		return
	}
	if err := parent.AppendChild(t); err != nil {
		tracer().Errorf("cannot append %v to %v: %v", t, parent, err)
	}
}

func (t *Tag) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.IsText() {
		return fmt.Sprintf("#text(%.12q)", t.text)
	}
	if id := t.ID(); id != "" {
		return fmt.Sprintf("<%s %s>", t.name, id)
	}
	return "<" + t.name + ">"
}

// --- Lock-free accessors ---------------------------------------------------

// TagName returns the tag name, which is empty for text nodes.
func (t *Tag) TagName() string {
	return t.name
}

// IsText is true for text nodes.
func (t *Tag) IsText() bool {
	return t.name == ""
}

// Text returns the content of a text node.
func (t *Tag) Text() string {
	return t.text
}

// ID returns the value of attribute data-wff-id, or "" if none is assigned.
func (t *Tag) ID() string {
	if p := t.id.Load(); p != nil {
		return *p
	}
	return ""
}

func (t *Tag) setID(id string) {
	t.id.Store(&id)
}

func (t *Tag) clearID() {
	t.id.Store(nil)
}

// SharedObject returns the shared object of the tag's hierarchy.
func (t *Tag) SharedObject() *SharedObject {
	return t.shared.Load()
}

// --- Read-locked accessors -------------------------------------------------

// Parent returns the parent tag or nil.
func (t *Tag) Parent() *Tag {
	unlock := rlockTag(t)
	defer unlock()
	return t.parent()
}

func (t *Tag) parent() *Tag {
	if p := t.node.Parent(); p != nil {
		return p.Payload
	}
	return nil
}

// Children returns the children of t.
func (t *Tag) Children() []*Tag {
	unlock := rlockTag(t)
	defer unlock()
	return t.children()
}

func (t *Tag) children() []*Tag {
	nodes := t.node.Children()
	children := make([]*Tag, len(nodes))
	for i, n := range nodes {
		children[i] = n.Payload
	}
	return children
}

// ChildCount returns the number of children of t.
func (t *Tag) ChildCount() int {
	unlock := rlockTag(t)
	defer unlock()
	return t.node.ChildCount()
}

// Attributes returns the attributes of t, without data-wff-id.
func (t *Tag) Attributes() []*Attribute {
	unlock := rlockTag(t)
	defer unlock()
	return append([]*Attribute(nil), t.attrs...)
}

// Attribute finds an attribute by name.
func (t *Tag) Attribute(name string) (*Attribute, bool) {
	unlock := rlockTag(t)
	defer unlock()
	a := t.attribute(name)
	return a, a != nil
}

func (t *Tag) attribute(name string) *Attribute {
	for _, a := range t.attrs {
		if a.name == name {
			return a
		}
	}
	return nil
}

// attributesLocked returns a copy of the attribute slice for readers
// already holding the hierarchy lock.
func (t *Tag) attributesLocked() []*Attribute {
	return append([]*Attribute(nil), t.attrs...)
}

// putAttribute adds a or replaces an attribute of the same name. It returns
// false if a is already present. The caller holds the write lock or owns
// t exclusively.
func (t *Tag) putAttribute(a *Attribute) bool {
	for i, x := range t.attrs {
		if x == a {
			return false
		}
		if x.name == a.name {
			x.removeOwner(t)
			t.attrs[i] = a
			a.addOwner(t)
			return true
		}
	}
	t.attrs = append(t.attrs, a)
	a.addOwner(t)
	return true
}
