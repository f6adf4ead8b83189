package page

import (
	"github.com/webfirmframework/wff-sub006/internal/access"
	"github.com/webfirmframework/wff-sub006/tag"
	"github.com/webfirmframework/wff-sub006/wire"
)

// listener encodes the mutations of the page's tag tree. Its methods are
// called with the hierarchy write-locked and use the lock-free accessors of
// tags only.
type listener struct {
	page  *Page
	names tag.NameIndex
}

func (p *Page) listen(so *tag.SharedObject) {
	l := &listener{page: p, names: p.settings.Registry}
	tok := access.PageToken()
	so.SetChildAppendListener(tok, l)
	so.SetChildRemoveListener(tok, l)
	so.SetAttributeAddListener(tok, l)
	so.SetAttributeRemoveListener(tok, l)
	so.SetAttributeValueChangeListener(tok, l)
	so.SetInnerHTMLAddListener(tok, l)
	so.SetInsertBeforeListener(tok, l)
	so.SetInsertAfterListener(tok, l)
}

// idBytes returns the wire form of the identifier of t, empty for text
// nodes.
func idBytes(t *tag.Tag) []byte {
	if t == nil || t.ID() == "" {
		return []byte{}
	}
	return wire.MustIDBytes(t.ID())
}

// position locates a text node in the browser: the identifier of its
// parent followed by its index among the parent's children.
func position(parent *tag.Tag, index int) [][]byte {
	return [][]byte{idBytes(parent), wire.OptimizedBytes(int32(index))}
}

func (l *listener) name(t *tag.Tag) []byte {
	if t == nil || t.IsText() {
		return []byte{}
	}
	return tag.WireName(t.TagName(), l.names)
}

func (l *listener) subtree(t *tag.Tag) []byte {
	return tag.EncodeSubtree(t, l.names)
}

// --- Children --------------------------------------------------------------

func (l *listener) ChildAppended(ev tag.ChildAppendEvent) {
	l.appended(wire.AppendedChildTag, ev)
}

func (l *listener) ChildrenAppended(ev tag.ChildAppendEvent) {
	l.appended(wire.AppendedChildrenTags, ev)
}

func (l *listener) appended(task wire.Task, ev tag.ChildAppendEvent) {
	records := make([]wire.NameValue, 0, len(ev.Children))
	for _, ch := range ev.Children {
		records = append(records, wire.NV(idBytes(ev.Parent), l.name(ev.Parent), l.subtree(ch)))
	}
	l.page.push(task, records...)
}

func (l *listener) ChildMoved(ev tag.ChildMovedEvent) {
	l.page.push(wire.MovedChildrenTags, l.moved(ev))
}

func (l *listener) ChildrenAppendedOrMoved(evs []tag.ChildMovedEvent) {
	records := make([]wire.NameValue, 0, len(evs))
	for _, ev := range evs {
		records = append(records, l.moved(ev))
	}
	l.page.push(wire.MovedChildrenTags, records...)
}

// moved encodes a move as the current parent, the child's id and name.
// Children without previous parent are new to the browser and carry their
// subtree. A moved text node is followed by its previous position.
func (l *listener) moved(ev tag.ChildMovedEvent) wire.NameValue {
	nv := wire.NV(idBytes(ev.CurrentParent), l.name(ev.CurrentParent), idBytes(ev.Child), l.name(ev.Child))
	switch {
	case !ev.IsMove():
		nv.Values = append(nv.Values, l.subtree(ev.Child))
	case ev.Child.IsText():
		nv.Values = append(nv.Values, []byte{1})
		nv.Values = append(nv.Values, position(ev.PreviousParent, ev.PreviousIndex)...)
	}
	return nv
}

func (l *listener) ChildRemoved(ev tag.ChildRemoveEvent) {
	l.removed(ev)
}

func (l *listener) ChildrenRemoved(ev tag.ChildRemoveEvent) {
	l.removed(ev)
}

func (l *listener) removed(ev tag.ChildRemoveEvent) {
	records := make([]wire.NameValue, 0, len(ev.Removed))
	for _, r := range ev.Removed {
		switch {
		case r.ID != "":
			records = append(records, wire.NV(wire.MustIDBytes(r.ID), tag.WireName(r.Name, l.names)))
		case r.Tag.IsText() && r.Index >= 0:
			nv := wire.NV([]byte{}, []byte{})
			nv.Values = append(nv.Values, position(ev.Parent, r.Index)...)
			records = append(records, nv)
		}
	}
	if len(records) > 0 {
		l.page.push(wire.RemovedTags, records...)
	}
}

func (l *listener) AllChildrenRemoved(ev tag.ChildRemoveEvent) {
	l.page.push(wire.RemovedAllChildrenTags, wire.NV(idBytes(ev.Parent), l.name(ev.Parent)))
}

// --- Attributes ------------------------------------------------------------

func (l *listener) AttributesAdded(ev tag.AttributeAddEvent) {
	nv := wire.NV(wire.ManyToOne.Byte(), l.name(ev.Tag), idBytes(ev.Tag))
	for _, a := range ev.Attributes {
		nv.Values = append(nv.Values, []byte(a.WireString()))
	}
	l.page.push(wire.AddedAttributes, nv)
}

func (l *listener) AttributesRemoved(ev tag.AttributeRemoveEvent) {
	nv := wire.NV(wire.ManyToOne.Byte(), l.name(ev.Tag), idBytes(ev.Tag))
	for _, name := range ev.Names {
		nv.Values = append(nv.Values, []byte(name))
	}
	l.page.push(wire.RemovedAttributes, nv)
}

func (l *listener) ValueChanged(ev tag.AttributeValueChangeEvent) {
	nv := wire.NV([]byte(ev.Attribute.WireString()))
	for _, t := range ev.Owners {
		if t.ID() != "" {
			nv.Values = append(nv.Values, idBytes(t))
		}
	}
	if len(nv.Values) > 0 {
		l.page.push(wire.AttributeUpdated, nv)
	}
}

// --- Inner HTML and insertion ----------------------------------------------

func (l *listener) InnerHTMLAdded(ev tag.InnerHTMLAddEvent) {
	parent := wire.NV(idBytes(ev.Parent), l.name(ev.Parent))
	records := []wire.NameValue{parent}
	for _, x := range ev.Children {
		if x.Tag.IsText() && x.PreviousParent == ev.Parent {
			// the browser drops the old children of Parent anyway
			x.PreviousParent = nil
		}
		records = append(records, l.inserted(x))
	}
	l.page.push(wire.AddedInnerHTML, records...)
}

func (l *listener) InsertedBefore(ev tag.InsertEvent) {
	l.page.push(wire.InsertedBeforeTag, l.insertRecords(ev)...)
}

func (l *listener) InsertedAfter(ev tag.InsertEvent) {
	l.page.push(wire.InsertedAfterTag, l.insertRecords(ev)...)
}

// insertRecords encodes the parent and the reference tag, followed by one
// record per inserted tag. A text reference is followed by its position
// before the insertion.
func (l *listener) insertRecords(ev tag.InsertEvent) []wire.NameValue {
	head := wire.NV(idBytes(ev.Parent), l.name(ev.Parent), idBytes(ev.Ref), l.name(ev.Ref))
	if ev.Ref.IsText() {
		head.Values = append(head.Values, wire.OptimizedBytes(int32(ev.RefIndex)))
	}
	records := []wire.NameValue{head}
	for _, x := range ev.Inserted {
		records = append(records, l.inserted(x))
	}
	return records
}

// inserted encodes an inserted tag. A tag moved within the tree is sent by
// id with a trailing 1, a moved text node by its previous position, and a
// new tag with its subtree.
func (l *listener) inserted(x tag.Inserted) wire.NameValue {
	if x.PreviousParent == nil {
		return wire.NV(idBytes(x.Tag), l.name(x.Tag), l.subtree(x.Tag))
	}
	nv := wire.NV(idBytes(x.Tag), l.name(x.Tag), []byte{1})
	if x.Tag.IsText() {
		nv.Values = append(nv.Values, position(x.PreviousParent, x.PreviousIndex)...)
	}
	return nv
}
