package tag

import (
	"github.com/webfirmframework/wff-sub006/maybe"
	"github.com/webfirmframework/wff-sub006/tree"
)

// Every exported mutation locks the hierarchies involved once, performs the
// structural change together with the index bookkeeping, and only then
// notifies listeners. The ...Locked helpers expect the caller to hold the
// write locks.

// attachment records a child attached by attachLocked.
type attachment struct {
	child     *Tag
	prev      *Tag           // previous parent within the same hierarchy
	prevIndex int            // position of child in prev, or -1
	source    *sourceRemoval // child has been taken from another hierarchy
}

// sourceRemoval is the removal event owed to the hierarchy a child has been
// taken from.
type sourceRemoval struct {
	so *SharedObject
	ev ChildRemoveEvent
}

func (r *sourceRemoval) notify() {
	if r == nil {
		return
	}
	maybe.Do(r.so.ChildRemoveListener(tagToken), func(l ChildRemoveListener) {
		l.ChildRemoved(r.ev)
	})
}

func checkAttach(parent, ch *Tag) error {
	switch {
	case ch == nil:
		return ErrNilTag
	case parent.IsText():
		return ErrTextNode
	case ch.node.IsAncestorOf(&parent.node):
		return ErrCycle
	}
	return nil
}

// removedOf describes t before it is detached from its parent.
func removedOf(t *Tag) RemovedTag {
	r := RemovedTag{Tag: t, ID: t.ID(), Name: t.name, Index: -1}
	if p := t.node.Parent(); p != nil {
		r.Index = p.IndexOfChild(&t.node)
	}
	return r
}

// attachLocked makes ch a child of t at the position returned by pos, which
// is evaluated after ch has been isolated from its previous parent. A nil
// pos appends.
//
// Within one hierarchy, ch keeps its identifiers and the attachment is a
// move if ch had a parent. A child from another hierarchy loses its
// identifiers there and receives fresh ones in t's hierarchy.
func (t *Tag) attachLocked(ch *Tag, pos func() int) attachment {
	dst, src := t.SharedObject(), ch.SharedObject()
	prev := ch.parent()
	position := func() int {
		if pos == nil {
			return -1
		}
		return pos()
	}
	if src == dst {
		index := -1
		if prev != nil {
			index = prev.node.IndexOfChild(&ch.node)
		}
		ch.node.Isolate()
		t.node.InsertChildAt(position(), &ch.node)
		return attachment{child: ch, prev: prev, prevIndex: index}
	}
	var removal *sourceRemoval
	if prev != nil {
		removal = &sourceRemoval{
			so: src,
			ev: ChildRemoveEvent{Parent: prev, Removed: []RemovedTag{removedOf(ch)}},
		}
		ch.node.Isolate()
	}
	src.evictLocked(ch)
	t.node.InsertChildAt(position(), &ch.node)
	dst.adoptLocked(ch)
	tracer().Debugf("%v migrated from %v to %v", ch, src, dst)
	return attachment{child: ch, prevIndex: -1, source: removal}
}

// detachLocked isolates ch, evicts its identifiers and gives the subtree a
// hierarchy of its own.
func detachLocked(ch *Tag) RemovedTag {
	so := ch.SharedObject()
	r := removedOf(ch)
	ch.node.Isolate()
	so.evictLocked(ch)
	fresh := newSharedObject(ch)
	tree.TopDown(&ch.node, func(n *tree.Node[*Tag], _ int) bool {
		n.Payload.shared.Store(fresh)
		return true
	})
	return r
}

func (t *Tag) isChild(ch *Tag) bool {
	return ch != nil && t.node.IndexOfChild(&ch.node) >= 0
}

func withTag(t *Tag, others []*Tag) []*Tag {
	all := make([]*Tag, 0, len(others)+1)
	return append(append(all, t), others...)
}

// --- Appending -------------------------------------------------------------

// AppendChild appends ch as the last child of t. If ch is part of t's
// hierarchy, it is moved and listeners see a single move.
func (t *Tag) AppendChild(ch *Tag) error {
	if ch == nil {
		return ErrNilTag
	}
	unlock := lockTags(t, ch)
	defer unlock()
	if err := checkAttach(t, ch); err != nil {
		return err
	}
	at := t.attachLocked(ch, nil)
	at.source.notify()
	listener := t.SharedObject().ChildAppendListener(tagToken)
	if at.prev != nil {
		ev := ChildMovedEvent{PreviousParent: at.prev, PreviousIndex: at.prevIndex, CurrentParent: t, Child: ch}
		maybe.Do(listener, func(l ChildAppendListener) { l.ChildMoved(ev) })
		return nil
	}
	ev := ChildAppendEvent{Parent: t, Children: []*Tag{ch}}
	maybe.Do(listener, func(l ChildAppendListener) { l.ChildAppended(ev) })
	return nil
}

// AppendChildren appends children in order. Either all of them are appended
// or, if one of them is invalid, none.
func (t *Tag) AppendChildren(children ...*Tag) error {
	if len(children) == 0 {
		return nil
	}
	unlock := lockTags(withTag(t, children)...)
	defer unlock()
	for _, ch := range children {
		if err := checkAttach(t, ch); err != nil {
			return err
		}
	}
	ats := make([]attachment, 0, len(children))
	moved := false
	for _, ch := range children {
		at := t.attachLocked(ch, nil)
		moved = moved || at.prev != nil
		ats = append(ats, at)
	}
	for _, at := range ats {
		at.source.notify()
	}
	listener := t.SharedObject().ChildAppendListener(tagToken)
	if !moved {
		ev := ChildAppendEvent{Parent: t, Children: append([]*Tag(nil), children...)}
		maybe.Do(listener, func(l ChildAppendListener) { l.ChildrenAppended(ev) })
		return nil
	}
	evs := make([]ChildMovedEvent, len(ats))
	for i, at := range ats {
		evs[i] = ChildMovedEvent{
			PreviousParent: at.prev,
			PreviousIndex:  at.prevIndex,
			CurrentParent:  t,
			Child:          at.child,
		}
	}
	maybe.Do(listener, func(l ChildAppendListener) { l.ChildrenAppendedOrMoved(evs) })
	return nil
}

// --- Removing --------------------------------------------------------------

// RemoveChild detaches ch from t. It returns false if ch is not a child of t.
func (t *Tag) RemoveChild(ch *Tag) bool {
	unlock := lockTags(t)
	defer unlock()
	if !t.isChild(ch) {
		return false
	}
	ev := ChildRemoveEvent{Parent: t, Removed: []RemovedTag{detachLocked(ch)}}
	maybe.Do(t.SharedObject().ChildRemoveListener(tagToken), func(l ChildRemoveListener) {
		l.ChildRemoved(ev)
	})
	return true
}

// RemoveChildren detaches those of children which are children of t.
// It returns false if none of them was.
func (t *Tag) RemoveChildren(children ...*Tag) bool {
	unlock := lockTags(t)
	defer unlock()
	ev := ChildRemoveEvent{Parent: t}
	for _, ch := range children {
		if t.isChild(ch) {
			ev.Removed = append(ev.Removed, detachLocked(ch))
		}
	}
	if len(ev.Removed) == 0 {
		return false
	}
	maybe.Do(t.SharedObject().ChildRemoveListener(tagToken), func(l ChildRemoveListener) {
		l.ChildrenRemoved(ev)
	})
	return true
}

// RemoveAllChildren detaches every child of t.
func (t *Tag) RemoveAllChildren() {
	unlock := lockTags(t)
	defer unlock()
	children := t.children()
	if len(children) == 0 {
		return
	}
	ev := ChildRemoveEvent{Parent: t, Removed: make([]RemovedTag, 0, len(children))}
	for _, ch := range children {
		ev.Removed = append(ev.Removed, detachLocked(ch))
	}
	maybe.Do(t.SharedObject().ChildRemoveListener(tagToken), func(l ChildRemoveListener) {
		l.AllChildrenRemoved(ev)
	})
}

// --- Inserting and replacing -----------------------------------------------

// InsertBefore inserts tags, in order, as siblings before t.
func (t *Tag) InsertBefore(tags ...*Tag) error {
	return t.insert(tags, false)
}

// InsertAfter inserts tags, in order, as siblings after t.
func (t *Tag) InsertAfter(tags ...*Tag) error {
	return t.insert(tags, true)
}

func (t *Tag) insert(tags []*Tag, after bool) error {
	if len(tags) == 0 {
		return nil
	}
	unlock := lockTags(withTag(t, tags)...)
	defer unlock()
	ev, sources, err := t.insertLocked(tags, after)
	if err != nil {
		return err
	}
	t.notifyInsert(ev, sources, after)
	return nil
}

func (t *Tag) insertLocked(tags []*Tag, after bool) (InsertEvent, []*sourceRemoval, error) {
	parent := t.parent()
	if parent == nil {
		return InsertEvent{}, nil, ErrNoParent
	}
	for _, x := range tags {
		if x == t {
			return InsertEvent{}, nil, ErrSelfInsert
		}
		if err := checkAttach(parent, x); err != nil {
			return InsertEvent{}, nil, err
		}
	}
	ev := InsertEvent{
		Parent:   parent,
		Ref:      t,
		RefIndex: parent.node.IndexOfChild(&t.node),
		Inserted: make([]Inserted, 0, len(tags)),
	}
	var sources []*sourceRemoval
	anchor := t
	for _, x := range tags {
		a := anchor
		at := parent.attachLocked(x, func() int {
			i := parent.node.IndexOfChild(&a.node)
			if after {
				i++
			}
			return i
		})
		if after {
			anchor = x
		}
		ev.Inserted = append(ev.Inserted, Inserted{Tag: x, PreviousParent: at.prev, PreviousIndex: at.prevIndex})
		if at.source != nil {
			sources = append(sources, at.source)
		}
	}
	return ev, sources, nil
}

func (t *Tag) notifyInsert(ev InsertEvent, sources []*sourceRemoval, after bool) {
	for _, s := range sources {
		s.notify()
	}
	so := t.SharedObject()
	if after {
		maybe.Do(so.InsertAfterListener(tagToken), func(l InsertAfterListener) { l.InsertedAfter(ev) })
		return
	}
	maybe.Do(so.InsertBeforeListener(tagToken), func(l InsertBeforeListener) { l.InsertedBefore(ev) })
}

// ReplaceWith replaces t by tags. Listeners see the insertion of tags before
// t followed by the removal of t, both within one critical section.
func (t *Tag) ReplaceWith(tags ...*Tag) error {
	unlock := lockTags(withTag(t, tags)...)
	defer unlock()
	parent := t.parent()
	if parent == nil {
		return ErrNoParent
	}
	if len(tags) > 0 {
		ev, sources, err := t.insertLocked(tags, false)
		if err != nil {
			return err
		}
		t.notifyInsert(ev, sources, false)
	}
	so := t.SharedObject()
	ev := ChildRemoveEvent{Parent: parent, Removed: []RemovedTag{detachLocked(t)}}
	maybe.Do(so.ChildRemoveListener(tagToken), func(l ChildRemoveListener) {
		l.ChildRemoved(ev)
	})
	return nil
}

// AddInnerHTML replaces the children of t by children. Listeners see a
// single inner-HTML event instead of removals and appends.
func (t *Tag) AddInnerHTML(children ...*Tag) error {
	if t.IsText() {
		return ErrTextNode
	}
	unlock := lockTags(withTag(t, children)...)
	defer unlock()
	for _, ch := range children {
		if err := checkAttach(t, ch); err != nil {
			return err
		}
	}
	keep := make(map[*Tag]bool, len(children))
	for _, ch := range children {
		keep[ch] = true
	}
	for _, old := range t.children() {
		if !keep[old] {
			detachLocked(old)
		}
	}
	ev := InnerHTMLAddEvent{Parent: t, Children: make([]Inserted, 0, len(children))}
	var sources []*sourceRemoval
	for _, ch := range children {
		at := t.attachLocked(ch, nil)
		ev.Children = append(ev.Children, Inserted{Tag: ch, PreviousParent: at.prev, PreviousIndex: at.prevIndex})
		if at.source != nil {
			sources = append(sources, at.source)
		}
	}
	for _, s := range sources {
		s.notify()
	}
	maybe.Do(t.SharedObject().InnerHTMLAddListener(tagToken), func(l InnerHTMLAddListener) {
		l.InnerHTMLAdded(ev)
	})
	return nil
}

// --- Attributes ------------------------------------------------------------

// AddAttributes adds attributes to t, replacing attributes of the same name.
func (t *Tag) AddAttributes(attrs ...*Attribute) error {
	if t.IsText() {
		return ErrTextNode
	}
	for _, a := range attrs {
		if err := checkAttribute(a); err != nil {
			return err
		}
	}
	unlock := lockTags(t)
	defer unlock()
	var added []*Attribute
	for _, a := range attrs {
		if t.putAttribute(a) {
			added = append(added, a)
		}
	}
	if len(added) == 0 {
		return nil
	}
	ev := AttributeAddEvent{Tag: t, Attributes: added}
	maybe.Do(t.SharedObject().AttributeAddListener(tagToken), func(l AttributeAddListener) {
		l.AttributesAdded(ev)
	})
	return nil
}

// RemoveAttributes removes the attributes with the given names. It returns
// false if t carries none of them. Attribute data-wff-id cannot be removed.
func (t *Tag) RemoveAttributes(names ...string) bool {
	unlock := lockTags(t)
	defer unlock()
	var removed []string
	for _, name := range names {
		for i, a := range t.attrs {
			if a.name == name {
				a.removeOwner(t)
				t.attrs = append(t.attrs[:i], t.attrs[i+1:]...)
				removed = append(removed, name)
				break
			}
		}
	}
	if len(removed) == 0 {
		return false
	}
	ev := AttributeRemoveEvent{Tag: t, Names: removed}
	maybe.Do(t.SharedObject().AttributeRemoveListener(tagToken), func(l AttributeRemoveListener) {
		l.AttributesRemoved(ev)
	})
	return true
}
