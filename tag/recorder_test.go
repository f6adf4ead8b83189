package tag

import (
	"strings"

	"github.com/webfirmframework/wff-sub006/internal/access"
)

// recorder records every event of a hierarchy as a short string, together
// with the lock state observed during dispatch.
type recorder struct {
	so     *SharedObject
	events []string
	locked []bool
}

func listen(t *Tag) *recorder {
	r := &recorder{so: t.SharedObject()}
	tok := access.PageToken()
	r.so.SetChildAppendListener(tok, r)
	r.so.SetChildRemoveListener(tok, r)
	r.so.SetAttributeAddListener(tok, r)
	r.so.SetAttributeRemoveListener(tok, r)
	r.so.SetAttributeValueChangeListener(tok, r)
	r.so.SetInnerHTMLAddListener(tok, r)
	r.so.SetInsertBeforeListener(tok, r)
	r.so.SetInsertAfterListener(tok, r)
	return r
}

func (r *recorder) record(parts ...string) {
	r.events = append(r.events, strings.Join(parts, " "))
	r.locked = append(r.locked, r.so.WriteLocked())
}

func (r *recorder) reset() {
	r.events, r.locked = nil, nil
}

func nameOf(t *Tag) string {
	if t == nil {
		return "nil"
	}
	return t.TagName()
}

func idsOf(tags []*Tag) string {
	ids := make([]string, len(tags))
	for i, t := range tags {
		ids[i] = t.ID()
	}
	return strings.Join(ids, ",")
}

func insertedIDs(ins []Inserted) string {
	tags := make([]*Tag, len(ins))
	for i, x := range ins {
		tags[i] = x.Tag
	}
	return idsOf(tags)
}

func removedIDs(removed []RemovedTag) string {
	ids := make([]string, len(removed))
	for i, x := range removed {
		ids[i] = x.ID
	}
	return strings.Join(ids, ",")
}

func (r *recorder) ChildAppended(ev ChildAppendEvent) {
	r.record("append", nameOf(ev.Parent), idsOf(ev.Children))
}

func (r *recorder) ChildrenAppended(ev ChildAppendEvent) {
	r.record("append-all", nameOf(ev.Parent), idsOf(ev.Children))
}

func (r *recorder) ChildMoved(ev ChildMovedEvent) {
	r.record("move", ev.Child.ID(), nameOf(ev.PreviousParent)+"->"+nameOf(ev.CurrentParent))
}

func (r *recorder) ChildrenAppendedOrMoved(evs []ChildMovedEvent) {
	parts := make([]string, len(evs))
	for i, ev := range evs {
		kind := "append"
		if ev.IsMove() {
			kind = "move"
		}
		parts[i] = kind + ":" + ev.Child.ID()
	}
	r.record("batch", strings.Join(parts, ","))
}

func (r *recorder) ChildRemoved(ev ChildRemoveEvent) {
	r.record("remove", nameOf(ev.Parent), removedIDs(ev.Removed))
}

func (r *recorder) ChildrenRemoved(ev ChildRemoveEvent) {
	r.record("remove-some", nameOf(ev.Parent), removedIDs(ev.Removed))
}

func (r *recorder) AllChildrenRemoved(ev ChildRemoveEvent) {
	r.record("remove-all", nameOf(ev.Parent), removedIDs(ev.Removed))
}

func (r *recorder) AttributesAdded(ev AttributeAddEvent) {
	names := make([]string, len(ev.Attributes))
	for i, a := range ev.Attributes {
		names[i] = a.Name()
	}
	r.record("attr-add", ev.Tag.ID(), strings.Join(names, ","))
}

func (r *recorder) AttributesRemoved(ev AttributeRemoveEvent) {
	r.record("attr-remove", ev.Tag.ID(), strings.Join(ev.Names, ","))
}

func (r *recorder) ValueChanged(ev AttributeValueChangeEvent) {
	r.record("value", ev.Attribute.WireString(), idsOf(ev.Owners))
}

func (r *recorder) InnerHTMLAdded(ev InnerHTMLAddEvent) {
	r.record("inner", nameOf(ev.Parent), insertedIDs(ev.Children))
}

func (r *recorder) InsertedBefore(ev InsertEvent) {
	r.record("insert-before", ev.Ref.ID(), insertedIDs(ev.Inserted))
}

func (r *recorder) InsertedAfter(ev InsertEvent) {
	r.record("insert-after", ev.Ref.ID(), insertedIDs(ev.Inserted))
}
