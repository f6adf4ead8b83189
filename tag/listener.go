package tag

import (
	"github.com/webfirmframework/wff-sub006/internal/access"
	"github.com/webfirmframework/wff-sub006/maybe"
)

// --- Events ----------------------------------------------------------------

// ChildAppendEvent reports children newly attached to Parent.
type ChildAppendEvent struct {
	Parent   *Tag
	Children []*Tag
}

// ChildMovedEvent reports Child attached to CurrentParent. PreviousParent
// is nil if Child has not been part of the hierarchy before.
//
// PreviousIndex is the position of Child among the children of
// PreviousParent right before the move, or -1. Text nodes carry no
// identifier and are located by it.
type ChildMovedEvent struct {
	PreviousParent *Tag
	PreviousIndex  int
	CurrentParent  *Tag
	Child          *Tag
}

// IsMove is false for a plain append.
func (ev ChildMovedEvent) IsMove() bool {
	return ev.PreviousParent != nil
}

// RemovedTag describes a detached tag. The identifier and the position among
// the children of its parent are captured right before it was detached.
type RemovedTag struct {
	Tag   *Tag
	ID    string
	Name  string
	Index int
}

// ChildRemoveEvent reports children detached from Parent.
type ChildRemoveEvent struct {
	Parent  *Tag
	Removed []RemovedTag
}

// AttributeAddEvent reports attributes added to Tag.
type AttributeAddEvent struct {
	Tag        *Tag
	Attributes []*Attribute
}

// AttributeRemoveEvent reports attributes removed from Tag.
type AttributeRemoveEvent struct {
	Tag   *Tag
	Names []string
}

// AttributeValueChangeEvent reports a new value of Attribute. Owners are the
// tags of the listener's hierarchy carrying the attribute.
type AttributeValueChangeEvent struct {
	Attribute *Attribute
	Owners    []*Tag
}

// Inserted is a tag inserted into a parent. PreviousParent is nil if Tag has
// not been part of the hierarchy before, PreviousIndex is as for
// ChildMovedEvent.
type Inserted struct {
	Tag            *Tag
	PreviousParent *Tag
	PreviousIndex  int
}

// InsertEvent reports tags inserted into Parent next to Ref. RefIndex is the
// position of Ref before the insertion.
type InsertEvent struct {
	Parent   *Tag
	Ref      *Tag
	RefIndex int
	Inserted []Inserted
}

// InnerHTMLAddEvent reports the children of Parent replaced by Children.
type InnerHTMLAddEvent struct {
	Parent   *Tag
	Children []Inserted
}

// --- Listeners -------------------------------------------------------------

// ChildAppendListener is notified of children attached to a tag.
type ChildAppendListener interface {
	ChildAppended(ev ChildAppendEvent)
	ChildrenAppended(ev ChildAppendEvent)
	ChildMoved(ev ChildMovedEvent)
	// ChildrenAppendedOrMoved reports a batch containing moves. Every entry
	// decides on its own whether it is a move or an append.
	ChildrenAppendedOrMoved(evs []ChildMovedEvent)
}

// ChildRemoveListener is notified of children detached from a tag.
type ChildRemoveListener interface {
	ChildRemoved(ev ChildRemoveEvent)
	ChildrenRemoved(ev ChildRemoveEvent)
	AllChildrenRemoved(ev ChildRemoveEvent)
}

// AttributeAddListener is notified of attributes added to a tag.
type AttributeAddListener interface {
	AttributesAdded(ev AttributeAddEvent)
}

// AttributeRemoveListener is notified of attributes removed from a tag.
type AttributeRemoveListener interface {
	AttributesRemoved(ev AttributeRemoveEvent)
}

// AttributeValueChangeListener is notified of changed attribute values.
type AttributeValueChangeListener interface {
	ValueChanged(ev AttributeValueChangeEvent)
}

// InnerHTMLAddListener is notified of replaced children.
type InnerHTMLAddListener interface {
	InnerHTMLAdded(ev InnerHTMLAddEvent)
}

// InsertBeforeListener is notified of tags inserted before a sibling.
type InsertBeforeListener interface {
	InsertedBefore(ev InsertEvent)
}

// InsertAfterListener is notified of tags inserted after a sibling.
type InsertAfterListener interface {
	InsertedAfter(ev InsertEvent)
}

// --- Listener slots --------------------------------------------------------

// Every slot holds at most one listener, the last one registered.
type listenerSlots struct {
	childAppend  maybe.Maybe[ChildAppendListener]
	childRemove  maybe.Maybe[ChildRemoveListener]
	attributeAdd maybe.Maybe[AttributeAddListener]
	attributeRem maybe.Maybe[AttributeRemoveListener]
	valueChange  maybe.Maybe[AttributeValueChangeListener]
	innerHTMLAdd maybe.Maybe[InnerHTMLAddListener]
	insertBefore maybe.Maybe[InsertBeforeListener]
	insertAfter  maybe.Maybe[InsertAfterListener]
}

func emptySlots() listenerSlots {
	return listenerSlots{
		childAppend:  maybe.Nothing[ChildAppendListener](),
		childRemove:  maybe.Nothing[ChildRemoveListener](),
		attributeAdd: maybe.Nothing[AttributeAddListener](),
		attributeRem: maybe.Nothing[AttributeRemoveListener](),
		valueChange:  maybe.Nothing[AttributeValueChangeListener](),
		innerHTMLAdd: maybe.Nothing[InnerHTMLAddListener](),
		insertBefore: maybe.Nothing[InsertBeforeListener](),
		insertAfter:  maybe.Nothing[InsertAfterListener](),
	}
}

var (
	tagToken       = access.TagToken()
	attributeToken = access.AttributeToken()
)

func setSlot[L any](so *SharedObject, tok access.Token, op string, slot *maybe.Maybe[L], l L) {
	tok.Require(op, access.PageRole)
	so.lmu.Lock()
	defer so.lmu.Unlock()
	*slot = maybe.Of(l)
}

func getSlot[L any](so *SharedObject, tok access.Token, op string, slot *maybe.Maybe[L]) maybe.Maybe[L] {
	tok.Require(op, access.TagRole, access.AttributeRole)
	so.lmu.RLock()
	defer so.lmu.RUnlock()
	return *slot
}

// SetChildAppendListener registers l, replacing a previous listener.
// A nil listener clears the slot. Requires the page role.
func (so *SharedObject) SetChildAppendListener(tok access.Token, l ChildAppendListener) {
	setSlot(so, tok, "SetChildAppendListener", &so.listeners.childAppend, l)
}

// ChildAppendListener returns the registered listener. Requires the tag or
// attribute role.
func (so *SharedObject) ChildAppendListener(tok access.Token) maybe.Maybe[ChildAppendListener] {
	return getSlot(so, tok, "ChildAppendListener", &so.listeners.childAppend)
}

func (so *SharedObject) SetChildRemoveListener(tok access.Token, l ChildRemoveListener) {
	setSlot(so, tok, "SetChildRemoveListener", &so.listeners.childRemove, l)
}

func (so *SharedObject) ChildRemoveListener(tok access.Token) maybe.Maybe[ChildRemoveListener] {
	return getSlot(so, tok, "ChildRemoveListener", &so.listeners.childRemove)
}

func (so *SharedObject) SetAttributeAddListener(tok access.Token, l AttributeAddListener) {
	setSlot(so, tok, "SetAttributeAddListener", &so.listeners.attributeAdd, l)
}

func (so *SharedObject) AttributeAddListener(tok access.Token) maybe.Maybe[AttributeAddListener] {
	return getSlot(so, tok, "AttributeAddListener", &so.listeners.attributeAdd)
}

func (so *SharedObject) SetAttributeRemoveListener(tok access.Token, l AttributeRemoveListener) {
	setSlot(so, tok, "SetAttributeRemoveListener", &so.listeners.attributeRem, l)
}

func (so *SharedObject) AttributeRemoveListener(tok access.Token) maybe.Maybe[AttributeRemoveListener] {
	return getSlot(so, tok, "AttributeRemoveListener", &so.listeners.attributeRem)
}

func (so *SharedObject) SetAttributeValueChangeListener(tok access.Token, l AttributeValueChangeListener) {
	setSlot(so, tok, "SetAttributeValueChangeListener", &so.listeners.valueChange, l)
}

func (so *SharedObject) AttributeValueChangeListener(tok access.Token) maybe.Maybe[AttributeValueChangeListener] {
	return getSlot(so, tok, "AttributeValueChangeListener", &so.listeners.valueChange)
}

func (so *SharedObject) SetInnerHTMLAddListener(tok access.Token, l InnerHTMLAddListener) {
	setSlot(so, tok, "SetInnerHTMLAddListener", &so.listeners.innerHTMLAdd, l)
}

func (so *SharedObject) InnerHTMLAddListener(tok access.Token) maybe.Maybe[InnerHTMLAddListener] {
	return getSlot(so, tok, "InnerHTMLAddListener", &so.listeners.innerHTMLAdd)
}

func (so *SharedObject) SetInsertBeforeListener(tok access.Token, l InsertBeforeListener) {
	setSlot(so, tok, "SetInsertBeforeListener", &so.listeners.insertBefore, l)
}

func (so *SharedObject) InsertBeforeListener(tok access.Token) maybe.Maybe[InsertBeforeListener] {
	return getSlot(so, tok, "InsertBeforeListener", &so.listeners.insertBefore)
}

func (so *SharedObject) SetInsertAfterListener(tok access.Token, l InsertAfterListener) {
	setSlot(so, tok, "SetInsertAfterListener", &so.listeners.insertAfter, l)
}

func (so *SharedObject) InsertAfterListener(tok access.Token) maybe.Maybe[InsertAfterListener] {
	return getSlot(so, tok, "InsertAfterListener", &so.listeners.insertAfter)
}
