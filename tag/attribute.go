package tag

import (
	"fmt"
	"strings"
	"sync"

	"github.com/webfirmframework/wff-sub006/maybe"
	"github.com/webfirmframework/wff-sub006/wire"
)

// Validator checks a value for an attribute.
type Validator func(value string) error

// Attribute is a name/value pair which may be shared by several tags, even
// of different hierarchies. Changing its value notifies every owner.
type Attribute struct {
	name     string
	validate Validator
	handler  *EventHandler
	mu       sync.RWMutex
	value    string
	owners   []*Tag
}

// NewAttribute creates an attribute. Names are checked when the attribute is
// added to a tag.
func NewAttribute(name, value string) *Attribute {
	return &Attribute{name: name, value: value}
}

// NewAttributeWithValidator creates an attribute whose values, including
// the initial one, are checked by validate.
func NewAttributeWithValidator(name, value string, validate Validator) (*Attribute, error) {
	if validate != nil {
		if err := validate(value); err != nil {
			return nil, fmt.Errorf("%w: %s=%q: %v", ErrInvalidValue, name, value, err)
		}
	}
	return &Attribute{name: name, value: value, validate: validate}, nil
}

func (a *Attribute) String() string {
	return a.WireString()
}

// Name returns the attribute name.
func (a *Attribute) Name() string {
	return a.name
}

// Value returns the current value.
func (a *Attribute) Value() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.value
}

// WireString renders the attribute as name=value, or as the bare name if
// the value is empty.
func (a *Attribute) WireString() string {
	v := a.Value()
	if v == "" {
		return a.name
	}
	return a.name + "=" + v
}

// Owners returns the tags currently carrying the attribute.
func (a *Attribute) Owners() []*Tag {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]*Tag(nil), a.owners...)
}

func (a *Attribute) addOwner(t *Tag) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, o := range a.owners {
		if o == t {
			return
		}
	}
	a.owners = append(a.owners, t)
}

func (a *Attribute) removeOwner(t *Tag) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i, o := range a.owners {
		if o == t {
			a.owners = append(a.owners[:i], a.owners[i+1:]...)
			return
		}
	}
}

// SetValue changes the value. The hierarchies of all owners are locked
// while the value changes and their listeners are notified, each with the
// owners belonging to its hierarchy. An invalid value is rejected and the
// previous value is kept.
func (a *Attribute) SetValue(v string) error {
	if a.validate != nil {
		if err := a.validate(v); err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidValue, a.name, v, err)
		}
	}
	for !a.trySetValue(v) {
		tracer().Debugf("owners of attribute %s changed, retrying", a.name)
	}
	return nil
}

// trySetValue fails if the set of owners changed before their hierarchies
// were locked.
func (a *Attribute) trySetValue(v string) bool {
	owners := a.Owners()
	unlock := lockTags(owners...)
	defer unlock()
	a.mu.Lock()
	if !sameTags(owners, a.owners) {
		a.mu.Unlock()
		return false
	}
	changed := a.value != v
	a.value = v
	a.mu.Unlock()
	if changed {
		notifyValueChange(a, owners)
	}
	return true
}

func notifyValueChange(a *Attribute, owners []*Tag) {
	var order []*SharedObject
	groups := make(map[*SharedObject][]*Tag)
	for _, t := range owners {
		so := t.SharedObject()
		if _, ok := groups[so]; !ok {
			order = append(order, so)
		}
		groups[so] = append(groups[so], t)
	}
	for _, so := range order {
		ev := AttributeValueChangeEvent{Attribute: a, Owners: groups[so]}
		maybe.Do(so.AttributeValueChangeListener(attributeToken), func(l AttributeValueChangeListener) {
			l.ValueChanged(ev)
		})
	}
}

func sameTags(a, b []*Tag) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func checkAttribute(a *Attribute) error {
	switch {
	case a == nil:
		return fmt.Errorf("%w: nil", ErrInvalidAttribute)
	case a.name == DataWffID:
		return ErrReservedAttribute
	case a.name == "" || strings.ContainsAny(a.name, " \t\n\f\r\"'>/="):
		return fmt.Errorf("%w: name %q", ErrInvalidAttribute, a.name)
	}
	return nil
}

// --- Event attributes ------------------------------------------------------

// ServerEvent is passed to server methods.
type ServerEvent struct {
	Source    *Tag
	Attribute *Attribute
	Payload   *wire.Object
}

// ServerMethod handles an event raised in the browser. The returned object
// is passed to the post function of the event attribute, if any.
type ServerMethod func(ev ServerEvent) (*wire.Object, error)

// EventHandler connects an event attribute to the server.
type EventHandler struct {
	Method ServerMethod
	// PostFunction is the body of a client function called with the result
	// of Method as argument named jsObject.
	PostFunction string
}

// NewEventAttribute creates an event attribute, e.g. "onclick", which
// invokes method on the server. postFunction may be empty.
func NewEventAttribute(name string, method ServerMethod, postFunction string) *Attribute {
	a := NewAttribute(name, fmt.Sprintf("wff.invoke(event,this,'%s')", name))
	a.handler = &EventHandler{Method: method, PostFunction: postFunction}
	return a
}

// Handler returns the event handler of an event attribute.
func (a *Attribute) Handler() (*EventHandler, bool) {
	return a.handler, a.handler != nil
}
