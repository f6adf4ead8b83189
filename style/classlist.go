package style

import (
	"fmt"
	"strings"
	"sync"

	"github.com/webfirmframework/wff-sub006/tag"
)

// ClassList is the value of a class attribute as a set of class names,
// kept in insertion order.
type ClassList struct {
	mu   sync.Mutex
	attr *tag.Attribute
}

// NewClassList creates a class attribute. Invalid names are dropped.
func NewClassList(classes ...string) *ClassList {
	c := &ClassList{attr: tag.NewAttribute("class", "")}
	if err := c.Add(classes...); err != nil {
		tracer().Errorf("class list: %v", err)
	}
	return c
}

// ClassListOf wraps an existing class attribute.
func ClassListOf(attr *tag.Attribute) (*ClassList, error) {
	if attr == nil || attr.Name() != "class" {
		return nil, fmt.Errorf("%w: not a class attribute", ErrInvalidClass)
	}
	return &ClassList{attr: attr}, nil
}

// Attribute returns the class attribute to add to tags.
func (c *ClassList) Attribute() *tag.Attribute {
	return c.attr
}

// Classes returns the class names.
func (c *ClassList) Classes() []string {
	return strings.Fields(c.attr.Value())
}

// Contains reports whether name is in the list.
func (c *ClassList) Contains(name string) bool {
	for _, x := range c.Classes() {
		if x == name {
			return true
		}
	}
	return false
}

// Add appends class names not yet present. Names containing whitespace are
// rejected and the list is left unchanged.
func (c *ClassList) Add(names ...string) error {
	for _, n := range names {
		if n == "" || strings.ContainsAny(n, " \t\n\f\r") {
			return fmt.Errorf("%w: %q", ErrInvalidClass, n)
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	classes := c.Classes()
	changed := false
	for _, n := range names {
		if !contains(classes, n) {
			classes = append(classes, n)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return c.attr.SetValue(strings.Join(classes, " "))
}

// Remove deletes class names. It returns false if none of them was present.
func (c *ClassList) Remove(names ...string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	var kept []string
	for _, x := range c.Classes() {
		if !contains(names, x) {
			kept = append(kept, x)
		}
	}
	if len(kept) == len(c.Classes()) {
		return false
	}
	return c.attr.SetValue(strings.Join(kept, " ")) == nil
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
