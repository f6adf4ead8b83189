package style

import (
	"fmt"
	"strings"
	"sync"

	"github.com/aymerick/douceur/parser"
	"github.com/webfirmframework/wff-sub006/css"
	"github.com/webfirmframework/wff-sub006/tag"
)

// Style is the value of a style attribute as an ordered list of
// declarations.
type Style struct {
	mu    sync.Mutex
	attr  *tag.Attribute
	decls []KeyValue
}

// New creates a style attribute from declarations like
// "color: red; margin-top: 10pt".
func New(declarations string) (*Style, error) {
	decls, err := parse(declarations)
	if err != nil {
		return nil, err
	}
	s := &Style{decls: decls}
	s.attr = tag.NewAttribute("style", render(decls))
	return s, nil
}

// Of wraps an existing style attribute, parsing its current value.
func Of(attr *tag.Attribute) (*Style, error) {
	if attr == nil || attr.Name() != "style" {
		return nil, fmt.Errorf("%w: not a style attribute", ErrInvalidDeclaration)
	}
	decls, err := parse(attr.Value())
	if err != nil {
		return nil, err
	}
	return &Style{attr: attr, decls: decls}, nil
}

// parse reads declarations with douceur, which drops the value of a last
// declaration without a terminating semicolon.
func parse(declarations string) ([]KeyValue, error) {
	declarations = strings.TrimSpace(declarations)
	if declarations != "" && !strings.HasSuffix(declarations, ";") {
		declarations += ";"
	}
	parsed, err := parser.ParseDeclarations(declarations)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDeclaration, err)
	}
	decls := make([]KeyValue, 0, len(parsed))
	for _, d := range parsed {
		decls = put(decls, KeyValue{
			Key:       strings.ToLower(d.Property),
			Value:     Property(d.Value),
			Important: d.Important,
		})
	}
	return decls, nil
}

func put(decls []KeyValue, kv KeyValue) []KeyValue {
	for i := range decls {
		if decls[i].Key == kv.Key {
			decls[i] = kv
			return decls
		}
	}
	return append(decls, kv)
}

func render(decls []KeyValue) string {
	var b strings.Builder
	for _, kv := range decls {
		b.WriteString(kv.String())
	}
	return b.String()
}

// Attribute returns the style attribute to add to tags.
func (s *Style) Attribute() *tag.Attribute {
	return s.attr
}

func (s *Style) String() string {
	return s.attr.Value()
}

// Get returns the value of a property.
func (s *Style) Get(key string) (Property, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key = strings.ToLower(key)
	for _, kv := range s.decls {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return NullStyle, false
}

// Properties returns the declarations in order.
func (s *Style) Properties() []KeyValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]KeyValue(nil), s.decls...)
}

// Set sets a property, replacing a previous value. A value ending in
// "!important" is marked important.
func (s *Style) Set(key, value string) error {
	parsed, err := parse(key + ": " + value)
	if err != nil {
		return err
	}
	if len(parsed) != 1 || parsed[0].Key != strings.ToLower(key) || parsed[0].Value.IsEmpty() {
		return fmt.Errorf("%w: %s: %s", ErrInvalidDeclaration, key, value)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(put(append([]KeyValue(nil), s.decls...), parsed[0]))
}

// SetDimen sets a property to a dimension.
func (s *Style) SetDimen(key string, d css.DimenT) error {
	if d.IsNone() {
		return fmt.Errorf("%w: %s without dimension", ErrInvalidDeclaration, key)
	}
	return s.Set(key, d.CSSString())
}

// Remove deletes properties. It returns false if none of them was set.
func (s *Style) Remove(keys ...string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	decls := make([]KeyValue, 0, len(s.decls))
	for _, kv := range s.decls {
		if !containsKey(keys, kv.Key) {
			decls = append(decls, kv)
		}
	}
	if len(decls) == len(s.decls) {
		return false
	}
	if err := s.apply(decls); err != nil {
		tracer().Errorf("cannot remove %v from style: %v", keys, err)
		return false
	}
	return true
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if strings.ToLower(k) == key {
			return true
		}
	}
	return false
}

// apply writes decls through to the attribute. The caller holds s.mu.
func (s *Style) apply(decls []KeyValue) error {
	if err := s.attr.SetValue(render(decls)); err != nil {
		return err
	}
	s.decls = decls
	tracer().Debugf("style = %q", s.attr.Value())
	return nil
}
