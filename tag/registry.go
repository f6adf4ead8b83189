package tag

import (
	"fmt"
	"sync"

	"golang.org/x/net/html/atom"
)

// Factory creates a tag, appending it to parent if parent is not nil.
type Factory func(parent *Tag, attrs ...*Attribute) *Tag

// Registry maps tag names to factories and to the indices used to compress
// tag names on the wire. Registries are created explicitly and handed to
// the components which need them.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	names     []string
	index     map[string]int
}

// standardNames is the set of tag names of DefaultRegistry, in index order.
var standardNames = []string{
	"html", "head", "body", "title", "meta", "link", "style", "script",
	"noscript", "base", "div", "span", "p", "a", "img", "br", "hr", "ul",
	"ol", "li", "dl", "dt", "dd", "table", "caption", "thead", "tbody",
	"tfoot", "tr", "td", "th", "col", "colgroup", "form", "input", "button",
	"select", "option", "optgroup", "textarea", "label", "fieldset",
	"legend", "h1", "h2", "h3", "h4", "h5", "h6", "header", "footer", "nav",
	"main", "section", "article", "aside", "em", "strong", "b", "i", "u",
	"small", "sub", "sup", "code", "pre", "blockquote", "q", "abbr",
	"figure", "figcaption", "iframe", "canvas", "svg", "video", "audio",
	"source", "track", "template", "details", "summary", "dialog", "progress",
	"meter", "output", "time", "mark",
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		index:     make(map[string]int),
	}
}

// DefaultRegistry creates a registry knowing the standard HTML elements.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, name := range standardNames {
		if !IsStandardName(name) {
			panic(fmt.Sprintf("tag: %q is not a standard element", name))
		}
		r.Register(name, nil)
	}
	return r
}

// IsStandardName reports whether name is an element name known to the
// HTML parser.
func IsStandardName(name string) bool {
	return atom.Lookup([]byte(name)) != 0
}

// Register adds a factory for name. A nil factory creates plain tags.
// The first registration of a name assigns its wire index.
func (r *Registry) Register(name string, factory Factory) error {
	if !validTagName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidTagName, name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.index[name]; !ok {
		r.index[name] = len(r.names)
		r.names = append(r.names, name)
	}
	if factory != nil {
		r.factories[name] = factory
	} else {
		delete(r.factories, name)
	}
	return nil
}

// New creates a tag by name, using a registered factory if there is one.
func (r *Registry) New(name string, parent *Tag, attrs ...*Attribute) *Tag {
	r.mu.RLock()
	factory := r.factories[name]
	r.mu.RUnlock()
	if factory != nil {
		return factory(parent, attrs...)
	}
	return New(name, parent, attrs...)
}

// IndexOf returns the wire index of name.
func (r *Registry) IndexOf(name string) (int, bool) {
	if r == nil {
		return 0, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[name]
	return i, ok
}

// Names returns the registered names in index order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.names...)
}

func validTagName(name string) bool {
	if name == "" {
		return false
	}
	for i, c := range name {
		switch {
		case c >= 'a' && c <= 'z':
		case i > 0 && (c >= '0' && c <= '9' || c == '-'):
		default:
			return false
		}
	}
	return true
}
