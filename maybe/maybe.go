/*
Package maybe provides an optional value type.

A Maybe is either Just(x) or Nothing. It replaces nil-checks on optional
fields with an explicit type, e.g. for single-slot callback registrations:

	var slot maybe.Maybe[Listener] = maybe.Nothing[Listener]()
	…
	if l, ok := slot.Get(); ok {
		l.Notify(…)
	}

Values may be matched, too:

	var v int
	switch m := x.Match(); m {
	case m.Just(&v):
		…
	case m.Nothing():
		…
	}

Matching compares matcher values, which requires the dynamic type of the
wrapped value to be comparable. Use Get for wrapped values of other types.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package maybe

// Maybe is an optional value of type T.
type Maybe[T any] interface {
	Match() Matcher[T]
	Get() (T, bool)
	IsNothing() bool
	WithDefault(T) T
	Map(func(T) T) Maybe[T]
}

type maybe[T any] struct {
	value T
	tag   bool
}

// Just wraps x.
func Just[T any](x T) Maybe[T] {
	return maybe[T]{value: x, tag: true}
}

// Nothing is the empty Maybe.
func Nothing[T any]() Maybe[T] {
	return maybe[T]{tag: false}
}

// Of wraps x, mapping a nil interface value to Nothing.
func Of[T any](x T) Maybe[T] {
	if any(x) == nil {
		return Nothing[T]()
	}
	return Just(x)
}

func (m maybe[T]) Match() Matcher[T] {
	return matcher[T]{m: m}
}

func (m maybe[T]) Get() (T, bool) {
	return m.value, m.tag
}

func (m maybe[T]) IsNothing() bool {
	return !m.tag
}

func (m maybe[T]) WithDefault(def T) T {
	if m.tag {
		return m.value
	}
	return def
}

func (m maybe[T]) Map(f func(T) T) Maybe[T] {
	if m.tag {
		return Just(f(m.value))
	}
	return m
}

// AndThen chains a computation which may fail onto x.
func AndThen[T, S any](f func(T) Maybe[S], x Maybe[T]) Maybe[S] {
	if v, ok := x.Get(); ok {
		return f(v)
	}
	return Nothing[S]()
}

// Do calls f with the wrapped value, if there is one.
func Do[T any](x Maybe[T], f func(T)) {
	if x == nil {
		return
	}
	if v, ok := x.Get(); ok {
		f(v)
	}
}

// --- Matching --------------------------------------------------------------

// Matcher is returned by Match and is meant to be used in switch statements.
type Matcher[T any] interface {
	Just(*T) Matcher[T]
	Nothing() Matcher[T]
}

type matcher[T any] struct {
	m maybe[T]
}

func (mm matcher[T]) Just(v *T) Matcher[T] {
	if mm.m.tag {
		*v = mm.m.value
		return mm
	}
	return nil
}

func (mm matcher[T]) Nothing() Matcher[T] {
	if !mm.m.tag {
		return mm
	}
	return nil
}
