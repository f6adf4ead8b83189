/*
Package style provides value objects for the style and class attributes of
tags.

A Style or ClassList wraps an attribute. Every change is written through to
the attribute, so all tags carrying it are updated and the listeners of
their hierarchies are notified.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package style

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'wff.style'.
func tracer() tracing.Trace {
	return tracing.Select("wff.style")
}

// Errors returned for values which cannot be applied.
var (
	ErrInvalidDeclaration = errors.New("style: invalid declaration")
	ErrInvalidClass       = errors.New("style: invalid class name")
)
