/*
Package tree implements a generic tree of mutable nodes.

Every node carries a payload of type T, holds a back-pointer to its parent
(which does not own it) and an ordered slice of children. Callers which need
to move subtrees around are expected to serialize structural changes on a
lock of their own; the children slices are concurrency-safe by themselves,
but a sequence of changes is not atomic.

Traversals are synchronous and run on the caller's goroutine. This keeps them
usable from within a critical section guarding the whole tree.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'wff.tree'.
func tracer() tracing.Trace {
	return tracing.Select("wff.tree")
}
