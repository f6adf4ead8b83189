/*
Package tag implements a server-side HTML tag tree which can be kept in sync
with a browser.

Tags form hierarchies. All tags of one hierarchy share one SharedObject,
which holds

  - a read/write lock guarding every structural change of the hierarchy,
  - the allocator and index of tag identifiers (attribute data-wff-id),
  - listener slots notified synchronously of every mutation,
  - arbitrary shared data of the application.

A tag created without a parent starts a hierarchy of its own. Appending it
to a tag of another hierarchy migrates the whole subtree, detaching a
subtree gives it a fresh SharedObject.

Mutations hold the write lock of the hierarchy for the change, the index
bookkeeping and the listener dispatch. Compound operations like ReplaceWith
are single critical sections; the lock is never re-acquired by its holder.
Listeners run while the write lock is held and therefore must not call
locking methods of tags. They read the tree through the lock-free accessors
(TagName, ID, Text) and the data carried by the events.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tag

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'wff.tag'.
func tracer() tracing.Trace {
	return tracing.Select("wff.tag")
}
