/*
Package wire implements the binary message format spoken between a server-side
tag tree and the browser client.

A message is an ordered list of NameValue records. Every variable-length field
is preceded by a tagged length: one tag byte (1, 2, 3 or 4) telling the width
of the big-endian length that follows. Small fields therefore cost two bytes
of framing. The number of values of a record is encoded the same way.

	record := name-len-tag name-len name count-tag count { len-tag len bytes }

The first record of every message is a task record, see type Task.

Identifiers of tags travel as a prefix byte ('S' for server-assigned,
'C' for client-assigned) followed by an optimized integer.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package wire

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'wff.wire'.
func tracer() tracing.Trace {
	return tracing.Select("wff.wire")
}
