/*
Package page keeps a server-side tag tree in sync with a browser.

A Page renders its tag tree once, embedding a bootstrap script which opens a
WebSocket back to the server. From then on every mutation of the tree is
encoded as a binary message and pushed to the browser, and events raised in
the browser are dispatched to server methods of event attributes.

Messages are pushed from within the listeners of the tree, while the
hierarchy lock is held. The browser therefore observes mutations in the
order they were applied.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package page

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'wff.page'.
func tracer() tracing.Trace {
	return tracing.Select("wff.page")
}
