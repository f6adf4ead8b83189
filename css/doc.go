/*
Package css provides value types for CSS properties set from the server.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package css

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'wff.css'.
func tracer() tracing.Trace {
	return tracing.Select("wff.css")
}
