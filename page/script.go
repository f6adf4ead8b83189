package page

import (
	_ "embed"
)

// clientScript is the browser side of the protocol. It decodes pushed
// messages into DOM changes and sends events of event attributes.
//
//go:embed wff.js
var clientScript string
