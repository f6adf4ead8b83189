package page

import (
	"time"

	"github.com/webfirmframework/wff-sub006/tag"
)

// InstanceParam is the query parameter carrying the instance id of a page.
const InstanceParam = "wffInstanceId"

// Settings configure a page.
type Settings struct {
	// WebSocketURL is the URL the bootstrap script connects to. The instance
	// id of the page is appended as query parameter.
	WebSocketURL string
	// PushQueueEnabled keeps messages the sink failed to deliver and
	// retries them before the next message.
	PushQueueEnabled bool
	// Registry compresses tag names on the wire. It must know the same names
	// as the client script.
	Registry *tag.Registry
	// WriteTimeout bounds a single WebSocket write.
	WriteTimeout time.Duration
}

// DefaultSettings returns settings for a WebSocket at "/wffws".
func DefaultSettings() Settings {
	return Settings{
		WebSocketURL:     "/wffws",
		PushQueueEnabled: true,
		Registry:         tag.DefaultRegistry(),
		WriteTimeout:     10 * time.Second,
	}
}
