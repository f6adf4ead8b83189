package page

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/webfirmframework/wff-sub006/internal/access"
	"github.com/webfirmframework/wff-sub006/tag"
	"github.com/webfirmframework/wff-sub006/wire"
)

// Renderer builds the tag tree of a page. Render is called once, when the
// page is rendered for the first time.
type Renderer interface {
	Render() *tag.Tag
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func() *tag.Tag

// Render calls f.
func (f RenderFunc) Render() *tag.Tag {
	return f()
}

// Page is a tag tree kept in sync with one browser page.
type Page struct {
	renderer   Renderer
	settings   Settings
	instanceID string
	token      access.Token
	renderMu   sync.Mutex // serializes the first render
	root       *tag.Tag   // set once rendered
	queue      pushQueue
	idleSince  atomic.Int64 // unix nanoseconds without sink, 0 while connected
}

// New creates a page. The tag tree is built on the first call of HTML,
// WriteTo or Root.
func New(renderer Renderer, settings Settings) *Page {
	if settings.Registry == nil {
		settings.Registry = tag.DefaultRegistry()
	}
	p := &Page{
		renderer:   renderer,
		settings:   settings,
		instanceID: uuid.NewString(),
		token:      access.PageToken(),
	}
	p.queue.enabled = settings.PushQueueEnabled
	p.idleSince.Store(time.Now().UnixNano())
	return p
}

// InstanceID identifies the page. The bootstrap script passes it back when
// connecting.
func (p *Page) InstanceID() string {
	return p.instanceID
}

// Settings returns the settings the page was created with.
func (p *Page) Settings() Settings {
	return p.settings
}

// Root returns the root of the tag tree, rendering the page if needed.
func (p *Page) Root() *tag.Tag {
	return p.render()
}

// HTML renders the page.
func (p *Page) HTML() string {
	var buf bytes.Buffer
	p.WriteTo(&buf)
	return buf.String()
}

// WriteTo writes the HTML of the page to w.
func (p *Page) WriteTo(w io.Writer) (int64, error) {
	return p.render().WriteTo(w)
}

func (p *Page) rendered() *tag.Tag {
	p.renderMu.Lock()
	defer p.renderMu.Unlock()
	return p.root
}

// render builds the tag tree on its first call. Later calls return the same
// tree and discard messages queued for a previous browser page.
func (p *Page) render() *tag.Tag {
	p.renderMu.Lock()
	defer p.renderMu.Unlock()
	if p.root != nil {
		p.queue.clear()
		return p.root
	}
	root := p.renderer.Render()
	if root == nil {
		tracer().Errorf("page %s: renderer returned no tag, using an empty document", p.instanceID)
		root = tag.New("html", nil)
	}
	so := root.SharedObject()
	if !so.SetSharedDataIfAbsent(p) {
		tracer().Errorf("page %s: tag tree already carries shared data %v", p.instanceID, so.SharedData())
	}
	tag.AssignIDs(p.token, root)
	p.embedScript(root)
	p.listen(so)
	so.SetPushListenerActive(p.token, p.queue.hasSink())
	p.root = root
	tracer().Debugf("page %s rendered with %d tags", p.instanceID, so.IndexSize())
	return root
}

// embedScript appends the bootstrap script to the body, or to root if
// there is no body. Listeners are not registered yet, so this is not
// pushed.
func (p *Page) embedScript(root *tag.Tag) {
	parent, err := tag.Query(root, "body")
	if err != nil || parent == nil {
		parent = root
	}
	script := tag.New("script", nil, tag.NewAttribute("type", "text/javascript"))
	tag.NewText(p.bootstrap(), script)
	if err := parent.AppendChild(script); err != nil {
		tracer().Errorf("page %s: cannot embed script: %v", p.instanceID, err)
	}
}

// WebSocketURL returns the URL of the WebSocket including the instance id.
func (p *Page) WebSocketURL() string {
	sep := "?"
	if strings.Contains(p.settings.WebSocketURL, "?") {
		sep = "&"
	}
	return p.settings.WebSocketURL + sep + InstanceParam + "=" + p.instanceID
}

func (p *Page) bootstrap() string {
	names, _ := json.Marshal(p.settings.Registry.Names())
	return fmt.Sprintf("%s\nwff.init(%s,%s);", clientScript, strconv.Quote(p.WebSocketURL()), names)
}

// --- Pushing ---------------------------------------------------------------

// SetPushSink attaches the transport of the browser page. Queued messages
// are flushed to it.
func (p *Page) SetPushSink(sink PushSink) {
	p.queue.attach(sink)
	p.idleSince.Store(0)
	if root := p.rendered(); root != nil {
		root.SharedObject().SetPushListenerActive(p.token, true)
	}
}

// RemovePushSink detaches sink if it is the current one. It reports whether
// sink was detached.
func (p *Page) RemovePushSink(sink PushSink) bool {
	if !p.queue.detach(sink) {
		return false
	}
	p.disconnected()
	return true
}

// closeSink detaches and closes the current sink.
func (p *Page) closeSink() {
	p.queue.close()
	p.disconnected()
}

func (p *Page) disconnected() {
	p.idleSince.Store(time.Now().UnixNano())
	if root := p.rendered(); root != nil {
		root.SharedObject().SetPushListenerActive(p.token, false)
	}
}

// idle returns how long the page has been without sink at time now.
func (p *Page) idle(now time.Time) time.Duration {
	since := p.idleSince.Load()
	if since == 0 {
		return 0
	}
	return now.Sub(time.Unix(0, since))
}

func (p *Page) push(task wire.Task, records ...wire.NameValue) {
	p.queue.push(wire.Message(task, records...))
}

// ExecuteJS runs js in the browser.
func (p *Page) ExecuteJS(js string) {
	p.push(wire.ExecuteJS, wire.NV([]byte(js)))
}

// Reload reloads the browser page. With fromCache set the browser may
// serve the page from its cache.
func (p *Page) Reload(fromCache bool) {
	if fromCache {
		p.push(wire.ReloadBrowserFromCache)
		return
	}
	p.push(wire.ReloadBrowser)
}
