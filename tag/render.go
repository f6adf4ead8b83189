package tag

import (
	"bytes"
	"io"

	"golang.org/x/net/html"
)

// Elements without end tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// Elements whose text content is written unescaped.
var rawTextElements = map[string]bool{
	"script": true, "style": true,
}

// Elements whose content is text only.
var rcdataElements = map[string]bool{
	"title": true, "textarea": true,
}

// Comments keeping text nodes apart in the browser. A browser merges
// adjacent text nodes when parsing and drops empty ones, but the client
// addresses text nodes by their position. The client script skips comments
// when counting and turns the empty text marker into an empty text node.
const (
	textSeparator   = "<!---->"
	emptyTextMarker = "wff"
)

// HTML renders the subtree at t, including data-wff-id attributes.
func (t *Tag) HTML() string {
	var buf bytes.Buffer
	t.WriteTo(&buf)
	return buf.String()
}

// WriteTo renders the subtree at t to w while holding the read lock of the
// hierarchy.
func (t *Tag) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	unlock := rlockTag(t)
	t.renderLocked(&buf, false)
	unlock()
	return buf.WriteTo(w)
}

func (t *Tag) renderLocked(buf *bytes.Buffer, raw bool) {
	if t.IsText() {
		if raw {
			buf.WriteString(t.text)
		} else {
			buf.WriteString(html.EscapeString(t.text))
		}
		return
	}
	buf.WriteByte('<')
	buf.WriteString(t.name)
	for _, a := range t.attrs {
		writeAttribute(buf, a.name, a.Value())
	}
	if id := t.ID(); id != "" {
		writeAttribute(buf, DataWffID, id)
	}
	buf.WriteByte('>')
	if voidElements[t.name] {
		return
	}
	raw = rawTextElements[t.name]
	separate := !raw && !rcdataElements[t.name]
	afterText := false
	for _, ch := range t.children() {
		if separate && ch.IsText() {
			if ch.text == "" {
				buf.WriteString("<!--" + emptyTextMarker + "-->")
				afterText = false
				continue
			}
			if afterText {
				buf.WriteString(textSeparator)
			}
		}
		afterText = ch.IsText()
		ch.renderLocked(buf, raw)
	}
	buf.WriteString("</")
	buf.WriteString(t.name)
	buf.WriteByte('>')
}

func writeAttribute(buf *bytes.Buffer, name, value string) {
	buf.WriteByte(' ')
	buf.WriteString(name)
	if value == "" {
		return
	}
	buf.WriteString(`="`)
	buf.WriteString(html.EscapeString(value))
	buf.WriteByte('"')
}
