package page

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webfirmframework/wff-sub006/tag"
	"github.com/webfirmframework/wff-sub006/wire"
)

func TestRenderOnce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wff.page")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	calls := 0
	render, _ := testDocument()
	settings := DefaultSettings()
	settings.WebSocketURL = "/ws?app=demo"
	p := New(RenderFunc(func() *tag.Tag {
		calls++
		return render()
	}), settings)
	sink := &recordingSink{}
	p.SetPushSink(sink)
	html := p.HTML()
	assert.Equal(t, 1, calls)
	assert.True(t, strings.HasPrefix(html, `<html data-wff-id="S2"><body data-wff-id="S0"><div id="main" data-wff-id="S1"></div><script type="text/javascript" data-wff-id="S3">`), html)
	assert.Contains(t, html, `wff.init("/ws?app=demo&wffInstanceId=`+p.InstanceID()+`"`)
	assert.True(t, strings.HasSuffix(html, "</script></body></html>"))
	assert.Empty(t, sink.tasks(t), "rendering pushes nothing")
	//
	assert.Equal(t, html, p.HTML())
	assert.Equal(t, 1, calls)
	assert.Same(t, p.Root(), p.Root())
	so := p.Root().SharedObject()
	assert.Same(t, p, so.SharedData())
	assert.True(t, so.PushListenerActive())
	assert.Equal(t, 4, so.IndexSize())
}

func TestScriptWithoutBody(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wff.page")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	p := New(RenderFunc(func() *tag.Tag { return tag.New("div", nil) }), DefaultSettings())
	html := p.HTML()
	assert.True(t, strings.HasPrefix(html, `<div data-wff-id="S0"><script`), html)
	assert.Contains(t, html, "?wffInstanceId="+p.InstanceID())
	assert.Equal(t, p.settings.WebSocketURL+"?wffInstanceId="+p.InstanceID(), p.WebSocketURL())
	empty := New(RenderFunc(func() *tag.Tag { return nil }), Settings{})
	assert.True(t, strings.HasPrefix(empty.HTML(), "<html"))
}

func TestListenersPushMutations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wff.page")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	render, main := testDocument()
	p := New(render, DefaultSettings())
	p.HTML()
	sink := &recordingSink{}
	p.SetPushSink(sink)
	div := main()
	body := div.Parent()
	//
	para := tag.New("p", div) // S4
	records := sink.records(t, 0)
	require.Len(t, records, 1)
	assert.Equal(t, id("S1"), records[0].Name)
	assert.Equal(t, name("div"), records[0].Values[0])
	sub, err := wire.Decode(records[0].Values[1])
	require.NoError(t, err)
	expected := wire.NV([]byte{}, []byte{0, 12}, []byte("data-wff-id=S4"))
	assert.True(t, expected.Equal(sub[0]), "subtree is %v", sub)
	//
	require.NoError(t, body.AppendChild(para))
	records = sink.records(t, 1)
	assert.True(t, wire.NV(id("S0"), name("body"), id("S4"), name("p")).Equal(records[0]), "%v", records)
	//
	assert.True(t, body.RemoveChild(para))
	records = sink.records(t, 2)
	assert.True(t, wire.NV(id("S4"), name("p")).Equal(records[0]), "%v", records)
	//
	class := tag.NewAttribute("class", "a")
	require.NoError(t, div.AddAttributes(class))
	require.NoError(t, class.SetValue("b"))
	assert.True(t, div.RemoveAttributes("class"))
	records = sink.records(t, 3)
	assert.True(t, wire.NV(wire.ManyToOne.Byte(), name("div"), id("S1"), []byte("class=a")).Equal(records[0]), "%v", records)
	records = sink.records(t, 4)
	assert.True(t, wire.NV([]byte("class=b"), id("S1")).Equal(records[0]), "%v", records)
	records = sink.records(t, 5)
	assert.True(t, wire.NV(wire.ManyToOne.Byte(), name("div"), id("S1"), []byte("class")).Equal(records[0]), "%v", records)
	//
	assert.Equal(t, []wire.Task{
		wire.AppendedChildTag, wire.MovedChildrenTags, wire.RemovedTags,
		wire.AddedAttributes, wire.AttributeUpdated, wire.RemovedAttributes,
	}, sink.tasks(t))
}

func TestListenersPushInsertions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wff.page")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	render, main := testDocument()
	p := New(render, DefaultSettings())
	p.HTML()
	sink := &recordingSink{}
	p.SetPushSink(sink)
	div := main()
	//
	span := tag.New("span", nil)
	require.NoError(t, div.InsertBefore(span)) // span S4
	records := sink.records(t, 0)
	require.Len(t, records, 2)
	assert.True(t, wire.NV(id("S0"), name("body"), id("S1"), name("div")).Equal(records[0]), "%v", records)
	assert.Equal(t, id("S4"), records[1].Name)
	//
	require.NoError(t, div.InsertAfter(span))
	records = sink.records(t, 1)
	assert.True(t, wire.NV(id("S4"), name("span"), []byte{1}).Equal(records[1]), "moved tags are sent by id")
	//
	require.NoError(t, div.SetInnerHTML(nil, "<b>x</b>")) // b S5
	records = sink.records(t, 2)
	require.Len(t, records, 2)
	assert.True(t, wire.NV(id("S1"), name("div")).Equal(records[0]))
	assert.Equal(t, id("S5"), records[1].Name)
	//
	div.RemoveAllChildren()
	records = sink.records(t, 3)
	assert.True(t, wire.NV(id("S1"), name("div")).Equal(records[0]))
	//
	require.NoError(t, div.AppendChildren(tag.New("i", nil), span))
	records = sink.records(t, 4)
	require.Len(t, records, 2)
	assert.Len(t, records[0].Values, 4, "appended entry carries its subtree")
	assert.Len(t, records[1].Values, 3, "moved entry is sent by id")
	assert.Equal(t, []wire.Task{
		wire.InsertedBeforeTag, wire.InsertedAfterTag, wire.AddedInnerHTML,
		wire.RemovedAllChildrenTags, wire.MovedChildrenTags,
	}, sink.tasks(t))
}

func TestTextNodesAreSentByPosition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wff.page")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	render, main := testDocument()
	p := New(render, DefaultSettings())
	p.HTML()
	sink := &recordingSink{}
	p.SetPushSink(sink)
	div := main()
	body := div.Parent()
	none := []byte{}
	a := tag.NewText("a", div)
	b := tag.New("b", div) // S4
	c := tag.NewText("c", div)
	//
	require.NoError(t, body.AppendChild(c)) // body: div, script, c
	records := sink.records(t, 3)
	expected := wire.NV(id("S0"), name("body"), none, none, []byte{1}, id("S1"), []byte{2})
	assert.True(t, expected.Equal(records[0]), "moved text is %v", records)
	//
	require.NoError(t, a.InsertBefore(tag.New("i", nil))) // div: i S5, a, b
	records = sink.records(t, 4)
	assert.True(t, wire.NV(id("S1"), name("div"), none, none, []byte{0}).Equal(records[0]), "%v", records)
	assert.Equal(t, id("S5"), records[1].Name)
	//
	require.NoError(t, b.InsertAfter(c)) // div: i, a, b, c
	records = sink.records(t, 5)
	assert.True(t, wire.NV(id("S1"), name("div"), id("S4"), name("b")).Equal(records[0]), "%v", records)
	assert.True(t, wire.NV(none, none, []byte{1}, id("S0"), []byte{2}).Equal(records[1]), "%v", records)
	//
	assert.True(t, div.RemoveChild(a)) // div: i, b, c
	records = sink.records(t, 6)
	assert.True(t, wire.NV(none, none, id("S1"), []byte{1}).Equal(records[0]), "removed text is %v", records)
	//
	require.NoError(t, c.ReplaceWith(tag.New("span", nil))) // div: i, b, span S6
	records = sink.records(t, 7)
	assert.True(t, wire.NV(id("S1"), name("div"), none, none, []byte{2}).Equal(records[0]), "%v", records)
	assert.Equal(t, id("S6"), records[1].Name)
	records = sink.records(t, 8)
	assert.True(t, wire.NV(none, none, id("S1"), []byte{3}).Equal(records[0]), "%v", records)
	//
	x := tag.NewText("x", body) // body: div, script, x
	require.NoError(t, div.AddInnerHTML(b, x))
	records = sink.records(t, 10)
	require.Len(t, records, 3)
	assert.True(t, wire.NV(id("S4"), name("b"), []byte{1}).Equal(records[1]), "%v", records)
	assert.True(t, wire.NV(none, none, []byte{1}, id("S0"), []byte{2}).Equal(records[2]), "%v", records)
	//
	require.NoError(t, div.AddInnerHTML(x))
	records = sink.records(t, 11)
	require.Len(t, records, 2)
	require.Len(t, records[1].Values, 2, "text kept in its parent is sent as new")
	sub, err := wire.Decode(records[1].Values[1])
	require.NoError(t, err)
	assert.True(t, wire.NV(none, none, []byte("x")).Equal(sub[0]), "subtree is %v", sub)
	//
	assert.Equal(t, []wire.Task{
		wire.AppendedChildTag, wire.AppendedChildTag, wire.AppendedChildTag,
		wire.MovedChildrenTags, wire.InsertedBeforeTag, wire.InsertedAfterTag,
		wire.RemovedTags, wire.InsertedBeforeTag, wire.RemovedTags,
		wire.AppendedChildTag, wire.AddedInnerHTML, wire.AddedInnerHTML,
	}, sink.tasks(t))
}

func TestPushQueue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wff.page")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	render, _ := testDocument()
	p := New(render, DefaultSettings())
	p.ExecuteJS("dropped()")
	assert.Equal(t, 0, p.queue.size(), "without sink messages are dropped")
	sink := &recordingSink{fail: true}
	p.SetPushSink(sink)
	p.ExecuteJS("first()")
	p.Reload(false)
	assert.Equal(t, 2, p.queue.size())
	sink.setFail(false)
	p.Reload(true)
	assert.Equal(t, []wire.Task{wire.ExecuteJS, wire.ReloadBrowser, wire.ReloadBrowserFromCache}, sink.tasks(t))
	assert.Equal(t, []byte("first()"), sink.records(t, 0)[0].Name)
	assert.Equal(t, 0, p.queue.size())
	//
	sink.setFail(true)
	p.ExecuteJS("stale()")
	p.HTML()
	p.HTML()
	assert.Equal(t, 0, p.queue.size(), "rendering again discards queued messages")
	assert.False(t, p.RemovePushSink(&recordingSink{}))
	assert.True(t, p.RemovePushSink(sink))
	assert.False(t, p.Root().SharedObject().PushListenerActive())
}

func TestPushQueueDisabled(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wff.page")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	settings := DefaultSettings()
	settings.PushQueueEnabled = false
	render, _ := testDocument()
	p := New(render, settings)
	sink := &recordingSink{fail: true}
	p.SetPushSink(sink)
	p.ExecuteJS("lost()")
	assert.Equal(t, 0, p.queue.size())
	sink.setFail(false)
	p.ExecuteJS("kept()")
	require.Len(t, sink.tasks(t), 1)
	assert.Equal(t, []byte("kept()"), sink.records(t, 0)[0].Name)
}

func TestContext(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wff.page")
	defer teardown()
	//
	ctx := NewContext()
	render, _ := testDocument()
	p1, p2 := New(render, DefaultSettings()), New(render, DefaultSettings())
	assert.NotEqual(t, p1.InstanceID(), p2.InstanceID())
	ctx.Add(p1)
	ctx.Add(p2)
	assert.Equal(t, 2, ctx.Len())
	p, ok := ctx.Page(p2.InstanceID())
	assert.True(t, ok)
	assert.Same(t, p2, p)
	assert.True(t, ctx.Remove(p1.InstanceID()))
	assert.False(t, ctx.Remove(p1.InstanceID()))
	_, ok = ctx.Page(p1.InstanceID())
	assert.False(t, ok)
	assert.Equal(t, 1, ctx.Len())
}

func TestContextExpiresIdlePages(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wff.page")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	ctx := NewContext()
	render, _ := testDocument()
	never, connected := New(render, DefaultSettings()), New(render, DefaultSettings())
	ctx.Add(never)
	ctx.Add(connected)
	connected.HTML()
	sink := &recordingSink{}
	connected.SetPushSink(sink)
	assert.Equal(t, 1, ctx.expire(time.Now().Add(time.Minute), 30*time.Second))
	_, ok := ctx.Page(never.InstanceID())
	assert.False(t, ok, "a page which never connected expires")
	_, ok = ctx.Page(connected.InstanceID())
	assert.True(t, ok, "a connected page stays")
	//
	assert.True(t, connected.RemovePushSink(sink))
	assert.False(t, connected.rendered().SharedObject().PushListenerActive())
	assert.Equal(t, 0, ctx.expire(time.Now(), time.Minute))
	assert.Equal(t, 1, ctx.expire(time.Now().Add(2*time.Minute), time.Minute))
	assert.Equal(t, 0, ctx.Len())
	//
	ctx.Add(New(render, DefaultSettings()))
	cctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ctx.Run(cctx, time.Millisecond, 0)
	assert.Eventually(t, func() bool { return ctx.Len() == 0 }, 5*time.Second, time.Millisecond)
}
