package tag

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webfirmframework/wff-sub006/internal/access"
)

func TestReplaceWithIsOneCriticalSection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wff.tag")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	root := New("div", nil)
	old := New("p", root)
	rec := listen(root)
	fresh := New("span", nil)
	require.NoError(t, old.ReplaceWith(fresh))
	assert.Equal(t, []string{"insert-before S0 S1", "remove div S0"}, rec.events)
	assert.Equal(t, []bool{true, true}, rec.locked)
	assert.False(t, root.SharedObject().WriteLocked())
	assert.Equal(t, "", old.ID())
	assert.Equal(t, []*Tag{fresh}, root.Children())
	assert.ErrorIs(t, root.ReplaceWith(fresh), ErrNoParent)
}

func TestConcurrentMovesAndValueChanges(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wff.tag")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	left, right := New("div", nil), New("div", nil)
	class := NewAttribute("class", "c0")
	wanderer := New("p", left, class)
	New("p", right, class)
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 300; i++ {
			if i%2 == 0 {
				_ = right.AppendChild(wanderer)
			} else {
				_ = left.AppendChild(wanderer)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 300; i++ {
			_ = class.SetValue("c" + string(rune('a'+i%26)))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 300; i++ {
			_ = left.HTML()
			_ = right.Children()
		}
	}()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatalf("expected concurrent mutations to finish, they seem to deadlock")
	}
	assert.Same(t, left, wanderer.Parent())
	assert.Len(t, class.Owners(), 2)
	assert.Equal(t, 1, left.SharedObject().IndexSize())
	assert.Equal(t, 1, right.SharedObject().IndexSize())
}

func TestListenerAccessIsRestricted(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wff.tag")
	defer teardown()
	//
	so := New("div", nil).SharedObject()
	var zero access.Token
	assertDenied := func(f func()) {
		defer func() {
			r := recover()
			err, ok := r.(error)
			if !ok || !errors.Is(err, access.ErrDenied) {
				t.Errorf("expected access to be denied, recovered %v", r)
			}
		}()
		f()
	}
	assertDenied(func() { so.SetChildAppendListener(access.TagToken(), nil) })
	assertDenied(func() { so.SetInsertAfterListener(zero, nil) })
	assertDenied(func() { so.ChildRemoveListener(access.PageToken()) })
	assertDenied(func() { so.SetPushListenerActive(access.AttributeToken(), true) })
	assertDenied(func() { AssignIDs(access.TagToken(), so.Root()) })
	assert.True(t, so.ChildRemoveListener(access.TagToken()).IsNothing())
	rec := listen(so.Root())
	l, ok := so.AttributeAddListener(access.AttributeToken()).Get()
	assert.True(t, ok)
	assert.Equal(t, rec, l)
	so.SetAttributeAddListener(access.PageToken(), nil)
	assert.True(t, so.AttributeAddListener(access.TagToken()).IsNothing())
}

func TestAssignIDsAndSharedData(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wff.tag")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	root := New("html", nil)
	body := New("body", root)
	NewText("x", body)
	so := root.SharedObject()
	assert.Equal(t, "", root.ID())
	AssignIDs(access.PageToken(), root)
	assert.Equal(t, "S1", root.ID())
	assert.Equal(t, "S0", body.ID())
	assert.Equal(t, 2, so.IndexSize())
	AssignIDs(access.PageToken(), root)
	assert.Equal(t, 2, so.IndexSize())
	assert.Same(t, root, so.Root())
	//
	assert.Nil(t, so.SharedData())
	assert.True(t, so.SetSharedDataIfAbsent("page-1"))
	assert.False(t, so.SetSharedDataIfAbsent("page-2"))
	assert.Equal(t, "page-1", so.SharedData())
	so.SetSharedData(nil)
	assert.Nil(t, so.SharedData())
	assert.False(t, so.SetSharedDataIfAbsent("page-3"), "explicit nil counts as set")
}
