package tag

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachMoveDetachScenario(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wff.tag")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	root := New("html", nil)
	so := root.SharedObject()
	rec := listen(root)
	c1 := New("div", nil)
	require.NoError(t, root.AppendChild(c1))
	assert.Equal(t, "S0", c1.ID())
	assert.Equal(t, []string{"append html S0"}, rec.events)
	assert.Equal(t, 1, so.IndexSize())
	//
	c2 := New("span", nil)
	require.NoError(t, c1.AppendChild(c2))
	assert.Equal(t, "S1", c2.ID())
	assert.Equal(t, 2, so.IndexSize())
	//
	rec.reset()
	require.NoError(t, root.AppendChild(c2))
	assert.Equal(t, []string{"move S1 div->html"}, rec.events)
	assert.Equal(t, "S1", c2.ID())
	assert.Equal(t, 2, so.IndexSize())
	assert.Equal(t, root, c2.Parent())
	//
	rec.reset()
	assert.True(t, root.RemoveChild(c1))
	assert.Equal(t, []string{"remove html S0"}, rec.events)
	assert.Equal(t, 1, so.IndexSize())
	assert.Equal(t, "", c1.ID())
	assert.NotSame(t, so, c1.SharedObject())
	_, found := so.TagByID("S0")
	assert.False(t, found)
	x, found := so.TagByID("S1")
	assert.True(t, found)
	assert.Same(t, c2, x)
	t.Logf("\n%s", Dump(root))
}

func TestBatchAppendDecidesPerEntry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wff.tag")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	root := New("body", nil)
	a := New("div", root)
	b := New("div", a)
	rec := listen(root)
	fresh := New("p", nil)
	require.NoError(t, root.AppendChildren(b, fresh))
	assert.Equal(t, []string{"batch move:S1,append:S2"}, rec.events)
	rec.reset()
	require.NoError(t, a.AppendChildren(New("i", nil), New("i", nil)))
	assert.Equal(t, []string{"append-all div S3,S4"}, rec.events)
}

func TestAppendRejectsCycles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wff.tag")
	defer teardown()
	//
	root := New("div", nil)
	child := New("div", root)
	grandchild := New("div", child)
	assert.ErrorIs(t, grandchild.AppendChild(root), ErrCycle)
	assert.ErrorIs(t, child.AppendChild(child), ErrCycle)
	assert.ErrorIs(t, root.AppendChild(nil), ErrNilTag)
	assert.ErrorIs(t, child.AppendChildren(New("p", nil), root), ErrCycle)
	assert.Equal(t, 0, grandchild.ChildCount(), "failed batch must not attach anything")
	assert.ErrorIs(t, NewText("x", nil).AppendChild(New("p", nil)), ErrTextNode)
}

func TestMigrationAcrossHierarchies(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wff.tag")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	left, right := New("div", nil), New("div", nil)
	l1 := New("ul", left)
	li := New("li", l1)
	New("a", li)
	r1 := New("ol", right)
	recL, recR := listen(left), listen(right)
	assert.Equal(t, 3, left.SharedObject().IndexSize())
	require.NoError(t, r1.AppendChild(li))
	assert.Equal(t, []string{"remove ul S1"}, recL.events)
	assert.Equal(t, []string{"append ol S1"}, recR.events)
	assert.Equal(t, 1, left.SharedObject().IndexSize())
	assert.Equal(t, 3, right.SharedObject().IndexSize())
	for _, x := range append([]*Tag{li}, li.Children()...) {
		assert.Same(t, right.SharedObject(), x.SharedObject())
	}
}

func TestInsertBeforeAndAfter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wff.tag")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	root := New("ul", nil)
	a, b := New("li", root), New("li", root)
	rec := listen(root)
	x, y := New("li", nil), New("li", nil)
	require.NoError(t, b.InsertBefore(x, y))
	assert.Equal(t, []*Tag{a, x, y, b}, root.Children())
	assert.Equal(t, []string{"insert-before S1 S2,S3"}, rec.events)
	z := New("li", nil)
	require.NoError(t, a.InsertAfter(z))
	assert.Equal(t, []*Tag{a, z, x, y, b}, root.Children())
	rec.reset()
	require.NoError(t, b.InsertBefore(a))
	assert.Equal(t, []*Tag{z, x, y, a, b}, root.Children())
	assert.Equal(t, []string{"insert-before S1 S0"}, rec.events)
	assert.ErrorIs(t, root.InsertBefore(New("li", nil)), ErrNoParent)
	assert.ErrorIs(t, b.InsertAfter(b), ErrSelfInsert)
	assert.Equal(t, 5, root.SharedObject().IndexSize())
}

func TestRemoveVariants(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wff.tag")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	root := New("ul", nil)
	items := []*Tag{New("li", root), New("li", root), New("li", root)}
	New("b", items[2])
	rec := listen(root)
	assert.False(t, root.RemoveChild(New("li", nil)))
	assert.True(t, root.RemoveChildren(items[0], New("li", nil)))
	assert.Equal(t, []string{"remove-some ul S0"}, rec.events)
	rec.reset()
	root.RemoveAllChildren()
	assert.Equal(t, []string{"remove-all ul S1,S2"}, rec.events)
	assert.Equal(t, 0, root.SharedObject().IndexSize())
	root.RemoveAllChildren()
	assert.Len(t, rec.events, 1, "removing no children fires nothing")
}

func TestInnerHTML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wff.tag")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	root := New("body", nil)
	div := New("div", root)
	New("p", div)
	rec := listen(root)
	require.NoError(t, div.SetInnerHTML(DefaultRegistry(), "<i>a</i><i>b</i>"))
	assert.Equal(t, []string{"inner div S2,S3"}, rec.events)
	assert.Equal(t, 3, root.SharedObject().IndexSize())
	assert.Equal(t, `<div data-wff-id="S0"><i data-wff-id="S2">a</i><i data-wff-id="S3">b</i></div>`, div.HTML())
}

// collectIDs returns the identifiers of all element tags below root.
func collectIDs(t *testing.T, root *Tag) []string {
	var ids []string
	var walk func(*Tag)
	walk = func(x *Tag) {
		for _, ch := range x.Children() {
			if !ch.IsText() {
				if ch.ID() == "" {
					t.Errorf("attached tag %v has no identifier", ch)
				}
				ids = append(ids, ch.ID())
			}
			walk(ch)
		}
	}
	walk(root)
	sort.Strings(ids)
	return ids
}

func TestIndexFollowsTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wff.tag")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	rnd := rand.New(rand.NewSource(7))
	root := New("div", nil)
	so := root.SharedObject()
	pool := []*Tag{root}
	for step := 0; step < 500; step++ {
		target := pool[rnd.Intn(len(pool))]
		switch rnd.Intn(4) {
		case 0, 1:
			x := New("span", nil)
			if rnd.Intn(3) == 0 {
				NewText("t", x)
			}
			_ = target.AppendChild(x)
			pool = append(pool, x)
		case 2:
			// root stays the root of the hierarchy under test
			if len(pool) > 1 {
				_ = target.AppendChild(pool[1+rnd.Intn(len(pool)-1)])
			}
		case 3:
			if p := target.Parent(); p != nil {
				p.RemoveChild(target)
			}
		}
		if root.Parent() != nil || root.SharedObject() != so {
			t.Fatalf("step %d: root left its hierarchy", step)
		}
		ids := collectIDs(t, root)
		indexed := so.IDs()
		sort.Strings(indexed)
		if !assert.Equal(t, ids, indexed, "step %d", step) {
			t.FailNow()
		}
		for _, id := range indexed {
			x, _ := so.TagByID(id)
			if x.ID() != id || x.SharedObject() != so {
				t.Fatalf("step %d: index entry %s points to %v", step, id, x)
			}
		}
	}
}
