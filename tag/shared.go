package tag

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/oklog/ulid/v2"
	"github.com/webfirmframework/wff-sub006/internal/access"
	"github.com/webfirmframework/wff-sub006/tree"
)

// SharedObject is shared by all tags of one hierarchy. It is created
// together with the root tag of a hierarchy.
type SharedObject struct {
	oid   ulid.ULID // identity, defines the locking order
	lock  hierarchyLock
	ids   *idAllocator
	index sync.Map // identifier → *Tag
	size  atomic.Int64
	root  atomic.Pointer[Tag]
	data  atomic.Pointer[sharedData]

	pushActive atomic.Bool
	lmu        sync.RWMutex // guards listener slots
	listeners  listenerSlots
}

type sharedData struct {
	v any
}

func newSharedObject(root *Tag) *SharedObject {
	so := &SharedObject{
		oid:       ulid.Make(),
		ids:       newIDAllocator(),
		listeners: emptySlots(),
	}
	so.root.Store(root)
	return so
}

func (so *SharedObject) String() string {
	return fmt.Sprintf("shared[%s #ids=%d]", so.oid, so.IndexSize())
}

// ID identifies the hierarchy.
func (so *SharedObject) ID() ulid.ULID {
	return so.oid
}

// Root returns the tag the hierarchy was created for.
func (so *SharedObject) Root() *Tag {
	return so.root.Load()
}

// WriteLocked is true while a goroutine holds the write lock of the hierarchy.
func (so *SharedObject) WriteLocked() bool {
	return so.lock.held.Load()
}

// TagByID looks up an attached tag. It does not lock the hierarchy.
func (so *SharedObject) TagByID(id string) (*Tag, bool) {
	t, ok := so.index.Load(id)
	if !ok {
		return nil, false
	}
	return t.(*Tag), true
}

// IndexSize returns the number of attached tags carrying an identifier.
func (so *SharedObject) IndexSize() int {
	return int(so.size.Load())
}

// IDs returns the identifiers currently in use, in no particular order.
func (so *SharedObject) IDs() []string {
	var ids []string
	so.index.Range(func(k, _ any) bool {
		ids = append(ids, k.(string))
		return true
	})
	return ids
}

// SharedData returns the application data attached to the hierarchy.
func (so *SharedObject) SharedData() any {
	if d := so.data.Load(); d != nil {
		return d.v
	}
	return nil
}

// SetSharedData attaches application data to the hierarchy.
func (so *SharedObject) SetSharedData(v any) {
	so.data.Store(&sharedData{v: v})
}

// SetSharedDataIfAbsent attaches v if no data has been set before. It
// reports whether v was set.
func (so *SharedObject) SetSharedDataIfAbsent(v any) bool {
	return so.data.CompareAndSwap(nil, &sharedData{v: v})
}

// PushListenerActive reports whether a transport is attached to the
// listeners of the hierarchy.
func (so *SharedObject) PushListenerActive() bool {
	return so.pushActive.Load()
}

// SetPushListenerActive is called by pages when a transport attaches or
// leaves.
func (so *SharedObject) SetPushListenerActive(tok access.Token, active bool) {
	tok.Require("SetPushListenerActive", access.PageRole)
	so.pushActive.Store(active)
}

// --- Identifier bookkeeping ------------------------------------------------

func (so *SharedObject) isLive(id string) bool {
	_, ok := so.index.Load(id)
	return ok
}

// nextID panics with an *IDSpaceExhaustedError if no identifier is left.
func (so *SharedObject) nextID() string {
	id, err := so.ids.next(so.isLive, so.IndexSize)
	if err != nil {
		tracer().Errorf(err.Error())
		panic(err)
	}
	return id
}

// adoptLocked makes so the shared object of the subtree at t and assigns
// identifiers (pre-order) to all element tags lacking one. The caller holds
// the write lock of so.
func (so *SharedObject) adoptLocked(t *Tag) {
	tree.TopDown(&t.node, func(n *tree.Node[*Tag], _ int) bool {
		x := n.Payload
		x.shared.Store(so)
		if x.IsText() {
			return true
		}
		id := x.ID()
		if id == "" {
			id = so.nextID()
			x.setID(id)
		}
		if _, loaded := so.index.LoadOrStore(id, x); !loaded {
			so.size.Add(1)
		}
		return true
	})
}

// evictLocked removes the identifiers of the subtree at t from the index
// and clears them. The caller holds the write lock of so.
func (so *SharedObject) evictLocked(t *Tag) {
	tree.TopDown(&t.node, func(n *tree.Node[*Tag], _ int) bool {
		x := n.Payload
		if id := x.ID(); id != "" {
			if _, ok := so.index.LoadAndDelete(id); ok {
				so.size.Add(-1)
			}
			x.clearID()
		}
		return true
	})
}

// AssignIDs assigns identifiers to every element tag of the hierarchy of
// root lacking one, in pre-order. Pages call it before their first render.
func AssignIDs(tok access.Token, root *Tag) {
	tok.Require("AssignIDs", access.PageRole)
	unlock := lockTags(root)
	defer unlock()
	root.SharedObject().adoptLocked(root)
}
