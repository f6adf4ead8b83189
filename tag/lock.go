package tag

import (
	"sort"
	"sync"
	"sync/atomic"
)

// hierarchyLock is the read/write lock of a hierarchy. It remembers whether
// the write lock is held, which listeners and tests may query.
type hierarchyLock struct {
	mu   sync.RWMutex
	held atomic.Bool
}

func (l *hierarchyLock) lock() {
	l.mu.Lock()
	l.held.Store(true)
}

func (l *hierarchyLock) unlock() {
	l.held.Store(false)
	l.mu.Unlock()
}

// lockTags write-locks the hierarchies of tags. Hierarchies are locked in
// the order of their identifiers, so two goroutines locking overlapping sets
// cannot deadlock. A tag may migrate to another hierarchy before its current
// one is locked; lockTags retries until every tag belongs to a locked
// hierarchy. Nil tags are ignored.
func lockTags(tags ...*Tag) (unlock func()) {
	for {
		objs := sharedObjectsOf(tags)
		for _, so := range objs {
			so.lock.lock()
		}
		unlock = func() {
			for i := len(objs) - 1; i >= 0; i-- {
				objs[i].lock.unlock()
			}
		}
		if stillOwned(tags, objs) {
			return unlock
		}
		unlock()
	}
}

// rlockTag read-locks the hierarchy of t.
func rlockTag(t *Tag) (unlock func()) {
	for {
		so := t.SharedObject()
		so.lock.mu.RLock()
		if t.SharedObject() == so {
			return so.lock.mu.RUnlock
		}
		so.lock.mu.RUnlock()
	}
}

func sharedObjectsOf(tags []*Tag) []*SharedObject {
	var objs []*SharedObject
	seen := make(map[*SharedObject]bool, len(tags))
	for _, t := range tags {
		if t == nil {
			continue
		}
		so := t.SharedObject()
		if !seen[so] {
			seen[so] = true
			objs = append(objs, so)
		}
	}
	sort.Slice(objs, func(i, j int) bool {
		return objs[i].oid.Compare(objs[j].oid) < 0
	})
	return objs
}

func stillOwned(tags []*Tag, objs []*SharedObject) bool {
	for _, t := range tags {
		if t == nil {
			continue
		}
		so, found := t.SharedObject(), false
		for _, o := range objs {
			if o == so {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
