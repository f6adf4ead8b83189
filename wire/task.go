package wire

import (
	"errors"
	"fmt"
)

// Task is the kind of a message. The numeric values are shared with the
// client script and must not be reordered.
type Task byte

const (
	InvokeAsyncMethod Task = iota
	AttributeUpdated
	TaskMarker
	AppendedChildTag
	RemovedTags
	AppendedChildrenTags
	RemovedAllChildrenTags
	MovedChildrenTags
	RemovedAttributes
	AddedAttributes
	ManyToOne
	OneToMany
	ManyToMany
	OneToOne
	AddedInnerHTML
	InvokePostFunction
	ExecuteJS
	ReloadBrowser
	ReloadBrowserFromCache
	InsertedBeforeTag
	InsertedAfterTag
	maxTask
)

var taskNames = [...]string{
	"InvokeAsyncMethod", "AttributeUpdated", "TaskMarker", "AppendedChildTag",
	"RemovedTags", "AppendedChildrenTags", "RemovedAllChildrenTags",
	"MovedChildrenTags", "RemovedAttributes", "AddedAttributes", "ManyToOne",
	"OneToMany", "ManyToMany", "OneToOne", "AddedInnerHTML", "InvokePostFunction",
	"ExecuteJS", "ReloadBrowser", "ReloadBrowserFromCache", "InsertedBeforeTag",
	"InsertedAfterTag",
}

func (t Task) String() string {
	if t < maxTask {
		return taskNames[t]
	}
	return fmt.Sprintf("Task(%d)", byte(t))
}

// Byte returns t as a one-element byte slice.
func (t Task) Byte() []byte {
	return []byte{byte(t)}
}

// Record returns the leading record of a message of kind t.
func (t Task) Record() NameValue {
	return NameValue{Name: TaskMarker.Byte(), Values: [][]byte{t.Byte()}}
}

// ErrNoTask is returned if a message does not start with a task record.
var ErrNoTask = errors.New("wire: message does not start with a task record")

// TaskOf reads the task of a decoded message.
func TaskOf(records []NameValue) (Task, error) {
	if len(records) == 0 {
		return 0, ErrNoTask
	}
	r := records[0]
	if len(r.Name) == 0 || Task(r.Name[0]) != TaskMarker || len(r.Values) == 0 || len(r.Values[0]) == 0 {
		return 0, ErrNoTask
	}
	t := Task(r.Values[0][0])
	if t >= maxTask {
		return t, fmt.Errorf("%w: unknown task %d", ErrMalformed, byte(t))
	}
	return t, nil
}

// Message encodes a task record followed by records.
func Message(t Task, records ...NameValue) []byte {
	all := make([]NameValue, 0, len(records)+1)
	all = append(all, t.Record())
	all = append(all, records...)
	return Encode(all)
}
