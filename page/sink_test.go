package page

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/webfirmframework/wff-sub006/tag"
	"github.com/webfirmframework/wff-sub006/wire"
)

// recordingSink keeps pushed messages. It fails while fail is set.
type recordingSink struct {
	mu     sync.Mutex
	msgs   [][]byte
	fail   bool
	closed bool
}

func (s *recordingSink) Push(msg []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("sink unavailable")
	}
	s.msgs = append(s.msgs, msg)
	return nil
}

func (s *recordingSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *recordingSink) setFail(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = fail
}

func (s *recordingSink) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = nil
}

func (s *recordingSink) tasks(t *testing.T) []wire.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := make([]wire.Task, len(s.msgs))
	for i, msg := range s.msgs {
		records, err := wire.Decode(msg)
		require.NoError(t, err)
		tasks[i], err = wire.TaskOf(records)
		require.NoError(t, err)
	}
	return tasks
}

// records returns the records of message i without the task record.
func (s *recordingSink) records(t *testing.T, i int) []wire.NameValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	require.Less(t, i, len(s.msgs))
	records, err := wire.Decode(s.msgs[i])
	require.NoError(t, err)
	return records[1:]
}

// testDocument builds html > body > div#main.
func testDocument() (RenderFunc, func() *tag.Tag) {
	var div *tag.Tag
	render := func() *tag.Tag {
		html := tag.New("html", nil)
		body := tag.New("body", html)
		div = tag.New("div", body, tag.NewAttribute("id", "main"))
		return html
	}
	return render, func() *tag.Tag { return div }
}

func id(s string) []byte {
	return wire.MustIDBytes(s)
}

func name(s string) []byte {
	return tag.WireName(s, tag.DefaultRegistry())
}
