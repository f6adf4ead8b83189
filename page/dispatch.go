package page

import (
	"errors"
	"fmt"

	"github.com/webfirmframework/wff-sub006/tag"
	"github.com/webfirmframework/wff-sub006/wire"
)

// Reasons for dropping an inbound message.
var (
	ErrNotRendered   = errors.New("page: not rendered")
	ErrUnknownTag    = errors.New("page: no tag with this id")
	ErrNoEventMethod = errors.New("page: attribute has no server method")
	ErrUnhandledTask = errors.New("page: task not handled")
)

// WebsocketMessaged handles a message from the browser. The message is
// decoded completely before anything is applied. Messages which cannot be
// handled are logged and dropped; failing server methods do not affect the
// connection.
func (p *Page) WebsocketMessaged(msg []byte) {
	if err := p.dispatch(msg); err != nil {
		tracer().Errorf("page %s: dropping message: %v", p.instanceID, err)
	}
}

func (p *Page) dispatch(msg []byte) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		var exhausted *tag.IDSpaceExhaustedError
		if e, ok := r.(error); ok && errors.As(e, &exhausted) {
			tracer().Errorf("page %s: %v, closing connection", p.instanceID, e)
			p.closeSink()
			err = e
			return
		}
		err = fmt.Errorf("server method panicked: %v", r)
	}()
	records, err := wire.Decode(msg)
	if err != nil {
		return err
	}
	task, err := wire.TaskOf(records)
	if err != nil {
		return err
	}
	switch task {
	case wire.InvokeAsyncMethod:
		return p.invokeAsyncMethod(records[1:])
	}
	return fmt.Errorf("%w: %v", ErrUnhandledTask, task)
}

// asyncCall is a decoded InvokeAsyncMethod message.
type asyncCall struct {
	id      string
	attr    string
	payload *wire.Object
}

// decodeAsyncCall reads the record {Name: tag id, Values: [attribute name,
// payload object]}. The payload is optional.
func decodeAsyncCall(records []wire.NameValue) (asyncCall, error) {
	var call asyncCall
	if len(records) == 0 || len(records[0].Values) == 0 {
		return call, fmt.Errorf("%w: incomplete method invocation", wire.ErrMalformed)
	}
	r := records[0]
	id, err := wire.IDFromBytes(r.Name)
	if err != nil {
		return call, err
	}
	call.id, call.attr = id, string(r.Values[0])
	if len(r.Values) > 1 && len(r.Values[1]) > 0 {
		if call.payload, err = wire.DecodeObject(r.Values[1]); err != nil {
			return call, err
		}
	}
	return call, nil
}

func (p *Page) invokeAsyncMethod(records []wire.NameValue) error {
	call, err := decodeAsyncCall(records)
	if err != nil {
		return err
	}
	root := p.rendered()
	if root == nil {
		return ErrNotRendered
	}
	source, ok := root.SharedObject().TagByID(call.id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTag, call.id)
	}
	attr, ok := source.Attribute(call.attr)
	if !ok {
		return fmt.Errorf("%w: %v has no attribute %s", ErrNoEventMethod, source, call.attr)
	}
	handler, ok := attr.Handler()
	if !ok || handler.Method == nil {
		return fmt.Errorf("%w: %v %s", ErrNoEventMethod, source, call.attr)
	}
	tracer().Debugf("page %s: invoking %s of %v", p.instanceID, call.attr, source)
	result, err := handler.Method(tag.ServerEvent{Source: source, Attribute: attr, Payload: call.payload})
	if err != nil {
		return fmt.Errorf("server method %s of %v: %w", call.attr, source, err)
	}
	if handler.PostFunction != "" {
		p.push(wire.InvokePostFunction, wire.NV([]byte(handler.PostFunction), result.Encode()))
	}
	return nil
}
