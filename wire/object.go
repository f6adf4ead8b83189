package wire

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ValueType tags the values of an Object on the wire.
type ValueType byte

// Value types of Object entries.
const (
	NullValue ValueType = iota
	StringValue
	NumberValue
	BooleanValue
	ObjectValue
)

// Object is an ordered key/value payload, exchanged as the argument and
// result of server methods. The zero Object is empty and ready to use.
//
// Values are string, float64, bool, nil or *Object. Integers are stored
// as float64, like the browser does.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject creates an empty payload object.
func NewObject() *Object {
	return &Object{}
}

// Put sets key to v, keeping the position of an existing key.
// v must be of one of the supported value types; ints are converted.
func (o *Object) Put(key string, v any) *Object {
	switch x := v.(type) {
	case int:
		v = float64(x)
	case int32:
		v = float64(x)
	case int64:
		v = float64(x)
	case float32:
		v = float64(x)
	case nil, string, float64, bool, *Object:
	default:
		panic(fmt.Sprintf("wire: unsupported object value of type %T", v))
	}
	if o.values == nil {
		o.values = make(map[string]any)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
	return o
}

// Get returns the value for key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// String returns the string value for key.
func (o *Object) String(key string) (string, bool) {
	v, _ := o.Get(key)
	s, ok := v.(string)
	return s, ok
}

// Number returns the numeric value for key.
func (o *Object) Number(key string) (float64, bool) {
	v, _ := o.Get(key)
	f, ok := v.(float64)
	return f, ok
}

// Bool returns the boolean value for key.
func (o *Object) Bool(key string) (bool, bool) {
	v, _ := o.Get(key)
	b, ok := v.(bool)
	return b, ok
}

// Object returns the nested object for key.
func (o *Object) Object(key string) (*Object, bool) {
	v, _ := o.Get(key)
	x, ok := v.(*Object)
	return x, ok
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

// Len returns the number of entries.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Encode serializes the object, one record per entry.
func (o *Object) Encode() []byte {
	if o == nil {
		return Encode(nil)
	}
	records := make([]NameValue, 0, len(o.keys))
	for _, k := range o.keys {
		records = append(records, encodeEntry(k, o.values[k]))
	}
	return Encode(records)
}

func encodeEntry(key string, v any) NameValue {
	nv := NameValue{Name: []byte(key)}
	switch x := v.(type) {
	case nil:
		nv.Values = [][]byte{{byte(NullValue)}}
	case string:
		nv.Values = [][]byte{{byte(StringValue)}, []byte(x)}
	case float64:
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, math.Float64bits(x))
		nv.Values = [][]byte{{byte(NumberValue)}, b}
	case bool:
		var b byte
		if x {
			b = 1
		}
		nv.Values = [][]byte{{byte(BooleanValue)}, {b}}
	case *Object:
		nv.Values = [][]byte{{byte(ObjectValue)}, x.Encode()}
	}
	return nv
}

// DecodeObject deserializes an object produced by Encode.
func DecodeObject(b []byte) (*Object, error) {
	records, err := Decode(b)
	if err != nil {
		return nil, err
	}
	o := NewObject()
	for _, nv := range records {
		if len(nv.Values) == 0 || len(nv.Values[0]) != 1 {
			return nil, fmt.Errorf("%w: object entry %q without type", ErrMalformed, nv.Name)
		}
		key := string(nv.Name)
		t := ValueType(nv.Values[0][0])
		if t == NullValue {
			o.Put(key, nil)
			continue
		}
		if len(nv.Values) != 2 {
			return nil, fmt.Errorf("%w: object entry %q without value", ErrMalformed, key)
		}
		raw := nv.Values[1]
		switch t {
		case StringValue:
			o.Put(key, string(raw))
		case NumberValue:
			if len(raw) != 8 {
				return nil, fmt.Errorf("%w: number entry %q of width %d", ErrMalformed, key, len(raw))
			}
			o.Put(key, math.Float64frombits(binary.BigEndian.Uint64(raw)))
		case BooleanValue:
			if len(raw) != 1 {
				return nil, fmt.Errorf("%w: boolean entry %q of width %d", ErrMalformed, key, len(raw))
			}
			o.Put(key, raw[0] != 0)
		case ObjectValue:
			nested, err := DecodeObject(raw)
			if err != nil {
				return nil, err
			}
			o.Put(key, nested)
		default:
			return nil, fmt.Errorf("%w: object entry %q of unknown type %d", ErrMalformed, key, t)
		}
	}
	return o, nil
}
