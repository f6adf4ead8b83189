package style

// Property is a raw value for a CSS property. For example, with
//
//	color: black
//
// a property value of "black" is set.
type Property string

// NullStyle is an empty property value.
const NullStyle Property = ""

func (p Property) String() string {
	return string(p)
}

// IsInitial denotes if a property is of inheritence-type "initial"
func (p Property) IsInitial() bool {
	return p == "initial"
}

// IsInherit denotes if a property is of inheritence-type "inherit"
func (p Property) IsInherit() bool {
	return p == "inherit"
}

// IsEmpty checks wether a property is empty, i.e. the null-string.
func (p Property) IsEmpty() bool {
	return p == ""
}

// KeyValue is a container for a style property.
type KeyValue struct {
	Key       string
	Value     Property
	Important bool
}

func (kv KeyValue) String() string {
	if kv.Important {
		return kv.Key + ":" + string(kv.Value) + " !important;"
	}
	return kv.Key + ":" + string(kv.Value) + ";"
}
