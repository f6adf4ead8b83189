package tag

import (
	"github.com/webfirmframework/wff-sub006/tree"
	"github.com/webfirmframework/wff-sub006/wire"
)

// NameIndex maps tag names to small integers known to the client.
type NameIndex interface {
	IndexOf(name string) (int, bool)
}

// WireName encodes a tag name. Indexed names are sent as a zero byte
// followed by the optimized index, others as plain bytes.
func WireName(name string, names NameIndex) []byte {
	if names != nil {
		if i, ok := names.IndexOf(name); ok {
			return append([]byte{0}, wire.OptimizedBytes(int32(i))...)
		}
	}
	return []byte(name)
}

// EncodeSubtree encodes the subtree at t, one record per node in pre-order.
// The name of a record is the optimized position of the node's parent
// within the encoding, empty for t itself. Its values are the tag name
// followed by the attributes as name=value, data-wff-id last. Text nodes
// have an empty tag name and their content as single attribute.
//
// EncodeSubtree does not lock. It is meant for listeners, which run while
// the write lock is held.
func EncodeSubtree(t *Tag, names NameIndex) []byte {
	return wire.Encode(subtreeRecords(t, names))
}

func subtreeRecords(t *Tag, names NameIndex) []wire.NameValue {
	var records []wire.NameValue
	positions := make(map[*Tag]int32)
	tree.TopDown(&t.node, func(n *tree.Node[*Tag], depth int) bool {
		x := n.Payload
		var nv wire.NameValue
		if depth > 0 {
			nv.Name = wire.OptimizedBytes(positions[x.parent()])
		}
		positions[x] = int32(len(records))
		if x.IsText() {
			nv.Values = [][]byte{{}, []byte(x.text)}
		} else {
			nv.Values = make([][]byte, 0, len(x.attrs)+2)
			nv.Values = append(nv.Values, WireName(x.name, names))
			for _, a := range x.attrs {
				nv.Values = append(nv.Values, []byte(a.WireString()))
			}
			if id := x.ID(); id != "" {
				nv.Values = append(nv.Values, []byte(DataWffID+"="+id))
			}
		}
		records = append(records, nv)
		return true
	})
	return records
}
