// Package element models tree node descriptors and decides whether two
// descriptors at the same position describe the same logical node.
package element

import "strconv"

type Kind uint8

const (
	KindEmpty Kind = iota
	KindPrimitive
	KindComposite
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindPrimitive:
		return "primitive"
	case KindComposite:
		return "composite"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Node describes what occupies one tree position. The set of variants is
// closed: Empty, Text, Number and *Composite. A nil Node is empty.
type Node interface {
	Kind() Kind
	isNode()
}

// Empty covers both an absent child and an explicit false.
type Empty struct{}

func (Empty) Kind() Kind { return KindEmpty }
func (Empty) isNode()    {}

type Text string

func (Text) Kind() Kind { return KindPrimitive }
func (Text) isNode()    {}

type Number float64

func (Number) Kind() Kind { return KindPrimitive }
func (Number) isNode()    {}

type Composite struct {
	Type  string
	Key   string
	Props map[string]any
}

func (*Composite) Kind() Kind { return KindComposite }
func (*Composite) isNode()    {}

func New(typ string) *Composite {
	return &Composite{Type: typ}
}

func (c *Composite) WithKey(key string) *Composite {
	c.Key = key
	return c
}

func KindOf(n Node) Kind {
	if n == nil {
		return KindEmpty
	}
	if c, ok := n.(*Composite); ok && c == nil {
		return KindEmpty
	}
	return n.Kind()
}

func String(n Node) string {
	switch n := n.(type) {
	case nil, Empty:
		return "empty"
	case Text:
		return strconv.Quote(string(n))
	case Number:
		return strconv.FormatFloat(float64(n), 'g', -1, 64)
	case *Composite:
		if n == nil {
			return "empty"
		}
		if n.Key == "" {
			return "<" + n.Type + ">"
		}
		return "<" + n.Type + " key=" + strconv.Quote(n.Key) + ">"
	default:
		return "unknown"
	}
}
