package ai

import (
	"encoding"
	"fmt"
)

// Method selects the tree search used below the root.
type Method int

const (
	Minimax Method = iota
	AlphaBeta
)

var _ interface {
	encoding.TextMarshaler
	encoding.TextUnmarshaler
} = new(Method)

var methodNames = map[Method]string{
	Minimax:   "minimax",
	AlphaBeta: "alphabeta",
}

func (m Method) String() string {
	if s, ok := methodNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

func ParseMethod(s string) (Method, error) {
	for m, name := range methodNames {
		if name == s {
			return m, nil
		}
	}
	return Minimax, fmt.Errorf("unknown search method: %q", s)
}

func (m Method) MarshalText() ([]byte, error) {
	if _, ok := methodNames[m]; !ok {
		return nil, fmt.Errorf("unknown search method: %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *Method) UnmarshalText(bs []byte) error {
	v, err := ParseMethod(string(bs))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
