// Package json is a small JSON-like document grammar built on parsco.
//
// A document is a single table. Values are tried in the order Number,
// String, Boolean, *Table, *List; the first that parses wins.
package json

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Value is one of Number, String, Boolean, *Table or *List.
type Value interface {
	value()
}

// Number is an integer or floating point literal.
type Number struct {
	Int     int
	Float   float64
	IsFloat bool
}

// String is the raw text between the quotes of a string literal.
// Escapes are not interpreted.
type String string

type Boolean bool

// KeyVal is one member of a table.
type KeyVal struct {
	Key   string
	Value Value
}

// Table is a brace-delimited list of key/value pairs. Members keep their
// source order and duplicate keys are kept.
type Table struct {
	Members []KeyVal
}

// List is a bracket-delimited list of values.
type List struct {
	Members []Value
}

// Doc is a parsed document.
type Doc struct {
	Table Table
}

func (Number) value()  {}
func (String) value()  {}
func (Boolean) value() {}
func (*Table) value()  {}
func (*List) value()   {}

// Float64 returns n as a float64 regardless of how it was written.
func (n Number) Float64() float64 {
	if n.IsFloat {
		return n.Float
	}
	return float64(n.Int)
}

func (n Number) String() string {
	if n.IsFloat {
		return strconv.FormatFloat(n.Float, 'g', -1, 64)
	}
	return strconv.Itoa(n.Int)
}

// Get returns the value of the first member named key.
func (t *Table) Get(key string) (Value, bool) {
	for _, m := range t.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

func (n Number) MarshalJSON() ([]byte, error) {
	if n.IsFloat {
		return json.Marshal(n.Float)
	}
	return json.Marshal(n.Int)
}

// MarshalJSON encodes the table as an object, preserving member order.
func (t *Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range t.Members {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (l *List) MarshalJSON() ([]byte, error) {
	if l.Members == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.Members)
}

func (d *Doc) MarshalJSON() ([]byte, error) {
	return d.Table.MarshalJSON()
}
