package feature

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Vector is an immutable set of values covering every catalog entry.
type Vector struct {
	values []Value
}

// Builder assembles a Vector. Entries never set keep their catalog default.
type Builder struct {
	values []Value
}

func NewBuilder() *Builder {
	values := make([]Value, len(catalog))
	for i, d := range catalog {
		values[i] = d.Default()
	}
	return &Builder{values: values}
}

// Set panics on a name outside the catalog.
func (b *Builder) Set(name string, v Value) *Builder {
	i, ok := index[name]
	if !ok {
		panic(fmt.Sprintf("feature: unknown feature %q", name))
	}
	b.values[i] = v
	return b
}

func (b *Builder) Build() Vector {
	values := make([]Value, len(b.values))
	copy(values, b.values)
	return Vector{values: values}
}

// Defaults returns a vector where every feature holds its neutral default.
func Defaults() Vector {
	return NewBuilder().Build()
}

func (v Vector) Get(name string) (Value, bool) {
	i, ok := index[name]
	if !ok || i >= len(v.values) {
		return Value{}, false
	}
	return v.values[i], true
}

// Value returns the named value, or the catalog default when absent.
func (v Vector) Value(name string) Value {
	if val, ok := v.Get(name); ok {
		return val
	}
	if d, ok := Lookup(name); ok {
		return d.Default()
	}
	return Value{}
}

func (v Vector) Float(name string) float64 {
	return v.Value(name).Float()
}

func (v Vector) Bool(name string) bool {
	return v.Value(name).Bool()
}

func (v Vector) Len() int {
	return len(v.values)
}

// Floats translates the vector into the given ordering of model inputs.
func (v Vector) Floats(order []string) ([]float64, error) {
	out := make([]float64, len(order))
	for i, name := range order {
		val, ok := v.Get(name)
		if !ok {
			return nil, fmt.Errorf("feature %q is not part of the catalog", name)
		}
		out[i] = val.Float()
	}
	return out, nil
}

// Map returns the vector as plain Go values keyed by feature name.
func (v Vector) Map() map[string]interface{} {
	out := make(map[string]interface{}, len(catalog))
	for i, d := range catalog {
		out[d.Name] = v.valueAt(i).Interface()
	}
	return out
}

// Subset returns the named entries in the order given.
func (v Vector) Subset(names ...string) OrderedValues {
	out := make(OrderedValues, 0, len(names))
	for _, name := range names {
		if val, ok := v.Get(name); ok {
			out = append(out, NamedValue{Name: name, Value: val})
		}
	}
	return out
}

// Entries returns every catalog entry in catalog order.
func (v Vector) Entries() OrderedValues {
	out := make(OrderedValues, len(catalog))
	for i, d := range catalog {
		out[i] = NamedValue{Name: d.Name, Value: v.valueAt(i)}
	}
	return out
}

func (v Vector) MarshalJSON() ([]byte, error) {
	return v.Entries().MarshalJSON()
}

func (v Vector) valueAt(i int) Value {
	if i < len(v.values) {
		return v.values[i]
	}
	return catalog[i].Default()
}

type NamedValue struct {
	Name  string
	Value Value
}

// OrderedValues encodes as a JSON object that keeps insertion order.
type OrderedValues []NamedValue

func (o OrderedValues) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, nv := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(nv.Name)
		if err != nil {
			return nil, err
		}
		val, err := nv.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
