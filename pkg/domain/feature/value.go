package feature

import (
	"encoding/json"
	"math"
	"strconv"
)

type Kind uint8

const (
	KindNumber Kind = iota
	KindBool
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// UnknownInput is the model input used for values that could not be observed.
const UnknownInput = -1.0

// Value is a single feature observation. The zero Value is the number 0.
type Value struct {
	kind Kind
	num  float64
}

func Number(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{kind: KindNumber}
	}
	return Value{kind: KindNumber, num: v}
}

func Int(v int) Value {
	return Value{kind: KindNumber, num: float64(v)}
}

func Bool(b bool) Value {
	if b {
		return Value{kind: KindBool, num: 1}
	}
	return Value{kind: KindBool}
}

func Unknown() Value {
	return Value{kind: KindUnknown}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsUnknown() bool {
	return v.kind == KindUnknown
}

// Float returns the numeric model input for the value.
func (v Value) Float() float64 {
	if v.kind == KindUnknown {
		return UnknownInput
	}
	return v.num
}

func (v Value) Bool() bool {
	return v.kind != KindUnknown && v.num != 0
}

// Interface returns the value as a plain Go type: float64, bool or nil.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindBool:
		return v.num != 0
	case KindUnknown:
		return nil
	default:
		return v.num
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.num != 0)
	case KindUnknown:
		return "unknown"
	default:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case nil:
		*v = Unknown()
	case bool:
		*v = Bool(t)
	case float64:
		*v = Number(t)
	default:
		return &json.UnsupportedValueError{Str: string(data)}
	}
	return nil
}
