// FILE: lixenwraith/emaconfig/value.go
package emaconfig

import (
	"fmt"
	"strconv"
)

// Kind identifies the payload carried by a Value.
type Kind uint8

const (
	KindAscii Kind = iota + 1
	KindInt64
	KindUInt64
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindAscii:
		return "Ascii"
	case KindInt64:
		return "Int64"
	case KindUInt64:
		return "UInt64"
	case KindEnum:
		return "Enum"
	default:
		return "Unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is an immutable tagged configuration value.
// The zero Value has no kind and is never produced by the constructors.
type Value struct {
	kind Kind
	str  string // Ascii payload, or enum symbol
	cat  string // enum category
	i    int64
	u    uint64
	code uint16
}

// AsciiValue wraps a string.
func AsciiValue(s string) Value { return Value{kind: KindAscii, str: s} }

// Int64Value wraps a signed integer.
func Int64Value(i int64) Value { return Value{kind: KindInt64, i: i} }

// UInt64Value wraps an unsigned integer.
func UInt64Value(u uint64) Value { return Value{kind: KindUInt64, u: u} }

// EnumValue wraps an enumeration code. Category and symbol are optional and only
// used for printing; programmatic documents usually carry the bare code.
func EnumValue(category, symbol string, code uint16) Value {
	return Value{kind: KindEnum, cat: category, str: symbol, code: code}
}

// EnumCode wraps a bare enumeration code.
func EnumCode(code uint16) Value { return Value{kind: KindEnum, code: code} }

// Kind returns the value kind.
func (v Value) Kind() Kind { return v.kind }

// IsZero reports whether v was never constructed.
func (v Value) IsZero() bool { return v.kind == 0 }

// Ascii returns the string payload.
func (v Value) Ascii() (string, bool) {
	if v.kind != KindAscii {
		return "", false
	}
	return v.str, true
}

// Int64 returns the signed payload.
func (v Value) Int64() (int64, bool) {
	if v.kind != KindInt64 {
		return 0, false
	}
	return v.i, true
}

// UInt64 returns the unsigned payload.
func (v Value) UInt64() (uint64, bool) {
	if v.kind != KindUInt64 {
		return 0, false
	}
	return v.u, true
}

// Enum returns the enumeration code.
func (v Value) Enum() (uint16, bool) {
	if v.kind != KindEnum {
		return 0, false
	}
	return v.code, true
}

// Category returns the enum category, empty for non-enum values or bare codes.
func (v Value) Category() string {
	if v.kind != KindEnum {
		return ""
	}
	return v.cat
}

// Equal reports whether both values have the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindAscii:
		return v.str == o.str
	case KindInt64:
		return v.i == o.i
	case KindUInt64:
		return v.u == o.u
	case KindEnum:
		if v.cat != "" && o.cat != "" && v.cat != o.cat {
			return false
		}
		return v.code == o.code
	default:
		return true
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindAscii:
		return v.str
	case KindInt64:
		return strconv.FormatInt(v.i, 10)
	case KindUInt64:
		return strconv.FormatUint(v.u, 10)
	case KindEnum:
		if v.cat != "" && v.str != "" {
			return v.cat + "::" + v.str
		}
		return strconv.FormatUint(uint64(v.code), 10)
	default:
		return "<none>"
	}
}

// raw converts the payload into the plain Go value used for structured decoding.
func (v Value) raw() any {
	switch v.kind {
	case KindAscii:
		return v.str
	case KindInt64:
		return v.i
	case KindUInt64:
		return v.u
	case KindEnum:
		return v.code
	default:
		return nil
	}
}

// isDecimal reports whether s is an optionally signed decimal numeral spanning the
// whole string. Unsigned numerals may not carry a sign.
func isDecimal(s string, signed bool) bool {
	if s == "" {
		return false
	}
	p := s
	if signed && p[0] == '-' {
		p = p[1:]
		if p == "" {
			return false
		}
	}
	for i := 0; i < len(p); i++ {
		if p[i] < '0' || p[i] > '9' {
			return false
		}
	}
	return true
}

// ParseValue validates raw against kind and builds a Value.
// The returned error message is suitable for a diagnostic as-is.
func ParseValue(name string, kind Kind, raw string, catalog *EnumCatalog) (Value, error) {
	switch kind {
	case KindAscii:
		return AsciiValue(raw), nil
	case KindInt64:
		if !isDecimal(raw, true) {
			return Value{}, fmt.Errorf("value [%s] for config element [%s] is not a signed integer; element ignored", raw, name)
		}
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("value [%s] for config element [%s] is out of range for a signed integer; element ignored", raw, name)
		}
		return Int64Value(i), nil
	case KindUInt64:
		if !isDecimal(raw, false) {
			return Value{}, fmt.Errorf("value [%s] for config element [%s] is not an unsigned integer; element ignored", raw, name)
		}
		u, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("value [%s] for config element [%s] is out of range for an unsigned integer; element ignored", raw, name)
		}
		return UInt64Value(u), nil
	case KindEnum:
		if catalog == nil {
			return Value{}, fmt.Errorf("no enumeration catalog available for config element [%s]; element ignored", name)
		}
		return catalog.Convert(raw)
	default:
		return Value{}, fmt.Errorf("config element [%s] had unexpected element type [%s]; element ignored", name, kind)
	}
}
