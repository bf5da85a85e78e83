// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package options

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies the type held by a Value.
type Kind int

const (
	// KindFlag is a presence-only boolean option.
	KindFlag Kind = iota
	// KindString is a string option.
	KindString
	// KindStringList is a comma separated list option.
	KindStringList
	// KindInt is a base 10 integer option.
	KindInt
	// KindNullableString is a string option that may be unset.
	KindNullableString
)

// String implements the Stringer interface for Kind.
func (k Kind) String() string {
	switch k {
	case KindFlag:
		return "flag"
	case KindString:
		return "string"
	case KindStringList:
		return "string-list"
	case KindInt:
		return "integer"
	case KindNullableString:
		return "nullable-string"
	default:
		return "unknown"
	}
}

// Value is a tagged option value. The zero Value is a false flag.
// Reading a Value through the accessor of another kind panics.
type Value struct {
	kind Kind
	flag bool
	str  string
	list []string
	num  int
	set  bool
}

// Flag returns a flag value.
func Flag(b bool) Value {
	return Value{kind: KindFlag, flag: b}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// List returns a string list value. The slice is copied.
func List(items ...string) Value {
	if items == nil {
		items = []string{}
	}

	return Value{kind: KindStringList, list: slices.Clone(items)}
}

// Int returns an integer value.
func Int(n int) Value {
	return Value{kind: KindInt, num: n}
}

// NullString returns a set nullable string value.
func NullString(s string) Value {
	return Value{kind: KindNullableString, str: s, set: true}
}

// Null returns an unset nullable string value.
func Null() Value {
	return Value{kind: KindNullableString}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// Bool returns the value of a flag.
func (v Value) Bool() bool {
	v.mustBe(KindFlag)
	return v.flag
}

// Str returns the value of a string option.
func (v Value) Str() string {
	v.mustBe(KindString)
	return v.str
}

// Strings returns a copy of the value of a string list option.
func (v Value) Strings() []string {
	v.mustBe(KindStringList)
	return slices.Clone(v.list)
}

// Integer returns the value of an integer option.
func (v Value) Integer() int {
	v.mustBe(KindInt)
	return v.num
}

// NullableStr returns the value of a nullable string option and whether it is set.
func (v Value) NullableStr() (string, bool) {
	v.mustBe(KindNullableString)
	return v.str, v.set
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case KindFlag:
		return v.flag == o.flag
	case KindString:
		return v.str == o.str
	case KindStringList:
		return slices.Equal(v.list, o.list)
	case KindInt:
		return v.num == o.num
	case KindNullableString:
		return v.set == o.set && v.str == o.str
	}

	return false
}

// GoString renders the value for diagnostics.
func (v Value) GoString() string {
	switch v.kind {
	case KindFlag:
		return strconv.FormatBool(v.flag)
	case KindString:
		return strconv.Quote(v.str)
	case KindStringList:
		quoted := make([]string, len(v.list))
		for i, s := range v.list {
			quoted[i] = strconv.Quote(s)
		}

		return "[" + strings.Join(quoted, ", ") + "]"
	case KindInt:
		return strconv.Itoa(v.num)
	case KindNullableString:
		if !v.set {
			return "<null>"
		}

		return strconv.Quote(v.str)
	}

	return "<invalid>"
}

func (v Value) mustBe(k Kind) {
	if v.kind != k {
		panic(fmt.Sprintf("options: %s value read as %s", v.kind, k))
	}
}
