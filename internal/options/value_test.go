// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueEqual(t *testing.T) {
	t.Parallel()

	assert.True(t, List("a", "b").Equal(List("a", "b")))
	assert.False(t, List("a").Equal(List("a", "")))
	assert.False(t, List().Equal(List("")))
	assert.False(t, Null().Equal(NullString("")))
	assert.True(t, NullString("x").Equal(NullString("x")))
	assert.False(t, String("1").Equal(Int(1)))
	assert.True(t, Flag(true).Equal(Flag(true)))
}

func TestValueListIsCopied(t *testing.T) {
	t.Parallel()

	items := []string{"a", "b"}
	v := List(items...)
	items[0] = "changed"

	got := v.Strings()
	assert.Equal(t, []string{"a", "b"}, got)

	got[1] = "changed"
	assert.Equal(t, []string{"a", "b"}, v.Strings())
}

func TestValueGoString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		v    Value
		want string
	}{
		{v: Flag(true), want: "true"},
		{v: String("x"), want: `"x"`},
		{v: List("a", ""), want: `["a", ""]`},
		{v: Int(7), want: "7"},
		{v: Null(), want: "<null>"},
		{v: NullString("p"), want: `"p"`},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, tc.v.GoString())
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "string-list", KindStringList.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
