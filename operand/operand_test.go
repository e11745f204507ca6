// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package operand

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

func TestSentinels(t *testing.T) {
	seen := make(map[byte]Role)

	for _, r := range Roles {
		if other, dup := seen[r.Sentinel()]; dup {
			t.Errorf("%s and %s share sentinel 0x%02x", r, other, r.Sentinel())
		}
		seen[r.Sentinel()] = r

		found, ok := RoleOf(r.Sentinel())
		require.True(t, ok)
		require.Equal(t, r, found)
	}

	_, ok := RoleOf(0x90)
	require.False(t, ok)
}

func TestLen(t *testing.T) {
	var (
		none = Attr{}
		op16 = Attr{Operand16: true}
		ad16 = Attr{Address16: true}
	)

	for _, x := range []struct {
		f    Field
		attr Attr
		n    int
	}{
		{Imm8, op16, 1},
		{Imm16, none, 2},
		{Imm32, op16, 4},
		{ImmZ, none, 4},
		{ImmZ, op16, 2},
		{ImmZ, ad16, 4},
		{RelZ, op16, 2},
		{MoffsA, none, 4},
		{MoffsA, op16, 4},
		{MoffsA, ad16, 2},
		{Moffs32, ad16, 4},
	} {
		require.Equal(t, x.n, x.f.Len(x.attr), "%s %+v", x.f, x.attr)
	}

	require.Equal(t, 6, Len(none, FarPtr))
	require.Equal(t, 4, Len(op16, FarPtr))
}

func TestAppend(t *testing.T) {
	b := Append([]byte{0x9a}, Attr{}, FarPtr)
	require.Equal(t, []byte{0x9a, 0x55, 0x55, 0x55, 0x55, 0x44, 0x44}, b)

	b = Append([]byte{0x9a}, Attr{Operand16: true}, FarPtr)
	require.Equal(t, []byte{0x9a, 0x55, 0x55, 0x44, 0x44}, b)

	b = Append(nil, Attr{}, []Field{Imm16, Imm8})
	require.Equal(t, []byte{0x22, 0x22, 0x22}, b)
}

func TestLocatePatch(t *testing.T) {
	insn := []byte{0x81, 0x42, 0x11, 0x22, 0x22, 0x22, 0x22}

	spans, err := Locate(insn, Attr{}, []Field{ImmZ})
	require.NoError(t, err)
	require.Equal(t, []Span{{Imm, 3, 4}}, spans)

	Patch(insn, spans[0], 0x12345678)
	require.Equal(t, []byte{0x81, 0x42, 0x11, 0x78, 0x56, 0x34, 0x12}, insn)

	_, err = Locate(insn, Attr{}, []Field{ImmZ})
	require.True(t, xerrors.Is(err, ErrNoMatch), "%v", err)
}

func TestLocateFarPtr(t *testing.T) {
	insn := []byte{0x66, 0xea, 0x55, 0x55, 0x44, 0x44}
	attr := Attr{Operand16: true}

	spans, err := Locate(insn, attr, FarPtr)
	require.NoError(t, err)
	require.Equal(t, []Span{{Off, 2, 2}, {Sel, 4, 2}}, spans)

	Patch(insn, spans[1], 0xabcdef)
	require.Equal(t, []byte{0xef, 0xcd}, insn[4:])
}

func TestLocateShort(t *testing.T) {
	_, err := Locate([]byte{0x22}, Attr{}, []Field{Imm16})
	require.Error(t, err)
	require.True(t, xerrors.Is(err, ErrNoMatch))
}
