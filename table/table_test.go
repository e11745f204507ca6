// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tsavola/x86gen/addressing"
	"github.com/tsavola/x86gen/operand"
	"golang.org/x/xerrors"
)

func TestValidate(t *testing.T) {
	if err := Validate(All()); err != nil {
		t.Fatal(err)
	}
}

func TestValidateProblems(t *testing.T) {
	entries := []Entry{
		{Name: "empty"},
		op("RETN", 0xc3, fixed(0), fixed(0)),
		op("bad", 0x01, []Leg{{Prefixes: 0, ModRM: NoModRM, Reg: addressing.Values(1)}}),
		op("early", 0x00, rmb()),
		bare("suffixed", MapPrimary, 0xd9, 0xd0),
		entry("suffixed modrm", MapPrimary, []byte{0xd9, 0xd0}, [][]Leg{rmb()}),
	}

	err := Validate(entries)
	require.Error(t, err)

	var ps Problems
	require.True(t, xerrors.As(err, &ps))

	texts := make(map[string]bool)
	for _, p := range ps {
		texts[p.Text] = true
	}
	require.True(t, texts["empty opcode"])
	require.True(t, texts["no legs"])
	require.True(t, texts["duplicate of leg 0"])
	require.True(t, texts["allow-set without ModRM"])
	require.True(t, texts["ModRM after fixed opcode suffix"])

	var outOfOrder bool
	for _, p := range ps {
		if p.Entry == entries[3].String() && p.Leg < 0 {
			outOfOrder = true
		}
	}
	require.True(t, outOfOrder)
}

func find(t *testing.T, m Map, opcode ...byte) (found []Entry) {
	t.Helper()

	for _, e := range All() {
		if e.Map == m && bytes.Equal(e.Opcode, opcode) {
			found = append(found, e)
		}
	}
	if len(found) == 0 {
		t.Fatalf("%s % x not found", m, opcode)
	}
	return
}

func TestRETN(t *testing.T) {
	es := find(t, MapPrimary, 0xc3)
	require.Len(t, es, 1)
	require.Equal(t, 1, es[0].Count())
	require.Equal(t, []Leg{{}}, es[0].Legs)
}

func TestCPUID(t *testing.T) {
	es := find(t, Map0F, 0xa2)
	require.Len(t, es, 1)
	require.Equal(t, []byte{0x0f, 0xa2}, es[0].Head())
	require.Equal(t, "0f a2 CPUID", es[0].String())
}

func TestThreeByteHead(t *testing.T) {
	es := find(t, Map0F3A, 0x0f)
	require.Equal(t, []byte{0x0f, 0x3a, 0x0f}, es[0].Head())

	for _, l := range es[0].Legs {
		require.Equal(t, []operand.Field{operand.Imm8}, l.Operands)
	}
}

func TestWordLegs(t *testing.T) {
	e := find(t, MapPrimary, 0x01)[0]
	require.Len(t, e.Legs, 4)

	expect := []Prefixes{0, OperandSize, AddressSize, AddressSize | OperandSize}
	for i, l := range e.Legs {
		require.Equal(t, expect[i], l.Prefixes)
		require.Equal(t, Enumerated, l.ModRM)
	}

	require.Equal(t, 2*6376+2*256, e.Count())
}

func TestByteLegs(t *testing.T) {
	e := find(t, MapPrimary, 0x00)[0]
	require.Len(t, e.Legs, 2)
	require.Equal(t, addressing.Width32, e.Legs[0].Width())
	require.Equal(t, addressing.Width16, e.Legs[1].Width())
	require.Equal(t, []byte{0x67}, e.Legs[1].Prefixes.Bytes())
}

func TestControlRegisters(t *testing.T) {
	for opcode := byte(0x20); opcode <= 0x23; opcode++ {
		e := find(t, Map0F, opcode)[0]
		require.Equal(t, []Leg{{ModRM: RawModRM}}, e.Legs)
		require.Equal(t, 256, e.Count())
	}
}

func TestMoffs(t *testing.T) {
	e := find(t, MapPrimary, 0xa1)[0]
	require.Len(t, e.Legs, 4)

	sizes := []int{4, 4, 2, 2}
	for i, l := range e.Legs {
		require.Equal(t, sizes[i], operand.Len(l.Prefixes.Attr(), l.Operands), "%s", &l)
	}
}

func TestExcluded(t *testing.T) {
	var n int

	for _, e := range All() {
		if e.Excluded() {
			require.Zero(t, e.Count())
			n++
		}
	}

	require.Equal(t, 5, n)
	require.True(t, find(t, Map0F, 0x0d)[0].Excluded())
}

func TestPrefixOrder(t *testing.T) {
	p := Rep | Repne | OperandSize | AddressSize
	require.Equal(t, []byte{0x67, 0x66, 0xf2, 0xf3}, p.Bytes())
	require.Equal(t, "67 66 f2 f3", p.String())
	require.Equal(t, "-", Prefixes(0).String())
}

func TestRegisterDirectLegs(t *testing.T) {
	for _, e := range All() {
		for _, l := range e.Legs {
			if l.ModRM == Enumerated && l.Mod == addressing.Values(3) {
				require.Zero(t, l.Prefixes&AddressSize, "%s: %s", &e, &l)
			}
		}
	}
}
