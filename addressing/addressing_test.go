// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package addressing

import (
	"bytes"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestCount32(t *testing.T) {
	// 4 mods * 8 regs * 7 rms without SIB, plus 3 mods * 8 regs * 256 SIBs.
	require.Equal(t, 6376, Count(Width32, Unrestricted))
	require.Equal(t, 3*8*7+3*8*256+8*8, Count(Width32, Unrestricted))
}

func TestCount16(t *testing.T) {
	require.Equal(t, 256, Count(Width16, Unrestricted))
}

func TestOrder32(t *testing.T) {
	var prev Form
	first := true

	for f := range Enumerate(Width32, Unrestricted) {
		if !first {
			switch {
			case f.ModRM < prev.ModRM:
				t.Fatalf("%s after %s", f, prev)
			case f.ModRM == prev.ModRM && (!f.HasSIB || f.SIB <= prev.SIB):
				t.Fatalf("%s after %s", f, prev)
			}
		}
		prev = f
		first = false
	}
}

func TestDisplacement16(t *testing.T) {
	for f := range Enumerate(Width16, Unrestricted) {
		require.False(t, f.HasSIB, "%s", f)

		var expect uint8
		switch {
		case f.Mod() == 0 && f.RM() == 6:
			expect = 2
		case f.Mod() == 1:
			expect = 1
		case f.Mod() == 2:
			expect = 2
		}
		require.Equal(t, expect, f.DispSize, "%s", f)
	}
}

func TestDisplacement32(t *testing.T) {
	for f := range Enumerate(Width32, Unrestricted) {
		require.Equal(t, f.Mod() != 3 && f.RM() == 4, f.HasSIB, "%s", f)

		var expect uint8
		switch {
		case f.Mod() == 0 && f.RM() == 5:
			expect = 4
		case f.Mod() == 0 && f.HasSIB && f.SIB&7 == 5:
			expect = 4
		case f.Mod() == 1:
			expect = 1
		case f.Mod() == 2:
			expect = 4
		}
		require.Equal(t, expect, f.DispSize, "%s", f)
	}
}

func TestBytes(t *testing.T) {
	for _, x := range []struct {
		modrm byte
		sib   byte
		bytes []byte
	}{
		{0x00, 0, []byte{0x00}},
		{0x04, 0x00, []byte{0x04, 0x00}},
		{0x04, 0x25, []byte{0x04, 0x25, 0x11, 0x11, 0x11, 0x11}},
		{0x05, 0, []byte{0x05, 0x11, 0x11, 0x11, 0x11}},
		{0x42, 0, []byte{0x42, 0x11}},
		{0x44, 0x25, []byte{0x44, 0x25, 0x11}},
		{0x84, 0x00, []byte{0x84, 0x00, 0x11, 0x11, 0x11, 0x11}},
		{0xc4, 0, []byte{0xc4}},
	} {
		var found bool

		for f := range Enumerate(Width32, Unrestricted) {
			if f.ModRM == x.modrm && (!f.HasSIB || f.SIB == x.sib) {
				if !bytes.Equal(f.Bytes(), x.bytes) {
					t.Errorf("%s: % x", f, f.Bytes())
				}
				if f.Len() != len(x.bytes) {
					t.Errorf("%s: length %d", f, f.Len())
				}
				found = true
				break
			}
		}

		if !found {
			t.Errorf("modrm 0x%02x not enumerated", x.modrm)
		}
	}
}

func TestRegisterDirect(t *testing.T) {
	forms := slices.Collect(ModRM32(Values(3), AllRegs))
	require.Len(t, forms, 64)

	for i, f := range forms {
		require.Equal(t, byte(0xc0+i), f.ModRM)
		require.True(t, f.Register())
		require.Equal(t, []byte{f.ModRM}, f.Bytes())
	}
}

func TestConstraint(t *testing.T) {
	forms := slices.Collect(ModRM32(Values(1), Values(0)))
	require.Len(t, forms, 7+256)

	for _, f := range forms {
		require.Equal(t, byte(1), f.Mod())
		require.Equal(t, byte(0), f.Reg())
	}

	forms = slices.Collect(ModRM16(Values(0, 1, 2), Values(5, 7)))
	require.Len(t, forms, 3*2*8)
}

func TestEmptyConstraint(t *testing.T) {
	require.Zero(t, Count(Width32, Constraint{Mod: 0, Reg: AllRegs}))
	require.Zero(t, Count(Width16, Constraint{Mod: AllMods, Reg: 0}))
}

func TestRestartable(t *testing.T) {
	seq := Enumerate(Width32, Constraint{Values(0, 3), Values(2, 4)})

	a := slices.Collect(seq)
	b := slices.Collect(seq)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Error(diff)
	}
}

func TestEarlyStop(t *testing.T) {
	n := 0
	for range Enumerate(Width32, Unrestricted) {
		n++
		if n == 10 {
			break
		}
	}
	require.Equal(t, 10, n)
}

func TestWidthSet(t *testing.T) {
	require.True(t, WidthSet(0).Has(Width16))
	require.True(t, WidthSet(0).Has(Width32))
	require.True(t, Widths16.Has(Width16))
	require.False(t, Widths16.Has(Width32))
	require.True(t, AllWidths.Has(Width32))
}

func TestSet(t *testing.T) {
	s := Values(0, 2, 7, 9)
	require.Equal(t, []byte{0, 2, 7}, s.Slice())
	require.False(t, s.Has(8))
	require.Equal(t, "[0 2 7]", s.String())
}
