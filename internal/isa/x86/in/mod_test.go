// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package in

import (
	"bytes"
	"testing"
)

func TestDispSize16(t *testing.T) {
	for _, x := range []struct {
		mod  Mod
		rm   ModRM
		size int
	}{
		{ModMem, 0, 0},
		{ModMem, 5, 0},
		{ModMem, ModRMDisp16, 2},
		{ModMem, 7, 0},
		{ModMemDisp8, 0, 1},
		{ModMemDisp8, ModRMDisp16, 1},
		{ModMemDisp32, 3, 2},
		{ModMemDisp32, ModRMDisp16, 2},
		{ModReg, ModRMDisp16, 0},
	} {
		if size := DispSize16(x.mod, x.rm); size != x.size {
			t.Errorf("DispSize16(%s, %d) = %d", x.mod, x.rm, size)
		}
	}
}

func TestDispSize32(t *testing.T) {
	for _, x := range []struct {
		mod  Mod
		rm   ModRM
		base Base
		size int
	}{
		{ModMem, 0, 0, 0},
		{ModMem, ModRMDisp32, 0, 4},
		{ModMem, ModRMSIB, 0, 0},
		{ModMem, ModRMSIB, BaseDisp32, 4},
		{ModMemDisp8, ModRMSIB, BaseDisp32, 1},
		{ModMemDisp8, ModRMDisp32, 0, 1},
		{ModMemDisp32, 0, 0, 4},
		{ModMemDisp32, ModRMSIB, BaseDisp32, 4},
		{ModReg, ModRMDisp32, 0, 0},
		{ModReg, ModRMSIB, BaseDisp32, 0},
	} {
		if size := DispSize32(x.mod, x.rm, x.base); size != x.size {
			t.Errorf("DispSize32(%s, %d, %d) = %d", x.mod, x.rm, x.base, size)
		}
	}
}

func TestHasSIB(t *testing.T) {
	for b := 0; b < 256; b++ {
		mod, _, rm := SplitModRM(byte(b))
		expect := b>>6 != 3 && b&7 == 4
		if HasSIB(mod, rm) != expect {
			t.Errorf("HasSIB(0x%02x) = %v", b, !expect)
		}
	}
}

func TestModRMFields(t *testing.T) {
	b := MakeModRM(ModField(1), ROField(0), RMField(2))
	if b != 0x42 {
		t.Fatalf("MakeModRM(1, 0, 2) = 0x%02x", b)
	}

	mod, ro, rm := SplitModRM(0xd7)
	if mod.Value() != 3 || ro.Value() != 2 || rm.Value() != 7 {
		t.Errorf("SplitModRM(0xd7) = %d, %d, %d", mod.Value(), ro.Value(), rm.Value())
	}
	if mod.Memory() {
		t.Error("register-direct mod reported as memory")
	}

	s, i, base := SplitSIB(0x65)
	if MakeSIB(s, i, base) != 0x65 || base != BaseDisp32 || i != NoIndex {
		t.Errorf("SplitSIB(0x65) = 0x%02x, 0x%02x, %d", s, i, base)
	}
}

func TestOutput(t *testing.T) {
	var o Output

	o.Byte(PrefixOperandSize)
	o.ByteIf(PrefixAddressSize, false)
	o.Put([]byte{Escape, 0xa2})
	head := o.Len()
	o.Mod(ModMemDisp8, 0, 4)
	o.SIB(Scale0, NoIndex, BaseDisp32)
	o.Fill(0x11, 1)

	if expect := []byte{0x66, 0x0f, 0xa2, 0x44, 0x25, 0x11}; !bytes.Equal(o.Bytes(), expect) {
		t.Errorf("output: % x", o.Bytes())
	}

	o.Truncate(head)
	o.Fill(0x22, 4)
	if b := o.AppendTo(nil); !bytes.Equal(b, []byte{0x66, 0x0f, 0xa2, 0x22, 0x22, 0x22, 0x22}) {
		t.Errorf("output after truncate: % x", b)
	}
}

func TestOutputOverflow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("no panic")
		}
	}()

	var o Output
	o.Fill(0x90, 17)
}

func TestIsLegacyPrefix(t *testing.T) {
	n := 0
	for b := 0; b < 256; b++ {
		if IsLegacyPrefix(byte(b)) {
			n++
		}
	}
	if n != 11 {
		t.Errorf("%d legacy prefixes", n)
	}
	if IsLegacyPrefix(Escape) {
		t.Error("escape is not a prefix")
	}
}
