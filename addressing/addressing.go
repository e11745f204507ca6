// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package addressing enumerates the ModRM, SIB and displacement byte
// sequences of x86 memory and register operands.
//
// Enumeration order is ModRM byte value ascending, with SIB byte values
// ascending nested inside ModRM values which require a SIB byte.  The same
// inputs always produce the same sequence.
package addressing

import (
	"fmt"
	"iter"

	"github.com/tsavola/x86gen/internal/isa/x86/in"
	"github.com/tsavola/x86gen/operand"
)

// Width of effective addresses.
type Width uint8

const (
	Width16 = Width(16)
	Width32 = Width(32)
)

func (w Width) String() string { return fmt.Sprintf("addr%d", w) }

// WidthSet is a bitmask of addressing widths.  The zero value means both.
type WidthSet uint8

const (
	Widths16  = WidthSet(1 << 0)
	Widths32  = WidthSet(1 << 1)
	AllWidths = Widths16 | Widths32
)

func (s WidthSet) Has(w Width) bool {
	if s == 0 {
		return true
	}
	switch w {
	case Width16:
		return s&Widths16 != 0
	case Width32:
		return s&Widths32 != 0
	default:
		return false
	}
}

// Set of allowed ModRM field values, one bit per value.  The zero value is
// empty.
type Set uint8

const (
	AllMods = Set(0x0f)
	AllRegs = Set(0xff)
)

// Values makes a set.  Values above 7 are ignored.
func Values(values ...byte) (s Set) {
	for _, v := range values {
		if v < 8 {
			s |= 1 << v
		}
	}
	return
}

func (s Set) Has(value byte) bool {
	return value < 8 && s&(1<<value) != 0
}

// Slice lists the member values in ascending order.
func (s Set) Slice() (values []byte) {
	for v := byte(0); v < 8; v++ {
		if s.Has(v) {
			values = append(values, v)
		}
	}
	return
}

func (s Set) String() string { return fmt.Sprint(s.Slice()) }

// Constraint restricts the mod and reg fields of enumerated ModRM bytes.
type Constraint struct {
	Mod Set
	Reg Set
}

// Unrestricted constraint allows every mod and reg value.
var Unrestricted = Constraint{AllMods, AllRegs}

// Form is one ModRM byte with its optional SIB byte and implied displacement
// size.
type Form struct {
	Width    Width
	ModRM    byte
	SIB      byte
	HasSIB   bool
	DispSize uint8
}

func (f Form) Mod() byte { return f.ModRM >> 6 }
func (f Form) Reg() byte { return (f.ModRM >> 3) & 7 }
func (f Form) RM() byte  { return f.ModRM & 7 }

// Register reports if the operand is register-direct (mod=3).
func (f Form) Register() bool { return f.ModRM>>6 == 3 }

// Len is the number of bytes including displacement.
func (f Form) Len() int {
	n := 1 + int(f.DispSize)
	if f.HasSIB {
		n++
	}
	return n
}

// Put the form into an instruction, with displacement sentinel bytes.
func (f Form) Put(o *in.Output) {
	o.Byte(f.ModRM)
	o.ByteIf(f.SIB, f.HasSIB)
	o.Fill(operand.Disp.Sentinel(), int(f.DispSize))
}

// AppendTo appends the form's bytes, with displacement sentinel bytes.
func (f Form) AppendTo(b []byte) []byte {
	b = append(b, f.ModRM)
	if f.HasSIB {
		b = append(b, f.SIB)
	}
	for i := 0; i < int(f.DispSize); i++ {
		b = append(b, operand.Disp.Sentinel())
	}
	return b
}

// Bytes of the form, with displacement sentinel bytes.
func (f Form) Bytes() []byte {
	return f.AppendTo(make([]byte, 0, f.Len()))
}

func (f Form) String() string {
	s := fmt.Sprintf("%s modrm=%02x", f.Width, f.ModRM)
	if f.HasSIB {
		s += fmt.Sprintf(" sib=%02x", f.SIB)
	}
	if f.DispSize != 0 {
		s += fmt.Sprintf(" disp%d", f.DispSize*8)
	}
	return s
}

// Enumerate the forms of the given addressing width which satisfy the
// constraint.  The sequence can be iterated any number of times.
func Enumerate(w Width, c Constraint) iter.Seq[Form] {
	switch w {
	case Width16:
		return func(yield func(Form) bool) { enumerate16(c, yield) }

	case Width32:
		return func(yield func(Form) bool) { enumerate32(c, yield) }

	default:
		panic(fmt.Sprintf("invalid addressing width: %d", w))
	}
}

// ModRM16 enumerates forms of 16-bit addressing.
func ModRM16(mods, regs Set) iter.Seq[Form] {
	return Enumerate(Width16, Constraint{mods, regs})
}

// ModRM32 enumerates forms of 32-bit addressing.
func ModRM32(mods, regs Set) iter.Seq[Form] {
	return Enumerate(Width32, Constraint{mods, regs})
}

func enumerate16(c Constraint, yield func(Form) bool) {
	for b := 0; b < 256; b++ {
		mod, ro, rm := in.SplitModRM(byte(b))
		if !c.Mod.Has(mod.Value()) || !c.Reg.Has(ro.Value()) {
			continue
		}

		f := Form{
			Width:    Width16,
			ModRM:    byte(b),
			DispSize: uint8(in.DispSize16(mod, rm)),
		}
		if !yield(f) {
			return
		}
	}
}

func enumerate32(c Constraint, yield func(Form) bool) {
	for b := 0; b < 256; b++ {
		mod, ro, rm := in.SplitModRM(byte(b))
		if !c.Mod.Has(mod.Value()) || !c.Reg.Has(ro.Value()) {
			continue
		}

		if !in.HasSIB(mod, rm) {
			f := Form{
				Width:    Width32,
				ModRM:    byte(b),
				DispSize: uint8(in.DispSize32(mod, rm, 0)),
			}
			if !yield(f) {
				return
			}
			continue
		}

		for sib := 0; sib < 256; sib++ {
			_, _, base := in.SplitSIB(byte(sib))

			f := Form{
				Width:    Width32,
				ModRM:    byte(b),
				SIB:      byte(sib),
				HasSIB:   true,
				DispSize: uint8(in.DispSize32(mod, rm, base)),
			}
			if !yield(f) {
				return
			}
		}
	}
}

// Count the forms without materializing them.
func Count(w Width, c Constraint) (n int) {
	for range Enumerate(w, c) {
		n++
	}
	return
}
