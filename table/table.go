// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package table describes the 32-bit x86 instruction forms to be generated.
//
// An Entry is an opcode with one or more legs.  A leg is a combination of
// legacy prefixes, ModRM treatment and trailing operand fields.  The
// addressing width of a leg follows from its address-size prefix.
package table

import (
	"fmt"
	"strings"

	"github.com/tsavola/x86gen/addressing"
	"github.com/tsavola/x86gen/internal/isa/x86/in"
	"github.com/tsavola/x86gen/operand"
)

// Map is an opcode map.
type Map uint8

const (
	MapPrimary Map = iota
	Map0F
	Map0F38
	Map0F3A
)

var mapEscapes = [...][]byte{
	MapPrimary: nil,
	Map0F:      {in.Escape},
	Map0F38:    {in.Escape, in.Escape38},
	Map0F3A:    {in.Escape, in.Escape3A},
}

var mapNames = [...]string{
	MapPrimary: "primary",
	Map0F:      "0f",
	Map0F38:    "0f38",
	Map0F3A:    "0f3a",
}

// Escape bytes which precede the opcode.
func (m Map) Escape() []byte { return mapEscapes[m] }
func (m Map) String() string { return mapNames[m] }

// Prefixes is a set of legacy prefixes.
type Prefixes uint8

const (
	AddressSize Prefixes = 1 << iota // 0x67
	OperandSize                      // 0x66
	Repne                            // 0xf2
	Rep                              // 0xf3
)

// Bytes in emission order: 0x67, 0x66, 0xf2, 0xf3.
func (p Prefixes) Bytes() []byte {
	b := make([]byte, 0, 4)
	return p.AppendTo(b)
}

func (p Prefixes) AppendTo(b []byte) []byte {
	if p&AddressSize != 0 {
		b = append(b, in.PrefixAddressSize)
	}
	if p&OperandSize != 0 {
		b = append(b, in.PrefixOperandSize)
	}
	if p&Repne != 0 {
		b = append(b, in.PrefixRepne)
	}
	if p&Rep != 0 {
		b = append(b, in.PrefixRep)
	}
	return b
}

// Put the prefix bytes into an instruction.
func (p Prefixes) Put(o *in.Output) {
	o.ByteIf(in.PrefixAddressSize, p&AddressSize != 0)
	o.ByteIf(in.PrefixOperandSize, p&OperandSize != 0)
	o.ByteIf(in.PrefixRepne, p&Repne != 0)
	o.ByteIf(in.PrefixRep, p&Rep != 0)
}

// Width of addressing selected by the prefixes.
func (p Prefixes) Width() addressing.Width {
	if p&AddressSize != 0 {
		return addressing.Width16
	}
	return addressing.Width32
}

// Attr of operand fields selected by the prefixes.
func (p Prefixes) Attr() operand.Attr {
	return operand.Attr{
		Operand16: p&OperandSize != 0,
		Address16: p&AddressSize != 0,
	}
}

func (p Prefixes) String() string {
	if p == 0 {
		return "-"
	}
	var parts []string
	for _, b := range p.Bytes() {
		parts = append(parts, fmt.Sprintf("%02x", b))
	}
	return strings.Join(parts, " ")
}

// ModRMKind determines how the ModRM byte of a leg is produced.
type ModRMKind uint8

const (
	NoModRM    ModRMKind = iota
	Enumerated           // addressing forms with SIB and displacement
	RawModRM             // every byte value, without SIB or displacement
)

var modRMKindNames = [...]string{
	NoModRM:    "none",
	Enumerated: "modrm",
	RawModRM:   "raw",
}

func (k ModRMKind) String() string { return modRMKindNames[k] }

// Leg is one variant of an entry.
type Leg struct {
	Prefixes Prefixes
	ModRM    ModRMKind
	Mod      addressing.Set // zero value allows all mods
	Reg      addressing.Set // zero value allows all regs
	Operands []operand.Field
}

// Width of addressing.
func (l *Leg) Width() addressing.Width { return l.Prefixes.Width() }

// Constraint for enumeration.
func (l *Leg) Constraint() addressing.Constraint {
	c := addressing.Constraint{Mod: l.Mod, Reg: l.Reg}
	if c.Mod == 0 {
		c.Mod = addressing.AllMods
	}
	if c.Reg == 0 {
		c.Reg = addressing.AllRegs
	}
	return c
}

// Count the instructions generated by the leg.
func (l *Leg) Count() int {
	switch l.ModRM {
	case Enumerated:
		return addressing.Count(l.Width(), l.Constraint())

	case RawModRM:
		return 256

	default:
		return 1
	}
}

func (l *Leg) String() string {
	s := fmt.Sprintf("%s %s", l.Prefixes, l.ModRM)
	if l.ModRM == Enumerated {
		s += fmt.Sprintf(" %s", l.Width())
		if l.Mod != 0 {
			s += fmt.Sprintf(" mod=%s", l.Mod)
		}
		if l.Reg != 0 {
			s += fmt.Sprintf(" reg=%s", l.Reg)
		}
	}
	for _, f := range l.Operands {
		s += " " + f.String()
	}
	return s
}

// Entry is an instruction opcode (with possible fixed suffix bytes) and its
// legs.  Entries with a non-empty Exclude reason are documented but not
// generated.
type Entry struct {
	Name    string
	Map     Map
	Opcode  []byte
	Legs    []Leg
	Exclude string
}

// Excluded reports if the entry is not generated.
func (e *Entry) Excluded() bool { return e.Exclude != "" }

// Head is the escape and opcode bytes.
func (e *Entry) Head() []byte {
	return append(append([]byte(nil), e.Map.Escape()...), e.Opcode...)
}

// Count the instructions generated by the entry.
func (e *Entry) Count() (n int) {
	if e.Excluded() {
		return 0
	}
	for i := range e.Legs {
		n += e.Legs[i].Count()
	}
	return
}

func (e *Entry) String() string {
	return fmt.Sprintf("% x %s", e.Head(), e.Name)
}

var all = build()

// All entries in emission order.  The returned slice may be modified, but
// the entries it refers to are shared.
func All() []Entry {
	return append([]Entry(nil), all...)
}

func build() (t []Entry) {
	t = append(t, primary()...)
	t = append(t, escaped()...)
	return
}
