// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"github.com/tsavola/x86gen/addressing"
	"github.com/tsavola/x86gen/operand"
)

// Prefix combinations of SSE instructions.
var (
	ps   = []Prefixes{0}
	pd   = []Prefixes{OperandSize}
	ss   = []Prefixes{Rep}
	sd   = []Prefixes{Repne}
	mmx  = []Prefixes{0, OperandSize}             // MMX and SSE2 integer
	sse4 = []Prefixes{0, OperandSize, Rep, Repne} // ps, pd, ss, sd
	npz  = []Prefixes{OperandSize, Repne}         // pd, sd
)

type legOpt func(*Leg)

func mod(values ...byte) legOpt {
	return func(l *Leg) { l.Mod = addressing.Values(values...) }
}

func reg(values ...byte) legOpt {
	return func(l *Leg) { l.Reg = addressing.Values(values...) }
}

func regs(first, last byte) legOpt {
	return func(l *Leg) {
		l.Reg = 0
		for v := first; v <= last; v++ {
			l.Reg |= addressing.Values(v)
		}
	}
}

func ops(fields ...operand.Field) legOpt {
	return func(l *Leg) { l.Operands = fields }
}

// memory-only operand
var mem = mod(0, 1, 2)

// register-direct operand
var direct = mod(3)

func leg(p Prefixes, kind ModRMKind, opts []legOpt) Leg {
	l := Leg{Prefixes: p, ModRM: kind}
	for _, f := range opts {
		f(&l)
	}
	return l
}

// rm is a single enumerated leg.
func rm(p Prefixes, opts ...legOpt) []Leg {
	return []Leg{leg(p, Enumerated, opts)}
}

// rmb is a byte-sized operation: 32-bit addressing, then 16-bit addressing.
func rmb(opts ...legOpt) []Leg {
	return rmp(ps, opts...)
}

// rmv is an operation with 16-bit and 32-bit operand size variants.
func rmv(opts ...legOpt) []Leg {
	return rmp(mmx, opts...)
}

// rmp makes legs with each prefix combination under 32-bit addressing, then
// each under 16-bit addressing.
func rmp(prefixes []Prefixes, opts ...legOpt) (legs []Leg) {
	for _, p := range prefixes {
		legs = append(legs, leg(p, Enumerated, opts))
	}
	for _, p := range prefixes {
		legs = append(legs, leg(AddressSize|p, Enumerated, opts))
	}
	return
}

// regp makes register-direct legs with each prefix combination.  Address
// size doesn't affect them.
func regp(prefixes []Prefixes, opts ...legOpt) (legs []Leg) {
	opts = append([]legOpt{direct}, opts...)
	for _, p := range prefixes {
		legs = append(legs, leg(p, Enumerated, opts))
	}
	return
}

// raw enumerates all ModRM byte values without addressing semantics.
func raw() []Leg {
	return []Leg{{ModRM: RawModRM}}
}

// fixed is a leg without ModRM.
func fixed(p Prefixes, fields ...operand.Field) []Leg {
	return []Leg{{Prefixes: p, Operands: fields}}
}

// fixedv has 32-bit and 16-bit operand size variants.
func fixedv(fields ...operand.Field) []Leg {
	return append(fixed(0, fields...), fixed(OperandSize, fields...)...)
}

// fixeda has 32-bit and 16-bit address size variants.
func fixeda(fields ...operand.Field) []Leg {
	return append(fixed(0, fields...), fixed(AddressSize, fields...)...)
}

func entry(name string, m Map, opcode []byte, legs [][]Leg) Entry {
	e := Entry{
		Name:   name,
		Map:    m,
		Opcode: opcode,
	}
	for _, ls := range legs {
		e.Legs = append(e.Legs, ls...)
	}
	return e
}

func op(name string, opcode byte, legs ...[]Leg) Entry {
	return entry(name, MapPrimary, []byte{opcode}, legs)
}

func op0f(name string, opcode byte, legs ...[]Leg) Entry {
	return entry(name, Map0F, []byte{opcode}, legs)
}

func op38(name string, opcode byte, legs ...[]Leg) Entry {
	return entry(name, Map0F38, []byte{opcode}, legs)
}

func op3a(name string, opcode byte, legs ...[]Leg) Entry {
	return entry(name, Map0F3A, []byte{opcode}, legs)
}

// bare is an instruction without prefixes or operand bytes, possibly with
// fixed bytes after the opcode.
func bare(name string, m Map, opcode ...byte) Entry {
	return entry(name, m, opcode, [][]Leg{fixed(0)})
}

// span makes an entry for each opcode in the inclusive range.
func span(name string, m Map, first, last byte, legs ...[]Leg) (entries []Entry) {
	for o := int(first); o <= int(last); o++ {
		entries = append(entries, entry(name, m, []byte{byte(o)}, legs))
	}
	return
}

func exclude(reason string, e Entry) Entry {
	e.Exclude = reason
	return e
}

func join(groups ...[]Entry) (entries []Entry) {
	for _, g := range groups {
		entries = append(entries, g...)
	}
	return
}

// one wraps entries for join.
func one(entries ...Entry) []Entry { return entries }
