// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package length decodes the lengths of 32-bit x86 instructions without
// disassembling them.
package length

import (
	"github.com/tsavola/x86gen/internal/isa/x86/in"
	"golang.org/x/xerrors"
)

var (
	ErrEmpty      = xerrors.New("no instruction")
	ErrTruncated  = xerrors.New("truncated instruction")
	ErrPrefixOnly = xerrors.New("prefixes without opcode")
)

type flags uint16

const (
	modRM    flags = 1 << iota
	imm8           // 1 byte
	imm16          // 2 bytes
	immZ           // 2 or 4 bytes by operand size
	moffs          // 2 or 4 bytes by address size
	farPtr         // immZ + 2
	testImm        // imm8 or immZ if ModRM reg is 0 or 1
	register       // ModRM mod field is ignored
	escape38       // three-byte map
	escape3A       // three-byte map with imm8
	escape         // two-byte map
)

var oneByte, twoByte [256]flags

func set(table *[256]flags, f flags, opcodes ...byte) {
	for _, op := range opcodes {
		table[op] |= f
	}
}

func setRange(table *[256]flags, f flags, first, last byte) {
	for op := int(first); op <= int(last); op++ {
		table[op] |= f
	}
}

func init() {
	for alu := 0; alu < 8; alu++ {
		base := byte(alu << 3)
		setRange(&oneByte, modRM, base, base+3)
		set(&oneByte, imm8, base+4)
		set(&oneByte, immZ, base+5)
	}
	set(&oneByte, modRM, 0x62, 0x63, 0x69, 0x6b, 0xc0, 0xc1, 0xc4, 0xc5, 0xc6, 0xc7, 0xf6, 0xf7, 0xfe, 0xff)
	setRange(&oneByte, modRM, 0x80, 0x8f)
	setRange(&oneByte, modRM, 0xd0, 0xd3)
	setRange(&oneByte, modRM, 0xd8, 0xdf)

	set(&oneByte, imm8, 0x6a, 0x6b, 0x80, 0x82, 0x83, 0xa8, 0xc0, 0xc1, 0xc6, 0xc8, 0xcd, 0xd4, 0xd5, 0xeb)
	setRange(&oneByte, imm8, 0x70, 0x7f)
	setRange(&oneByte, imm8, 0xb0, 0xb7)
	setRange(&oneByte, imm8, 0xe0, 0xe7)
	set(&oneByte, immZ, 0x68, 0x69, 0x81, 0xa9, 0xc7, 0xe8, 0xe9)
	setRange(&oneByte, immZ, 0xb8, 0xbf)
	set(&oneByte, imm16, 0xc2, 0xc8, 0xca)
	set(&oneByte, farPtr, 0x9a, 0xea)
	setRange(&oneByte, moffs, 0xa0, 0xa3)
	set(&oneByte, testImm, 0xf6, 0xf7)
	set(&oneByte, escape, in.Escape)

	setRange(&twoByte, modRM, 0x00, 0x03)
	set(&twoByte, modRM, 0x0d)
	setRange(&twoByte, modRM, 0x10, 0x2f)
	setRange(&twoByte, register, 0x20, 0x23)
	setRange(&twoByte, modRM, 0x40, 0x7f)
	setRange(&twoByte, modRM, 0x90, 0x9f)
	set(&twoByte, modRM, 0xa3, 0xa4, 0xa5, 0xab, 0xac, 0xad, 0xae, 0xaf)
	setRange(&twoByte, modRM, 0xb0, 0xc7)
	setRange(&twoByte, modRM, 0xd0, 0xff)
	twoByte[0x77] &^= modRM
	twoByte[0x24] &^= modRM
	twoByte[0x25] &^= modRM
	twoByte[0x26] &^= modRM
	twoByte[0x27] &^= modRM

	setRange(&twoByte, imm8, 0x70, 0x73)
	set(&twoByte, imm8, 0xa4, 0xac, 0xba, 0xc2, 0xc4, 0xc5, 0xc6)
	setRange(&twoByte, immZ, 0x80, 0x8f)
	set(&twoByte, escape38, in.Escape38)
	set(&twoByte, escape3A, in.Escape3A)
}

// Decode the length of the instruction at the start of text.
func Decode(text []byte) (int, error) {
	if len(text) == 0 {
		return 0, ErrEmpty
	}

	var (
		n      int
		op16   bool
		addr16 bool
	)

	for n < len(text) && in.IsLegacyPrefix(text[n]) {
		switch text[n] {
		case in.PrefixOperandSize:
			op16 = true
		case in.PrefixAddressSize:
			addr16 = true
		}
		n++
	}
	if n == len(text) {
		return 0, ErrPrefixOnly
	}

	opcode := text[n]
	n++
	f := oneByte[opcode]

	if f&escape != 0 {
		if n == len(text) {
			return 0, ErrTruncated
		}
		opcode = text[n]
		n++
		f = twoByte[opcode]

		switch {
		case f&escape38 != 0:
			f = modRM
			n++
		case f&escape3A != 0:
			f = modRM | imm8
			n++
		}
		if n > len(text) {
			return 0, ErrTruncated
		}
	}

	z := 4
	if op16 {
		z = 2
	}

	var size int

	if f&modRM != 0 {
		if n == len(text) {
			return 0, ErrTruncated
		}
		mod, ro, rm := in.SplitModRM(text[n])
		n++

		if f&register != 0 {
			mod = in.ModReg
		}

		if addr16 {
			size += in.DispSize16(mod, rm)
		} else {
			var base in.Base
			if in.HasSIB(mod, rm) {
				if n == len(text) {
					return 0, ErrTruncated
				}
				_, _, base = in.SplitSIB(text[n])
				n++
			}
			size += in.DispSize32(mod, rm, base)
		}

		if f&testImm != 0 && ro.Value() < 2 {
			if opcode&1 == 0 {
				size++
			} else {
				size += z
			}
		}
	}

	if f&imm8 != 0 {
		size++
	}
	if f&imm16 != 0 {
		size += 2
	}
	if f&immZ != 0 {
		size += z
	}
	if f&farPtr != 0 {
		size += z + 2
	}
	if f&moffs != 0 {
		if addr16 {
			size += 2
		} else {
			size += 4
		}
	}

	if n+size > len(text) {
		return 0, ErrTruncated
	}
	return n + size, nil
}

// Split a stream into instructions.  The instructions preceding an error are
// returned with it; the error is wrapped with the offset.
func Split(text []byte) (insns [][]byte, err error) {
	for offset := 0; offset < len(text); {
		n, err := Decode(text[offset:])
		if err != nil {
			return insns, xerrors.Errorf("offset %d: %w", offset, err)
		}

		insns = append(insns, text[offset:offset+n:offset+n])
		offset += n
	}

	return insns, nil
}
