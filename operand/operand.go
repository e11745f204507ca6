// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package operand describes the trailing operand fields of generated
// instructions.  Each field is filled with a sentinel byte which identifies
// its role, so that a consumer can locate (and optionally patch) the fields
// without decoding the instruction.
package operand

import (
	"encoding/binary"
	"fmt"

	"github.com/tsavola/x86gen/internal/isa/x86/in"
	"golang.org/x/xerrors"
)

// Role of an operand field.
type Role uint8

const (
	Rel   Role = iota // branch displacement
	Disp              // memory displacement
	Imm               // immediate value
	Moffs             // direct memory offset
	Sel               // far pointer segment selector
	Off               // far pointer offset
)

var roleSentinels = [...]byte{
	Rel:   0x00,
	Disp:  0x11,
	Imm:   0x22,
	Moffs: 0x33,
	Sel:   0x44,
	Off:   0x55,
}

var roleNames = [...]string{
	Rel:   "rel",
	Disp:  "disp",
	Imm:   "imm",
	Moffs: "moffs",
	Sel:   "sel",
	Off:   "off",
}

// Roles lists all roles.
var Roles = []Role{Rel, Disp, Imm, Moffs, Sel, Off}

func (r Role) Sentinel() byte { return roleSentinels[r] }
func (r Role) String() string { return roleNames[r] }

// RoleOf looks up the role identified by a sentinel byte.
func RoleOf(sentinel byte) (Role, bool) {
	for _, r := range Roles {
		if r.Sentinel() == sentinel {
			return r, true
		}
	}
	return 0, false
}

// Attr describes the size attributes implied by the legacy prefixes of an
// instruction.
type Attr struct {
	Operand16 bool // 0x66
	Address16 bool // 0x67
}

// Sizing determines how a field's size is chosen.
type Sizing uint8

const (
	Fixed        Sizing = iota // Field.Size bytes
	OperandSized               // 2 bytes with 16-bit operand size, otherwise 4
	AddressSized               // 2 bytes with 16-bit address size, otherwise 4
)

// Field is a trailing operand of an instruction.
type Field struct {
	Role   Role
	Size   uint8
	Sizing Sizing
}

var (
	Imm8  = Field{Role: Imm, Size: 1}
	Imm16 = Field{Role: Imm, Size: 2}
	Imm32 = Field{Role: Imm, Size: 4}
	ImmZ  = Field{Role: Imm, Sizing: OperandSized}

	Rel8  = Field{Role: Rel, Size: 1}
	Rel16 = Field{Role: Rel, Size: 2}
	Rel32 = Field{Role: Rel, Size: 4}
	RelZ  = Field{Role: Rel, Sizing: OperandSized}

	Moffs32 = Field{Role: Moffs, Size: 4}
	MoffsA  = Field{Role: Moffs, Sizing: AddressSized}

	Sel16 = Field{Role: Sel, Size: 2}
	OffZ  = Field{Role: Off, Sizing: OperandSized}
)

// FarPtr is the ptr16:16 or ptr16:32 operand of direct far calls and jumps.
// The offset precedes the selector.
var FarPtr = []Field{OffZ, Sel16}

// Len of the field under the given attributes.
func (f Field) Len(attr Attr) int {
	switch f.Sizing {
	case OperandSized:
		return zsize(attr.Operand16)
	case AddressSized:
		return zsize(attr.Address16)
	default:
		return int(f.Size)
	}
}

func (f Field) String() string {
	switch f.Sizing {
	case OperandSized:
		return f.Role.String() + "16/32"
	case AddressSized:
		return f.Role.String() + "A"
	default:
		return fmt.Sprintf("%s%d", f.Role, f.Size*8)
	}
}

func zsize(short bool) int {
	if short {
		return 2
	}
	return 4
}

// Len of the fields under the given attributes.
func Len(attr Attr, fields []Field) (n int) {
	for _, f := range fields {
		n += f.Len(attr)
	}
	return
}

// Put sentinel-filled fields into an instruction.
func Put(o *in.Output, attr Attr, fields []Field) {
	for _, f := range fields {
		o.Fill(f.Role.Sentinel(), f.Len(attr))
	}
}

// Append sentinel-filled fields.
func Append(b []byte, attr Attr, fields []Field) []byte {
	for _, f := range fields {
		s := f.Role.Sentinel()
		for i := f.Len(attr); i > 0; i-- {
			b = append(b, s)
		}
	}
	return b
}

// Span is the location of a field within an instruction.
type Span struct {
	Role   Role
	Offset int
	Len    int
}

// ErrNoMatch is wrapped by Locate errors.
var ErrNoMatch = xerrors.New("operand fields do not match instruction")

// Locate the fields at the end of an instruction.  The sentinel bytes must
// be intact.
func Locate(insn []byte, attr Attr, fields []Field) ([]Span, error) {
	offset := len(insn) - Len(attr, fields)
	if offset < 0 {
		return nil, xerrors.Errorf("instruction is %d bytes: %w", len(insn), ErrNoMatch)
	}

	spans := make([]Span, 0, len(fields))

	for _, f := range fields {
		s := Span{f.Role, offset, f.Len(attr)}
		for i := s.Offset; i < s.Offset+s.Len; i++ {
			if insn[i] != f.Role.Sentinel() {
				return nil, xerrors.Errorf("byte 0x%02x at offset %d of %s field: %w", insn[i], i, f, ErrNoMatch)
			}
		}
		spans = append(spans, s)
		offset += s.Len
	}

	return spans, nil
}

// Patch a little-endian value into a located field.  Excess high-order bits
// are discarded.
func Patch(insn []byte, s Span, value uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], value)
	copy(insn[s.Offset:s.Offset+s.Len], b[:s.Len])
}
