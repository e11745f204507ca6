// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Instruction stream
//
// Each generated instruction is laid out as legacy prefixes (0x67, 0x66,
// 0xf2, 0xf3 in that order), escape bytes (0x0f, or 0x0f 0x38 or 0x0f 0x3a),
// the opcode (possibly with fixed suffix bytes), the ModRM byte, the SIB
// byte, the displacement and trailing operand fields.  Displacements and
// operand fields consist of sentinel bytes:
//
//     rel    0x00
//     disp   0x11
//     imm    0x22
//     moffs  0x33
//     sel    0x44
//     off    0x55
//
// Instructions are concatenated without separators; package length can split
// the stream.
//
package x86gen
