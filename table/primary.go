// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"github.com/tsavola/x86gen/operand"
)

// arith makes the six encodings of an ALU operation at base, base+1, ...,
// base+5.
func arith(name string, base byte) []Entry {
	return one(
		op(name+" r/m8, r8", base+0, rmb()),
		op(name+" r/m16/32, r16/32", base+1, rmv()),
		op(name+" r8, r/m8", base+2, rmb()),
		op(name+" r16/32, r/m16/32", base+3, rmv()),
		op(name+" AL, imm8", base+4, fixed(0, operand.Imm8)),
		op(name+" eAX, imm16/32", base+5, fixedv(operand.ImmZ)),
	)
}

func primary() []Entry {
	return join(
		arith("ADD", 0x00),
		one(
			op("PUSH ES", 0x06, fixed(0)),
			op("POP ES", 0x07, fixed(0)),
		),
		arith("OR", 0x08),
		one(
			op("PUSH CS", 0x0e, fixed(0)),
		),
		arith("ADC", 0x10),
		one(
			op("PUSH SS", 0x16, fixed(0)),
			op("POP SS", 0x17, fixed(0)),
		),
		arith("SBB", 0x18),
		one(
			op("PUSH DS", 0x1e, fixed(0)),
			op("POP DS", 0x1f, fixed(0)),
		),
		arith("AND", 0x20),
		one(
			op("DAA", 0x27, fixed(0)),
		),
		arith("SUB", 0x28),
		one(
			op("DAS", 0x2f, fixed(0)),
		),
		arith("XOR", 0x30),
		one(
			op("AAA", 0x37, fixed(0)),
		),
		arith("CMP", 0x38),
		one(
			op("AAS", 0x3f, fixed(0)),
		),
		span("INC r16/32", MapPrimary, 0x40, 0x47, fixedv()),
		span("DEC r16/32", MapPrimary, 0x48, 0x4f, fixedv()),
		span("PUSH r16/32", MapPrimary, 0x50, 0x57, fixedv()),
		span("POP r16/32", MapPrimary, 0x58, 0x5f, fixedv()),
		one(
			op("PUSHA", 0x60, fixedv()),
			op("POPA", 0x61, fixedv()),
			op("BOUND r16/32, m16/32&16/32", 0x62, rmv(mem)),
			op("ARPL r/m16, r16", 0x63, rmb()),
			op("PUSH imm16/32", 0x68, fixedv(operand.ImmZ)),
			op("IMUL r16/32, r/m16/32, imm16/32", 0x69, rmv(ops(operand.ImmZ))),
			op("PUSH imm8", 0x6a, fixed(0, operand.Imm8)),
			op("IMUL r16/32, r/m16/32, imm8", 0x6b, rmv(ops(operand.Imm8))),
			op("INSB", 0x6c, fixed(0)),
			op("INSW/INSD", 0x6d, fixedv()),
			op("OUTSB", 0x6e, fixed(0)),
			op("OUTSW/OUTSD", 0x6f, fixedv()),
		),
		span("Jcc rel8", MapPrimary, 0x70, 0x7f, fixed(0, operand.Rel8)),
		one(
			op("ADD/OR/ADC/SBB/AND/SUB/XOR/CMP r/m8, imm8", 0x80, rmb(ops(operand.Imm8))),
			op("ADD/OR/ADC/SBB/AND/SUB/XOR/CMP r/m16/32, imm16/32", 0x81, rmv(ops(operand.ImmZ))),
			op("ADD/OR/ADC/SBB/AND/SUB/XOR/CMP r/m8, imm8 (alias)", 0x82, rmb(ops(operand.Imm8))),
			op("ADD/OR/ADC/SBB/AND/SUB/XOR/CMP r/m16/32, imm8", 0x83, rmv(ops(operand.Imm8))),
			op("TEST r/m8, r8", 0x84, rmb()),
			op("TEST r/m16/32, r16/32", 0x85, rmv()),
			op("XCHG r/m8, r8", 0x86, rmb()),
			op("XCHG r/m16/32, r16/32", 0x87, rmv()),
			op("MOV r/m8, r8", 0x88, rmb()),
			op("MOV r/m16/32, r16/32", 0x89, rmv()),
			op("MOV r8, r/m8", 0x8a, rmb()),
			op("MOV r16/32, r/m16/32", 0x8b, rmv()),
			op("MOV r/m16, Sreg", 0x8c, rmb(regs(0, 5))),
			op("LEA r16/32, m", 0x8d, rmv(mem)),
			op("MOV Sreg, r/m16", 0x8e, rmb(regs(0, 5))),
			op("POP r/m16/32", 0x8f, rmv(reg(0))),
		),
		span("XCHG r16/32, eAX", MapPrimary, 0x90, 0x97, fixedv()),
		one(
			op("CBW/CWDE", 0x98, fixedv()),
			op("CWD/CDQ", 0x99, fixedv()),
			op("CALLF ptr16:16/32", 0x9a, fixedv(operand.FarPtr...)),
			op("WAIT", 0x9b, fixed(0)),
			op("PUSHF", 0x9c, fixedv()),
			op("POPF", 0x9d, fixedv()),
			op("SAHF", 0x9e, fixed(0)),
			op("LAHF", 0x9f, fixed(0)),
			op("MOV AL, moffs8", 0xa0, fixeda(operand.MoffsA)),
			op("MOV eAX, moffs16/32", 0xa1, rmvFixed(operand.MoffsA)),
			op("MOV moffs8, AL", 0xa2, fixeda(operand.MoffsA)),
			op("MOV moffs16/32, eAX", 0xa3, rmvFixed(operand.MoffsA)),
			op("MOVSB", 0xa4, fixed(0)),
			op("MOVSW/MOVSD", 0xa5, fixedv()),
			op("CMPSB", 0xa6, fixed(0)),
			op("CMPSW/CMPSD", 0xa7, fixedv()),
			op("TEST AL, imm8", 0xa8, fixed(0, operand.Imm8)),
			op("TEST eAX, imm16/32", 0xa9, fixedv(operand.ImmZ)),
			op("STOSB", 0xaa, fixed(0)),
			op("STOSW/STOSD", 0xab, fixedv()),
			op("LODSB", 0xac, fixed(0)),
			op("LODSW/LODSD", 0xad, fixedv()),
			op("SCASB", 0xae, fixed(0)),
			op("SCASW/SCASD", 0xaf, fixedv()),
		),
		span("MOV r8, imm8", MapPrimary, 0xb0, 0xb7, fixed(0, operand.Imm8)),
		span("MOV r16/32, imm16/32", MapPrimary, 0xb8, 0xbf, fixedv(operand.ImmZ)),
		one(
			op("ROL/ROR/RCL/RCR/SHL/SHR/SAL/SAR r/m8, imm8", 0xc0, rmb(ops(operand.Imm8))),
			op("ROL/ROR/RCL/RCR/SHL/SHR/SAL/SAR r/m16/32, imm8", 0xc1, rmv(ops(operand.Imm8))),
			op("RETN imm16", 0xc2, fixed(0, operand.Imm16)),
			op("RETN", 0xc3, fixed(0)),
			op("LES r16/32, m16:16/32", 0xc4, rmv(mem)),
			op("LDS r16/32, m16:16/32", 0xc5, rmv(mem)),
			op("MOV r/m8, imm8", 0xc6, rmb(reg(0), ops(operand.Imm8))),
			op("MOV r/m16/32, imm16/32", 0xc7, rmv(reg(0), ops(operand.ImmZ))),
			op("ENTER imm16, imm8", 0xc8, fixed(0, operand.Imm16, operand.Imm8)),
			op("LEAVE", 0xc9, fixed(0)),
			op("RETF imm16", 0xca, fixed(0, operand.Imm16)),
			op("RETF", 0xcb, fixed(0)),
			op("INT3", 0xcc, fixed(0)),
			op("INT imm8", 0xcd, fixed(0, operand.Imm8)),
			op("INTO", 0xce, fixed(0)),
			op("IRET/IRETD", 0xcf, fixedv()),
			op("ROL/ROR/RCL/RCR/SHL/SHR/SAL/SAR r/m8, 1", 0xd0, rmb()),
			op("ROL/ROR/RCL/RCR/SHL/SHR/SAL/SAR r/m16/32, 1", 0xd1, rmv()),
			op("ROL/ROR/RCL/RCR/SHL/SHR/SAL/SAR r/m8, CL", 0xd2, rmb()),
			op("ROL/ROR/RCL/RCR/SHL/SHR/SAL/SAR r/m16/32, CL", 0xd3, rmv()),
			bare("AAM", MapPrimary, 0xd4, 0x0a),
			op("AAM imm8", 0xd4, fixed(0, operand.Imm8)),
			bare("AAD", MapPrimary, 0xd5, 0x0a),
			op("AAD imm8", 0xd5, fixed(0, operand.Imm8)),
			op("SALC", 0xd6, fixed(0)),
			op("XLAT", 0xd7, fixed(0)),
		),
		x87(),
		one(
			op("LOOPNZ rel8", 0xe0, fixeda(operand.Rel8)),
			op("LOOPZ rel8", 0xe1, fixeda(operand.Rel8)),
			op("LOOP rel8", 0xe2, fixeda(operand.Rel8)),
			op("JCXZ/JECXZ rel8", 0xe3, fixeda(operand.Rel8)),
			op("IN AL, imm8", 0xe4, fixed(0, operand.Imm8)),
			op("IN eAX, imm8", 0xe5, fixedv(operand.Imm8)),
			op("OUT imm8, AL", 0xe6, fixed(0, operand.Imm8)),
			op("OUT imm8, eAX", 0xe7, fixedv(operand.Imm8)),
			op("CALL rel16/32", 0xe8, fixedv(operand.RelZ)),
			op("JMP rel16/32", 0xe9, fixedv(operand.RelZ)),
			op("JMPF ptr16:16/32", 0xea, fixedv(operand.FarPtr...)),
			op("JMP rel8", 0xeb, fixed(0, operand.Rel8)),
			op("IN AL, DX", 0xec, fixed(0)),
			op("IN eAX, DX", 0xed, fixedv()),
			op("OUT DX, AL", 0xee, fixed(0)),
			op("OUT DX, eAX", 0xef, fixedv()),
			op("INT1", 0xf1, fixed(0)),
			op("HLT", 0xf4, fixed(0)),
			op("CMC", 0xf5, fixed(0)),
			op("TEST r/m8, imm8", 0xf6, rmb(reg(0, 1), ops(operand.Imm8))),
			op("NOT/NEG/MUL/IMUL/DIV/IDIV r/m8", 0xf6, rmb(regs(2, 7))),
			op("TEST r/m16/32, imm16/32", 0xf7, rmv(reg(0, 1), ops(operand.ImmZ))),
			op("NOT/NEG/MUL/IMUL/DIV/IDIV r/m16/32", 0xf7, rmv(regs(2, 7))),
			op("CLC", 0xf8, fixed(0)),
			op("STC", 0xf9, fixed(0)),
			op("CLI", 0xfa, fixed(0)),
			op("STI", 0xfb, fixed(0)),
			op("CLD", 0xfc, fixed(0)),
			op("STD", 0xfd, fixed(0)),
			op("INC/DEC r/m8", 0xfe, rmb(reg(0, 1))),
			op("INC/DEC/CALL/JMP/PUSH r/m16/32", 0xff, rmv(reg(0, 1, 2, 4, 6))),
			op("CALLF/JMPF m16:16/32", 0xff, rmv(mem, reg(3, 5))),
		),
	)
}

// rmvFixed has operand size and address size variants without ModRM.
func rmvFixed(fields ...operand.Field) (legs []Leg) {
	for _, p := range []Prefixes{0, OperandSize, AddressSize, AddressSize | OperandSize} {
		legs = append(legs, fixed(p, fields...)...)
	}
	return
}

func x87() []Entry {
	return one(
		op("FADD/FMUL/FCOM/FCOMP/FSUB/FSUBR/FDIV/FDIVR", 0xd8, rmb()),

		op("FLD m32fp/ST(i)", 0xd9, rmb(reg(0))),
		op("FXCH ST(i)", 0xd9, rm(0, direct, reg(1))),
		op("FST m32fp", 0xd9, rmb(mem, reg(2))),
		bare("FNOP", MapPrimary, 0xd9, 0xd0),
		op("FSTP m32fp/ST(i)", 0xd9, rmb(reg(3))),
		op("FLDENV m14/28byte", 0xd9, rmb(mem, reg(4))),
		bare("FCHS", MapPrimary, 0xd9, 0xe0),
		bare("FABS", MapPrimary, 0xd9, 0xe1),
		bare("FTST", MapPrimary, 0xd9, 0xe4),
		bare("FXAM", MapPrimary, 0xd9, 0xe5),
		op("FLDCW m2byte", 0xd9, rmb(mem, reg(5))),
		bare("FLD1", MapPrimary, 0xd9, 0xe8),
		bare("FLDL2T", MapPrimary, 0xd9, 0xe9),
		bare("FLDL2E", MapPrimary, 0xd9, 0xea),
		bare("FLDPI", MapPrimary, 0xd9, 0xeb),
		bare("FLDLG2", MapPrimary, 0xd9, 0xec),
		bare("FLDLN2", MapPrimary, 0xd9, 0xed),
		bare("FLDZ", MapPrimary, 0xd9, 0xee),
		op("FNSTENV m14/28byte", 0xd9, rmb(mem, reg(6))),
		op("F2XM1/FYL2X/FPTAN/FPATAN/FXTRACT/FPREM1/FDECSTP/FINCSTP", 0xd9, rm(0, direct, reg(6))),
		op("FNSTCW m2byte", 0xd9, rmb(mem, reg(7))),
		op("FPREM/FYL2XP1/FSQRT/FSINCOS/FRNDINT/FSCALE/FSIN/FCOS", 0xd9, rm(0, direct, reg(7))),

		op("FIADD/FIMUL/FICOM/FICOMP/FISUB/FISUBR/FIDIV/FIDIVR m32int", 0xda, rmb(mem)),
		op("FCMOVB/FCMOVE/FCMOVBE/FCMOVU", 0xda, rm(0, direct, regs(0, 3))),
		bare("FUCOMPP", MapPrimary, 0xda, 0xe9),

		op("FILD/FISTTP/FIST/FISTP m32int, FCMOVNB/FCMOVNE/FCMOVNBE/FCMOVNU", 0xdb, rmb(regs(0, 3))),
		bare("FNENI", MapPrimary, 0xdb, 0xe0),
		bare("FNDISI", MapPrimary, 0xdb, 0xe1),
		bare("FNCLEX", MapPrimary, 0xdb, 0xe2),
		bare("FNINIT", MapPrimary, 0xdb, 0xe3),
		bare("FNSETPM", MapPrimary, 0xdb, 0xe4),
		op("FLD/FSTP m80fp", 0xdb, rmb(mem, reg(5, 7))),
		op("FUCOMI/FCOMI", 0xdb, rm(0, direct, reg(5, 6))),

		op("FADD/FMUL/FCOM/FCOMP/FSUB/FSUBR/FDIV/FDIVR m64fp/ST(i)", 0xdc, rmb()),

		op("FLD/FISTTP/FST/FSTP m64fp, FFREE/FST/FSTP ST(i)", 0xdd, rmb(regs(0, 3))),
		op("FRSTOR m94/108byte", 0xdd, rmb(mem, reg(4))),
		op("FUCOM/FUCOMP ST(i)", 0xdd, rm(0, direct, reg(4, 5))),
		op("FNSAVE/FNSTSW m", 0xdd, rmb(mem, reg(6, 7))),

		op("FIADD/FIMUL/FICOM/FICOMP/FISUB/FISUBR/FIDIV/FIDIVR m16int", 0xde, rmb(mem)),
		op("FADDP/FMULP/FCOMP5/FSUBRP/FSUBP/FDIVRP/FDIVP", 0xde, rm(0, direct, reg(0, 1, 2, 4, 5, 6, 7))),
		bare("FCOMPP", MapPrimary, 0xde, 0xd9),

		op("FILD/FISTTP/FIST/FISTP/FBLD/FILD/FBSTP/FISTP m", 0xdf, rmb(mem)),
		op("FFREEP/FXCH7/FSTP8/FSTP9/FUCOMIP/FCOMIP", 0xdf, rm(0, direct, reg(0, 1, 2, 3, 5, 6))),
		bare("FNSTSW AX", MapPrimary, 0xdf, 0xe0),
	)
}
