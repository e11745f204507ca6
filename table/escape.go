// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"github.com/tsavola/x86gen/operand"
)

var imm8 = ops(operand.Imm8)

// escaped lists the two-byte opcodes, with the three-byte maps in place of
// their escape bytes.
func escaped() []Entry {
	return join(
		system(),
		sse(),
		threeByte38(),
		threeByte3A(),
		span("CMOVcc r16/32, r/m16/32", Map0F, 0x40, 0x4f, rmv()),
		sse2(),
		sseInteger(),
		general(),
		sseTail(),
	)
}

func system() []Entry {
	return one(
		op0f("SLDT/STR/LLDT/LTR/VERR/VERW", 0x00, rmb(regs(0, 5))),

		op0f("SGDT m", 0x01, rmb(mem, reg(0))),
		bare("VMCALL", Map0F, 0x01, 0xc1),
		bare("VMLAUNCH", Map0F, 0x01, 0xc2),
		bare("VMRESUME", Map0F, 0x01, 0xc3),
		bare("VMXOFF", Map0F, 0x01, 0xc4),
		op0f("SIDT m", 0x01, rmb(mem, reg(1))),
		bare("MONITOR", Map0F, 0x01, 0xc8),
		bare("MWAIT", Map0F, 0x01, 0xc9),
		bare("CLAC", Map0F, 0x01, 0xca),
		bare("STAC", Map0F, 0x01, 0xcb),
		op0f("LGDT m", 0x01, rmb(mem, reg(2))),
		bare("XGETBV", Map0F, 0x01, 0xd0),
		bare("XSETBV", Map0F, 0x01, 0xd1),
		op0f("LIDT m", 0x01, rmb(mem, reg(3))),
		op0f("SMSW r/m16", 0x01, rmb(reg(4))),
		op0f("LMSW r/m16", 0x01, rmb(reg(6))),
		op0f("INVLPG m", 0x01, rmb(mem, reg(7))),
		bare("SWAPGS", Map0F, 0x01, 0xf8),
		bare("RDTSCP", Map0F, 0x01, 0xf9),

		op0f("LAR r16/32, r/m16", 0x02, rmv()),
		op0f("LSL r16/32, r/m16", 0x03, rmv()),
		op0f("CLTS", 0x06, fixed(0)),
		op0f("INVD", 0x08, fixed(0)),
		op0f("WBINVD", 0x09, fixed(0)),
		op0f("UD2", 0x0b, fixed(0)),
		exclude("not decoded by Capstone",
			op0f("PREFETCH/PREFETCHW m8", 0x0d, rmb(mem, regs(0, 2)))),
		op0f("FEMMS", 0x0e, fixed(0)),
	)
}

func sse() []Entry {
	return one(
		op0f("MOVUPS/MOVUPD/MOVSS/MOVSD xmm, xmm/m", 0x10, rmp(sse4)),
		op0f("MOVUPS/MOVUPD/MOVSS/MOVSD xmm/m, xmm", 0x11, rmp(sse4)),
		op0f("MOVLPS/MOVHLPS/MOVSLDUP/MOVDDUP", 0x12, rmp([]Prefixes{0, Rep, Repne})),
		op0f("MOVLPD xmm, m64", 0x12, rmp(pd, mem)),
		op0f("MOVLPS/MOVLPD m64, xmm", 0x13, rmp(mmx, mem)),
		op0f("UNPCKLPS/UNPCKLPD", 0x14, rmp(mmx)),
		op0f("UNPCKHPS/UNPCKHPD", 0x15, rmp(mmx)),
		op0f("MOVHPS/MOVLHPS/MOVSHDUP", 0x16, rmp([]Prefixes{0, Rep})),
		op0f("MOVHPD xmm, m64", 0x16, rmp(pd, mem)),
		op0f("MOVHPS/MOVHPD m64, xmm", 0x17, rmp(mmx, mem)),
		op0f("PREFETCHNTA/PREFETCHT0/PREFETCHT1/PREFETCHT2", 0x18, rmb(mem, regs(0, 3))),
		op0f("HINT_NOP r/m16/32", 0x18, rmv(regs(4, 7))),
		op0f("HINT_NOP r/m16/32", 0x19, rmv()),
		op0f("HINT_NOP m16/32", 0x1a, rmv(mem)),
		op0f("HINT_NOP m16/32", 0x1b, rmv(mem)),
		op0f("HINT_NOP m16/32", 0x1c, rmv(mem)),
		op0f("HINT_NOP m16/32", 0x1d, rmv(mem)),
		op0f("HINT_NOP m16/32", 0x1e, rmv(mem)),
		op0f("NOP m16/32", 0x1f, rmv(mem)),
		op0f("MOV r32, CRn", 0x20, raw()),
		op0f("MOV r32, DRn", 0x21, raw()),
		op0f("MOV CRn, r32", 0x22, raw()),
		op0f("MOV DRn, r32", 0x23, raw()),
		op0f("MOVAPS/MOVAPD xmm, xmm/m", 0x28, rmp(mmx)),
		op0f("MOVAPS/MOVAPD xmm/m, xmm", 0x29, rmp(mmx)),
		op0f("CVTPI2PS/CVTPI2PD/CVTSI2SS/CVTSI2SD", 0x2a, rmp(sse4)),
		op0f("MOVNTPS/MOVNTPD m, xmm", 0x2b, rmp(mmx, mem)),
		op0f("CVTTPS2PI/CVTTPD2PI/CVTTSS2SI/CVTTSD2SI", 0x2c, rmp(sse4)),
		op0f("CVTPS2PI/CVTPD2PI/CVTSS2SI/CVTSD2SI", 0x2d, rmp(sse4)),
		op0f("UCOMISS/UCOMISD", 0x2e, rmp(mmx)),
		op0f("COMISS/COMISD", 0x2f, rmp(mmx)),
		op0f("WRMSR", 0x30, fixed(0)),
		op0f("RDTSC", 0x31, fixed(0)),
		op0f("RDMSR", 0x32, fixed(0)),
		op0f("RDPMC", 0x33, fixed(0)),
		op0f("SYSENTER", 0x34, fixed(0)),
		op0f("SYSEXIT", 0x35, fixed(0)),
		op0f("GETSEC", 0x37, fixed(0)),
	)
}

func threeByte38() []Entry {
	return join(
		span("PSHUFB/PHADDW/PHADDD/PHADDSW/PMADDUBSW/PHSUBW/PHSUBD/PHSUBSW/PSIGNB/PSIGNW/PSIGND/PMULHRSW", Map0F38, 0x00, 0x0b, rmp(mmx)),
		one(
			op38("PBLENDVB", 0x10, rmp(pd)),
			op38("BLENDVPS", 0x14, rmp(pd)),
			op38("BLENDVPD", 0x15, rmp(pd)),
			op38("PTEST", 0x17, rmp(pd)),
		),
		span("PABSB/PABSW/PABSD", Map0F38, 0x1c, 0x1e, rmp(mmx)),
		span("PMOVSXBW/PMOVSXBD/PMOVSXBQ/PMOVSXWD/PMOVSXWQ/PMOVSXDQ", Map0F38, 0x20, 0x25, rmp(pd)),
		one(
			op38("PMULDQ", 0x28, rmp(pd)),
			op38("PCMPEQQ", 0x29, rmp(pd)),
			op38("MOVNTDQA", 0x2a, rmp(pd, mem)),
			op38("PACKUSDW", 0x2b, rmp(pd)),
		),
		span("PMOVZXBW/PMOVZXBD/PMOVZXBQ/PMOVZXWD/PMOVZXWQ/PMOVZXDQ", Map0F38, 0x30, 0x35, rmp(pd)),
		span("PCMPGTQ/PMINSB/PMINSD/PMINUW/PMINUD/PMAXSB/PMAXSD/PMAXUW/PMAXUD/PMULLD/PHMINPOSUW", Map0F38, 0x37, 0x41, rmp(pd)),
		one(
			op38("INVEPT", 0x80, rmp(pd, mem)),
			op38("INVVPID", 0x81, rmp(pd, mem)),
			op38("MOVBE r16/32, m16/32", 0xf0, rmv(mem)),
			op38("CRC32 r32, r/m8", 0xf0, rmp(sd)),
			op38("MOVBE m16/32, r16/32", 0xf1, rmv(mem)),
			op38("CRC32 r32, r/m16/32", 0xf1, rmp([]Prefixes{Repne, OperandSize | Repne})),
		),
	)
}

func sse2() []Entry {
	return one(
		op0f("MOVMSKPS/MOVMSKPD", 0x50, regp(mmx)),
		op0f("SQRTPS/SQRTPD/SQRTSS/SQRTSD", 0x51, rmp(sse4)),
		op0f("RSQRTPS/RSQRTSS", 0x52, rmp([]Prefixes{0, Rep})),
		op0f("RCPPS/RCPSS", 0x53, rmp([]Prefixes{0, Rep})),
		op0f("ANDPS/ANDPD", 0x54, rmp(mmx)),
		op0f("ANDNPS/ANDNPD", 0x55, rmp(mmx)),
		op0f("ORPS/ORPD", 0x56, rmp(mmx)),
		op0f("XORPS/XORPD", 0x57, rmp(mmx)),
		op0f("ADDPS/ADDPD/ADDSS/ADDSD", 0x58, rmp(sse4)),
		op0f("MULPS/MULPD/MULSS/MULSD", 0x59, rmp(sse4)),
		op0f("CVTPS2PD/CVTPD2PS/CVTSS2SD/CVTSD2SS", 0x5a, rmp(sse4)),
		op0f("CVTDQ2PS/CVTPS2DQ/CVTTPS2DQ", 0x5b, rmp([]Prefixes{0, OperandSize, Rep})),
		op0f("SUBPS/SUBPD/SUBSS/SUBSD", 0x5c, rmp(sse4)),
		op0f("MINPS/MINPD/MINSS/MINSD", 0x5d, rmp(sse4)),
		op0f("DIVPS/DIVPD/DIVSS/DIVSD", 0x5e, rmp(sse4)),
		op0f("MAXPS/MAXPD/MAXSS/MAXSD", 0x5f, rmp(sse4)),
	)
}

func threeByte3A() []Entry {
	return join(
		span("ROUNDPS/ROUNDPD/ROUNDSS/ROUNDSD/BLENDPS/BLENDPD/PBLENDW", Map0F3A, 0x08, 0x0e, rmp(pd, imm8)),
		one(
			op3a("PALIGNR", 0x0f, rmp(mmx, imm8)),
		),
		span("PEXTRB/PEXTRW/PEXTRD/EXTRACTPS", Map0F3A, 0x14, 0x17, rmp(pd, imm8)),
		span("PINSRB/INSERTPS/PINSRD", Map0F3A, 0x20, 0x22, rmp(pd, imm8)),
		span("DPPS/DPPD/MPSADBW", Map0F3A, 0x40, 0x42, rmp(pd, imm8)),
		span("PCMPESTRM/PCMPESTRI/PCMPISTRM/PCMPISTRI", Map0F3A, 0x60, 0x63, rmp(pd, imm8)),
	)
}

func sseInteger() []Entry {
	return join(
		span("PUNPCKLBW/PUNPCKLWD/PUNPCKLDQ/PACKSSWB/PCMPGTB/PCMPGTW/PCMPGTD/PACKUSWB/PUNPCKHBW/PUNPCKHWD/PUNPCKHDQ/PACKSSDW", Map0F, 0x60, 0x6b, rmp(mmx)),
		one(
			op0f("PUNPCKLQDQ", 0x6c, rmp(pd)),
			op0f("PUNPCKHQDQ", 0x6d, rmp(pd)),
			op0f("MOVD mm/xmm, r/m32", 0x6e, rmp(mmx)),
			op0f("MOVQ/MOVDQA/MOVDQU mm/xmm, mm/xmm/m", 0x6f, rmp([]Prefixes{0, OperandSize, Rep})),
			op0f("PSHUFW/PSHUFD/PSHUFHW/PSHUFLW", 0x70, rmp(sse4, imm8)),
			op0f("PSRLW/PSRAW/PSLLW imm8", 0x71, regp(mmx, reg(2, 4, 6), imm8)),
			op0f("PSRLD/PSRAD/PSLLD imm8", 0x72, regp(mmx, reg(2, 4, 6), imm8)),
			op0f("PSRLQ/PSLLQ imm8", 0x73, regp(ps, reg(2, 6), imm8)),
			op0f("PSRLQ/PSRLDQ/PSLLQ/PSLLDQ imm8", 0x73, regp(pd, reg(2, 3, 6, 7), imm8)),
			op0f("PCMPEQB", 0x74, rmp(mmx)),
			op0f("PCMPEQW", 0x75, rmp(mmx)),
			op0f("PCMPEQD", 0x76, rmp(mmx)),
			op0f("EMMS", 0x77, fixed(0)),
			op0f("VMREAD r/m32, r32", 0x78, rmb()),
			exclude("AMD SSE4a",
				op0f("EXTRQ/INSERTQ imm8, imm8", 0x78, regp(npz, ops(operand.Imm8, operand.Imm8)))),
			op0f("VMWRITE r32, r/m32", 0x79, rmb()),
			exclude("AMD SSE4a",
				op0f("EXTRQ/INSERTQ", 0x79, regp(npz))),
			op0f("HADDPD/HADDPS", 0x7c, rmp(npz)),
			op0f("HSUBPD/HSUBPS", 0x7d, rmp(npz)),
			op0f("MOVD/MOVQ r/m32, mm/xmm", 0x7e, rmp([]Prefixes{0, OperandSize, Rep})),
			op0f("MOVQ/MOVDQA/MOVDQU mm/xmm/m, mm/xmm", 0x7f, rmp([]Prefixes{0, OperandSize, Rep})),
		),
	)
}

func general() []Entry {
	return join(
		span("Jcc rel16/32", Map0F, 0x80, 0x8f, fixedv(operand.RelZ)),
		span("SETcc r/m8", Map0F, 0x90, 0x9f, rmb(reg(0))),
		one(
			op0f("PUSH FS", 0xa0, fixed(0)),
			op0f("POP FS", 0xa1, fixed(0)),
			op0f("CPUID", 0xa2, fixed(0)),
			op0f("BT r/m16/32, r16/32", 0xa3, rmv()),
			op0f("SHLD r/m16/32, r16/32, imm8", 0xa4, rmv(imm8)),
			op0f("SHLD r/m16/32, r16/32, CL", 0xa5, rmv()),
			op0f("PUSH GS", 0xa8, fixed(0)),
			op0f("POP GS", 0xa9, fixed(0)),
			op0f("RSM", 0xaa, fixed(0)),
			op0f("BTS r/m16/32, r16/32", 0xab, rmv()),
			op0f("SHRD r/m16/32, r16/32, imm8", 0xac, rmv(imm8)),
			op0f("SHRD r/m16/32, r16/32, CL", 0xad, rmv()),
			op0f("FXSAVE/FXRSTOR/LDMXCSR/STMXCSR/XSAVE/XRSTOR/XSAVEOPT/CLFLUSH", 0xae, rmb(mem)),
			bare("LFENCE", Map0F, 0xae, 0xe8),
			bare("MFENCE", Map0F, 0xae, 0xf0),
			bare("SFENCE", Map0F, 0xae, 0xf8),
			op0f("IMUL r16/32, r/m16/32", 0xaf, rmv()),
			op0f("CMPXCHG r/m8, r8", 0xb0, rmb()),
			op0f("CMPXCHG r/m16/32, r16/32", 0xb1, rmv()),
			op0f("LSS r16/32, m16:16/32", 0xb2, rmv(mem)),
			op0f("BTR r/m16/32, r16/32", 0xb3, rmv()),
			op0f("LFS r16/32, m16:16/32", 0xb4, rmv(mem)),
			op0f("LGS r16/32, m16:16/32", 0xb5, rmv(mem)),
			op0f("MOVZX r16/32, r/m8", 0xb6, rmv()),
			op0f("MOVZX r16/32, r/m16", 0xb7, rmv()),
			op0f("POPCNT r16/32, r/m16/32", 0xb8, rmp([]Prefixes{Rep, OperandSize | Rep})),
			exclude("reserved undefined instruction",
				op0f("UD1 r32, r/m32", 0xb9, rmv())),
			op0f("BT/BTS/BTR/BTC r/m16/32, imm8", 0xba, rmv(regs(4, 7), imm8)),
			op0f("BTC r/m16/32, r16/32", 0xbb, rmv()),
			op0f("BSF r16/32, r/m16/32", 0xbc, rmv()),
			op0f("TZCNT r16/32, r/m16/32", 0xbc, rmp([]Prefixes{Rep, OperandSize | Rep})),
			op0f("BSR r16/32, r/m16/32", 0xbd, rmv()),
			op0f("LZCNT r16/32, r/m16/32", 0xbd, rmp([]Prefixes{Rep, OperandSize | Rep})),
			op0f("MOVSX r16/32, r/m8", 0xbe, rmv()),
			op0f("MOVSX r16/32, r/m16", 0xbf, rmv()),
			op0f("XADD r/m8, r8", 0xc0, rmb()),
			op0f("XADD r/m16/32, r16/32", 0xc1, rmv()),
			op0f("CMPPS/CMPPD/CMPSS/CMPSD", 0xc2, rmp(sse4, imm8)),
			op0f("MOVNTI m32, r32", 0xc3, rmb(mem)),
			op0f("PINSRW mm/xmm, r32/m16, imm8", 0xc4, rmp(mmx, imm8)),
			op0f("PEXTRW r32, mm/xmm, imm8", 0xc5, regp(mmx, imm8)),
			op0f("SHUFPS/SHUFPD", 0xc6, rmp(mmx, imm8)),
			op0f("CMPXCHG8B m64", 0xc7, rmb(mem, reg(1))),
			op0f("VMPTRLD m64", 0xc7, rmb(mem, reg(6))),
			op0f("VMCLEAR m64", 0xc7, rmp(pd, mem, reg(6))),
			op0f("VMXON m64", 0xc7, rmp(ss, mem, reg(6))),
			op0f("VMPTRST m64", 0xc7, rmb(mem, reg(7))),
			op0f("RDRAND r16/32", 0xc7, regp(mmx, reg(6))),
			op0f("RDSEED r16/32", 0xc7, regp(mmx, reg(7))),
		),
		span("BSWAP r32", Map0F, 0xc8, 0xcf, fixed(0)),
	)
}

func sseTail() []Entry {
	return join(
		one(
			op0f("ADDSUBPD/ADDSUBPS", 0xd0, rmp(npz)),
		),
		span("PSRLW/PSRLD/PSRLQ/PADDQ/PMULLW", Map0F, 0xd1, 0xd5, rmp(mmx)),
		one(
			op0f("MOVQ xmm/m64, xmm", 0xd6, rmp(pd)),
			op0f("MOVQ2DQ xmm, mm", 0xd6, regp(ss)),
			op0f("MOVDQ2Q mm, xmm", 0xd6, regp(sd)),
			op0f("PMOVMSKB r32, mm/xmm", 0xd7, regp(mmx)),
		),
		span("PSUBUSB/PSUBUSW/PMINUB/PAND/PADDUSB/PADDUSW/PMAXUB/PANDN", Map0F, 0xd8, 0xdf, rmp(mmx)),
		span("PAVGB/PSRAW/PSRAD/PAVGW/PMULHUW/PMULHW", Map0F, 0xe0, 0xe5, rmp(mmx)),
		one(
			op0f("CVTTPD2DQ/CVTPD2DQ/CVTDQ2PD", 0xe6, rmp([]Prefixes{OperandSize, Repne, Rep})),
			op0f("MOVNTQ/MOVNTDQ m, mm/xmm", 0xe7, rmp(mmx, mem)),
		),
		span("PSUBSB/PSUBSW/PMINSW/POR/PADDSB/PADDSW/PMAXSW/PXOR", Map0F, 0xe8, 0xef, rmp(mmx)),
		one(
			op0f("LDDQU xmm, m", 0xf0, rmp(sd, mem)),
		),
		span("PSLLW/PSLLD/PSLLQ/PMULUDQ/PMADDWD/PSADBW", Map0F, 0xf1, 0xf6, rmp(mmx)),
		one(
			op0f("MASKMOVQ/MASKMOVDQU", 0xf7, regp(mmx)),
		),
		span("PSUBB/PSUBW/PSUBD/PSUBQ/PADDB/PADDW/PADDD", Map0F, 0xf8, 0xfe, rmp(mmx)),
		one(
			exclude("reserved undefined instruction",
				op0f("UD0 r32, r/m32", 0xff, rmv())),
		),
	)
}
