// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package in

type (
	Mod   byte
	ModRO byte
	ModRM byte
)

const (
	ModMem       = Mod(0 << 6)
	ModMemDisp8  = Mod(1 << 6)
	ModMemDisp32 = Mod(2 << 6) // disp16 with 16-bit addressing
	ModReg       = Mod(3 << 6)
)

const (
	ModRMSIB    = ModRM(4) // 32-bit addressing
	ModRMDisp32 = ModRM(5) // 32-bit addressing with ModMem
	ModRMDisp16 = ModRM(6) // 16-bit addressing with ModMem
)

func ModField(mod byte) Mod    { return Mod(mod&3) << 6 }
func ROField(reg byte) ModRO   { return ModRO(reg&7) << 3 }
func RMField(rm byte) ModRM    { return ModRM(rm & 7) }
func (mod Mod) Value() byte    { return byte(mod) >> 6 }
func (ro ModRO) Value() byte   { return byte(ro) >> 3 }
func (rm ModRM) Value() byte   { return byte(rm) }
func (mod Mod) Memory() bool   { return mod != ModReg }
func (mod Mod) String() string { return modNames[mod>>6] }

var modNames = [4]string{"mem", "mem+disp8", "mem+disp32", "reg"}

// MakeModRM packs the three fields.
func MakeModRM(mod Mod, ro ModRO, rm ModRM) byte {
	return byte(mod) | byte(ro) | byte(rm)
}

// SplitModRM unpacks a ModRM byte.
func SplitModRM(b byte) (mod Mod, ro ModRO, rm ModRM) {
	mod = Mod(b & 0xc0)
	ro = ModRO(b & 0x38)
	rm = ModRM(b & 0x07)
	return
}

// DispSize16 returns the displacement size implied by a ModRM byte under
// 16-bit addressing.
func DispSize16(mod Mod, rm ModRM) int {
	switch {
	case mod == ModMemDisp8:
		return 1
	case mod == ModMemDisp32, mod == ModMem && rm == ModRMDisp16:
		return 2
	default:
		return 0
	}
}

// DispSize32 returns the displacement size implied by a ModRM byte (and SIB
// base field, if there is a SIB byte) under 32-bit addressing.
func DispSize32(mod Mod, rm ModRM, base Base) int {
	switch {
	case mod == ModMemDisp8:
		return 1
	case mod == ModMemDisp32:
		return 4
	case mod == ModMem && rm == ModRMDisp32:
		return 4
	case mod == ModMem && rm == ModRMSIB && base == BaseDisp32:
		return 4
	default:
		return 0
	}
}

// HasSIB reports if a SIB byte follows the ModRM byte under 32-bit
// addressing.
func HasSIB(mod Mod, rm ModRM) bool {
	return mod != ModReg && rm == ModRMSIB
}
