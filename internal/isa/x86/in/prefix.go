// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package in

// Legacy prefixes.
const (
	PrefixOperandSize = 0x66 // also packed double precision
	PrefixAddressSize = 0x67
	PrefixRepne       = 0xf2 // also scalar double precision
	PrefixRep         = 0xf3 // also scalar single precision
	PrefixLock        = 0xf0

	PrefixES = 0x26
	PrefixCS = 0x2e
	PrefixSS = 0x36
	PrefixDS = 0x3e
	PrefixFS = 0x64
	PrefixGS = 0x65
)

// Opcode escapes.
const (
	Escape   = 0x0f // two-byte opcode
	Escape38 = 0x38 // after Escape
	Escape3A = 0x3a // after Escape
)

var legacyPrefixes = [256]bool{
	PrefixOperandSize: true,
	PrefixAddressSize: true,
	PrefixRepne:       true,
	PrefixRep:         true,
	PrefixLock:        true,
	PrefixES:          true,
	PrefixCS:          true,
	PrefixSS:          true,
	PrefixDS:          true,
	PrefixFS:          true,
	PrefixGS:          true,
}

// IsLegacyPrefix reports if the byte is a legacy prefix in 32-bit mode.
func IsLegacyPrefix(b byte) bool { return legacyPrefixes[b] }
