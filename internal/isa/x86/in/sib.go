// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package in

type (
	Scale byte
	Index byte
	Base  byte
)

const (
	Scale0 = Scale(0 << 6)
	Scale1 = Scale(1 << 6)
	Scale2 = Scale(2 << 6)
	Scale3 = Scale(3 << 6)

	NoIndex = Index(4 << 3)

	BaseDisp32 = Base(5) // with ModMem
)

func MakeSIB(s Scale, i Index, b Base) byte {
	return byte(s) | byte(i) | byte(b)
}

func SplitSIB(sib byte) (s Scale, i Index, b Base) {
	s = Scale(sib & 0xc0)
	i = Index(sib & 0x38)
	b = Base(sib & 0x07)
	return
}
