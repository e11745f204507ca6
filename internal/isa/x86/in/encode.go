// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package in

// MaxInsnLen is the architectural instruction length limit.
const MaxInsnLen = 15

// Output accumulates the bytes of one instruction.  Appending past the
// buffer panics with a runtime error.
type Output struct {
	buf    [16]byte
	offset uint8
}

func (o *Output) Len() int                 { return int(o.offset) }
func (o *Output) Bytes() []byte            { return o.buf[:o.offset] }
func (o *Output) Truncate(n int)           { o.offset = uint8(n) }
func (o *Output) AppendTo(b []byte) []byte { return append(b, o.buf[:o.offset]...) }

func (o *Output) Byte(b byte) {
	o.buf[o.offset] = b
	o.offset++
}

func (o *Output) ByteIf(b byte, condition bool) {
	o.buf[o.offset] = b
	o.offset += bit(condition)
}

func (o *Output) Put(bs []byte) {
	for _, b := range bs {
		o.Byte(b)
	}
}

// Fill appends n copies of b.
func (o *Output) Fill(b byte, n int) {
	for i := 0; i < n; i++ {
		o.buf[o.offset] = b
		o.offset++
	}
}

func (o *Output) Mod(mod Mod, ro ModRO, rm ModRM) {
	o.buf[o.offset] = byte(mod) | byte(ro) | byte(rm)
	o.offset++
}

func (o *Output) SIB(s Scale, i Index, b Base) {
	o.buf[o.offset] = byte(s) | byte(i) | byte(b)
	o.offset++
}

func bit(condition bool) uint8 {
	if condition {
		return 1
	}
	return 0
}
