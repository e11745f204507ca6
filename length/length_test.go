// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package length

import (
	"testing"

	"golang.org/x/xerrors"
)

var decodeTests = []struct {
	insn []byte
	n    int
}{
	{[]byte{0xc3}, 1},
	{[]byte{0x0f, 0xa2}, 2},
	{[]byte{0x00, 0x00}, 2},
	{[]byte{0x00, 0x05, 0x11, 0x11, 0x11, 0x11}, 6},
	{[]byte{0x00, 0x04, 0x25, 0x11, 0x11, 0x11, 0x11}, 7},
	{[]byte{0x00, 0x44, 0x25, 0x11}, 4},
	{[]byte{0x67, 0x00, 0x06, 0x11, 0x11}, 5},
	{[]byte{0x67, 0x00, 0x04}, 3},
	{[]byte{0x81, 0x42, 0x11, 0x22, 0x22, 0x22, 0x22}, 7},
	{[]byte{0x66, 0x81, 0x42, 0x11, 0x22, 0x22}, 6},
	{[]byte{0x67, 0x66, 0x81, 0x80, 0x11, 0x11, 0x22, 0x22}, 8},
	{[]byte{0xf6, 0xc0, 0x22}, 3},
	{[]byte{0xf6, 0xd0}, 2},
	{[]byte{0xf7, 0x00, 0x22, 0x22, 0x22, 0x22}, 6},
	{[]byte{0x66, 0xf7, 0x08, 0x22, 0x22}, 5},
	{[]byte{0xa1, 0x33, 0x33, 0x33, 0x33}, 5},
	{[]byte{0x67, 0xa1, 0x33, 0x33}, 4},
	{[]byte{0x9a, 0x55, 0x55, 0x55, 0x55, 0x44, 0x44}, 7},
	{[]byte{0x66, 0xea, 0x55, 0x55, 0x44, 0x44}, 6},
	{[]byte{0xc8, 0x22, 0x22, 0x22}, 4},
	{[]byte{0xd9, 0xd0}, 2},
	{[]byte{0xd4, 0x0a}, 2},
	{[]byte{0x0f, 0x20, 0x04}, 3},
	{[]byte{0x0f, 0x22, 0x45}, 3},
	{[]byte{0x0f, 0x84, 0x00, 0x00, 0x00, 0x00}, 6},
	{[]byte{0x66, 0x0f, 0x84, 0x00, 0x00}, 5},
	{[]byte{0x66, 0x0f, 0x3a, 0x0f, 0xc0, 0x22}, 6},
	{[]byte{0xf2, 0x0f, 0x38, 0xf0, 0x04, 0x00}, 6},
	{[]byte{0x0f, 0x01, 0xc1}, 3},
	{[]byte{0x0f, 0x71, 0xd0, 0x22}, 4},
	{[]byte{0x0f, 0xba, 0x20, 0x22}, 4},
	{[]byte{0x2e, 0x3e, 0xf0, 0x90}, 4},
}

func TestDecode(t *testing.T) {
	for _, x := range decodeTests {
		n, err := Decode(x.insn)
		if err != nil {
			t.Errorf("Decode(% x): %v", x.insn, err)
		} else if n != x.n {
			t.Errorf("Decode(% x) = %d", x.insn, n)
		}

		if x.n > 1 {
			if _, err := Decode(x.insn[:x.n-1]); err != ErrTruncated && err != ErrPrefixOnly {
				t.Errorf("Decode(% x) error: %v", x.insn[:x.n-1], err)
			}
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode(nil); err != ErrEmpty {
		t.Error(err)
	}
	if _, err := Decode([]byte{0x66, 0x67}); err != ErrPrefixOnly {
		t.Error(err)
	}
	if _, err := Decode([]byte{0x0f}); err != ErrTruncated {
		t.Error(err)
	}
	if _, err := Decode([]byte{0x0f, 0x38}); err != ErrTruncated {
		t.Error(err)
	}
}

func TestSplit(t *testing.T) {
	var stream []byte
	for _, x := range decodeTests {
		stream = append(stream, x.insn...)
	}

	insns, err := Split(stream)
	if err != nil {
		t.Fatal(err)
	}
	if len(insns) != len(decodeTests) {
		t.Fatalf("%d instructions", len(insns))
	}

	_, err = Split(append(stream, 0x81, 0x00))
	if !xerrors.Is(err, ErrTruncated) {
		t.Error(err)
	}
}

func FuzzDecode(f *testing.F) {
	for _, x := range decodeTests {
		f.Add(x.insn)
	}

	f.Fuzz(func(t *testing.T, text []byte) {
		n, err := Decode(text)
		if err != nil {
			return
		}
		if n < 1 || n > len(text) {
			t.Fatalf("Decode(% x) = %d", text, n)
		}
	})
}
