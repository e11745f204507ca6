// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package buffer

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/xerrors"
)

func TestDynamic(t *testing.T) {
	d := NewDynamicHint(nil, 4)

	d.PutBytes([]byte{0x0f})
	d.PutBytes([]byte{0xa2, 0xc3})
	if n, err := d.Write([]byte{0x90, 0x90}); n != 2 || err != nil {
		t.Fatal(n, err)
	}

	if !bytes.Equal(d.Bytes(), []byte{0x0f, 0xa2, 0xc3, 0x90, 0x90}) {
		t.Errorf("% x", d.Bytes())
	}

	var out bytes.Buffer
	if n, err := d.WriteTo(&out); n != 5 || err != nil {
		t.Fatal(n, err)
	}
	if !bytes.Equal(out.Bytes(), d.Bytes()) {
		t.Errorf("% x", out.Bytes())
	}

	d.Reset()
	if d.Len() != 0 {
		t.Error(d.Len())
	}
}

func TestLimitedPanic(t *testing.T) {
	defer func() {
		if x := recover(); x != ErrSizeLimit {
			t.Error(x)
		}
	}()

	l := NewLimited(nil, 3)
	copy(l.Extend(2), []byte{1, 2})
	if !bytes.Equal(l.Bytes(), []byte{1, 2}) {
		t.Errorf("% x", l.Bytes())
	}
	l.Extend(2)
}

func TestLimitedReadFrom(t *testing.T) {
	l := NewLimited(nil, 10)
	if n, err := l.ReadFrom(strings.NewReader("0123456789")); n != 10 || err != nil {
		t.Fatal(n, err)
	}

	l = NewLimited(nil, 10)
	if n, err := l.ReadFrom(strings.NewReader("0123456789a")); n != 10 || !xerrors.Is(err, ErrSizeLimit) {
		t.Fatal(n, err)
	}

	l = NewLimited(nil, 100)
	if n, err := l.ReadFrom(strings.NewReader("abc")); n != 3 || err != nil || string(l.Bytes()) != "abc" {
		t.Fatal(n, err)
	}
}

func TestSizeError(t *testing.T) {
	var _ interface{ OutputError() bool } = ErrSizeLimit.(sizeError)
	var _ interface{ BufferSizeLimit() string } = ErrSizeLimit.(sizeError)

	wrapped := xerrors.Errorf("wrapped: %w", ErrSizeLimit)
	if !xerrors.Is(wrapped, ErrSizeLimit) {
		t.Error(wrapped)
	}
}
