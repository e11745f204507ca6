// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package buffer

import (
	"io"

	"golang.org/x/xerrors"
)

// Limited is a dynamic buffer with a maximum size.  The default value is an
// empty buffer that cannot grow.
type Limited struct {
	d Dynamic
}

// MakeLimited buffer with a maximum size.  The slice must be empty.
//
// This function can be used in field initializer expressions.  The initialized
// field must not be copied.
func MakeLimited(b []byte, maxSize int) Limited {
	return Limited{MakeDynamicHint(b, maxSize)}
}

// NewLimited buffer with a maximum size.  The slice must be empty.
func NewLimited(b []byte, maxSize int) *Limited {
	l := MakeLimited(b, maxSize)
	return &l
}

// Len doesn't panic.
func (l *Limited) Len() int {
	return l.d.Len()
}

// Bytes doesn't panic.
func (l *Limited) Bytes() []byte {
	return l.d.Bytes()
}

// Extend panics with ErrSizeLimit if n bytes cannot be appended to the buffer.
func (l *Limited) Extend(n int) []byte {
	if len(l.d.buf)+n > l.d.maxSize {
		panic(ErrSizeLimit)
	}
	return l.d.Extend(n)
}

// ReadFrom reads until EOF.  ErrSizeLimit is returned if the reader has
// more data than fits.
func (l *Limited) ReadFrom(r io.Reader) (total int64, err error) {
	for {
		if l.Len() == l.d.maxSize {
			var probe [1]byte

			switch _, err := io.ReadFull(r, probe[:]); err {
			case nil:
				return total, ErrSizeLimit
			case io.EOF:
				return total, nil
			default:
				return total, xerrors.Errorf("read: %w", err)
			}
		}

		offset := l.Len()
		b := l.Extend(min(l.d.maxSize-offset, 64*1024))

		n, err := r.Read(b)
		l.d.buf = l.d.buf[:offset+n]
		total += int64(n)

		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, xerrors.Errorf("read: %w", err)
		}
	}
}
