// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disasm

import (
	"fmt"
	"io"

	"github.com/tsavola/x86gen/buffer"
	"github.com/tsavola/x86gen/length"
	"golang.org/x/xerrors"
)

const (
	MaxStreamSize = 1 << 30
	MaxSamples    = 10
)

// Sample of an instruction which an engine didn't decode as expected.
type Sample struct {
	Offset int
	Insn   []byte
	Length int // Decoded length, if Err is nil.
	Err    error
}

func (s Sample) String() string {
	if s.Err != nil {
		return fmt.Sprintf("0x%08x: % x: %v", s.Offset, s.Insn, s.Err)
	}
	return fmt.Sprintf("0x%08x: % x: length %d", s.Offset, s.Insn, s.Length)
}

// Result of one engine.
type Result struct {
	Engine     string
	Decoded    int
	Failed     int
	Mismatched int
	Samples    []Sample
}

// OK if every instruction was decoded to its expected length.
func (r *Result) OK() bool { return r.Failed == 0 && r.Mismatched == 0 }

// Report of a verification.
type Report struct {
	Insns   int
	Bytes   int
	Results []Result
}

// OK if every engine is OK.
func (r *Report) OK() bool {
	for i := range r.Results {
		if !r.Results[i].OK() {
			return false
		}
	}
	return true
}

func (r *Report) Fprint(w io.Writer) (err error) {
	if _, err = fmt.Fprintf(w, "%d instructions, %d bytes\n", r.Insns, r.Bytes); err != nil {
		return
	}

	for _, res := range r.Results {
		_, err = fmt.Fprintf(w, "%s: %d decoded, %d failed, %d mismatched\n", res.Engine, res.Decoded, res.Failed, res.Mismatched)
		if err != nil {
			return
		}

		for _, s := range res.Samples {
			if _, err = fmt.Fprintf(w, "\t%s\n", s); err != nil {
				return
			}
		}
	}

	return
}

// ReadStream reads until EOF.  buffer.ErrSizeLimit is returned if the stream
// is larger than maxSize.
func ReadStream(r io.Reader, maxSize int) ([]byte, error) {
	b := buffer.NewLimited(nil, maxSize)
	if _, err := b.ReadFrom(r); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Verify a stream of instructions.  It is read entirely into memory.
func Verify(r io.Reader, engines ...Engine) (Report, error) {
	text, err := ReadStream(r, MaxStreamSize)
	if err != nil {
		return Report{}, err
	}
	return VerifyText(text, engines...)
}

// VerifyText splits the stream with the length decoder and decodes each
// instruction separately with each engine.  If the stream cannot be split
// completely, the instructions before the problem are verified and the split
// error is returned with the report.
func VerifyText(text []byte, engines ...Engine) (report Report, err error) {
	insns, err := length.Split(text)
	if err != nil {
		err = xerrors.Errorf("split: %w", err)
	}

	report.Insns = len(insns)
	report.Results = make([]Result, len(engines))

	for i, e := range engines {
		report.Results[i].Engine = e.Name()
	}

	offset := 0

	for _, insn := range insns {
		for i, e := range engines {
			res := &report.Results[i]

			n, decodeErr := e.Decode(insn)
			switch {
			case decodeErr != nil:
				res.Failed++
			case n != len(insn):
				res.Mismatched++
			default:
				res.Decoded++
				continue
			}

			if len(res.Samples) < MaxSamples {
				res.Samples = append(res.Samples, Sample{offset, insn, n, decodeErr})
			}
		}

		offset += len(insn)
	}

	report.Bytes = offset
	return
}

// Fprint a listing of at most maxInsns instructions (if positive).  It stops
// at the first instruction whose length cannot be decoded.
func Fprint(w io.Writer, text []byte, d Disassembler, maxInsns int) (err error) {
	for offset, count := 0, 0; offset < len(text) && (maxInsns <= 0 || count < maxInsns); count++ {
		n, asm, decodeErr := d.Disassemble(text[offset:])
		if decodeErr != nil {
			n, err = length.Decode(text[offset:])
			if err != nil {
				return xerrors.Errorf("offset %d: %w", offset, err)
			}
			asm = fmt.Sprintf("(bad: %v)", decodeErr)
		}

		if _, err = fmt.Fprintf(w, "%08x\t% -45x\t%s\n", offset, text[offset:offset+n], asm); err != nil {
			return
		}

		offset += n
	}

	return
}
