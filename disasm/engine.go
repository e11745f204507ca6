// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm checks instruction streams against disassemblers.
package disasm

import (
	"io"
	"sort"

	"github.com/tsavola/x86gen/length"
	"golang.org/x/arch/x86/x86asm"
	"golang.org/x/xerrors"
)

// Engine decodes the length of the first 32-bit instruction of text.
type Engine interface {
	Name() string
	Decode(text []byte) (int, error)
}

// Disassembler is an Engine which can also format instructions.
type Disassembler interface {
	Engine
	Disassemble(text []byte) (n int, asm string, err error)
}

// ErrUnknownEngine is wrapped by New errors.
var ErrUnknownEngine = xerrors.New("unknown disassembly engine")

var engines = map[string]func() (Engine, error){
	"length": func() (Engine, error) { return Length, nil },
	"x86asm": func() (Engine, error) { return X86asm{}, nil },
}

// New engine by name.  Engines which implement io.Closer must be closed.
func New(name string) (Engine, error) {
	f, found := engines[name]
	if !found {
		return nil, xerrors.Errorf("%s: %w", name, ErrUnknownEngine)
	}
	return f()
}

// Names of available engines.
func Names() (names []string) {
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// Close the engine if it implements io.Closer.
func Close(e Engine) error {
	if c, ok := e.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

type lengthEngine struct{}

// Length engine uses package length.
var Length Engine = lengthEngine{}

func (lengthEngine) Name() string                    { return "length" }
func (lengthEngine) Decode(text []byte) (int, error) { return length.Decode(text) }

// X86asm engine uses golang.org/x/arch/x86/x86asm.
type X86asm struct{}

func (X86asm) Name() string { return "x86asm" }

func (X86asm) Decode(text []byte) (int, error) {
	inst, err := x86asm.Decode(text, 32)
	if err != nil {
		return 0, err
	}
	return inst.Len, nil
}

func (X86asm) Disassemble(text []byte) (int, string, error) {
	inst, err := x86asm.Decode(text, 32)
	if err != nil {
		return 0, "", err
	}
	return inst.Len, x86asm.GNUSyntax(inst, 0, nil), nil
}
