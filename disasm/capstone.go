// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build cgo && capstone

package disasm

import (
	"github.com/bnagy/gapstone"
	"golang.org/x/xerrors"
)

func init() {
	engines["capstone"] = func() (Engine, error) { return NewCapstone() }
}

// Capstone engine uses github.com/bnagy/gapstone.  It must be closed.
type Capstone struct {
	engine gapstone.Engine
}

func NewCapstone() (*Capstone, error) {
	engine, err := gapstone.New(gapstone.CS_ARCH_X86, gapstone.CS_MODE_32)
	if err != nil {
		return nil, err
	}

	err = engine.SetOption(gapstone.CS_OPT_SYNTAX, gapstone.CS_OPT_SYNTAX_ATT)
	if err != nil {
		engine.Close()
		return nil, err
	}

	return &Capstone{engine}, nil
}

func (*Capstone) Name() string { return "capstone" }

func (c *Capstone) Decode(text []byte) (int, error) {
	insn, err := c.disasm(text)
	if err != nil {
		return 0, err
	}
	return int(insn.Size), nil
}

func (c *Capstone) Disassemble(text []byte) (int, string, error) {
	insn, err := c.disasm(text)
	if err != nil {
		return 0, "", err
	}
	return int(insn.Size), insn.Mnemonic + "\t" + insn.OpStr, nil
}

func (c *Capstone) disasm(text []byte) (insn gapstone.Instruction, err error) {
	insns, err := c.engine.Disasm(text, 0, 1)
	if err != nil {
		return
	}
	if len(insns) == 0 {
		err = xerrors.New("capstone: no instruction")
		return
	}
	insn = insns[0]
	return
}

func (c *Capstone) Close() error {
	return c.engine.Close()
}
