// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build gofuzz

package x86gen

import (
	"github.com/tsavola/x86gen/length"
)

// Fuzz the length decoder with arbitrary streams.
func Fuzz(data []byte) int {
	insns, err := length.Split(data)

	total := 0
	for _, insn := range insns {
		if len(insn) == 0 {
			panic("empty instruction")
		}
		total += len(insn)
	}
	if total > len(data) {
		panic("instructions exceed input")
	}

	if err != nil {
		return 0
	}
	return 1
}
