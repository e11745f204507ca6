// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/tsavola/x86gen/addressing"
	"github.com/tsavola/x86gen/internal/isa/x86/in"
	"github.com/tsavola/x86gen/operand"
)

// Problem with a table entry.
type Problem struct {
	Index int // entry index
	Entry string
	Leg   int // -1 if the problem concerns the whole entry
	Text  string
}

func (p Problem) String() string {
	if p.Leg < 0 {
		return fmt.Sprintf("entry %d (%s): %s", p.Index, p.Entry, p.Text)
	}
	return fmt.Sprintf("entry %d (%s) leg %d: %s", p.Index, p.Entry, p.Leg, p.Text)
}

// Problems is the error returned by Validate.
type Problems []Problem

func (ps Problems) Error() string {
	lines := make([]string, len(ps))
	for i, p := range ps {
		lines[i] = p.String()
	}
	return strings.Join(lines, "\n")
}

// Validate entries.  The returned error is of type Problems.
func Validate(entries []Entry) error {
	var ps Problems

	for i := range entries {
		e := &entries[i]

		report := func(leg int, format string, args ...interface{}) {
			ps = append(ps, Problem{i, e.String(), leg, fmt.Sprintf(format, args...)})
		}

		if e.Name == "" {
			report(-1, "no name")
		}
		if len(e.Opcode) == 0 {
			report(-1, "empty opcode")
		}
		if len(e.Legs) == 0 {
			report(-1, "no legs")
		}
		if i > 0 && orderKey(e).less(orderKey(&entries[i-1])) {
			report(-1, "out of order after %s", &entries[i-1])
		}

		for j := range e.Legs {
			for _, text := range validateLeg(e, &e.Legs[j]) {
				report(j, "%s", text)
			}
			for k := 0; k < j; k++ {
				if equalLegs(&e.Legs[j], &e.Legs[k]) {
					report(j, "duplicate of leg %d", k)
				}
			}
		}
	}

	if len(ps) > 0 {
		return ps
	}
	return nil
}

func validateLeg(e *Entry, l *Leg) (problems []string) {
	switch l.ModRM {
	case NoModRM:
		if l.Mod != 0 || l.Reg != 0 {
			problems = append(problems, "allow-set without ModRM")
		}

	case Enumerated:
		if len(e.Opcode) != 1 {
			problems = append(problems, "ModRM after fixed opcode suffix")
		}
		if l.Mod&^addressing.AllMods != 0 {
			problems = append(problems, fmt.Sprintf("invalid mod set %s", l.Mod))
		}
		if l.Width() == addressing.Width16 && l.Prefixes&AddressSize == 0 {
			problems = append(problems, "16-bit addressing without address-size prefix")
		}
		if l.Mod == addressing.Values(3) && l.Prefixes&AddressSize != 0 {
			problems = append(problems, "address-size prefix on register-direct operand")
		}

	case RawModRM:
		if l.Mod != 0 || l.Reg != 0 {
			problems = append(problems, "allow-set with raw ModRM")
		}
		if len(e.Opcode) != 1 {
			problems = append(problems, "ModRM after fixed opcode suffix")
		}

	default:
		problems = append(problems, fmt.Sprintf("invalid ModRM kind %d", l.ModRM))
	}

	if n := maxLen(e, l); n > in.MaxInsnLen {
		problems = append(problems, fmt.Sprintf("instruction may be %d bytes", n))
	}

	return
}

func maxLen(e *Entry, l *Leg) int {
	n := len(l.Prefixes.Bytes()) + len(e.Head())

	switch l.ModRM {
	case Enumerated:
		longest := 0
		for f := range addressing.Enumerate(l.Width(), l.Constraint()) {
			longest = max(longest, f.Len())
		}
		n += longest

	case RawModRM:
		n++
	}

	return n + operand.Len(l.Prefixes.Attr(), l.Operands)
}

func equalLegs(a, b *Leg) bool {
	return a.Prefixes == b.Prefixes &&
		a.ModRM == b.ModRM &&
		a.Constraint() == b.Constraint() &&
		slices.Equal(a.Operands, b.Operands)
}

type key struct {
	escaped bool
	head    []byte
}

// orderKey places the primary map first, followed by the escaped maps in
// byte order.  Fixed opcode suffix bytes are not significant.
func orderKey(e *Entry) key {
	head := e.Map.Escape()
	if len(e.Opcode) > 0 {
		head = append(slices.Clip(head), e.Opcode[0])
	}
	return key{e.Map != MapPrimary, head}
}

func (k key) less(other key) bool {
	if k.escaped != other.escaped {
		return !k.escaped
	}
	return bytes.Compare(k.head, other.head) < 0
}
