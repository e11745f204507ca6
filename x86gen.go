// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package x86gen generates a stream of 32-bit x86 instructions which covers
// the ModRM, SIB and displacement encodings of every opcode in a table.
//
// Operand fields are filled with sentinel bytes which identify their role;
// see package operand.  The canonical stream is produced by a zero Config.
package x86gen

import (
	"bufio"
	"context"
	"io"
	"iter"
	"log"

	"github.com/tsavola/x86gen/addressing"
	"github.com/tsavola/x86gen/buffer"
	"github.com/tsavola/x86gen/internal"
	"github.com/tsavola/x86gen/internal/errorpanic"
	"github.com/tsavola/x86gen/internal/errors"
	"github.com/tsavola/x86gen/internal/isa/x86/in"
	"github.com/tsavola/x86gen/operand"
	"github.com/tsavola/x86gen/table"
	"golang.org/x/sync/errgroup"
)

const (
	writeBufferSize     = 64 * 1024
	cancelCheckInterval = 4096
)

// Config for a generator invocation.  The zero value generates the complete
// table.
type Config struct {
	Entries []table.Entry       // Defaults to table.All().
	Widths  addressing.WidthSet // Addressing widths of legs to generate.
	MaxSize int                 // Output byte limit, if positive.
	Workers int                 // Concurrent rendering, if greater than 1.
	Log     *log.Logger         // Per-entry progress, if set.
}

func (config *Config) entries() []table.Entry {
	if config.Entries != nil {
		return config.Entries
	}
	return table.All()
}

// EntryStats describes the output of one entry.
type EntryStats struct {
	Insns int
	Bytes int64
}

// Stats of generated output.
type Stats struct {
	Entries  int // Generated entries.
	Excluded int // Skipped entries.
	Legs     int // Generated legs.
	Insns    int
	Bytes    int64
}

func (s *Stats) add(e EntryStats, legs int) {
	s.Entries++
	s.Legs += legs
	s.Insns += e.Insns
	s.Bytes += e.Bytes
}

// Insns of the given entries.  The yielded slice is valid until the next
// iteration.
func Insns(entries []table.Entry, widths addressing.WidthSet) iter.Seq2[*table.Entry, []byte] {
	return func(yield func(*table.Entry, []byte) bool) {
		for i := range entries {
			e := &entries[i]
			if e.Excluded() {
				continue
			}

			if !render(e, widths, func(insn []byte) bool { return yield(e, insn) }) {
				return
			}
		}
	}
}

// Each calls f with every instruction of the given entries, in output order.
// The instruction slice is valid only during the call.
func Each(entries []table.Entry, widths addressing.WidthSet, f func(e *table.Entry, insn []byte)) {
	for e, insn := range Insns(entries, widths) {
		f(e, insn)
	}
}

// Count the instructions and bytes of an entry without writing them.
func Count(e *table.Entry, widths addressing.WidthSet) (s EntryStats) {
	if e.Excluded() {
		return
	}

	render(e, widths, func(insn []byte) bool {
		s.Insns++
		s.Bytes += int64(len(insn))
		return true
	})
	return
}

// render calls yield for each instruction of the entry until it returns
// false.  The result is false if rendering was stopped.
func render(e *table.Entry, widths addressing.WidthSet, yield func([]byte) bool) bool {
	for i := range e.Legs {
		l := &e.Legs[i]
		if !widths.Has(l.Width()) {
			continue
		}

		var o in.Output

		l.Prefixes.Put(&o)
		o.Put(e.Map.Escape())
		o.Put(e.Opcode)
		head := o.Len()
		attr := l.Prefixes.Attr()

		switch l.ModRM {
		case table.NoModRM:
			operand.Put(&o, attr, l.Operands)
			if !yield(o.Bytes()) {
				return false
			}

		case table.RawModRM:
			for b := 0; b < 256; b++ {
				o.Truncate(head)
				o.Byte(byte(b))
				operand.Put(&o, attr, l.Operands)
				if !yield(o.Bytes()) {
					return false
				}
			}

		case table.Enumerated:
			for f := range addressing.Enumerate(l.Width(), l.Constraint()) {
				o.Truncate(head)
				f.Put(&o)
				operand.Put(&o, attr, l.Operands)
				if !yield(o.Bytes()) {
					return false
				}
			}
		}
	}

	return true
}

// Generate the instruction stream.  The output is flushed before returning,
// also when the size limit is exceeded.  Errors caused by the writer or the
// size limit implement errors.OutputError.
func Generate(w io.Writer, config *Config) (stats Stats, err error) {
	if config == nil {
		config = new(Config)
	}

	s := &sink{
		w:     bufio.NewWriterSize(w, writeBufferSize),
		limit: int64(config.MaxSize),
	}

	if internal.DontPanic() {
		defer func() {
			err = errorpanic.Handle(recover())
		}()
	}

	if config.Workers > 1 {
		generateParallel(s, config, &stats)
	} else {
		generateSerial(s, config, &stats)
	}

	s.flush()
	return
}

func generateSerial(s *sink, config *Config, stats *Stats) {
	for _, e := range config.entries() {
		if e.Excluded() {
			stats.Excluded++
			continue
		}

		var es EntryStats

		render(&e, config.Widths, func(insn []byte) bool {
			s.write(insn)
			es.Insns++
			es.Bytes += int64(len(insn))
			return true
		})

		stats.add(es, legCount(&e, config.Widths))
		logEntry(config.Log, &e, es)
	}
}

type rendered struct {
	e     *table.Entry
	buf   *buffer.Dynamic // nil if excluded
	stats EntryStats
}

// generateParallel renders entries concurrently into pooled buffers while a
// writer goroutine consumes them in table order.  An output error stops the
// rendering.
func generateParallel(s *sink, config *Config, stats *Stats) {
	entries := config.entries()

	free := make(chan *buffer.Dynamic, config.Workers*2)
	for i := 0; i < cap(free); i++ {
		free <- new(buffer.Dynamic)
	}
	queue := make(chan chan rendered, config.Workers)

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(config.Workers + 1)

	g.Go(func() (err error) {
		defer func() {
			if x := recover(); x != nil {
				err = errorpanic.Handle(x)
			}
		}()

		for results := range queue {
			r := <-results
			if r.buf == nil {
				stats.Excluded++
				continue
			}

			if _, err := r.buf.WriteTo(s); err != nil {
				return err
			}
			stats.add(r.stats, legCount(r.e, config.Widths))
			logEntry(config.Log, r.e, r.stats)

			r.buf.Reset()
			free <- r.buf
		}
		return nil
	})

loop:
	for i := range entries {
		e := &entries[i]
		results := make(chan rendered, 1)

		select {
		case queue <- results:
		case <-ctx.Done():
			break loop
		}

		if e.Excluded() {
			results <- rendered{e: e}
			continue
		}

		var b *buffer.Dynamic

		select {
		case b = <-free:
		case <-ctx.Done():
			break loop
		}

		g.Go(func() error {
			var c EntryStats

			render(e, config.Widths, func(insn []byte) bool {
				b.PutBytes(insn)
				c.Insns++
				return c.Insns%cancelCheckInterval != 0 || ctx.Err() == nil
			})
			c.Bytes = int64(b.Len())

			results <- rendered{e, b, c}
			return nil
		})
	}

	close(queue)

	if err := g.Wait(); err != nil {
		panic(err)
	}
}

func legCount(e *table.Entry, widths addressing.WidthSet) (n int) {
	for i := range e.Legs {
		if widths.Has(e.Legs[i].Width()) {
			n++
		}
	}
	return
}

func logEntry(l *log.Logger, e *table.Entry, s EntryStats) {
	if l != nil {
		l.Printf("%s: %d instructions, %d bytes", e, s.Insns, s.Bytes)
	}
}

// sink panics with errors.
type sink struct {
	w     *bufio.Writer
	limit int64
	n     int64
}

func (s *sink) write(b []byte) {
	if s.limit > 0 && s.n+int64(len(b)) > s.limit {
		b = b[:s.limit-s.n]
		s.put(b)
		s.flush()
		panic(buffer.ErrSizeLimit)
	}

	s.put(b)
}

// Write implements io.Writer for rendered entries.  Errors are panicked.
func (s *sink) Write(b []byte) (int, error) {
	s.write(b)
	return len(b), nil
}

func (s *sink) put(b []byte) {
	if _, err := s.w.Write(b); err != nil {
		panic(errors.Output(err))
	}
	s.n += int64(len(b))
}

func (s *sink) flush() {
	if err := s.w.Flush(); err != nil {
		panic(errors.Output(err))
	}
}
