// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package x86gen

import (
	"io"
	"runtime"
	"testing"
	"time"

	"github.com/tsavola/x86gen/addressing"
	"github.com/tsavola/x86gen/table"
)

func TestBenchmarkGenerate(t *testing.T) {
	if !testing.Verbose() {
		t.SkipNow()
	}

	for _, workers := range []int{1, runtime.GOMAXPROCS(0)} {
		t0 := time.Now()

		stats, err := Generate(io.Discard, &Config{Workers: workers})
		if err != nil {
			t.Fatal(err)
		}

		d := time.Since(t0)
		t.Logf("%d workers: %d instructions, %d bytes in %v (%.1f MB/s)", workers, stats.Insns, stats.Bytes, d, float64(stats.Bytes)/d.Seconds()/1e6)
	}
}

func benchmarkGenerate(b *testing.B, workers int) {
	entries := table.All()[:32]

	for i := 0; i < b.N; i++ {
		stats, err := Generate(io.Discard, &Config{Entries: entries, Workers: workers})
		if err != nil {
			b.Fatal(err)
		}
		b.SetBytes(stats.Bytes)
	}
}

func BenchmarkGenerateSerial(b *testing.B)   { benchmarkGenerate(b, 1) }
func BenchmarkGenerateParallel(b *testing.B) { benchmarkGenerate(b, runtime.GOMAXPROCS(0)) }

func BenchmarkEnumerate32(b *testing.B) {
	for i := 0; i < b.N; i++ {
		for range addressing.Enumerate(addressing.Width32, addressing.Unrestricted) {
		}
	}
}
