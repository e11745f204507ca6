// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Program x86gen writes the instruction stream and checks it against
// disassemblers.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/tsavola/x86gen"
	"github.com/tsavola/x86gen/addressing"
	"github.com/tsavola/x86gen/disasm"
	"github.com/tsavola/x86gen/table"
	"golang.org/x/xerrors"
)

var errVerifyFailed = xerrors.New("verification failed")

func main() {
	log.SetFlags(0)
	ignoreBrokenPipe()

	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		switch {
		case err == errVerifyFailed:
			os.Exit(1)

		case brokenPipe(err):
			log.Fatalf("%s: output pipe closed", cmd.Name())

		default:
			log.Fatalf("%s: %v", cmd.Name(), err)
		}
	}
}

func newRootCmd() *cobra.Command {
	var (
		output  string
		widths  []int
		maxSize int
		workers int
		verbose bool
	)

	rootCmd := &cobra.Command{
		Use:           "x86gen",
		Short:         "Generate an exhaustive 32-bit x86 instruction stream",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := parseWidths(widths)
			if err != nil {
				return err
			}

			config := &x86gen.Config{
				Widths:  ws,
				MaxSize: maxSize,
				Workers: workers,
			}
			if verbose {
				config.Log = log.New(cmd.ErrOrStderr(), "", 0)
			}

			var file *os.File

			w := cmd.OutOrStdout()
			if output != "" {
				file, err = os.Create(output)
				if err != nil {
					return err
				}
				defer func() {
					if file != nil {
						file.Close()
					}
				}()
				w = file
			}

			stats, err := x86gen.Generate(w, config)
			if verbose {
				log.New(cmd.ErrOrStderr(), "", 0).Printf("%d entries (%d excluded), %d legs, %d instructions, %d bytes", stats.Entries, stats.Excluded, stats.Legs, stats.Insns, stats.Bytes)
			}
			if err != nil {
				return err
			}

			if file != nil {
				f := file
				file = nil
				return f.Close()
			}
			return nil
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	flags.IntSliceVar(&widths, "width", []int{16, 32}, "addressing widths to generate")
	flags.IntVar(&maxSize, "max-size", 0, "stop after writing this many bytes")
	flags.IntVar(&workers, "workers", runtime.GOMAXPROCS(0), "concurrent entry rendering")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log every entry")

	rootCmd.AddCommand(
		newListCmd(),
		newStatsCmd(),
		newVerifyCmd(),
		newDumpCmd(),
	)

	return rootCmd
}

func parseWidths(values []int) (s addressing.WidthSet, err error) {
	for _, v := range values {
		switch v {
		case 16:
			s |= addressing.Widths16
		case 32:
			s |= addressing.Widths32
		default:
			err = xerrors.Errorf("invalid addressing width: %d", v)
			return
		}
	}
	if s == 0 {
		err = xerrors.New("no addressing widths")
	}
	return
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List opcode table entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			for _, e := range table.All() {
				var err error
				if e.Excluded() {
					_, err = fmt.Fprintf(w, "%s\t(excluded: %s)\n", &e, e.Exclude)
				} else {
					_, err = fmt.Fprintf(w, "%s\n", &e)
					for i := 0; err == nil && i < len(e.Legs); i++ {
						_, err = fmt.Fprintf(w, "\t%s\n", &e.Legs[i])
					}
				}
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	var widths []int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count instructions per entry without generating them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := parseWidths(widths)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			var total x86gen.EntryStats

			for _, e := range table.All() {
				if e.Excluded() {
					continue
				}

				s := x86gen.Count(&e, ws)
				total.Insns += s.Insns
				total.Bytes += s.Bytes

				if _, err := fmt.Fprintf(w, "%s\t%d\t%d\n", &e, s.Insns, s.Bytes); err != nil {
					return err
				}
			}

			_, err = fmt.Fprintf(w, "total\t%d\t%d\n", total.Insns, total.Bytes)
			return err
		},
	}

	cmd.Flags().IntSliceVar(&widths, "width", []int{16, 32}, "addressing widths to count")
	return cmd
}

func newVerifyCmd() *cobra.Command {
	var names []string

	cmd := &cobra.Command{
		Use:   "verify [FILE]",
		Short: "Decode every instruction of a stream with disassembly engines",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, closer, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer closer()

			var engines []disasm.Engine
			defer func() {
				for _, e := range engines {
					disasm.Close(e)
				}
			}()

			for _, name := range names {
				e, err := disasm.New(name)
				if err != nil {
					return err
				}
				engines = append(engines, e)
			}

			report, err := disasm.Verify(r, engines...)
			if printErr := report.Fprint(cmd.OutOrStdout()); printErr != nil {
				return printErr
			}
			if err != nil {
				return err
			}
			if !report.OK() {
				return errVerifyFailed
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&names, "engine", []string{"length", "x86asm"}, fmt.Sprintf("disassembly engines %v", disasm.Names()))
	return cmd
}

func newDumpCmd() *cobra.Command {
	var (
		name  string
		count int
	)

	cmd := &cobra.Command{
		Use:   "dump [FILE]",
		Short: "Print a disassembly listing of a stream",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, closer, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer closer()

			e, err := disasm.New(name)
			if err != nil {
				return err
			}
			defer disasm.Close(e)

			d, ok := e.(disasm.Disassembler)
			if !ok {
				return xerrors.Errorf("%s: engine cannot format instructions", name)
			}

			text, err := disasm.ReadStream(r, disasm.MaxStreamSize)
			if err != nil {
				return err
			}

			return disasm.Fprint(cmd.OutOrStdout(), text, d, count)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&name, "engine", "x86asm", "disassembly engine")
	flags.IntVarP(&count, "count", "n", 0, "maximum number of instructions")
	return cmd
}

func openInput(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
