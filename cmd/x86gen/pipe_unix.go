// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package main

import (
	"os/signal"

	"golang.org/x/sys/unix"
	"golang.org/x/xerrors"
)

// ignoreBrokenPipe makes writes to a closed stdout fail with EPIPE instead
// of terminating the process.
func ignoreBrokenPipe() {
	signal.Ignore(unix.SIGPIPE)
}

func brokenPipe(err error) bool {
	return xerrors.Is(err, unix.EPIPE)
}
