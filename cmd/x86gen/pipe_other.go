// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !unix

package main

func ignoreBrokenPipe() {}

func brokenPipe(err error) bool {
	return false
}
