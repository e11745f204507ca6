// Copyright (c) 2019 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

type OutputError interface {
	error
	OutputError() bool
}

type outputError struct {
	text  string
	cause error
}

// Output wraps an error returned by an output sink.
func Output(cause error) error {
	return &outputError{"output: " + cause.Error(), cause}
}

func (e *outputError) Error() string     { return e.text }
func (e *outputError) OutputError() bool { return true }
func (e *outputError) Unwrap() error     { return e.cause }
