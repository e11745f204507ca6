// Copyright (c) 2019 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors exports common error types without unnecessary dependencies.
package errors

import (
	internal "github.com/tsavola/x86gen/internal/errors"
)

// OutputError indicates that the error is caused by the output sink: a write
// failure or a size limit.  It may wrap an underlying error.
type OutputError = internal.OutputError
