// Copyright (c) 2019 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Errors
//
// OutputError type is accessible via errors subpackage.  Such errors are
// returned by Generate when the writer fails or when the configured size
// limit is exceeded.  The tables are static, so there are no other error
// conditions; invalid table entries cause a panic.
//
// The buffer.ErrSizeLimit error indicates that the output was truncated to
// the size limit.  It is an OutputError.
//
package x86gen
