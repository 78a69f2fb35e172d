// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates Read found nothing to read.
//
// ErrWouldBlock is a control flow signal, not a failure: the caller
// should retry later, with backoff, rather than propagating the
// error.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrQueueFull indicates Write found no free page in Blocking mode.
//
// ErrQueueFull never occurs in Overwrite mode: writers always
// succeed there by stealing the oldest unread page.
var ErrQueueFull = errors.New("ringq: queue full")

// IsWouldBlock reports whether err indicates the operation would
// block. Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal, not a
// failure. Delegates to [iox.IsSemantic]; ErrQueueFull and
// ErrWouldBlock both qualify.
func IsSemantic(err error) bool {
	return iox.IsSemantic(err) || errors.Is(err, ErrQueueFull)
}

// IsNonFailure reports whether err represents a non-failure
// condition: nil, ErrWouldBlock, or ErrQueueFull.
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err) || errors.Is(err, ErrQueueFull)
}
