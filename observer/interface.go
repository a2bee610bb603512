/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package observer is the connection-observer layer: one byte stream fans
// out to many independently-cancellable, timeout-bearing observers, each
// with single-shot result/exception semantics. Command, event and the
// state-machine's transition edges are all built on top of observer.Base.
package observer

import (
	"context"
	"time"
)

// Observer is what connection.Connection fans inbound data out to. A type
// embedding Base satisfies this automatically.
type Observer interface {
	// Name identifies the observer for logging; not required to be unique.
	Name() string
	// DataReceived delivers one decoded chunk of inbound data. Called
	// outside of the connection's lock; must not block for long.
	DataReceived(chunk string)
	// SetException freezes the observer's outcome as a failure. A no-op
	// once the observer is already done.
	SetException(err error)
	// SetResult freezes the observer's outcome as a success. A no-op once
	// the observer is already done.
	SetResult(val any)
	// Done reports whether the observer has reached a terminal state.
	Done() <-chan struct{}
}

// Outcome is the single-shot result frozen into an observer.
type Outcome struct {
	Value any
	Err   error
}

// Handle identifies a running observer to a runner.Runner, returned by
// Submit and consumed by WaitFor.
type Handle interface {
	Observer() Observer
}

type handle struct {
	o Observer
}

func (h handle) Observer() Observer { return h.o }

// NewHandle wraps o as a Handle.
func NewHandle(o Observer) Handle {
	return handle{o: o}
}

// Runner-facing timing contract shared by every observer: Start arms the
// timeout and returns a Handle, AwaitDone blocks for the outcome, Call is
// the common Start+AwaitDone composition.
type Lifecycle interface {
	Start(ctx context.Context, timeout time.Duration) (Handle, error)
	AwaitDone(ctx context.Context) (any, error)
	Call(ctx context.Context, timeout time.Duration) (any, error)
	Cancel(cause error)
}
