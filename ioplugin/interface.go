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

// Package ioplugin defines the raw I/O contract the core consumes but
// never implements itself: the concrete transport (TCP socket, SSH shell
// channel, local PTY) is always a plugin. local, tcp, memio and
// demoparsers are reference plugins outside the core's required scope.
package ioplugin

import "context"

// Kind names the transport family a RawIO belongs to, used by device.New
// to validate a requested initial state against what the transport can
// actually reach (spec scenario S6).
type Kind string

const (
	KindTerminal Kind = "terminal"
	KindSSHShell Kind = "ssh-shell"
	KindTCP      Kind = "tcp"
)

// RawIO is the raw bidirectional transport underneath a Moler Connection.
// It is constructed already bound to the connection.Connection it will
// feed via DataReceived as bytes arrive.
type RawIO interface {
	// Kind reports this transport's family, used for initial-state
	// validation.
	Kind() Kind

	// Open establishes the underlying transport and starts pumping
	// inbound bytes into the bound connection.Connection.
	Open(ctx context.Context) error

	// Close tears down the transport. Idempotent.
	Close() error

	// Send writes b out over the transport.
	Send(ctx context.Context, b []byte) (int, error)
}

// Scope opens rio immediately and returns a closer that tears it down —
// spec.md §6 "entering its scope opens, exiting closes on all paths."
// Typical use:
//
//	closer := ioplugin.Scope(rio)
//	defer closer()
//
// If Open fails, the returned closer is a no-op returning that same error
// on every call, so callers can defer it unconditionally.
func Scope(rio RawIO) func() error {
	if err := rio.Open(context.Background()); err != nil {
		return func() error { return err }
	}
	return rio.Close
}
