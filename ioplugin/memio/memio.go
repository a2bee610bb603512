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

// Package memio is a fake ioplugin.RawIO used only by tests: it replays a
// scripted sequence of byte chunks into its bound connection.Connection on
// a ticker, and records everything sent to it in turn. Used by the
// module's end-to-end scenario tests (S1-S6) instead of a real PTY or TCP
// socket.
package memio

import (
	"context"
	"sync"
	"time"

	"github.com/AdamKlekowski/moler/connection"
	"github.com/AdamKlekowski/moler/ioplugin"
)

// Script is one scripted chunk: Data is delivered After the previous
// chunk (or Open, for the first one).
type Script struct {
	After time.Duration
	Data  []byte
}

// RawIO is the fake transport, bound at construction to the connection it
// feeds (the same contract a real plugin follows). Script chunks are
// replayed in order once Open is called; Sent records every Send call's
// payload for assertions.
type RawIO struct {
	kind ioplugin.Kind
	conn *connection.Connection

	script []Script

	mu     sync.Mutex
	sent   [][]byte
	closed bool
	cancel context.CancelFunc
}

// New returns a RawIO of the given kind bound to conn, replaying script
// into conn.DataReceived after each chunk's scripted delay.
func New(kind ioplugin.Kind, conn *connection.Connection, script []Script) *RawIO {
	return &RawIO{kind: kind, conn: conn, script: script}
}

func (r *RawIO) Kind() ioplugin.Kind {
	return r.kind
}

func (r *RawIO) Open(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	r.cancel = cancel
	r.mu.Unlock()

	go func() {
		for _, s := range r.script {
			t := time.NewTimer(s.After)
			select {
			case <-runCtx.Done():
				t.Stop()
				return
			case <-t.C:
			}
			r.mu.Lock()
			closed := r.closed
			r.mu.Unlock()
			if closed {
				return
			}
			_ = r.conn.DataReceived(runCtx, s.Data)
		}
	}()

	return nil
}

func (r *RawIO) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	if r.cancel != nil {
		r.cancel()
	}
	return nil
}

func (r *RawIO) Send(_ context.Context, b []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := append([]byte(nil), b...)
	r.sent = append(r.sent, cp)
	return len(b), nil
}

// Sent returns every payload handed to Send, in order.
func (r *RawIO) Sent() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]byte, len(r.sent))
	copy(out, r.sent)
	return out
}

// Deliver injects a chunk immediately, bypassing the script — useful for
// tests driving the connection interactively rather than on a timer.
func (r *RawIO) Deliver(ctx context.Context, data []byte) error {
	return r.conn.DataReceived(ctx, data)
}
