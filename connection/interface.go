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

// Package connection implements the Moler Connection: one decoded byte
// stream fanned out to an arbitrary number of concurrently-subscribed
// observers. The core never speaks SSH or TCP itself; a Connection is
// handed a Decoder and a Sender by whatever ioplugin.RawIO owns the socket.
package connection

import (
	"context"

	"github.com/AdamKlekowski/moler/logger"
	"github.com/AdamKlekowski/moler/observer"
)

// Decoder turns a raw inbound byte chunk into text. Concrete charset/
// protocol decoding is an ioplugin concern; the default decoder here is a
// verbatim UTF-8 passthrough.
type Decoder func(raw []byte) (string, error)

// Sender writes text out through whatever raw I/O backs this connection.
type Sender func(ctx context.Context, text string) error

// Connection is the fan-out hub: it decodes inbound bytes once and delivers
// the result to every currently-subscribed observer.Observer.
type Connection struct {
	id      string
	decoder Decoder
	sender  Sender
	log     logger.SLogger

	mu   subscriberLock
	subs []observer.Observer
}

// New returns a Connection identified by id (caller-supplied; pass "" to
// have one assigned via ID()). decoder must not be nil; a nil sender makes
// every Send fail with errors.ErrIO.
func New(id string, decoder Decoder, sender Sender, log logger.SLogger) *Connection {
	if log == nil {
		log = logger.Discard()
	}
	if id == "" {
		id = newConnID()
	}
	return &Connection{
		id:      id,
		decoder: decoder,
		sender:  sender,
		log:     log,
	}
}

// ID returns this connection's identifier.
func (c *Connection) ID() string {
	return c.id
}
