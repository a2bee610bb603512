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

package connection

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-uuid"

	moerr "github.com/AdamKlekowski/moler/errors"
	"github.com/AdamKlekowski/moler/logger"
	"github.com/AdamKlekowski/moler/observer"
)

// subscriberLock is the single mutex guarding subs: write-locked for
// Subscribe/Unsubscribe, read-locked only long enough to snapshot the slice
// before DataReceived dispatches outside the lock.
type subscriberLock struct {
	sync.RWMutex
}

func newConnID() string {
	id, err := uuid.GenerateUUID()
	if err != nil {
		return fmt.Sprintf("conn-%p", &id)
	}
	return id
}

// DefaultDecoder is a verbatim UTF-8 passthrough, the identity Decoder used
// when a caller has no charset/protocol framing of its own to apply.
func DefaultDecoder(raw []byte) (string, error) {
	return string(raw), nil
}

// Subscribe registers o to receive every future DataReceived call. Safe to
// call while DataReceived is in flight on another goroutine.
func (c *Connection) Subscribe(o observer.Observer) {
	if o == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, o)
}

// Unsubscribe removes o. A no-op if o was never subscribed.
func (c *Connection) Unsubscribe(o observer.Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, s := range c.subs {
		if s == o {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			return
		}
	}
}

// snapshot returns the current subscriber slice under a read lock.
func (c *Connection) snapshot() []observer.Observer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]observer.Observer, len(c.subs))
	copy(out, c.subs)
	return out
}

// DataReceived decodes raw once and delivers the result to every observer
// subscribed at the time of the call, outside of the subscriber lock so one
// slow or panicking observer cannot block Subscribe/Unsubscribe or delivery
// to the rest. A panicking observer's callback is converted into that
// observer's own exception rather than propagated to the caller or to its
// siblings.
func (c *Connection) DataReceived(ctx context.Context, raw []byte) error {
	text, err := c.decoder(raw)
	if err != nil {
		return moerr.ErrIO.Error(err)
	}

	for _, o := range c.snapshot() {
		c.deliver(o, text)
	}
	return nil
}

func (c *Connection) deliver(o observer.Observer, text string) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Warn("observer panicked while receiving data",
				logger.F("observer", o.Name()),
				logger.F("recovered", r),
			)
			o.SetException(moerr.ErrIO.Error(fmt.Errorf("observer %q panicked: %v", o.Name(), r)))
		}
	}()
	o.DataReceived(text)
}

// Send writes text out through the Sender bound to this connection's raw
// I/O. Returns errors.ErrIO on failure.
func (c *Connection) Send(ctx context.Context, text string) error {
	if c.sender == nil {
		return moerr.ErrIO.Error(fmt.Errorf("connection %s has no sender bound", c.id))
	}
	if err := c.sender(ctx, text); err != nil {
		return moerr.ErrIO.Error(err)
	}
	return nil
}
