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

package event

import (
	"context"
	"regexp"
	"sync/atomic"
	"time"

	"github.com/AdamKlekowski/moler/internal/lineframe"
	"github.com/AdamKlekowski/moler/logger"
	"github.com/AdamKlekowski/moler/observer"
)

// Sender is the narrow connection surface an Event needs to subscribe and
// unsubscribe itself; it never sends anything (unlike command.Sender).
type Sender interface {
	Subscribe(o observer.Observer)
	Unsubscribe(o observer.Observer)
}

// Base is embedded by every concrete event. Every inbound line matching
// Pattern invokes FireFunc; Base itself never reaches a terminal Outcome on
// a match the way command.Base does on ExpectedPrompt — only Stop, Cancel
// or a timeout end it.
type Base struct {
	*observer.Base

	conn    Sender
	Pattern *regexp.Regexp

	// FireFunc is called once per matching line, with the number of prior
	// matches (occurrences) not counting this one.
	FireFunc func(line string, occurrence int)

	buf        *lineframe.Buffer
	occurrence atomic.Int64
}

// NewBase returns a Base watching for pattern (a regexp source string,
// matched against each full line) on conn.
func NewBase(name, newline, pattern string, conn Sender, log logger.SLogger) (*Base, error) {
	re, err := regexpOrNil(pattern)
	if err != nil {
		return nil, err
	}

	return &Base{
		Base:    observer.NewBase(name, log),
		conn:    conn,
		Pattern: re,
		buf:     lineframe.New(newline),
	}, nil
}

// Start subscribes b to its connection and arms its timeout. Unlike
// command.Base, nothing is ever sent — Event only watches.
func (b *Base) Start(ctx context.Context, timeout time.Duration) (observer.Handle, error) {
	if b.IsDone() {
		return nil, errReused(b.Name())
	}

	b.conn.Subscribe(b)

	h, err := b.Base.Start(ctx, timeout, b)
	if err != nil {
		b.conn.Unsubscribe(b)
		return nil, err
	}

	go func() {
		<-b.Done()
		b.conn.Unsubscribe(b)
	}()

	return h, nil
}

// AwaitDone blocks until Stop, Cancel or a timeout ends the event.
func (b *Base) AwaitDone(ctx context.Context) (any, error) {
	return b.Base.AwaitDone(ctx)
}

// Call is Start followed by AwaitDone — rarely useful for an Event (which
// is meant to run in the background across many matches) but kept for
// symmetry with observer.Lifecycle and command.Command.
func (b *Base) Call(ctx context.Context, timeout time.Duration) (any, error) {
	if _, err := b.Start(ctx, timeout); err != nil {
		return nil, err
	}
	return b.AwaitDone(ctx)
}

// DataReceived shadows observer.Base's no-op, framing chunk into lines and
// firing on every match of Pattern.
func (b *Base) DataReceived(chunk string) {
	b.buf.Feed(chunk, b.onLine)
}

func (b *Base) onLine(line string, isFullLine bool) {
	if !isFullLine || b.Pattern == nil {
		return
	}
	if !b.Pattern.MatchString(line) {
		return
	}

	n := int(b.occurrence.Add(1)) - 1
	if b.FireFunc != nil {
		b.FireFunc(line, n)
	}
}

// Stop ends the event normally, reporting the number of matches seen. The
// event leaves its connection before the result is set, so a caller released
// by AwaitDone never finds it still subscribed.
func (b *Base) Stop() {
	b.conn.Unsubscribe(b)
	b.SetResult(int(b.occurrence.Load()))
}

func regexpOrNil(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errBadPattern(pattern, err)
	}
	return re, nil
}
