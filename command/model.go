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

package command

import (
	"context"
	"fmt"
	"regexp"
	"time"

	moerr "github.com/AdamKlekowski/moler/errors"
	"github.com/AdamKlekowski/moler/logger"
	"github.com/AdamKlekowski/moler/observer"
)

// Base is embedded by every concrete command. Line is sent (with Newline
// appended) exactly once, right after Start subscribes to conn. Inbound
// text is framed into lines; the first non-empty line is discarded as the
// shell's echo, subsequent lines are checked against FailurePatterns and
// ExpectedPrompt, everything else reaches LineFunc. After the echo, the
// trailing unterminated line is also passed to LineFunc (isFullLine false)
// and checked against ExpectedPrompt.
type Base struct {
	*observer.Base

	conn Sender

	Line            string
	Newline         string
	ExpectedPrompt  *regexp.Regexp
	FailurePatterns []*regexp.Regexp
	LineFunc        func(line string, isFullLine bool)

	buf          *lineBuffer
	echoConsumed bool
}

// NewBase returns a Base ready to Start. expectedPrompt/failurePatterns
// are regexp source strings; pass "" / nil to skip them.
func NewBase(name, line, newline, expectedPrompt string, failurePatterns []string, conn Sender, log logger.SLogger) (*Base, error) {
	prompt, err := regexpOrNil(expectedPrompt)
	if err != nil {
		return nil, moerr.ErrConfiguration.Error(err)
	}

	pats := make([]*regexp.Regexp, 0, len(failurePatterns))
	for _, p := range failurePatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, moerr.ErrConfiguration.Error(err)
		}
		pats = append(pats, re)
	}

	if newline == "" {
		newline = "\n"
	}

	return &Base{
		Base:            observer.NewBase(name, log),
		conn:            conn,
		Line:            line,
		Newline:         newline,
		ExpectedPrompt:  prompt,
		FailurePatterns: pats,
		buf:             newLineBuffer(newline),
	}, nil
}

// Start subscribes b to its connection, arms its timeout, and sends Line
// exactly once. Starting an already-completed Base fails synchronously
// with ErrReused (spec scenario S4).
func (b *Base) Start(ctx context.Context, timeout time.Duration) (observer.Handle, error) {
	return b.StartAs(ctx, timeout, b)
}

// StartAs lets command/sudo reuse the subscribe/send/timeout sequence while
// substituting itself (rather than the embedded Base) as self, so the
// timeout watcher and the connection's fan-out both call the outer type's
// DataReceived/SetException/Cancel — Go's embedding has no virtual dispatch,
// so without this the outer wrapper's overrides would never be reached.
func (b *Base) StartAs(ctx context.Context, timeout time.Duration, self observer.Observer) (observer.Handle, error) {
	if b.IsDone() {
		return nil, ErrReused(b.Name())
	}

	b.conn.Subscribe(self)

	h, err := b.Base.Start(ctx, timeout, self)
	if err != nil {
		b.conn.Unsubscribe(self)
		return nil, err
	}

	go func() {
		<-b.Done()
		b.conn.Unsubscribe(self)
	}()

	if err := b.conn.Send(b.Base.Context(), b.Line+b.Newline); err != nil {
		b.SetException(moerr.ErrIO.Error(err))
		return h, nil
	}

	return h, nil
}

// CommandLine returns the text Start sends (without Newline appended).
// Used by command/sudo to build its own wrapping line from the inner
// command's line.
func (b *Base) CommandLine() string {
	return b.Line
}

// SkipEcho marks the shell-echo line as already consumed, so the next full
// line delivered to DataReceived is treated as real output rather than
// discarded. command/sudo uses this on the inner command it wraps, since
// the inner command's own Line was never actually sent verbatim (the outer
// sudo.Command sent "sudo <line>" instead).
func (b *Base) SkipEcho() {
	b.echoConsumed = true
}

// AwaitDone blocks until a result, exception, timeout or cancellation.
func (b *Base) AwaitDone(ctx context.Context) (any, error) {
	return b.Base.AwaitDone(ctx)
}

// Call is Start followed by AwaitDone.
func (b *Base) Call(ctx context.Context, timeout time.Duration) (any, error) {
	if _, err := b.Start(ctx, timeout); err != nil {
		return nil, err
	}
	return b.AwaitDone(ctx)
}

// DataReceived shadows observer.Base's no-op, framing chunk into lines.
func (b *Base) DataReceived(chunk string) {
	b.buf.Feed(chunk, b.onLine)
}

func (b *Base) onLine(line string, isFullLine bool) {
	if !isFullLine {
		if !b.echoConsumed {
			return
		}
		if b.LineFunc != nil {
			b.LineFunc(line, false)
		}
		// A shell prompt usually arrives without a trailing newline, so the
		// running partial line is checked against ExpectedPrompt as well.
		if b.ExpectedPrompt != nil && b.ExpectedPrompt.MatchString(line) {
			b.SetResult(line)
		}
		return
	}

	if !b.echoConsumed {
		if line == "" {
			return
		}
		b.echoConsumed = true
		return
	}

	for _, p := range b.FailurePatterns {
		if p.MatchString(line) {
			b.SetException(moerr.ErrCommandFailure.Error(fmt.Errorf("line %q matched failure pattern %q", line, p.String())))
			return
		}
	}

	if b.ExpectedPrompt != nil && b.ExpectedPrompt.MatchString(line) {
		b.SetResult(line)
		return
	}

	if b.LineFunc != nil {
		b.LineFunc(line, true)
	}
}
