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

package observer

import (
	"context"
	"sync"
	"time"

	internalatomic "github.com/AdamKlekowski/moler/internal/atomic"
	moerr "github.com/AdamKlekowski/moler/errors"
	"github.com/AdamKlekowski/moler/logger"
)

// Base is embedded by every concrete observer (command.Base, event.Base and
// the state machine's transition edges). It owns the single-shot Outcome
// cell, the done signal and the timeout watcher; subclasses override
// DataReceived by shadowing the method on their own embedding type.
type Base struct {
	name string
	log  logger.SLogger

	result internalatomic.Value[Outcome]
	once   sync.Once
	done   chan struct{}

	mu       sync.Mutex
	ctx      context.Context
	cancel   context.CancelCauseFunc
	timeoutT *time.Timer
}

// NewBase returns a Base ready to Start. log may be nil (logger.Discard()
// is used in that case).
func NewBase(name string, log logger.SLogger) *Base {
	if log == nil {
		log = logger.Discard()
	}
	return &Base{
		name:   name,
		log:    log,
		done:   make(chan struct{}),
		result: internalatomic.NewValue[Outcome](),
	}
}

func (b *Base) Name() string {
	return b.name
}

func (b *Base) Done() <-chan struct{} {
	return b.done
}

// DataReceived is the no-op default; command.Base, event.Base and similar
// embedders shadow this with their own line-framing logic.
func (b *Base) DataReceived(string) {}

// Start arms the observer's timeout (if > 0) and returns a Handle for the
// runner to track. self must be the outer Observer (the type embedding
// Base), so the timeout watcher calls DataReceived/SetException through the
// overridden methods rather than Base's own no-ops.
func (b *Base) Start(ctx context.Context, timeout time.Duration, self Observer) (Handle, error) {
	b.mu.Lock()
	if b.cancel != nil || b.IsDone() {
		b.mu.Unlock()
		return nil, moerr.ErrCommandFailure.Error(nil)
	}

	derived, cancel := context.WithCancelCause(ctx)
	b.ctx = derived
	b.cancel = cancel
	b.mu.Unlock()

	if timeout > 0 {
		b.timeoutT = time.AfterFunc(timeout, func() {
			self.SetException(moerr.ErrCommandTimeout.Error(nil))
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			self.Cancel(context.Cause(ctx))
		case <-b.done:
		}
	}()

	return NewHandle(self), nil
}

// Context returns the context derived from Start's ctx, cancelled by Cancel
// regardless of whether the caller's own ctx ever ends. Callers that start
// blocking work after Start (command.Base.StartAs's Send) must key it off
// this context, not the one passed to Start, or Cancel never reaches them.
// Returns context.Background() if called before Start.
func (b *Base) Context() context.Context {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ctx == nil {
		return context.Background()
	}
	return b.ctx
}

// AwaitDone blocks until the observer reaches a terminal state or ctx ends.
func (b *Base) AwaitDone(ctx context.Context) (any, error) {
	select {
	case <-b.done:
		o := b.result.Load()
		return o.Value, o.Err
	case <-ctx.Done():
		return nil, moerr.ErrCancelled.Error(ctx.Err())
	}
}

// Call is Start followed by AwaitDone.
func (b *Base) Call(ctx context.Context, timeout time.Duration, self Observer) (any, error) {
	if _, err := b.Start(ctx, timeout, self); err != nil {
		return nil, err
	}
	return b.AwaitDone(ctx)
}

// Cancel ends the observer with errors.ErrCancelled wrapping cause.
func (b *Base) Cancel(cause error) {
	b.mu.Lock()
	if b.cancel != nil {
		b.cancel(cause)
	}
	b.mu.Unlock()

	b.SetException(moerr.ErrCancelled.Error(cause))
}

func (b *Base) freeze(o Outcome) {
	b.once.Do(func() {
		b.result.Store(o)
		if b.timeoutT != nil {
			b.timeoutT.Stop()
		}
		close(b.done)
	})
}

// SetResult freezes a successful outcome. A no-op once already done.
func (b *Base) SetResult(val any) {
	b.freeze(Outcome{Value: val})
}

// SetException freezes a failing outcome. A no-op once already done.
func (b *Base) SetException(err error) {
	b.freeze(Outcome{Err: err})
}

// IsDone reports whether the observer has already reached a terminal state.
func (b *Base) IsDone() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}

// Log returns the logger bound to this observer.
func (b *Base) Log() logger.SLogger {
	return b.log
}
