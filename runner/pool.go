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

package runner

import (
	"context"
	"sync"
	"time"

	moerr "github.com/AdamKlekowski/moler/errors"
	"github.com/AdamKlekowski/moler/logger"
	"github.com/AdamKlekowski/moler/metrics"
	"github.com/AdamKlekowski/moler/observer"
)

// pool is the default Runner: one goroutine watches each submitted
// observer to completion and reports it into Metrics, grounded on the
// teacher's runner/startStop contract (IsRunning/New(start, stop)),
// generalized from a single background function to an arbitrary number of
// concurrently in-flight observers.
type pool struct {
	log logger.SLogger
	met *metrics.Runner

	mu      sync.Mutex
	running bool
	wg      sync.WaitGroup

	shutdownCtx    context.Context
	shutdownCancel context.CancelFunc
}

// New returns a Runner ready to accept Submit calls. log and met may be
// nil.
func New(log logger.SLogger, met *metrics.Runner) Runner {
	if log == nil {
		log = logger.Discard()
	}
	if met == nil {
		met = metrics.NewRunner(nil, "moler")
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &pool{
		log:            log,
		met:            met,
		running:        true,
		shutdownCtx:    ctx,
		shutdownCancel: cancel,
	}
}

func (p *pool) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Submit starts o with timeout and tracks it to completion. The returned
// Handle is also accepted by WaitFor.
func (p *pool) Submit(ctx context.Context, o Submittable, timeout time.Duration) (observer.Handle, error) {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil, moerr.ErrCancelled.Error(nil)
	}
	p.mu.Unlock()

	h, err := o.Start(ctx, timeout)
	if err != nil {
		return nil, err
	}

	p.met.Submitted.Inc()
	p.met.InFlight.Inc()
	p.wg.Add(1)

	go func() {
		defer p.wg.Done()
		defer p.met.InFlight.Dec()

		select {
		case <-o.Done():
		case <-p.shutdownCtx.Done():
			o.Cancel(context.Cause(p.shutdownCtx))
			<-o.Done()
		}

		if _, err := o.AwaitDone(context.Background()); err != nil {
			e := moerr.Get(err)
			switch {
			case e != nil && e.IsCode(moerr.ErrCommandTimeout):
				p.met.TimedOut.Inc()
			case e != nil && e.IsCode(moerr.ErrCancelled):
				p.met.Cancelled.Inc()
			default:
				p.met.Completed.Inc()
			}
		} else {
			p.met.Completed.Inc()
		}
	}()

	return h, nil
}

// WaitFor blocks for h's observer to reach a terminal outcome.
func (p *pool) WaitFor(ctx context.Context, h observer.Handle) (any, error) {
	if h == nil {
		return nil, moerr.ErrCommandFailure.Error(nil)
	}

	o := h.Observer()

	select {
	case <-o.Done():
	case <-ctx.Done():
		return nil, moerr.ErrCancelled.Error(ctx.Err())
	}

	lc, ok := o.(observer.Lifecycle)
	if !ok {
		return nil, nil
	}
	return lc.AwaitDone(ctx)
}

// Shutdown cancels every observer still in flight (each ends with
// errors.ErrCancelled) and waits for the watcher goroutines to drain, or for
// ctx to end first.
func (p *pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	p.running = false
	p.mu.Unlock()

	p.shutdownCancel()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return moerr.ErrCancelled.Error(ctx.Err())
	}
}
