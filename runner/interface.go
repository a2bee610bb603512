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

// Package runner schedules observer.Observer lifecycles: Submit starts one
// and arms its timeout, WaitFor blocks for its outcome, Shutdown cancels
// everything still in flight and waits for it to drain. Unlike a
// fixed-size worker pool, the runner is one goroutine per in-flight
// observer - there is no bound on concurrency besides what the caller
// submits.
package runner

import (
	"context"
	"time"

	"github.com/AdamKlekowski/moler/observer"
)

// Submittable is what Submit accepts: an Observer that also exposes the
// Start/AwaitDone/Cancel lifecycle (command.Base and event.Base wrap
// observer.Base's self-taking Start to satisfy this).
type Submittable interface {
	observer.Observer
	observer.Lifecycle
}

// Runner is the scheduling surface command.Base, event.Base and
// device.Device submit observers through.
type Runner interface {
	Submit(ctx context.Context, o Submittable, timeout time.Duration) (observer.Handle, error)
	WaitFor(ctx context.Context, h observer.Handle) (any, error)
	Shutdown(ctx context.Context) error
	IsRunning() bool
}
