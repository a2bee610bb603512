/*
 * MIT License
 *
 * Copyright (c) 2019 Nicolas JUHEL
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

// Package molerctx is the per-entity attribute bag and cancellable context
// shared by observer.Base, device.Device and connection.Connection. It pairs
// a context.Context with a typed key/value store and its own cancel-with-cause,
// so a failing observer or device can record *why* it ended (the matched
// failure pattern, the expired timeout, the caller's cancellation) rather
// than only *that* it ended.
package molerctx

import "context"

type FuncWalk[T comparable] func(key T, val any) bool

type MapManage[T comparable] interface {
	// Clean removes all key-value pairs. Safe for concurrent use.
	Clean()
	// Load returns the value stored for key, and whether it was present.
	Load(key T) (val any, ok bool)
	// Store records val under key. A nil val is ignored; use Delete to
	// remove a key.
	Store(key T, val any)
	// Delete removes key.
	Delete(key T)
}

// Attrs pairs a context.Context with a typed attribute store and its own
// cancellation. Once Cancel has been called, further Store/Delete/
// LoadOrStore/LoadAndDelete calls are no-ops and drain the existing entries.
type Attrs[T comparable] interface {
	context.Context
	MapManage[T]

	// GetContext returns the underlying context.Context.
	GetContext() context.Context
	// Cancel ends the underlying context with reason as its Cause, and
	// clears the attribute store. Calling Cancel more than once keeps the
	// cause recorded by the first call.
	Cancel(reason error)
	// Cause returns the error passed to the first Cancel call, or
	// context.Cause(ctx) if the parent context ended on its own.
	Cause() error

	// Clone creates an independent copy of the current Attrs over ctx. If
	// ctx is nil, the current context is reused. Returns nil if the current
	// Attrs has already ended.
	Clone(ctx context.Context) Attrs[T]
	// Merge copies every key-value pair of cfg into the current Attrs.
	Merge(cfg Attrs[T]) bool
	// Walk iterates over every key-value pair.
	Walk(fct FuncWalk[T])
	// WalkLimit iterates only over the given keys, in no particular order.
	WalkLimit(fct FuncWalk[T], validKeys ...T)

	// LoadOrStore loads the value for key, storing val first if absent.
	LoadOrStore(key T, val any) (actual any, loaded bool)
	// LoadAndDelete loads the value for key and removes it.
	LoadAndDelete(key T) (val any, loaded bool)
}

// New returns a new Attrs derived from parent (context.Background() if nil).
func New[T comparable](parent context.Context) Attrs[T] {
	if parent == nil {
		parent = context.Background()
	}

	x, cancel := context.WithCancelCause(parent)

	return &attrs[T]{
		m:      newMap[T](),
		x:      x,
		cancel: cancel,
	}
}
