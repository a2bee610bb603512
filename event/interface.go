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

// Package event implements Event: a long-running connection observer that
// may match and fire any number of times before it is stopped, rather than
// completing on its first match the way command.Command does. Its contract
// is deliberately thin: a Pattern that may occur repeatedly in the stream,
// a FireFunc called once per match, and an explicit Stop instead of a
// single-shot result.
package event

import (
	"github.com/AdamKlekowski/moler/observer"
)

// Event is a long-running observer.Observer that fires FireFunc on every
// line matching Pattern until Stop is called (or its context is
// cancelled/timed out, which ends it with an exception like any other
// observer.Observer).
type Event interface {
	observer.Observer
	observer.Lifecycle

	// Stop ends the event normally: SetResult(occurrences) is called with
	// the number of matches seen so far, and Done() closes.
	Stop()
}

// Registry resolves a named event kind to a Constructor, the same way
// command.Registry resolves named command kinds — used by state.Action
// when a transition or state entry wants a background watcher rather than
// a one-shot command.
type Registry struct {
	constructors map[string]Constructor
}

// Constructor builds an Event from the parameters attached to a
// state.Action.
type Constructor func(params map[string]any) (Event, error)

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

// Register adds or replaces the constructor for kind.
func (r *Registry) Register(kind string, c Constructor) {
	r.constructors[kind] = c
}

// Build resolves kind and invokes its constructor with params.
func (r *Registry) Build(kind string, params map[string]any) (Event, error) {
	c, ok := r.constructors[kind]
	if !ok {
		return nil, errUnknownKind(kind)
	}
	return c(params)
}

// Known reports whether kind has a registered constructor.
func (r *Registry) Known(kind string) bool {
	_, ok := r.constructors[kind]
	return ok
}
