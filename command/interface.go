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

// Package command implements the Command observer: a line sent once on
// Start, inbound text framed into lines, the first line discarded as the
// shell's echo of what was sent, subsequent lines checked against failure
// patterns and an expected prompt. command/sudo composes a Command with
// password-prompt handling without ever subscribing the inner Command
// directly to the connection.
package command

import (
	"context"
	"regexp"

	"github.com/AdamKlekowski/moler/observer"
)

// Command is the lifecycle surface the runner, device and sudo wrapper all
// depend on.
type Command interface {
	observer.Observer
	observer.Lifecycle

	// CommandLine returns the text this command would send on Start.
	CommandLine() string
}

// Sender is the narrow connection surface a Command needs: enough to send
// its line and subscribe/unsubscribe itself.
type Sender interface {
	Subscribe(o observer.Observer)
	Unsubscribe(o observer.Observer)
	Send(ctx context.Context, text string) error
}

// Registry resolves a named command to a constructor, used by the state
// machine's Action tagged union ("ssh", "su", "exit", ...) to build the
// concrete Command backing a transition edge.
type Registry struct {
	constructors map[string]Constructor
}

// Constructor builds a Command from the parameters attached to a
// state.Action.
type Constructor func(params map[string]any) (Command, error)

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

// Register adds or replaces the constructor for kind.
func (r *Registry) Register(kind string, c Constructor) {
	r.constructors[kind] = c
}

// Build resolves kind and invokes its constructor with params.
func (r *Registry) Build(kind string, params map[string]any) (Command, error) {
	c, ok := r.constructors[kind]
	if !ok {
		return nil, ErrUnknownKind(kind)
	}
	return c(params)
}

// Known reports whether kind has a registered constructor.
func (r *Registry) Known(kind string) bool {
	_, ok := r.constructors[kind]
	return ok
}

// regexpOrNil compiles pattern, returning nil if pattern is empty.
func regexpOrNil(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	return regexp.Compile(pattern)
}
