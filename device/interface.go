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

// Package device ties a Connection, a merged state.Machine and a pair of
// per-device command/event registries into the one stateful object callers
// actually drive: goto_state walks the machine's hop table one transition
// at a time, running each edge's command through a runner.Runner and
// advancing current_state only on success.
package device

import (
	"sync"
	"time"

	"github.com/AdamKlekowski/moler/command"
	"github.com/AdamKlekowski/moler/connection"
	"github.com/AdamKlekowski/moler/event"
	"github.com/AdamKlekowski/moler/ioplugin"
	"github.com/AdamKlekowski/moler/logger"
	"github.com/AdamKlekowski/moler/runner"
	"github.com/AdamKlekowski/moler/state"
)

// DefaultTransitionTimeout bounds every transition command GotoState runs.
const DefaultTransitionTimeout = 30 * time.Second

// Device is one managed shell session: its Connection, its merged
// state.Machine, and the registries GotoState resolves transition edges
// against.
type Device struct {
	name    string
	conn    *connection.Connection
	machine *state.Machine
	rio     ioplugin.RawIO
	run     runner.Runner
	log     logger.SLogger

	commands *command.Registry
	events   *event.Registry

	mu      sync.Mutex
	current string
	removed bool
}

// RawIOFactory builds the ioplugin.RawIO a Device sends and receives
// through, bound to that Device's own Connection. Mirrors
// CommandRegistryFactory/EventRegistryFactory's closure-over-conn shape:
// New must create its Connection before the transport exists (ioplugin.RawIO
// is, per its own doc comment, "constructed already bound to the
// connection.Connection it will feed"), so the transport itself is built
// from a factory rather than handed in ready-made.
type RawIOFactory func(conn *connection.Connection) (ioplugin.RawIO, error)

// CommandRegistryFactory builds the command.Registry a Device uses to
// resolve transition edges, bound to that Device's own connection (every
// Constructor a family registers closes over conn to build its commands).
type CommandRegistryFactory func(conn command.Sender) *command.Registry

// EventRegistryFactory is CommandRegistryFactory's counterpart for
// background watchers.
type EventRegistryFactory func(conn event.Sender) *event.Registry

// Option customizes New.
type Option func(*Device)

// WithRunner overrides the default Runner (runner.New with the Device's
// logger and a nil metrics.Runner, so runner.New builds an unregistered one).
func WithRunner(r runner.Runner) Option {
	return func(d *Device) { d.run = r }
}

// WithLogger overrides the discard logger.
func WithLogger(log logger.SLogger) Option {
	return func(d *Device) { d.log = log }
}

// WithInitialState overrides state.NotConnected as the device's starting
// state. Validated against rio's ioplugin.Kind by New.
func WithInitialState(s string) Option {
	return func(d *Device) { d.current = s }
}
