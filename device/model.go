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

package device

import (
	"context"

	"github.com/AdamKlekowski/moler/command"
	"github.com/AdamKlekowski/moler/connection"
	"github.com/AdamKlekowski/moler/event"
	"github.com/AdamKlekowski/moler/ioplugin"
	"github.com/AdamKlekowski/moler/logger"
	"github.com/AdamKlekowski/moler/runner"
	"github.com/AdamKlekowski/moler/state"
)

// kindCompatibleStates restricts which initial states each ioplugin.Kind
// may start a Device in: a transport that cannot itself provide a login
// prompt has no business starting anywhere but NOT_CONNECTED or the one
// state it natively lands in (spec scenario S6). "terminal" is the one
// io type that opens directly onto a local shell, so it alone may also
// start already inside UNIX_LOCAL; "tcp" dials a remote listener and so
// may only ever start at NOT_CONNECTED; "ssh-shell" may start already
// inside UNIX_REMOTE, since it represents a connection handed over
// mid-session rather than dialed by this Device.
var kindCompatibleStates = map[ioplugin.Kind]map[string]bool{
	ioplugin.KindTerminal: {state.NotConnected: true, "UNIX_LOCAL": true},
	ioplugin.KindTCP:      {state.NotConnected: true},
	ioplugin.KindSSHShell: {state.NotConnected: true, "UNIX_REMOTE": true},
}

// New builds a Device's Connection first and its raw transport second -
// rioOf receives that Connection to bind its own inbound-byte feed to,
// resolving the construction-order cycle a RawIO otherwise creates (it
// must exist already bound to the Connection it feeds, but the Connection
// is this call's own local state). The requested initial state is then
// validated against rio.Kind(), and rio is opened. commandsOf/eventsOf
// build the device's registries bound to its own connection; pass nil for
// either to leave that registry empty.
func New(name string, machine *state.Machine, rioOf RawIOFactory, commandsOf CommandRegistryFactory, eventsOf EventRegistryFactory, opts ...Option) (*Device, error) {
	if machine == nil {
		return nil, errNilMachine(name)
	}
	if rioOf == nil {
		return nil, errNilRawIOFactory(name)
	}

	d := &Device{
		name:    name,
		machine: machine,
		current: state.NotConnected,
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.run == nil {
		d.run = runner.New(d.log, nil)
	}

	if _, ok := machine.StateMeta(d.current); !ok && d.current != state.NotConnected {
		return nil, errUnknownInitialState(name, d.current)
	}

	var rio ioplugin.RawIO
	sender := func(ctx context.Context, text string) error {
		_, err := rio.Send(ctx, []byte(text))
		return err
	}
	d.conn = connection.New(name, connection.DefaultDecoder, sender, d.log)

	var err error
	if rio, err = rioOf(d.conn); err != nil {
		return nil, err
	}
	d.rio = rio

	if allowed, ok := kindCompatibleStates[rio.Kind()]; ok && !allowed[d.current] {
		return nil, errIncompatibleKind(name, d.current, rio.Kind())
	}

	if commandsOf != nil {
		d.commands = commandsOf(d.conn)
	} else {
		d.commands = command.NewRegistry()
	}
	if eventsOf != nil {
		d.events = eventsOf(d.conn)
	} else {
		d.events = event.NewRegistry()
	}

	if err := rio.Open(context.Background()); err != nil {
		return nil, err
	}

	return d, nil
}

// CurrentState reports the state the device last successfully entered.
func (d *Device) CurrentState() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// Name returns the device's identifier.
func (d *Device) Name() string {
	return d.name
}

// Commands returns the registry GotoState resolves transition edges
// against; also usable by callers wanting to run an ad-hoc command
// (e.g. Ps) in the device's current state.
func (d *Device) Commands() *command.Registry {
	return d.commands
}

// Events returns the registry backing this device's background watchers.
func (d *Device) Events() *event.Registry {
	return d.events
}

// GotoState drives the device from its current state to target, one
// transition at a time, per the six-step algorithm: look up the next hop,
// resolve and build that edge's command, run it, advance current_state on
// success. A failing transition leaves current_state at the last state
// successfully entered and returns that command's error.
func (d *Device) GotoState(ctx context.Context, target string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.removed {
		return errRemoved(d.name)
	}

	for {
		current := d.current
		if current == target {
			return nil
		}

		next, err := d.machine.NextHop(current, target)
		if err != nil {
			return err
		}

		edge, ok := d.machine.Edge(current, next)
		if !ok {
			return errNoEdge(d.name, current, next)
		}

		cmd, err := d.buildEdgeCommand(edge, nil)
		if err != nil {
			return err
		}

		timeout := DefaultTransitionTimeout
		if _, err := d.run.Submit(ctx, cmd, timeout); err != nil {
			return err
		}
		if _, err := cmd.AwaitDone(ctx); err != nil {
			return err
		}

		d.current = next
	}
}

// buildEdgeCommand resolves edge.Action.Kind in d.commands, seeds the
// params map with the edge's own expected_prompt/target_newline (spec.md
// §4's transition parameter map carries these alongside command-specific
// params), merges the action's defaults and caller-supplied overrides on
// top, checks every name in Required is present, and constructs the
// command.
func (d *Device) buildEdgeCommand(edge state.Edge, overrides map[string]any) (command.Command, error) {
	if !d.commands.Known(edge.Action.Kind) {
		return nil, errUnregisteredCommand(d.name, edge.Action.Kind)
	}

	params := make(map[string]any, len(edge.Action.Params)+len(overrides)+2)
	params["expected_prompt"] = edge.ExpectedPrompt
	params["target_newline"] = edge.TargetNewline
	for k, v := range edge.Action.Params {
		params[k] = v
	}
	for k, v := range overrides {
		params[k] = v
	}

	for _, req := range edge.Action.Required {
		if _, ok := params[req]; !ok {
			return nil, errMissingRequiredParam(d.name, edge.Action.Kind, req)
		}
	}

	return d.commands.Build(edge.Action.Kind, params)
}

// Remove cancels any in-flight transition by shutting the device's runner
// down and closes the underlying raw I/O. Removed is terminal: a removed
// Device can no longer GotoState.
func (d *Device) Remove(ctx context.Context) error {
	d.mu.Lock()
	if d.removed {
		d.mu.Unlock()
		return nil
	}
	d.removed = true
	d.current = state.NotConnected
	d.mu.Unlock()

	runErr := d.run.Shutdown(ctx)
	ioErr := d.rio.Close()
	if runErr != nil {
		return runErr
	}
	return ioErr
}
