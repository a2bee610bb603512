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

package device_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdamKlekowski/moler/command"
	"github.com/AdamKlekowski/moler/connection"
	"github.com/AdamKlekowski/moler/device"
	moerr "github.com/AdamKlekowski/moler/errors"
	"github.com/AdamKlekowski/moler/ioplugin"
	"github.com/AdamKlekowski/moler/observer"
	"github.com/AdamKlekowski/moler/state"
)

// instantCommand resolves immediately on Start, with no actual I/O — used
// to drive GotoState without a real shell on the other end.
type instantCommand struct {
	*observer.Base
	line   string
	fail   bool
	result any
}

func newInstantCommand(line string, fail bool, result any) *instantCommand {
	return &instantCommand{Base: observer.NewBase(line, nil), line: line, fail: fail, result: result}
}

func (c *instantCommand) CommandLine() string { return c.line }

func (c *instantCommand) Start(ctx context.Context, timeout time.Duration) (observer.Handle, error) {
	h, err := c.Base.Start(ctx, timeout, c)
	if err != nil {
		return nil, err
	}
	if c.fail {
		c.SetException(moerr.ErrCommandFailure.Error(nil))
	} else {
		c.SetResult(c.result)
	}
	return h, nil
}

func (c *instantCommand) AwaitDone(ctx context.Context) (any, error) {
	return c.Base.AwaitDone(ctx)
}

func (c *instantCommand) Call(ctx context.Context, timeout time.Duration) (any, error) {
	if _, err := c.Start(ctx, timeout); err != nil {
		return nil, err
	}
	return c.AwaitDone(ctx)
}

// fakeRawIO is a minimal ioplugin.RawIO that records Send calls and never
// delivers any inbound bytes — GotoState's instantCommand never needs the
// connection to actually receive anything.
type fakeRawIO struct {
	kind ioplugin.Kind

	mu   sync.Mutex
	sent [][]byte
}

func (f *fakeRawIO) Kind() ioplugin.Kind { return f.kind }
func (f *fakeRawIO) Open(context.Context) error { return nil }
func (f *fakeRawIO) Close() error               { return nil }
func (f *fakeRawIO) Send(_ context.Context, b []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, b)
	return len(b), nil
}

// rioFactory wraps an already-built fakeRawIO as a device.RawIOFactory;
// fakeRawIO never actually uses the Connection it's handed, so it is
// constructed independently of conn in these tests.
func rioFactory(rio ioplugin.RawIO) device.RawIOFactory {
	return func(*connection.Connection) (ioplugin.RawIO, error) {
		return rio, nil
	}
}

func chainMachine(t *testing.T) *state.Machine {
	t.Helper()
	cfg := state.PartialConfig{
		Edges: map[string]map[string]state.Edge{
			state.NotConnected: {
				"UNIX_LOCAL": {
					To:             "UNIX_LOCAL",
					Action:         state.Action{Kind: "local"},
					ExpectedPrompt: `\$\s*$`,
					TargetNewline:  "\n",
				},
			},
			"UNIX_LOCAL": {
				state.NotConnected: {
					To:     state.NotConnected,
					Action: state.Action{Kind: "exit"},
				},
				"UNIX_REMOTE": {
					To:             "UNIX_REMOTE",
					Action:         state.Action{Kind: "ssh", Required: []string{"host"}},
					ExpectedPrompt: `remote\$\s*$`,
					TargetNewline:  "\n",
				},
			},
			"UNIX_REMOTE": {
				"UNIX_LOCAL": {
					To:             "UNIX_LOCAL",
					Action:         state.Action{Kind: "exit"},
					ExpectedPrompt: `\$\s*$`,
					TargetNewline:  "\n",
				},
			},
		},
		Hops: map[string]map[string]string{
			state.NotConnected: {"UNIX_REMOTE": "UNIX_LOCAL"},
		},
	}
	m, err := state.Merge(cfg)
	require.NoError(t, err)
	return m
}

func commandsOf(fail bool) device.CommandRegistryFactory {
	return func(conn command.Sender) *command.Registry {
		r := command.NewRegistry()
		r.Register("local", func(map[string]any) (command.Command, error) {
			return newInstantCommand("local-login", fail, "UNIX_LOCAL"), nil
		})
		r.Register("ssh", func(params map[string]any) (command.Command, error) {
			return newInstantCommand("ssh "+params["host"].(string), false, "UNIX_REMOTE"), nil
		})
		return r
	}
}

func TestGotoStateAdvancesOneHopAtATime(t *testing.T) {
	m := chainMachine(t)
	rio := &fakeRawIO{kind: ioplugin.KindTerminal}

	d, err := device.New("dev1", m, rioFactory(rio), commandsOf(false), nil)
	require.NoError(t, err)
	assert.Equal(t, state.NotConnected, d.CurrentState())

	err = d.GotoState(context.Background(), "UNIX_LOCAL")
	require.NoError(t, err)
	assert.Equal(t, "UNIX_LOCAL", d.CurrentState())
}

func TestGotoStateFollowsAPrecomputedHop(t *testing.T) {
	m := chainMachine(t)
	rio := &fakeRawIO{kind: ioplugin.KindTerminal}

	d, err := device.New("dev1", m, rioFactory(rio), commandsOf(false), nil)
	require.NoError(t, err)

	err = d.GotoState(context.Background(), "UNIX_REMOTE")
	require.Error(t, err, "the ssh edge requires a host param the test never supplies")
	assert.Equal(t, "UNIX_LOCAL", d.CurrentState(), "the hop via UNIX_LOCAL is taken before the ssh edge fails")
}

func TestGotoStateStopsAtLastGoodStateOnFailure(t *testing.T) {
	m := chainMachine(t)
	rio := &fakeRawIO{kind: ioplugin.KindTerminal}

	d, err := device.New("dev1", m, rioFactory(rio), commandsOf(true), nil)
	require.NoError(t, err)

	err = d.GotoState(context.Background(), "UNIX_LOCAL")
	require.Error(t, err)
	assert.Equal(t, state.NotConnected, d.CurrentState())
}

func TestNewRejectsInitialStateIncompatibleWithTransportKind(t *testing.T) {
	m := chainMachine(t)
	rio := &fakeRawIO{kind: ioplugin.KindTCP}

	_, err := device.New("dev1", m, rioFactory(rio), commandsOf(false), nil, device.WithInitialState("UNIX_LOCAL"))
	require.Error(t, err)
	e, ok := err.(moerr.Error)
	require.True(t, ok)
	assert.True(t, e.IsCode(moerr.ErrConfiguration))
}

func TestRemoveIsTerminal(t *testing.T) {
	m := chainMachine(t)
	rio := &fakeRawIO{kind: ioplugin.KindTerminal}

	d, err := device.New("dev1", m, rioFactory(rio), commandsOf(false), nil)
	require.NoError(t, err)

	require.NoError(t, d.Remove(context.Background()))
	err = d.GotoState(context.Background(), "UNIX_LOCAL")
	require.Error(t, err)
}

func TestRemoveResetsCurrentStateToNotConnected(t *testing.T) {
	m := chainMachine(t)
	rio := &fakeRawIO{kind: ioplugin.KindTerminal}

	d, err := device.New("dev1", m, rioFactory(rio), commandsOf(false), nil)
	require.NoError(t, err)

	require.NoError(t, d.GotoState(context.Background(), "UNIX_LOCAL"))
	assert.Equal(t, "UNIX_LOCAL", d.CurrentState())

	require.NoError(t, d.Remove(context.Background()))
	assert.Equal(t, state.NotConnected, d.CurrentState())
}
