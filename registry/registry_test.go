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

package registry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdamKlekowski/moler/command"
	"github.com/AdamKlekowski/moler/config"
	"github.com/AdamKlekowski/moler/connection"
	"github.com/AdamKlekowski/moler/device"
	"github.com/AdamKlekowski/moler/ioplugin"
	"github.com/AdamKlekowski/moler/logger"
	"github.com/AdamKlekowski/moler/observer"
	"github.com/AdamKlekowski/moler/registry"
	"github.com/AdamKlekowski/moler/state"
)

// instantCommand resolves immediately on Start - same shape as device's
// own test double, duplicated here since it's unexported test machinery.
type instantCommand struct {
	*observer.Base
	line   string
	result any
}

func newInstantCommand(line string, result any) *instantCommand {
	return &instantCommand{Base: observer.NewBase(line, nil), line: line, result: result}
}

func (c *instantCommand) CommandLine() string { return c.line }

func (c *instantCommand) Start(ctx context.Context, timeout time.Duration) (observer.Handle, error) {
	h, err := c.Base.Start(ctx, timeout, c)
	if err != nil {
		return nil, err
	}
	c.SetResult(c.result)
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

type fakeRawIO struct{ kind ioplugin.Kind }

func (f *fakeRawIO) Kind() ioplugin.Kind                               { return f.kind }
func (f *fakeRawIO) Open(context.Context) error                       { return nil }
func (f *fakeRawIO) Close() error                                     { return nil }
func (f *fakeRawIO) Send(context.Context, []byte) (int, error)        { return 0, nil }

func onlyLayer() []state.PartialConfig {
	return []state.PartialConfig{{
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
			},
		},
	}}
}

func commandsOf() device.CommandRegistryFactory {
	return func(conn command.Sender) *command.Registry {
		r := command.NewRegistry()
		r.Register("local", func(map[string]any) (command.Command, error) {
			return newInstantCommand("local-login", "UNIX_LOCAL"), nil
		})
		return r
	}
}

func fakeConnection(kind ioplugin.Kind) registry.ConnectionFactory {
	return func(*config.ConnectionDesc, logger.SLogger) (device.RawIOFactory, error) {
		return func(*connection.Connection) (ioplugin.RawIO, error) {
			return &fakeRawIO{kind: kind}, nil
		}, nil
	}
}

func fleet() *config.File {
	return &config.File{
		Devices: map[string]config.Device{
			"rtr1": {
				DeviceClass:  "unix",
				InitialState: "",
				ConnectionDesc: &config.ConnectionDesc{
					Kind: "terminal",
				},
			},
		},
	}
}

func newFactory() *registry.DeviceFactory {
	f := registry.New(logger.Discard())
	f.LoadConfig(fleet())
	f.RegisterClass("unix", registry.DeviceClass{
		Layers:   onlyLayer(),
		Commands: commandsOf(),
	})
	f.RegisterConnectionType("terminal", fakeConnection(ioplugin.KindTerminal))
	return f
}

func TestGetDeviceBuildsFromFleetConfig(t *testing.T) {
	f := newFactory()

	d, err := f.GetDevice("rtr1")
	require.NoError(t, err)
	assert.Equal(t, state.NotConnected, d.CurrentState())

	require.NoError(t, d.GotoState(context.Background(), "UNIX_LOCAL"))
	assert.Equal(t, "UNIX_LOCAL", d.CurrentState())
}

func TestGetDeviceCachesByName(t *testing.T) {
	f := newFactory()

	d1, err := f.GetDevice("rtr1")
	require.NoError(t, err)
	d2, err := f.GetDevice("rtr1")
	require.NoError(t, err)
	assert.Same(t, d1, d2)
}

func TestGetDeviceRejectsUnknownName(t *testing.T) {
	f := newFactory()

	_, err := f.GetDevice("does-not-exist")
	require.Error(t, err)
}

func TestGetDeviceRejectsUnregisteredClass(t *testing.T) {
	f := registry.New(logger.Discard())
	f.LoadConfig(fleet())
	f.RegisterConnectionType("terminal", fakeConnection(ioplugin.KindTerminal))

	_, err := f.GetDevice("rtr1")
	require.Error(t, err)
}

func TestGetDeviceRejectsUnregisteredConnectionType(t *testing.T) {
	f := registry.New(logger.Discard())
	f.LoadConfig(fleet())
	f.RegisterClass("unix", registry.DeviceClass{Layers: onlyLayer(), Commands: commandsOf()})

	_, err := f.GetDevice("rtr1")
	require.Error(t, err)
}

func TestClearTearsDownAndForgetsEveryDevice(t *testing.T) {
	f := newFactory()

	d1, err := f.GetDevice("rtr1")
	require.NoError(t, err)

	require.NoError(t, f.Clear(context.Background()))

	err = d1.GotoState(context.Background(), "UNIX_LOCAL")
	require.Error(t, err, "a cleared device must be Remove()d")

	d2, err := f.GetDevice("rtr1")
	require.NoError(t, err)
	assert.NotSame(t, d1, d2, "Clear must forget the cached instance, not just tear it down")
}

func TestRemoveForgetsOnlyTheNamedDevice(t *testing.T) {
	f := newFactory()

	d1, err := f.GetDevice("rtr1")
	require.NoError(t, err)

	require.NoError(t, f.Remove(context.Background(), "rtr1"))

	d2, err := f.GetDevice("rtr1")
	require.NoError(t, err)
	assert.NotSame(t, d1, d2)
}
