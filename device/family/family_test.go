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

package family_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdamKlekowski/moler/device/family"
	"github.com/AdamKlekowski/moler/logger"
	"github.com/AdamKlekowski/moler/observer"
)

func TestMachineBuildsForBothProxyModes(t *testing.T) {
	for _, useProxy := range []bool{true, false} {
		m, err := family.Machine(useProxy, "2.0.0")
		require.NoError(t, err)
		require.NotNil(t, m)

		for _, s := range []string{"UNIX_LOCAL", "PROXY_PC", "UNIX_REMOTE", "UNIX_REMOTE_ROOT"} {
			_, ok := m.StateMeta(s)
			assert.Truef(t, ok, "state %s missing when useProxy=%v", s, useProxy)
		}
	}
}

func TestProxyPCPreservedButUnreachableWithoutProxy(t *testing.T) {
	m, err := family.Machine(false, "")
	require.NoError(t, err)

	// PROXY_PC is still a declared state with a direct edge from
	// UNIX_LOCAL (dialing it explicitly always works)...
	_, ok := m.StateMeta(family.StateProxyPC)
	assert.True(t, ok)
	_, ok = m.Edge(family.StateUnixLocal, family.StateProxyPC)
	assert.True(t, ok)

	// ...but an ordinary journey toward UNIX_REMOTE never routes through
	// it when the device isn't configured to use a proxy.
	next, err := m.NextHop(family.StateUnixLocal, family.StateUnixRemote)
	require.NoError(t, err)
	assert.Equal(t, family.StateUnixRemote, next, "without-proxy routing must go directly to UNIX_REMOTE")

	next, err = m.NextHop(family.StateUnixLocal, family.StateUnixRemoteRoot)
	require.NoError(t, err)
	assert.Equal(t, family.StateUnixRemote, next, "without-proxy routing must hop via UNIX_REMOTE, not PROXY_PC")
}

func TestWithProxyRoutesThroughProxyPC(t *testing.T) {
	m, err := family.Machine(true, "")
	require.NoError(t, err)

	next, err := m.NextHop(family.StateUnixLocal, family.StateUnixRemote)
	require.NoError(t, err)
	assert.Equal(t, family.StateProxyPC, next)

	next, err = m.NextHop(family.StateProxyPC, family.StateUnixRemoteRoot)
	require.NoError(t, err)
	assert.Equal(t, family.StateUnixRemote, next)
}

func TestCommandRegistryKnowsEveryTransitionKind(t *testing.T) {
	m, err := family.Machine(true, "1.0.0")
	require.NoError(t, err)

	r := family.CommandRegistry(logger.Discard())(fakeSender{})
	require.NoError(t, m.ValidateCommands(r.Known))
}

// fakeSender is a no-op command.Sender; CommandRegistry's constructors
// only need a Sender to close over, never to actually call in this test.
type fakeSender struct{}

func (fakeSender) Subscribe(observer.Observer)         {}
func (fakeSender) Unsubscribe(observer.Observer)       {}
func (fakeSender) Send(context.Context, string) error  { return nil }
