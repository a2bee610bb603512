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

package family

import "github.com/AdamKlekowski/moler/state"

const (
	// StateUnixRemote is a logged-in shell on the far side of the hop
	// chain, reached either directly from UNIX_LOCAL (without-proxy) or
	// through PROXY_PC (with proxy).
	StateUnixRemote = "UNIX_REMOTE"

	// StateUnixRemoteRoot is UNIX_REMOTE after an in-place su.
	StateUnixRemoteRoot = "UNIX_REMOTE_ROOT"
)

// UnixRemote contributes UNIX_REMOTE/UNIX_REMOTE_ROOT and every edge and
// hop that depends on useProxy: the with-proxy configuration routes
// UNIX_LOCAL -> UNIX_REMOTE through PROXY_PC and declares no direct edge
// between them; the without-proxy configuration declares that direct ssh
// edge instead and routes hops around PROXY_PC entirely (spec.md §9,
// recorded Open Question decision 1 — PROXY_PC's own edges, contributed
// by ProxyPc, stay declared regardless).
func UnixRemote(useProxy bool, minSSHVersion string) state.PartialConfig {
	edgesFromRemote := map[string]state.Edge{
		StateUnixRemoteRoot: {
			To:             StateUnixRemoteRoot,
			Action:         state.Action{Kind: "su"},
			ExpectedPrompt: `remote#\s*$`,
			TargetNewline:  "\n",
		},
		StateUnixLocal: {
			To:             StateUnixLocal,
			Action:         state.Action{Kind: "exit"},
			ExpectedPrompt: `\$\s*$`,
			TargetNewline:  "\n",
		},
	}

	edgesFromRoot := map[string]state.Edge{
		StateUnixRemote: {
			To:             StateUnixRemote,
			Action:         state.Action{Kind: "exit"},
			ExpectedPrompt: `remote\$\s*$`,
			TargetNewline:  "\n",
		},
	}

	edgesFromLocal := map[string]state.Edge{}

	hops := map[string]map[string]string{
		state.NotConnected: {
			StateUnixRemote:     StateUnixLocal,
			StateUnixRemoteRoot: StateUnixLocal,
		},
		StateUnixRemote: {
			StateProxyPC:       StateUnixLocal,
			state.NotConnected: StateUnixLocal,
		},
		StateUnixRemoteRoot: {
			state.NotConnected: StateUnixRemote,
			StateUnixLocal:     StateUnixRemote,
			StateProxyPC:       StateUnixRemote,
		},
		StateProxyPC: {
			StateUnixRemoteRoot: StateUnixRemote,
		},
	}

	if useProxy {
		hops[StateUnixLocal] = map[string]string{
			StateUnixRemote:     StateProxyPC,
			StateUnixRemoteRoot: StateProxyPC,
		}
	} else {
		edgesFromLocal[StateUnixRemote] = state.Edge{
			To: StateUnixRemote,
			Action: state.Action{
				Kind:     "ssh",
				Params:   map[string]any{"min_version": minSSHVersion},
				Required: []string{"host"},
			},
			ExpectedPrompt: `remote\$\s*$`,
			TargetNewline:  "\n",
		}
		hops[StateUnixLocal] = map[string]string{
			StateUnixRemoteRoot: StateUnixRemote,
		}
	}

	return state.PartialConfig{
		Edges: map[string]map[string]state.Edge{
			StateUnixRemote:     edgesFromRemote,
			StateUnixRemoteRoot: edgesFromRoot,
			StateUnixLocal:      edgesFromLocal,
		},
		Hops: hops,
	}
}
