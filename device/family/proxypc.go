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

// StateProxyPC is the intermediate jump-host state an ssh hop through a
// proxy lands in before reaching UNIX_REMOTE.
const StateProxyPC = "PROXY_PC"

// ProxyPc contributes PROXY_PC and the ssh edges leading through it.
//
// These edges are always declared here, even when the assembled device
// uses the without-proxy configuration (UnixRemote's useProxy=false): the
// source this module is modeled on consults hop tables that include
// PROXY_PC transitions in both configurations, and it is unclear whether
// that is dead code or deliberate uniformity. Per the recorded decision,
// this module preserves the entries verbatim rather than pruning them:
// PROXY_PC stays directly reachable by dialing it explicitly
// (goto_state("PROXY_PC")) either way, and only the without-proxy hop
// table in unixremote.go stops routing ordinary UNIX_REMOTE/UNIX_REMOTE_ROOT
// journeys through it.
func ProxyPc(minSSHVersion string) state.PartialConfig {
	return state.PartialConfig{
		Edges: map[string]map[string]state.Edge{
			StateUnixLocal: {
				StateProxyPC: {
					To: StateProxyPC,
					Action: state.Action{
						Kind:     "ssh",
						Params:   map[string]any{"min_version": minSSHVersion},
						Required: []string{"host"},
					},
					ExpectedPrompt: `proxy\$\s*$`,
					TargetNewline:  "\n",
				},
			},
			StateProxyPC: {
				StateUnixRemote: {
					To: StateUnixRemote,
					Action: state.Action{
						Kind:     "ssh",
						Params:   map[string]any{"min_version": minSSHVersion},
						Required: []string{"host"},
					},
					ExpectedPrompt: `remote\$\s*$`,
					TargetNewline:  "\n",
				},
				StateUnixLocal: {
					To:             StateUnixLocal,
					Action:         state.Action{Kind: "exit"},
					ExpectedPrompt: `\$\s*$`,
					TargetNewline:  "\n",
				},
			},
		},
		Hops: map[string]map[string]string{
			state.NotConnected: {StateProxyPC: StateUnixLocal},
			StateProxyPC:       {state.NotConnected: StateUnixLocal},
		},
	}
}
