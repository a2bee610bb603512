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

// Package family holds the device-family layers a concrete device is
// assembled from: each layer is a function returning a state.PartialConfig,
// and Machine deep-merges the chain (base device first, most-derived
// family last) rather than walking a runtime base-class chain.
package family

import "github.com/AdamKlekowski/moler/state"

// StateUnixLocal is the state every family chain in this package bottoms
// out at: a shell on the machine the connection's raw I/O was opened on.
const StateUnixLocal = "UNIX_LOCAL"

// UnixLocal is the base layer every device family chain in this package
// starts from: log in once from NOT_CONNECTED, exit back to it.
func UnixLocal() state.PartialConfig {
	return state.PartialConfig{
		Edges: map[string]map[string]state.Edge{
			state.NotConnected: {
				StateUnixLocal: {
					To:             StateUnixLocal,
					Action:         state.Action{Kind: "local"},
					ExpectedPrompt: `\$\s*$`,
					TargetNewline:  "\n",
				},
			},
			StateUnixLocal: {
				state.NotConnected: {
					To:             state.NotConnected,
					Action:         state.Action{Kind: "exit"},
					TargetNewline:  "\n",
				},
			},
		},
	}
}
