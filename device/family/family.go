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

// Layers returns the UnixLocal <- ProxyPc <- UnixRemote chain (base layer
// first, most-derived layer last) without merging it, so a caller - e.g.
// registry.DeviceFactory - can append a device-specific hops overlay
// (config.Device.ConnectionHops) before the final Merge.
func Layers(useProxy bool, minSSHVersion string) []state.PartialConfig {
	return []state.PartialConfig{
		UnixLocal(),
		ProxyPc(minSSHVersion),
		UnixRemote(useProxy, minSSHVersion),
	}
}

// Machine assembles the UnixLocal <- ProxyPc <- UnixRemote chain (base
// layer first, most-derived layer last) into one merged state.Machine,
// the data-level replacement for the source's runtime base-class walk
// (spec.md §9).
func Machine(useProxy bool, minSSHVersion string) (*state.Machine, error) {
	return state.Merge(Layers(useProxy, minSSHVersion)...)
}
