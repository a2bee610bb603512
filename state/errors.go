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

package state

import (
	"fmt"

	moerr "github.com/AdamKlekowski/moler/errors"
)

func errInconsistentPrompt(state, a, b string) error {
	return moerr.ErrConfiguration.Error(fmt.Errorf(
		"state: edges landing in %q disagree on expected prompt (%q vs %q)", state, a, b))
}

func errInconsistentNewline(state, a, b string) error {
	return moerr.ErrConfiguration.Error(fmt.Errorf(
		"state: edges landing in %q disagree on target newline (%q vs %q)", state, a, b))
}

func errUnreachableFromNotConnected(state string) error {
	return moerr.ErrConfiguration.Error(fmt.Errorf(
		"state: %q is not reachable from NOT_CONNECTED", state))
}

func errCannotReturnToNotConnected(state string) error {
	return moerr.ErrConfiguration.Error(fmt.Errorf(
		"state: %q has no path back to NOT_CONNECTED", state))
}

// errNoHop reports that NextHop found neither a direct edge nor a
// precomputed hop from "from" toward "target" — a State-machine error
// (spec.md §7), not a Configuration error: it is discovered at traversal
// time, not at merge time.
func errNoHop(from, target string) error {
	return moerr.ErrStateMachine.Error(fmt.Errorf(
		"state: no hop from %q toward %q", from, target))
}

func errUnknownEdgeCommand(from, to, kind string) error {
	return moerr.ErrConfiguration.Error(fmt.Errorf(
		"state: edge %s -> %s references unknown command kind %q", from, to, kind))
}

func errHopCycle(from, target string) error {
	return moerr.ErrConfiguration.Error(fmt.Errorf(
		"state: hop table from %q toward %q does not terminate without revisiting %q", from, target, from))
}
