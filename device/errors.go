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
	"fmt"

	moerr "github.com/AdamKlekowski/moler/errors"
	"github.com/AdamKlekowski/moler/ioplugin"
)

func errNilMachine(name string) error {
	return moerr.ErrConfiguration.Error(fmt.Errorf("device %q: nil state machine", name))
}

func errNilRawIOFactory(name string) error {
	return moerr.ErrConfiguration.Error(fmt.Errorf("device %q: nil raw I/O factory", name))
}

func errUnknownInitialState(name, s string) error {
	return moerr.ErrConfiguration.Error(fmt.Errorf("device %q: unknown initial state %q", name, s))
}

func errIncompatibleKind(name, s string, kind ioplugin.Kind) error {
	return moerr.ErrConfiguration.Error(fmt.Errorf(
		"device %q: initial state %q is not reachable over a %s transport; unix-local states require a terminal io type",
		name, s, kind))
}

func errRemoved(name string) error {
	return moerr.ErrStateMachine.Error(fmt.Errorf("device %q has been removed", name))
}

func errNoEdge(name, from, to string) error {
	return moerr.ErrStateMachine.Error(fmt.Errorf("device %q: no edge %s -> %s", name, from, to))
}

func errUnregisteredCommand(name, kind string) error {
	return moerr.ErrConfiguration.Error(fmt.Errorf("device %q: unregistered command kind %q", name, kind))
}

func errMissingRequiredParam(name, kind, param string) error {
	return moerr.ErrConfiguration.Error(fmt.Errorf(
		"device %q: transition action %q missing required parameter %q", name, kind, param))
}
