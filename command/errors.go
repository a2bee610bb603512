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

package command

import (
	"fmt"

	moerr "github.com/AdamKlekowski/moler/errors"
)

// ErrUnknownKind wraps errors.ErrConfiguration for a Registry.Build call
// naming a kind with no registered constructor.
func ErrUnknownKind(kind string) error {
	return moerr.ErrConfiguration.Error(fmt.Errorf("command: no constructor registered for kind %q", kind))
}

// ErrReused wraps errors.ErrCommandFailure for re-running an observer that
// has already reached a terminal outcome (spec scenario S4).
func ErrReused(name string) error {
	return moerr.ErrCommandFailure.Error(fmt.Errorf("command: %q already completed, cannot be started again", name))
}
