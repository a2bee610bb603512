/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package errors

import (
	"fmt"
	"runtime"
	"strings"
)

// ers is the concrete Error: a numeric code, a message, the parents it
// wraps (e.g. ErrStateMachine wrapping the failing edge command's own
// ErrCommandTimeout) and the call site that built it.
type ers struct {
	c uint16
	e string
	p []error
	t runtime.Frame
}

// Error renders according to the process-wide mode (errors.Default or
// errors.Verbose); see mode.go.
func (e *ers) Error() string {
	return modeError.render(e)
}

// IsCode reports whether this Error's own code matches. It does not look
// at parents: a device wrapping ErrStateMachine around a command's
// ErrCommandTimeout is itself coded ErrStateMachine, and callers that care
// about the inner kind unwrap to it with errors.As/errors.Is instead.
func (e *ers) IsCode(code CodeError) bool {
	return e.c == uint16(code)
}

// GetCode returns this Error's own code.
func (e *ers) GetCode() CodeError {
	return CodeError(e.c)
}

// GetTrace returns the "file#line" the Error was built at, or "" if no
// frame could be captured.
func (e *ers) GetTrace() string {
	if e.t.File == "" {
		return ""
	}
	return fmt.Sprintf("%s#%d", filterPath(e.t.File), e.t.Line)
}

// Is backs errors.Is: two codeless errors compare by message, two coded
// errors compare by code.
func (e *ers) Is(target error) bool {
	other, ok := target.(*ers)
	if !ok {
		return false
	}

	if e.c != 0 || other.c != 0 {
		return e.c == other.c
	}

	return strings.EqualFold(e.e, other.e)
}

// Unwrap exposes the parent chain to errors.Is/errors.As (both understand
// Unwrap() []error since Go 1.20).
func (e *ers) Unwrap() []error {
	return e.p
}
