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

import "strings"

// ErrorMode controls how every Error in the process renders through
// Error(). It is a single process-wide switch (like log/slog's level)
// rather than a per-error option, because the choice is "what does an
// operator want on stderr", decided once at startup by cmd/molerctl's
// --verbose-errors flag.
type ErrorMode uint8

const (
	// Default renders the code's message followed by each parent's own
	// message, colon-separated - enough detail to act on without a trace.
	Default ErrorMode = iota

	// Verbose appends the call site captured by GetTrace to Default's
	// rendering, for debugging where an Error was built.
	Verbose
)

var modeError = Default

// SetModeReturnError sets the process-wide rendering mode.
func SetModeReturnError(mode ErrorMode) {
	modeError = mode
}

// GetModeReturnError returns the process-wide rendering mode.
func GetModeReturnError() ErrorMode {
	return modeError
}

func (m ErrorMode) String() string {
	if m == Verbose {
		return "verbose"
	}
	return "default"
}

func (m ErrorMode) render(e *ers) string {
	parts := make([]string, 0, 1+len(e.p))
	parts = append(parts, e.e)
	for _, p := range e.p {
		parts = append(parts, p.Error())
	}
	msg := strings.Join(parts, ": ")

	if m == Verbose {
		if t := e.GetTrace(); t != "" {
			msg += " (" + t + ")"
		}
	}

	return msg
}
