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

// The six error kinds that every component in this module raises. Components
// never invent new CodeError values of their own; they wrap one of these with
// a parent error carrying the concrete detail (the failed pattern, the
// expired context, the offending YAML key, ...).
const (
	// ErrCommandFailure marks a command observer that matched one of its
	// failure patterns before matching its expected prompt.
	ErrCommandFailure CodeError = MinPkgCommand + iota

	// ErrCommandTimeout marks an observer whose timeout fired before it
	// reached a terminal state.
	ErrCommandTimeout

	// ErrCancelled marks an observer or device operation cancelled through
	// its context, either directly or because a parent context ended.
	ErrCancelled

	// ErrConfiguration marks a rejected device, connection-type or state
	// machine configuration: unresolved command name, inconsistent newline
	// convention, disconnected graph, or an initial state incompatible with
	// the raw I/O kind in use.
	ErrConfiguration

	// ErrIO marks a failure coming from the raw I/O plugin underneath a
	// connection: a failed Open, Send or Close, or unexpected stream
	// closure.
	ErrIO

	// ErrStateMachine marks a failure in GotoState itself: no edge out of
	// the current state, no precomputed hop toward the requested target, or
	// a state name absent from the merged device configuration.
	ErrStateMachine
)

func init() {
	RegisterIdFctMessage(ErrCommandFailure, func(code CodeError) string {
		switch code {
		case ErrCommandFailure:
			return "command matched a failure pattern"
		case ErrCommandTimeout:
			return "command timed out before reaching a terminal state"
		case ErrCancelled:
			return "operation cancelled"
		case ErrConfiguration:
			return "invalid configuration"
		case ErrIO:
			return "raw I/O failure"
		case ErrStateMachine:
			return "state machine transition failed"
		default:
			return NullMessage
		}
	})
}
