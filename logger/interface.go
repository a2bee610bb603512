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

// Package logger is the structured logging surface shared by every other
// package in this module: connection, observer, runner, command, state and
// device log through an SLogger rather than the standard log package, so a
// caller can swap in their own sink (or silence it entirely via Discard())
// without this module depending on any concrete logging backend.
package logger

// SLogger is the structured logger every component accepts. Fields are
// passed inline at the call site rather than bound permanently, except for
// WithFields which returns a logger carrying a fixed prefix of fields (a
// device name, a connection id) merged ahead of every subsequent call.
type SLogger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// SetLevel changes the minimum level this logger emits.
	SetLevel(lvl Level)
	// WithFields returns a logger that merges base ahead of every field
	// list passed to its own Debug/Info/Warn/Error calls.
	WithFields(base Fields) SLogger
}
