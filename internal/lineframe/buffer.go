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

// Package lineframe implements the push-based line-framing primitive shared
// by command and event: accumulate text chunks as they arrive, emit a
// callback per line as it forms (isFullLine=false while still
// accumulating), and one per line boundary crossed (isFullLine=true). Both
// packages subscribe to a Moler Connection and only ever receive pushed
// chunks, never an io.Reader to pull from, which is why this differs from
// ioutils/delim's pull-based BufferDelim shape it is modeled on.
package lineframe

import "strings"

// Buffer accumulates pushed text chunks and emits one callback per line as
// it forms.
type Buffer struct {
	newline string
	pending strings.Builder
}

// New returns a Buffer splitting on newline (defaults to "\n" if empty).
func New(newline string) *Buffer {
	if newline == "" {
		newline = "\n"
	}
	return &Buffer{newline: newline}
}

// Feed appends chunk and invokes emit(line, isFullLine) for every line
// boundary crossed, including a partial emit(..., false) of whatever
// remains buffered after chunk is consumed.
func (b *Buffer) Feed(chunk string, emit func(line string, isFullLine bool)) {
	b.pending.WriteString(chunk)

	for {
		buf := b.pending.String()
		idx := strings.Index(buf, b.newline)
		if idx < 0 {
			break
		}

		line := buf[:idx]
		rest := buf[idx+len(b.newline):]

		b.pending.Reset()
		b.pending.WriteString(rest)

		emit(line, true)
	}

	if b.pending.Len() > 0 {
		emit(b.pending.String(), false)
	}
}
