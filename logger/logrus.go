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

package logger

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// New returns an SLogger backed by a logrus.Logger writing JSON lines to
// out (os.Stderr if nil), starting at lvl.
func New(out io.Writer, lvl Level) SLogger {
	if out == nil {
		out = os.Stderr
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(lvl.Logrus())

	lg := &logrusLogger{entry: logrus.NewEntry(l)}
	lg.lvl.Store(uint32(lvl))
	return lg
}

type logrusLogger struct {
	entry *logrus.Entry
	lvl   atomic.Uint32
	base  Fields
}

func (l *logrusLogger) level() Level {
	return Level(l.lvl.Load())
}

func (l *logrusLogger) SetLevel(lvl Level) {
	l.lvl.Store(uint32(lvl))
	l.entry.Logger.SetLevel(lvl.Logrus())
}

func (l *logrusLogger) WithFields(base Fields) SLogger {
	merged := NewFields()
	if l.base != nil {
		merged.Merge(l.base)
	}
	if base != nil {
		merged.Merge(base)
	}

	n := &logrusLogger{entry: l.entry, base: merged}
	n.lvl.Store(l.lvl.Load())
	return n
}

func (l *logrusLogger) log(lvl Level, msg string, fields []Field) {
	if l.level() == NilLevel || lvl > l.level() {
		return
	}

	fs := NewFields()
	if l.base != nil {
		fs.Merge(l.base)
	}
	fs.Merge(fieldsFromSlice(fields))

	l.entry.WithFields(fs.Logrus()).Log(lvl.Logrus(), msg)
}

func (l *logrusLogger) Debug(msg string, fields ...Field) { l.log(DebugLevel, msg, fields) }
func (l *logrusLogger) Info(msg string, fields ...Field)  { l.log(InfoLevel, msg, fields) }
func (l *logrusLogger) Warn(msg string, fields ...Field)  { l.log(WarnLevel, msg, fields) }
func (l *logrusLogger) Error(msg string, fields ...Field) { l.log(ErrorLevel, msg, fields) }
