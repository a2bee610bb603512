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
	"context"

	"github.com/sirupsen/logrus"

	"github.com/AdamKlekowski/moler/internal/molerctx"
)

// Field is a single structured logging key/value pair, the variadic unit
// every SLogger method accepts.
type Field struct {
	Key string
	Val any
}

// F is a shorthand constructor for a Field.
func F(key string, val any) Field {
	return Field{Key: key, Val: val}
}

// Fields is a mutable, thread-safe bag of structured logging fields attached
// to a device, connection or observer for the lifetime of its context.
type Fields interface {
	// Add stores val under key and returns the receiver for chaining.
	Add(key string, val any) Fields
	// Get returns the value stored under key, if any.
	Get(key string) (val any, ok bool)
	// Clone returns an independent copy of the current field set.
	Clone() Fields
	// Merge copies every entry of f into the receiver.
	Merge(f Fields) Fields
	// Logrus renders the current fields as logrus.Fields.
	Logrus() logrus.Fields
}

// NewFields returns an empty Fields instance.
func NewFields() Fields {
	return &fields{a: molerctx.New[string](context.Background())}
}

type fields struct {
	a molerctx.Attrs[string]
}

func (f *fields) Add(key string, val any) Fields {
	f.a.Store(key, val)
	return f
}

func (f *fields) Get(key string) (any, bool) {
	return f.a.Load(key)
}

func (f *fields) Clone() Fields {
	return &fields{a: f.a.Clone(nil)}
}

func (f *fields) Merge(src Fields) Fields {
	if o, ok := src.(*fields); ok {
		f.a.Merge(o.a)
	}
	return f
}

func (f *fields) Logrus() logrus.Fields {
	out := make(logrus.Fields)
	f.a.Walk(func(k string, v any) bool {
		out[k] = v
		return true
	})
	return out
}

// fieldsFromSlice merges ad-hoc Field arguments into a single Fields value,
// used internally by every SLogger call site that takes ...Field.
func fieldsFromSlice(extra []Field) Fields {
	fs := NewFields()
	for _, e := range extra {
		fs.Add(e.Key, e.Val)
	}
	return fs
}
