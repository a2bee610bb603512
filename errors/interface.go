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

// Package errors provides the error taxonomy shared by every component of
// this module: connections, observers, runners, commands and the device
// state machine all raise one of a small, fixed set of CodeError kinds
// (see kinds.go) instead of ad-hoc sentinel errors.
//
// This package extends Go's standard error handling with:
//   - Error codes (numeric classification, one reserved range per package)
//   - Automatic call-site capture (file, line)
//   - Parent errors (e.g. ErrStateMachine wrapping the ErrCommandTimeout of
//     the edge that failed), exposed through Unwrap so errors.Is/errors.As
//     see through the whole chain
//
// Example usage:
//
//	err := ErrCommandTimeout.Error(nil)
//	if e := Get(err); e != nil && e.IsCode(ErrCommandTimeout) {
//	    log.Printf("timed out: %s", e.GetTrace())
//	}
//
//	// Error hierarchy: GotoState's caller can still reach the cause.
//	hopErr := ErrStateMachine.Error(ErrCommandFailure.Error(nil))
//	errors.Is(hopErr, ErrCommandFailure.Error(nil)) // true
package errors

import (
	"errors"
	"fmt"
)

// Error is the main interface extending Go's standard error with the code
// classification and call-site capture every component in this module
// relies on. All methods are safe for concurrent use; an Error is
// immutable once built.
type Error interface {
	error

	// IsCode checks if the error's own code matches the given code.
	IsCode(code CodeError) bool
	// GetCode returns the error's own code.
	GetCode() CodeError
	// GetTrace returns the "file#line" this Error was built at.
	GetTrace() string
}

// Is reports whether e carries this package's Error.
func Is(e error) bool {
	var err Error
	return errors.As(e, &err)
}

// Get returns e as an Error if it carries one, or nil.
func Get(e error) Error {
	var err Error
	if errors.As(e, &err) {
		return err
	}
	return nil
}

// New builds an Error with the given code, message and parents. Nil
// parents are dropped silently so callers can pass an unchecked error
// straight through (moerr.ErrIO.Error(maybeNilErr)).
func New(code uint16, message string, parent ...error) Error {
	return &ers{
		c: code,
		e: message,
		p: filterNilParents(parent),
		t: getFrame(),
	}
}

// Newf is New with an fmt.Sprintf-formatted message and no parents.
func Newf(code uint16, pattern string, args ...any) Error {
	return &ers{
		c: code,
		e: fmt.Sprintf(pattern, args...),
		t: getFrame(),
	}
}

func filterNilParents(parent []error) []error {
	res := make([]error, 0, len(parent))
	for _, p := range parent {
		if p != nil {
			res = append(res, p)
		}
	}
	return res
}
