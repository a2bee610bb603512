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

import "sort"

// idMsgFct maps the minimum code of a package's reserved range (modules.go)
// to the function that renders every code in that range. A package calls
// RegisterIdFctMessage once, in an init(), covering its whole kinds list
// with a single switch (see kinds.go).
var idMsgFct = make(map[CodeError]Message)

// Message renders the string for a CodeError.
type Message func(code CodeError) (message string)

// CodeError classifies an Error by which of the six domain kinds in
// kinds.go raised it. It is not a free-form identifier: every value this
// module produces is one of ErrCommandFailure, ErrCommandTimeout,
// ErrCancelled, ErrConfiguration, ErrIO or ErrStateMachine.
type CodeError uint16

const (
	// UnknownError is the code of an Error built from a plain error that
	// never passed through one of the six domain constructors.
	UnknownError CodeError = 0

	// UnknownMessage is returned by Message for any unregistered code.
	UnknownMessage = "unknown error"

	// NullMessage is the empty message a registered Message func may use
	// to say "not mine" for a code inside its range.
	NullMessage = ""
)

// Message returns the string registered for this code's package range, or
// UnknownMessage if none is registered.
func (c CodeError) Message() string {
	if c == UnknownError {
		return UnknownMessage
	}

	if f, ok := idMsgFct[findCodeErrorInMapMessage(c)]; ok {
		if m := f(c); m != NullMessage {
			return m
		}
	}

	return UnknownMessage
}

// Error builds a new Error carrying this code, this code's registered
// message, and the given parents.
func (c CodeError) Error(parent ...error) Error {
	return New(uint16(c), c.Message(), parent...)
}

// RegisterIdFctMessage registers fct as the renderer for every code in
// [minCode, next registered minCode).
func RegisterIdFctMessage(minCode CodeError, fct Message) {
	idMsgFct[minCode] = fct
	orderMapMessage()
}

// ExistInMapMessage reports whether code resolves to a registered,
// non-empty message.
func ExistInMapMessage(code CodeError) bool {
	if f, ok := idMsgFct[findCodeErrorInMapMessage(code)]; ok {
		return f(code) != NullMessage
	}

	return false
}

func getMapMessageKey() []CodeError {
	keys := make([]int, 0, len(idMsgFct))
	for k := range idMsgFct {
		keys = append(keys, int(k))
	}
	sort.Ints(keys)

	res := make([]CodeError, 0, len(keys))
	for _, k := range keys {
		res = append(res, CodeError(k))
	}
	return res
}

func orderMapMessage() {
	res := make(map[CodeError]Message, len(idMsgFct))
	for _, k := range getMapMessageKey() {
		res[k] = idMsgFct[k]
	}
	idMsgFct = res
}

// findCodeErrorInMapMessage finds the largest registered minCode <= code,
// so any code inside a package's range resolves to that package's Message.
func findCodeErrorInMapMessage(code CodeError) CodeError {
	var res CodeError

	for _, k := range getMapMessageKey() {
		if k <= code && k > res {
			res = k
		}
	}

	return res
}
