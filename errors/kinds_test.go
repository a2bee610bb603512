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

package errors_test

import (
	stderrors "errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/AdamKlekowski/moler/errors"
)

var _ = Describe("the six domain kinds", func() {
	DescribeTable("each kind carries its own registered message",
		func(code CodeError, want string) {
			Expect(code.Message()).To(Equal(want))
			Expect(ExistInMapMessage(code)).To(BeTrue())
		},
		Entry("ErrCommandFailure", ErrCommandFailure, "command matched a failure pattern"),
		Entry("ErrCommandTimeout", ErrCommandTimeout, "command timed out before reaching a terminal state"),
		Entry("ErrCancelled", ErrCancelled, "operation cancelled"),
		Entry("ErrConfiguration", ErrConfiguration, "invalid configuration"),
		Entry("ErrIO", ErrIO, "raw I/O failure"),
		Entry("ErrStateMachine", ErrStateMachine, "state machine transition failed"),
	)

	It("renders UnknownMessage for a code outside every registered range", func() {
		Expect(ParseUnknown().Message()).To(Equal(UnknownMessage))
	})

	It("builds an Error carrying the kind's own code and message", func() {
		err := ErrIO.Error(nil)

		Expect(err.IsCode(ErrIO)).To(BeTrue())
		Expect(err.IsCode(ErrConfiguration)).To(BeFalse())
		Expect(err.GetCode()).To(Equal(ErrIO))
		Expect(err.Error()).To(Equal("raw I/O failure"))
	})

	It("folds a wrapped cause into the rendered message", func() {
		cause := stderrors.New("dialing 10.0.2.15:22: connection refused")
		err := ErrIO.Error(cause)

		Expect(err.Error()).To(Equal("raw I/O failure: dialing 10.0.2.15:22: connection refused"))
	})

	It("drops nil parents instead of rendering an empty segment", func() {
		err := ErrCancelled.Error(nil)
		Expect(err.Error()).To(Equal("operation cancelled"))
	})

	It("is discoverable through Get and As after crossing a plain error boundary", func() {
		wrapped := fmt.Errorf("submit: %w", ErrCommandTimeout.Error(nil))

		found := Get(wrapped)
		Expect(found).NotTo(BeNil())
		Expect(found.IsCode(ErrCommandTimeout)).To(BeTrue())

		var asErr Error
		Expect(stderrors.As(wrapped, &asErr)).To(BeTrue())
	})

	It("supports errors.Is by code once wrapped", func() {
		target := ErrConfiguration.Error(nil)
		wrapped := ErrStateMachine.Error(target)

		Expect(stderrors.Is(wrapped, target)).To(BeTrue())
		Expect(stderrors.Is(wrapped, ErrIO.Error(nil))).To(BeFalse())
	})

	It("captures the call site building the Error", func() {
		err := ErrConfiguration.Error(nil)
		Expect(err.GetTrace()).To(ContainSubstring("kinds_test.go"))
	})
})

func ParseUnknown() CodeError {
	return CodeError(65000)
}
