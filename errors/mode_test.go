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
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/AdamKlekowski/moler/errors"
)

var _ = Describe("ErrorMode", func() {
	AfterEach(func() {
		SetModeReturnError(Default)
	})

	It("defaults to Default", func() {
		Expect(GetModeReturnError()).To(Equal(Default))
	})

	It("Default renders the message chain without a trace", func() {
		err := ErrConfiguration.Error(fmt.Errorf("unresolved command %q", "ssh"))
		Expect(err.Error()).To(Equal(`invalid configuration: unresolved command "ssh"`))
	})

	It("Verbose appends the call site", func() {
		SetModeReturnError(Verbose)

		err := ErrConfiguration.Error(fmt.Errorf("unresolved command %q", "ssh"))
		Expect(err.Error()).To(HavePrefix(`invalid configuration: unresolved command "ssh" (`))
		Expect(err.Error()).To(ContainSubstring("mode_test.go"))
	})

	It("String reports the mode name", func() {
		Expect(Default.String()).To(Equal("default"))
		Expect(Verbose.String()).To(Equal("verbose"))
	})
})
