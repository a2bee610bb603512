/*
 * MIT License
 *
 * Copyright (c) 2019 Nicolas JUHEL
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

package molerctx_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/AdamKlekowski/moler/internal/molerctx"
)

func TestMolerCtx(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "molerctx suite")
}

var _ = Describe("Attrs", func() {
	It("stores and loads attributes", func() {
		a := molerctx.New[string](nil)
		a.Store("name", "eth0")

		v, ok := a.Load("name")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("eth0"))
	})

	It("records the cancellation cause", func() {
		a := molerctx.New[string](context.Background())
		cause := errors.New("timeout")

		a.Cancel(cause)

		Expect(a.Err()).To(HaveOccurred())
		Expect(a.Cause()).To(Equal(cause))
	})

	It("drains the attribute store once cancelled", func() {
		a := molerctx.New[string](nil)
		a.Store("key", "value")
		a.Cancel(errors.New("done"))

		_, ok := a.Load("key")
		Expect(ok).To(BeFalse())
	})

	It("stops accepting new attributes after cancel", func() {
		a := molerctx.New[string](nil)
		a.Cancel(errors.New("done"))
		a.Store("late", "value")

		_, ok := a.Load("late")
		Expect(ok).To(BeFalse())
	})

	It("clones independent copies", func() {
		a := molerctx.New[string](nil)
		a.Store("k", "v")

		b := a.Clone(nil)
		b.Store("k", "v2")

		av, _ := a.Load("k")
		bv, _ := b.Load("k")
		Expect(av).To(Equal("v"))
		Expect(bv).To(Equal("v2"))
	})

	It("merges another Attrs' entries", func() {
		a := molerctx.New[string](nil)
		b := molerctx.New[string](nil)
		b.Store("k1", "v1")
		b.Store("k2", "v2")

		Expect(a.Merge(b)).To(BeTrue())

		v1, ok1 := a.Load("k1")
		v2, ok2 := a.Load("k2")
		Expect(ok1).To(BeTrue())
		Expect(v1).To(Equal("v1"))
		Expect(ok2).To(BeTrue())
		Expect(v2).To(Equal("v2"))
	})

	It("walks only the requested keys with WalkLimit", func() {
		a := molerctx.New[string](nil)
		a.Store("a", 1)
		a.Store("b", 2)
		a.Store("c", 3)

		seen := map[string]any{}
		a.WalkLimit(func(k string, v any) bool {
			seen[k] = v
			return true
		}, "a", "c")

		Expect(seen).To(HaveLen(2))
		Expect(seen).To(HaveKey("a"))
		Expect(seen).To(HaveKey("c"))
		Expect(seen).NotTo(HaveKey("b"))
	})

	It("cancels when the parent context is cancelled", func() {
		parent, cancel := context.WithCancel(context.Background())
		a := molerctx.New[string](parent)
		cancel()

		Eventually(a.Done()).Should(BeClosed())
		Expect(a.Err()).To(HaveOccurred())
	})
})
