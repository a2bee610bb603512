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

package config_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/AdamKlekowski/moler/config"
	"github.com/AdamKlekowski/moler/logger"
)

const wellFormed = `
devices:
  rtr1:
    device_class: unix
    initial_state: NOT_CONNECTED
    connection_desc:
      kind: ssh-shell
      address: 10.0.0.5:22
      shell: /bin/sh
      interactive: true
    connection_hops: {}
connection_types:
  default: ssh-shell
`

const missingKind = `
devices:
  rtr1:
    device_class: unix
    initial_state: NOT_CONNECTED
    connection_desc:
      address: 10.0.0.5:22
connection_types: {}
`

const badKind = `
devices:
  rtr1:
    device_class: unix
    initial_state: NOT_CONNECTED
    connection_desc:
      kind: carrier-pigeon
      address: 10.0.0.5:22
connection_types: {}
`

var _ = Describe("LoadFile", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "moler-config-*")
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	writeFixture := func(name, body string) string {
		p := filepath.Join(dir, name)
		Expect(os.WriteFile(p, []byte(body), 0o644)).To(Succeed())
		return p
	}

	It("loads and validates a well-formed fleet file", func() {
		path := writeFixture("fleet.yaml", wellFormed)

		f, err := config.LoadFile(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(f.Devices).To(HaveKey("rtr1"))

		d := f.Devices["rtr1"]
		Expect(d.DeviceClass).To(Equal("unix"))
		Expect(d.InitialState).To(Equal("NOT_CONNECTED"))
		Expect(d.ConnectionDesc).ToNot(BeNil())
		Expect(d.ConnectionDesc.Kind).To(Equal("ssh-shell"))
		Expect(d.ConnectionDesc.Address).To(Equal("10.0.0.5:22"))
		Expect(f.ConnectionTypes).To(HaveKeyWithValue("default", "ssh-shell"))
	})

	It("rejects a device missing its connection kind", func() {
		path := writeFixture("missing-kind.yaml", missingKind)

		_, err := config.LoadFile(path)
		Expect(err).To(HaveOccurred())
	})

	It("rejects a connection kind outside tcp/ssh-shell/terminal", func() {
		path := writeFixture("bad-kind.yaml", badKind)

		_, err := config.LoadFile(path)
		Expect(err).To(HaveOccurred())
	})

	It("surfaces a read error for a missing file", func() {
		_, err := config.LoadFile(filepath.Join(dir, "does-not-exist.yaml"))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Loader", func() {
	var dir, path string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "moler-config-loader-*")
		Expect(err).ToNot(HaveOccurred())
		path = filepath.Join(dir, "fleet.yaml")
		Expect(os.WriteFile(path, []byte(wellFormed), 0o644)).To(Succeed())
	})

	AfterEach(func() {
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	It("loads the same tree LoadFile would, via viper", func() {
		l := config.New(logger.Discard())
		l.SetConfigFile(path)

		f, err := l.Load()
		Expect(err).ToNot(HaveOccurred())
		Expect(f.Devices).To(HaveKey("rtr1"))
		Expect(f.Devices["rtr1"].ConnectionDesc.Kind).To(Equal("ssh-shell"))
	})

	It("runs ReloadBefore then ReloadAfter, in order, around a file-change reload", func() {
		l := config.New(logger.Discard())
		l.SetConfigFile(path)
		_, err := l.Load()
		Expect(err).ToNot(HaveOccurred())

		var order []string
		l.ReloadBefore = func() error {
			order = append(order, "before")
			return nil
		}
		l.ReloadAfter = func() error {
			order = append(order, "after")
			return nil
		}

		results := make(chan error, 1)
		l.Watch(func(_ *config.File, err error) {
			results <- err
		})

		time.Sleep(100 * time.Millisecond)
		Expect(os.WriteFile(path, []byte(wellFormed+"\n# touched\n"), 0o644)).To(Succeed())

		Eventually(results, 5*time.Second, 50*time.Millisecond).Should(Receive(BeNil()))
		Expect(order).To(Equal([]string{"before", "after"}))
	})

	It("stops a reload short when ReloadBefore errors, without running ReloadAfter", func() {
		l := config.New(logger.Discard())
		l.SetConfigFile(path)
		_, err := l.Load()
		Expect(err).ToNot(HaveOccurred())

		var afterRan bool
		l.ReloadBefore = func() error { return assertionError }
		l.ReloadAfter = func() error { afterRan = true; return nil }

		results := make(chan error, 1)
		l.Watch(func(_ *config.File, err error) {
			results <- err
		})

		time.Sleep(100 * time.Millisecond)
		Expect(os.WriteFile(path, []byte(wellFormed+"\n# touched again\n"), 0o644)).To(Succeed())

		Eventually(results, 5*time.Second, 50*time.Millisecond).Should(Receive(HaveOccurred()))
		Expect(afterRan).To(BeFalse())
	})
})

var assertionError = &fixedError{"reload vetoed"}

type fixedError struct{ msg string }

func (e *fixedError) Error() string { return e.msg }
