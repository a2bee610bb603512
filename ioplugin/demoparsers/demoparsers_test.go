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

package demoparsers_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdamKlekowski/moler/ioplugin/demoparsers"
	"github.com/AdamKlekowski/moler/observer"
)

type fakeSender struct {
	mu   sync.Mutex
	subs []observer.Observer
	sent []string
}

func (f *fakeSender) Subscribe(o observer.Observer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, o)
}

func (f *fakeSender) Unsubscribe(o observer.Observer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, s := range f.subs {
		if s == o {
			f.subs = append(f.subs[:i], f.subs[i+1:]...)
			return
		}
	}
}

func (f *fakeSender) Send(_ context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeSender) subscribers() []observer.Observer {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]observer.Observer, len(f.subs))
	copy(out, f.subs)
	return out
}

func deliver(f *fakeSender, chunk string) {
	for _, o := range f.subscribers() {
		o.DataReceived(chunk)
	}
}

func TestPwdResolvesToThePrintedPath(t *testing.T) {
	s := &fakeSender{}
	p, err := demoparsers.NewPwd(s, nil)
	require.NoError(t, err)

	_, err = p.Start(context.Background(), time.Second)
	require.NoError(t, err)

	deliver(s, "pwd\n")
	deliver(s, "/home/user\n")
	deliver(s, "user@host:~$ ")

	v, err := p.AwaitDone(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/home/user", v)
}

func TestPsAccumulatesRowsUntilPrompt(t *testing.T) {
	s := &fakeSender{}
	p, err := demoparsers.NewPs(s, nil)
	require.NoError(t, err)

	_, err = p.Start(context.Background(), time.Second)
	require.NoError(t, err)

	deliver(s, "ps\n")
	deliver(s, "  PID TTY          TIME CMD\n")
	deliver(s, "    1 pts/0    00:00:00 bash\n")
	deliver(s, "   42 pts/0    00:00:01 ps\n")
	deliver(s, "user@host:~$ ")

	v, err := p.AwaitDone(context.Background())
	require.NoError(t, err)

	rows, ok := v.([]demoparsers.ProcessRow)
	require.True(t, ok)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].PID)
	assert.Equal(t, "bash", rows[0].Command)
	assert.Equal(t, 42, rows[1].PID)
	assert.Equal(t, "ps", rows[1].Command)
}

func TestPsRejectsAnUnparsableRow(t *testing.T) {
	s := &fakeSender{}
	p, err := demoparsers.NewPs(s, nil)
	require.NoError(t, err)

	_, err = p.Start(context.Background(), time.Second)
	require.NoError(t, err)

	deliver(s, "ps\n")
	deliver(s, "  PID TTY          TIME CMD\n")
	deliver(s, "not a process row\n")

	_, err = p.AwaitDone(context.Background())
	require.Error(t, err)
}
