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

package command_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdamKlekowski/moler/command"
	moerr "github.com/AdamKlekowski/moler/errors"
	"github.com/AdamKlekowski/moler/observer"
)

// fakeSender records every Subscribe/Unsubscribe/Send call; tests drive
// DataReceived manually instead of wiring a real connection.Connection.
type fakeSender struct {
	mu      sync.Mutex
	subs    []observer.Observer
	sent    []string
	sendErr error

	// blocking, when set, makes Send block on ctx.Done() instead of
	// returning immediately, closing sendStarted once it starts waiting.
	blocking    bool
	sendStarted chan struct{}
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

func (f *fakeSender) Send(ctx context.Context, text string) error {
	f.mu.Lock()
	blocking := f.blocking
	started := f.sendStarted
	f.mu.Unlock()

	if blocking {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeSender) last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1]
}

func newBase(t *testing.T, line, prompt string, failures []string) (*command.Base, *fakeSender) {
	t.Helper()
	s := &fakeSender{}
	b, err := command.NewBase("probe", line, "\n", prompt, failures, s, nil)
	require.NoError(t, err)
	return b, s
}

func TestBaseSendsLineOnStart(t *testing.T) {
	b, s := newBase(t, "pwd", `\$\s*$`, nil)

	_, err := b.Start(context.Background(), time.Second)
	require.NoError(t, err)

	assert.Equal(t, "pwd\n", s.last())
}

func TestBaseDiscardsEchoLine(t *testing.T) {
	b, s := newBase(t, "pwd", `\$\s*$`, nil)
	_, err := b.Start(context.Background(), time.Second)
	require.NoError(t, err)
	_ = s

	b.DataReceived("pwd\n")
	b.DataReceived("/home/user\n")
	b.DataReceived("user@host:~$ ")

	v, err := b.AwaitDone(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user@host:~$ ", v)
}

func TestBaseMatchesFailurePattern(t *testing.T) {
	b, _ := newBase(t, "false", `\$\s*$`, []string{`^command not found`})
	_, err := b.Start(context.Background(), time.Second)
	require.NoError(t, err)

	b.DataReceived("false\n")
	b.DataReceived("command not found\n")

	_, err = b.AwaitDone(context.Background())
	require.Error(t, err)

	e := moerr.Get(err)
	require.NotNil(t, e)
	assert.True(t, e.IsCode(moerr.ErrCommandFailure))
}

func TestBaseForwardsUnmatchedLinesToLineFunc(t *testing.T) {
	b, _ := newBase(t, "ls", `never-matches`, nil)

	var got []string
	b.LineFunc = func(line string, isFullLine bool) {
		if isFullLine {
			got = append(got, line)
		}
	}

	_, err := b.Start(context.Background(), time.Second)
	require.NoError(t, err)

	b.DataReceived("ls\n")
	b.DataReceived("a.txt\nb.txt\n")

	assert.Equal(t, []string{"a.txt", "b.txt"}, got)
}

func TestBaseForwardsPartialLine(t *testing.T) {
	b, _ := newBase(t, "ls", `never-matches`, nil)

	var partial string
	b.LineFunc = func(line string, isFullLine bool) {
		if !isFullLine {
			partial = line
		}
	}

	_, err := b.Start(context.Background(), time.Second)
	require.NoError(t, err)

	b.DataReceived("ls\n")
	b.DataReceived("still-comin")

	assert.Equal(t, "still-comin", partial)
}

func TestBaseRejectsRestartAfterCompletion(t *testing.T) {
	b, _ := newBase(t, "pwd", `\$\s*$`, nil)

	_, err := b.Start(context.Background(), time.Second)
	require.NoError(t, err)

	b.SetResult("done")

	_, err = b.Start(context.Background(), time.Second)
	require.Error(t, err)

	e := moerr.Get(err)
	require.NotNil(t, e)
	assert.True(t, e.IsCode(moerr.ErrCommandFailure))
}

// TestCancelInterruptsInFlightSend pins down that StartAs hands Send the
// context observer.Base derives internally, not the caller's own ctx — so
// Cancel actually unblocks a Send still in flight instead of only flipping
// the Outcome while the Send call hangs forever on context.Background().
func TestCancelInterruptsInFlightSend(t *testing.T) {
	s := &fakeSender{blocking: true, sendStarted: make(chan struct{})}
	b, err := command.NewBase("probe", "pwd", "\n", `\$\s*$`, nil, s, nil)
	require.NoError(t, err)

	startDone := make(chan error, 1)
	go func() {
		_, err := b.Start(context.Background(), 0)
		startDone <- err
	}()

	select {
	case <-s.sendStarted:
	case <-time.After(time.Second):
		t.Fatal("Send was never called")
	}

	b.Cancel(moerr.ErrConfiguration.Error(nil))

	select {
	case err := <-startDone:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Start (blocked in Send) never returned after Cancel")
	}
}

func TestRegistryBuildUnknownKind(t *testing.T) {
	r := command.NewRegistry()
	_, err := r.Build("nope", nil)
	require.Error(t, err)
	assert.False(t, r.Known("nope"))
}

func TestRegistryBuildKnownKind(t *testing.T) {
	r := command.NewRegistry()
	r.Register("echo", func(params map[string]any) (command.Command, error) {
		b, err := command.NewBase("echo", params["line"].(string), "\n", "", nil, &fakeSender{}, nil)
		return b, err
	})

	c, err := r.Build("echo", map[string]any{"line": "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", c.CommandLine())
	assert.True(t, r.Known("echo"))
}
