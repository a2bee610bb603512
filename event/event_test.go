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

package event_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	moerr "github.com/AdamKlekowski/moler/errors"
	"github.com/AdamKlekowski/moler/event"
	"github.com/AdamKlekowski/moler/observer"
)

type fakeSender struct {
	mu   sync.Mutex
	subs []observer.Observer
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

func (f *fakeSender) isSubscribed(o observer.Observer) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.subs {
		if s == o {
			return true
		}
	}
	return false
}

func TestEventFiresOnEveryMatch(t *testing.T) {
	s := &fakeSender{}
	b, err := event.NewBase("watcher", "\n", `^ERROR`, s, nil)
	require.NoError(t, err)

	var lines []string
	var occurrences []int
	b.FireFunc = func(line string, occurrence int) {
		lines = append(lines, line)
		occurrences = append(occurrences, occurrence)
	}

	_, err = b.Start(context.Background(), time.Second)
	require.NoError(t, err)
	assert.True(t, s.isSubscribed(b))

	b.DataReceived("ERROR one\nok\nERROR two\n")

	assert.Equal(t, []string{"ERROR one", "ERROR two"}, lines)
	assert.Equal(t, []int{0, 1}, occurrences)
}

func TestEventStopRecordsOccurrenceCount(t *testing.T) {
	s := &fakeSender{}
	b, err := event.NewBase("watcher", "\n", `^ERROR`, s, nil)
	require.NoError(t, err)

	_, err = b.Start(context.Background(), time.Second)
	require.NoError(t, err)

	b.DataReceived("ERROR one\nERROR two\nERROR three\n")
	b.Stop()

	v, err := b.AwaitDone(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, v)
	assert.False(t, s.isSubscribed(b))
}

func TestEventTimesOutWithoutAMatch(t *testing.T) {
	s := &fakeSender{}
	b, err := event.NewBase("watcher", "\n", `^ERROR`, s, nil)
	require.NoError(t, err)

	_, err = b.Start(context.Background(), 10*time.Millisecond)
	require.NoError(t, err)

	_, err = b.AwaitDone(context.Background())
	require.Error(t, err)

	e := moerr.Get(err)
	require.NotNil(t, e)
	assert.True(t, e.IsCode(moerr.ErrCommandTimeout))
}

func TestEventRejectsRestartAfterStop(t *testing.T) {
	s := &fakeSender{}
	b, err := event.NewBase("watcher", "\n", `^ERROR`, s, nil)
	require.NoError(t, err)

	_, err = b.Start(context.Background(), time.Second)
	require.NoError(t, err)
	b.Stop()

	_, err = b.Start(context.Background(), time.Second)
	require.Error(t, err)
}
