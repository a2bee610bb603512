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

package observer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	moerr "github.com/AdamKlekowski/moler/errors"
	"github.com/AdamKlekowski/moler/observer"
)

type testObserver struct {
	*observer.Base
}

func newTestObserver(name string) *testObserver {
	return &testObserver{Base: observer.NewBase(name, nil)}
}

func TestObserverResultIsSingleShot(t *testing.T) {
	o := newTestObserver("probe")

	o.SetResult("first")
	o.SetResult("second")

	v, err := o.AwaitDone(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", v)
}

func TestObserverExceptionWinsOverLateResult(t *testing.T) {
	o := newTestObserver("probe")

	o.SetException(moerr.ErrCommandFailure.Error(nil))
	o.SetResult("too late")

	_, err := o.AwaitDone(context.Background())
	require.Error(t, err)
}

func TestObserverCallTimesOut(t *testing.T) {
	o := newTestObserver("probe")

	_, err := o.Call(context.Background(), 10*time.Millisecond, o)
	require.Error(t, err)

	e := moerr.Get(err)
	require.NotNil(t, e)
	assert.True(t, e.IsCode(moerr.ErrCommandTimeout))
}

func TestObserverCancelRecordsCause(t *testing.T) {
	o := newTestObserver("probe")
	ctx, cancel := context.WithCancel(context.Background())

	_, err := o.Start(ctx, 0, o)
	require.NoError(t, err)

	cancel()

	_, err = o.AwaitDone(context.Background())
	require.Error(t, err)

	e := moerr.Get(err)
	require.NotNil(t, e)
	assert.True(t, e.IsCode(moerr.ErrCancelled))
}

func TestObserverStartRejectedAfterPreCancel(t *testing.T) {
	o := newTestObserver("probe")

	o.Cancel(moerr.ErrConfiguration.Error(nil))

	_, err := o.Start(context.Background(), 0, o)
	require.Error(t, err)

	e := moerr.Get(err)
	require.NotNil(t, e)
	assert.True(t, e.IsCode(moerr.ErrCommandFailure))
}

func TestObserverWatcherExitsWithoutCancelOnNormalCompletion(t *testing.T) {
	o := newTestObserver("probe")

	_, err := o.Start(context.Background(), 0, o)
	require.NoError(t, err)

	o.SetResult("done")

	v, err := o.AwaitDone(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "done", v)
}

func TestObserverDoneClosedAfterResult(t *testing.T) {
	o := newTestObserver("probe")

	select {
	case <-o.Done():
		t.Fatal("observer should not be done yet")
	default:
	}

	o.SetResult(42)

	select {
	case <-o.Done():
	case <-time.After(time.Second):
		t.Fatal("observer should be done")
	}
}
