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

// Package sudo composes a command.Command with sudo's interactive password
// prompt: the outer Command sends "sudo <inner line>", answers the
// password prompt itself, and forwards everything else straight through to
// the inner command without ever subscribing it to the connection
// directly.
package sudo

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/AdamKlekowski/moler/command"
	moerr "github.com/AdamKlekowski/moler/errors"
	"github.com/AdamKlekowski/moler/logger"
	"github.com/AdamKlekowski/moler/observer"
)

// passwordPrompt matches sudo's default "[sudo] password for user:" line.
var passwordPrompt = regexp.MustCompile(`\[sudo\] password for .+:\s*$`)

// wrongPassword matches sudo's retry message on a bad password.
var wrongPassword = regexp.MustCompile(`^Sorry, try again\.$`)

// skippable is satisfied by *command.Base; it lets sudo mark the inner
// command's echo line as already consumed, since the inner command's own
// Line was never sent verbatim (the outer Command sent "sudo <line>"
// instead).
type skippable interface {
	SkipEcho()
}

// Command wraps an inner command.Command, handling sudo's password prompt
// and forwarding every other line to inner.DataReceived. inner is never
// subscribed to the connection directly.
type Command struct {
	*command.Base

	inner    command.Command
	password string
	conn     command.Sender

	echoOnce     sync.Once
	passwordSent bool
	// partialSent is the part of the current unterminated line already
	// forwarded to inner.
	partialSent string
}

// New returns a Command that runs inner under sudo, answering the password
// prompt with password.
func New(inner command.Command, password string, conn command.Sender, log logger.SLogger) (*Command, error) {
	base, err := command.NewBase(
		"sudo:"+inner.CommandLine(),
		"sudo "+inner.CommandLine(),
		"\n",
		"",
		nil,
		conn,
		log,
	)
	if err != nil {
		return nil, err
	}

	c := &Command{
		Base:     base,
		inner:    inner,
		password: password,
		conn:     conn,
	}
	c.Base.LineFunc = c.onLine
	return c, nil
}

// Start subscribes the outer command, sends "sudo <inner line>", and
// mirrors inner's own outcome onto the outer command once inner reaches
// one. Starting a Command wrapping an already-completed inner fails
// synchronously with command.ErrReused (spec scenario S4).
func (c *Command) Start(ctx context.Context, timeout time.Duration) (observer.Handle, error) {
	if innerDone(c.inner) {
		return nil, command.ErrReused(c.inner.Name())
	}

	h, err := c.Base.StartAs(ctx, timeout, c)
	if err != nil {
		return nil, err
	}

	go func() {
		<-c.inner.Done()
		v, err := c.inner.AwaitDone(context.Background())
		if err != nil {
			c.SetException(err)
		} else {
			c.SetResult(v)
		}
	}()

	return h, nil
}

// AwaitDone blocks until the composed command reaches a terminal outcome
// (its own, or mirrored from inner).
func (c *Command) AwaitDone(ctx context.Context) (any, error) {
	return c.Base.AwaitDone(ctx)
}

// Call is Start followed by AwaitDone.
func (c *Command) Call(ctx context.Context, timeout time.Duration) (any, error) {
	if _, err := c.Start(ctx, timeout); err != nil {
		return nil, err
	}
	return c.AwaitDone(ctx)
}

func (c *Command) sendPassword() error {
	return c.conn.Send(context.Background(), c.password+"\n")
}

func (c *Command) onLine(line string, isFullLine bool) {
	if !isFullLine {
		// An unterminated line (such as inner's closing prompt) is forwarded
		// as it grows, each time passing on only the text inner has not seen.
		if !passwordPrompt.MatchString(line) && len(line) > len(c.partialSent) && strings.HasPrefix(line, c.partialSent) {
			c.forward(line[len(c.partialSent):])
			c.partialSent = line
		}
		return
	}
	sent := c.partialSent
	c.partialSent = ""

	if !c.passwordSent && passwordPrompt.MatchString(line) {
		c.passwordSent = true
		if err := c.sendPassword(); err != nil {
			c.SetException(moerr.ErrIO.Error(err))
		}
		return
	}

	if wrongPassword.MatchString(line) {
		c.SetException(moerr.ErrCommandFailure.Error(nil))
		return
	}

	c.forward(strings.TrimPrefix(line, sent) + "\n")
}

func (c *Command) forward(text string) {
	if s, ok := c.inner.(skippable); ok {
		c.echoOnce.Do(s.SkipEcho)
	}
	c.inner.DataReceived(text)
}

func innerDone(o observer.Observer) bool {
	select {
	case <-o.Done():
		return true
	default:
		return false
	}
}
