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

// Package local is a reference ioplugin.RawIO spawning a shell subprocess
// on the local machine. When Interactive is set it also puts the
// controlling terminal into raw mode for the session's lifetime (via
// golang.org/x/term), reaching that terminal through a dedicated tty handle
// (via github.com/mattn/go-tty) rather than os.Stdin, so raw mode still
// applies when stdin is redirected. Nothing is read from that handle.
package local

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/mattn/go-tty"
	"golang.org/x/term"

	"github.com/AdamKlekowski/moler/connection"
	moerr "github.com/AdamKlekowski/moler/errors"
	"github.com/AdamKlekowski/moler/ioplugin"
	"github.com/AdamKlekowski/moler/logger"
)

// RawIO spawns Shell as a subprocess and pumps its stdout into the bound
// Connection line by line.
type RawIO struct {
	Shell       string
	Args        []string
	Interactive bool

	conn *connection.Connection
	log  logger.SLogger

	mu         sync.Mutex
	cmd        *exec.Cmd
	stdin      io.WriteCloser
	restoreFdT *term.State
	tty        *tty.TTY
	open       bool
}

// New returns a RawIO of ioplugin.KindTerminal that will spawn shell (with
// args) once Open is called, feeding conn with everything the subprocess
// writes to stdout.
func New(shell string, args []string, conn *connection.Connection, log logger.SLogger) *RawIO {
	if log == nil {
		log = logger.Discard()
	}
	if shell == "" {
		shell = "/bin/sh"
	}
	return &RawIO{Shell: shell, Args: args, conn: conn, log: log}
}

func (r *RawIO) Kind() ioplugin.Kind {
	return ioplugin.KindTerminal
}

func (r *RawIO) Open(ctx context.Context) error {
	r.mu.Lock()
	if r.open {
		r.mu.Unlock()
		return moerr.ErrIO.Error(fmt.Errorf("local: %s is already open", r.Shell))
	}

	cmd := exec.CommandContext(ctx, r.Shell, r.Args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		r.mu.Unlock()
		return moerr.ErrIO.Error(fmt.Errorf("local: opening stdin pipe: %w", err))
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		r.mu.Unlock()
		return moerr.ErrIO.Error(fmt.Errorf("local: opening stdout pipe: %w", err))
	}
	cmd.Stderr = cmd.Stdout

	if r.Interactive {
		t, err := tty.Open()
		if err != nil {
			r.mu.Unlock()
			return moerr.ErrIO.Error(fmt.Errorf("local: opening controlling tty: %w", err))
		}
		r.tty = t
		if state, err := term.MakeRaw(int(t.Input().Fd())); err == nil {
			r.restoreFdT = state
		}
	}

	if err := cmd.Start(); err != nil {
		r.mu.Unlock()
		return moerr.ErrIO.Error(fmt.Errorf("local: starting %s: %w", r.Shell, err))
	}

	r.cmd = cmd
	r.stdin = stdin
	r.open = true
	r.mu.Unlock()

	go r.pump(stdout)
	return nil
}

func (r *RawIO) pump(stdout io.Reader) {
	reader := bufio.NewReader(stdout)
	ctx := context.Background()
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			if derr := r.conn.DataReceived(ctx, []byte(line)); derr != nil {
				r.log.Warn("local: delivering received bytes", logger.F("error", derr))
			}
		}
		if err != nil {
			return
		}
	}
}

func (r *RawIO) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.open {
		return nil
	}
	r.open = false

	if r.restoreFdT != nil && r.tty != nil {
		_ = term.Restore(int(r.tty.Input().Fd()), r.restoreFdT)
	}
	if r.tty != nil {
		_ = r.tty.Close()
	}
	_ = r.stdin.Close()
	if r.cmd != nil && r.cmd.Process != nil {
		return r.cmd.Wait()
	}
	return nil
}

func (r *RawIO) Send(_ context.Context, b []byte) (int, error) {
	r.mu.Lock()
	stdin := r.stdin
	open := r.open
	r.mu.Unlock()
	if !open {
		return 0, moerr.ErrIO.Error(fmt.Errorf("local: %s is not open", r.Shell))
	}
	n, err := stdin.Write(b)
	if err != nil {
		return n, moerr.ErrIO.Error(fmt.Errorf("local: writing to %s: %w", r.Shell, err))
	}
	return n, nil
}
