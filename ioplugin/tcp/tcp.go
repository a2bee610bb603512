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

// Package tcp is a reference ioplugin.RawIO backed by a raw TCP socket. It
// dials once and streams both directions for as long as the connection is
// open — unlike the client it is grounded on, it never uses a
// request/response Once(ctx, req, cb) framing, since a Moler connection is
// a standing shell session, not a one-shot RPC.
package tcp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	sckclt "github.com/nabbar/golib/socket/client/tcp"

	"github.com/AdamKlekowski/moler/connection"
	moerr "github.com/AdamKlekowski/moler/errors"
	"github.com/AdamKlekowski/moler/ioplugin"
	"github.com/AdamKlekowski/moler/logger"
)

// RawIO dials addr over TCP and pumps inbound bytes into conn.
type RawIO struct {
	addr string
	conn *connection.Connection
	log  logger.SLogger

	mu     sync.Mutex
	client sckclt.ClientTCP
	open   bool
	done   chan struct{}
}

// New returns a RawIO of ioplugin.KindTCP that will dial addr once Open is
// called. conn is the Connection this transport feeds.
func New(addr string, conn *connection.Connection, log logger.SLogger) *RawIO {
	if log == nil {
		log = logger.Discard()
	}
	return &RawIO{addr: addr, conn: conn, log: log}
}

func (r *RawIO) Kind() ioplugin.Kind {
	return ioplugin.KindTCP
}

// Open dials addr and starts a goroutine forwarding every line read off
// the socket into the bound Connection.
func (r *RawIO) Open(ctx context.Context) error {
	r.mu.Lock()
	if r.open {
		r.mu.Unlock()
		return moerr.ErrIO.Error(fmt.Errorf("tcp: %s is already open", r.addr))
	}

	if r.addr == "" {
		r.mu.Unlock()
		return moerr.ErrConfiguration.Error(fmt.Errorf("tcp: empty address"))
	}

	cli, err := sckclt.New(r.addr)
	if err != nil {
		r.mu.Unlock()
		return moerr.ErrIO.Error(fmt.Errorf("tcp: creating client for %s: %w", r.addr, err))
	}
	if err := cli.Connect(ctx); err != nil {
		r.mu.Unlock()
		return moerr.ErrIO.Error(fmt.Errorf("tcp: dialing %s: %w", r.addr, err))
	}

	r.client = cli
	r.open = true
	r.done = make(chan struct{})
	done := r.done
	r.mu.Unlock()

	go r.pump(cli, done)
	return nil
}

func (r *RawIO) pump(cli sckclt.ClientTCP, done chan struct{}) {
	reader := bufio.NewReader(readerFunc(cli.Read))
	ctx := context.Background()
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			if derr := r.conn.DataReceived(ctx, []byte(line)); derr != nil {
				r.log.Warn("tcp: delivering received bytes", logger.F("error", derr))
			}
		}
		if err != nil {
			if err != io.EOF {
				r.log.Warn("tcp: read failed", logger.F("addr", r.addr), logger.F("error", err))
			}
			close(done)
			return
		}
	}
}

// readerFunc adapts ClientTCP.Read's method value to io.Reader.
type readerFunc func([]byte) (int, error)

func (f readerFunc) Read(p []byte) (int, error) { return f(p) }

func (r *RawIO) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.open {
		return nil
	}
	r.open = false
	return r.client.Close()
}

func (r *RawIO) Send(_ context.Context, b []byte) (int, error) {
	r.mu.Lock()
	cli := r.client
	open := r.open
	r.mu.Unlock()
	if !open {
		return 0, moerr.ErrIO.Error(fmt.Errorf("tcp: %s is not open", r.addr))
	}
	n, err := cli.Write(b)
	if err != nil {
		return n, moerr.ErrIO.Error(fmt.Errorf("tcp: writing to %s: %w", r.addr, err))
	}
	return n, nil
}
