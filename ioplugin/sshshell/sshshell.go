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

// Package sshshell is ioplugin/local with its Kind overridden to
// ioplugin.KindSSHShell: the raw transport is still a spawned subprocess
// (typically the system ssh client) pumping a shell's stdout into a
// Connection, but reporting the ssh-shell family lets device.New start a
// Device directly inside UNIX_REMOTE (a session already mid-flight)
// instead of only at NOT_CONNECTED (spec scenario S6).
package sshshell

import (
	"github.com/AdamKlekowski/moler/connection"
	"github.com/AdamKlekowski/moler/ioplugin"
	"github.com/AdamKlekowski/moler/ioplugin/local"
	"github.com/AdamKlekowski/moler/logger"
)

// RawIO embeds ioplugin/local's RawIO, inheriting its subprocess pump
// wholesale and only renaming the transport family it reports.
type RawIO struct {
	*local.RawIO
}

// New spawns shell (with args - typically the ssh binary and its target)
// and reports ioplugin.KindSSHShell.
func New(shell string, args []string, conn *connection.Connection, log logger.SLogger) *RawIO {
	return &RawIO{RawIO: local.New(shell, args, conn, log)}
}

func (r *RawIO) Kind() ioplugin.Kind {
	return ioplugin.KindSSHShell
}
