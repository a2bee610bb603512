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

package registry

import (
	"github.com/AdamKlekowski/moler/config"
	"github.com/AdamKlekowski/moler/connection"
	"github.com/AdamKlekowski/moler/device"
	"github.com/AdamKlekowski/moler/ioplugin"
	"github.com/AdamKlekowski/moler/ioplugin/local"
	"github.com/AdamKlekowski/moler/ioplugin/sshshell"
	"github.com/AdamKlekowski/moler/ioplugin/tcp"
	"github.com/AdamKlekowski/moler/logger"
)

// RegisterDefaultConnectionTypes binds this module's three reference
// ioplugin implementations to their natural kind names: "terminal" spawns
// desc.Shell locally, "tcp" dials desc.Address, "ssh-shell" spawns
// desc.Shell (typically the system ssh client) but reports
// ioplugin.KindSSHShell so a device can start already inside UNIX_REMOTE.
func RegisterDefaultConnectionTypes(f *DeviceFactory) {
	f.RegisterConnectionType(string(ioplugin.KindTerminal), terminalConnection)
	f.RegisterConnectionType(string(ioplugin.KindTCP), tcpConnection)
	f.RegisterConnectionType(string(ioplugin.KindSSHShell), sshShellConnection)
}

func terminalConnection(desc *config.ConnectionDesc, log logger.SLogger) (device.RawIOFactory, error) {
	return func(conn *connection.Connection) (ioplugin.RawIO, error) {
		return local.New(desc.Shell, desc.Args, conn, log), nil
	}, nil
}

func tcpConnection(desc *config.ConnectionDesc, log logger.SLogger) (device.RawIOFactory, error) {
	return func(conn *connection.Connection) (ioplugin.RawIO, error) {
		return tcp.New(desc.Address, conn, log), nil
	}, nil
}

func sshShellConnection(desc *config.ConnectionDesc, log logger.SLogger) (device.RawIOFactory, error) {
	return func(conn *connection.Connection) (ioplugin.RawIO, error) {
		return sshshell.New(desc.Shell, desc.Args, conn, log), nil
	}, nil
}
