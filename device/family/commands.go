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

package family

import (
	"github.com/AdamKlekowski/moler/command"
	"github.com/AdamKlekowski/moler/command/sshlogin"
	"github.com/AdamKlekowski/moler/device"
	"github.com/AdamKlekowski/moler/logger"
)

// CommandRegistry returns the device.CommandRegistryFactory backing every
// transition edge this package declares: "local" and "exit" are plain
// line-and-prompt commands, "su" likewise (su root, no password prompt in
// this reference configuration - see command/sudo for the password-prompt
// composition), and "ssh" is the version-gated sshlogin.Command.
func CommandRegistry(log logger.SLogger) device.CommandRegistryFactory {
	return func(conn command.Sender) *command.Registry {
		r := command.NewRegistry()
		r.Register("local", promptCommand("local-login", "", conn, log))
		r.Register("exit", promptCommand("exit", "exit", conn, log))
		r.Register("su", promptCommand("su-root", "su root", conn, log))
		r.Register("ssh", func(params map[string]any) (command.Command, error) {
			return sshlogin.New(params, conn, log)
		})
		return r
	}
}

// promptCommand builds a Constructor for a transition that only needs to
// send line and wait for the edge's expected_prompt/target_newline - no
// command-specific parsing.
func promptCommand(name, line string, conn command.Sender, log logger.SLogger) command.Constructor {
	return func(params map[string]any) (command.Command, error) {
		prompt, _ := params["expected_prompt"].(string)
		newline, _ := params["target_newline"].(string)
		return command.NewBase(name, line, newline, prompt, nil, conn, log)
	}
}
