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

// Package demoparsers holds two reference Command kinds — pwd and ps — used
// to give the state machine and sudo composition examples something
// concrete to run, and nowhere else: the core never parses command output
// itself.
package demoparsers

import (
	"regexp"

	"github.com/AdamKlekowski/moler/command"
	"github.com/AdamKlekowski/moler/logger"
)

var pwdPrompt = regexp.MustCompile(`\$\s*$`)

// Pwd runs "pwd" and resolves to the single path line it printed.
type Pwd struct {
	*command.Base
	path string
}

// NewPwd returns a Pwd ready to Start over conn.
func NewPwd(conn command.Sender, log logger.SLogger) (*Pwd, error) {
	base, err := command.NewBase("pwd", "pwd", "\n", "", nil, conn, log)
	if err != nil {
		return nil, err
	}
	p := &Pwd{Base: base}
	p.Base.LineFunc = p.onLine
	return p, nil
}

func (p *Pwd) onLine(line string, isFullLine bool) {
	if pwdPrompt.MatchString(line) {
		p.SetResult(p.path)
		return
	}
	if !isFullLine {
		return
	}
	if p.path == "" && line != "" {
		p.path = line
	}
}
