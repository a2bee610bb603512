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

package demoparsers

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/AdamKlekowski/moler/command"
	moerr "github.com/AdamKlekowski/moler/errors"
	"github.com/AdamKlekowski/moler/logger"
)

var (
	psPrompt = regexp.MustCompile(`\$\s*$`)
	psHeader = regexp.MustCompile(`^\s*PID\s+TTY\s+TIME\s+CMD\s*$`)
	psRow    = regexp.MustCompile(`^\s*(\d+)\s+(\S+)\s+(\S+)\s+(.+?)\s*$`)
)

// ProcessRow is one row of "ps" output.
type ProcessRow struct {
	PID     int
	TTY     string
	Time    string
	Command string
}

// Ps runs "ps" and accumulates every data row until the prompt reappears,
// mirroring the row-by-row accumulation the command it is grounded on uses
// to build up its result one line at a time instead of parsing the whole
// block in one shot.
type Ps struct {
	*command.Base
	headerSeen bool
	rows       []ProcessRow
}

// NewPs returns a Ps ready to Start over conn.
func NewPs(conn command.Sender, log logger.SLogger) (*Ps, error) {
	base, err := command.NewBase("ps", "ps", "\n", "", nil, conn, log)
	if err != nil {
		return nil, err
	}
	p := &Ps{Base: base}
	p.Base.LineFunc = p.onLine
	return p, nil
}

func (p *Ps) onLine(line string, isFullLine bool) {
	if psPrompt.MatchString(line) {
		p.SetResult(p.rows)
		return
	}
	if !isFullLine {
		return
	}
	if !p.headerSeen {
		if psHeader.MatchString(line) {
			p.headerSeen = true
		}
		return
	}
	if strings.TrimSpace(line) == "" {
		return
	}
	m := psRow.FindStringSubmatch(line)
	if m == nil {
		p.SetException(moerr.ErrCommandFailure.Error(nil))
		return
	}
	pid, err := strconv.Atoi(m[1])
	if err != nil {
		p.SetException(moerr.ErrCommandFailure.Error(err))
		return
	}
	p.rows = append(p.rows, ProcessRow{PID: pid, TTY: m[2], Time: m[3], Command: m[4]})
}
