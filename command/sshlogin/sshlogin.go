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

// Package sshlogin is the concrete command.Command kind registered under
// "ssh" by device/family: it sends "ssh <host>", watches for a banner line
// the remote prints before its shell prompt, and fails the transition if
// the banner's version is older than the edge's configured minimum.
package sshlogin

import (
	"fmt"
	"regexp"

	hscvrs "github.com/hashicorp/go-version"

	"github.com/AdamKlekowski/moler/command"
	moerr "github.com/AdamKlekowski/moler/errors"
	"github.com/AdamKlekowski/moler/logger"
)

var bannerPattern = regexp.MustCompile(`^SSH-BANNER\s+(\S+)`)

// Command negotiates an ssh-shell transition, rejecting a remote whose
// banner version is below MinVersion.
type Command struct {
	*command.Base

	host       string
	minVersion *hscvrs.Version
}

// Params understood by New, as carried in a state.Action's Params map
// (merged with the edge's expected_prompt/target_newline by
// device.buildEdgeCommand):
//   - "host" (string, required): the remote to dial.
//   - "min_version" (string, optional): minimum acceptable SSH-BANNER
//     version; transitions are never version-gated when empty.
func New(params map[string]any, conn command.Sender, log logger.SLogger) (*Command, error) {
	host, _ := params["host"].(string)
	if host == "" {
		return nil, moerr.ErrConfiguration.Error(fmt.Errorf("sshlogin: missing required param %q", "host"))
	}

	prompt, _ := params["expected_prompt"].(string)
	newline, _ := params["target_newline"].(string)

	base, err := command.NewBase("ssh-login:"+host, "ssh "+host, newline, prompt, nil, conn, log)
	if err != nil {
		return nil, err
	}

	var minVer *hscvrs.Version
	if s, _ := params["min_version"].(string); s != "" {
		minVer, err = hscvrs.NewVersion(s)
		if err != nil {
			return nil, moerr.ErrConfiguration.Error(fmt.Errorf("sshlogin: invalid min_version %q: %w", s, err))
		}
	}

	c := &Command{Base: base, host: host, minVersion: minVer}
	c.Base.LineFunc = c.onLine
	return c, nil
}

// onLine watches lines between the shell's echo and its expected prompt
// for a banner announcement, rejecting the transition if the negotiated
// version falls short of minVersion. Any line that is not a banner is
// left for the prompt/failure-pattern matching already done by Base.
func (c *Command) onLine(line string, isFullLine bool) {
	if !isFullLine || c.minVersion == nil {
		return
	}

	m := bannerPattern.FindStringSubmatch(line)
	if m == nil {
		return
	}

	negotiated, err := hscvrs.NewVersion(m[1])
	if err != nil {
		c.SetException(moerr.ErrCommandFailure.Error(fmt.Errorf("ssh %s: unparsable banner version %q", c.host, m[1])))
		return
	}
	if negotiated.LessThan(c.minVersion) {
		c.SetException(moerr.ErrCommandFailure.Error(fmt.Errorf(
			"ssh %s: banner version %s below minimum %s", c.host, negotiated, c.minVersion)))
	}
}
