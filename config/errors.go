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

package config

import (
	"fmt"

	moerr "github.com/AdamKlekowski/moler/errors"
)

func errNoConfigFile() error {
	return moerr.ErrConfiguration.Error(fmt.Errorf("config: no file set, call SetConfigFile first"))
}

func errReadConfig(path string, cause error) error {
	return moerr.ErrConfiguration.Error(fmt.Errorf("config: reading %q: %w", path, cause))
}

func errUnmarshal(cause error) error {
	return moerr.ErrConfiguration.Error(fmt.Errorf("config: unmarshalling fleet tree: %w", cause))
}

func errValidate(cause error) error {
	return moerr.ErrConfiguration.Error(fmt.Errorf("config: validation: %w", cause))
}

func errReloadBefore(cause error) error {
	return moerr.ErrConfiguration.Error(fmt.Errorf("config: reload-before hook: %w", cause))
}

func errReloadAfter(cause error) error {
	return moerr.ErrConfiguration.Error(fmt.Errorf("config: reload-after hook: %w", cause))
}
