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
	"fmt"

	moerr "github.com/AdamKlekowski/moler/errors"
)

func errNoConfigLoaded(name string) error {
	return moerr.ErrConfiguration.Error(fmt.Errorf("registry: no fleet config loaded, cannot build device %q", name))
}

func errUnknownDevice(name string) error {
	return moerr.ErrConfiguration.Error(fmt.Errorf("registry: device %q not present in fleet config", name))
}

func errUnknownClass(name, class string) error {
	return moerr.ErrConfiguration.Error(fmt.Errorf("registry: device %q: unregistered device class %q", name, class))
}

func errMissingConnectionDesc(name string) error {
	return moerr.ErrConfiguration.Error(fmt.Errorf("registry: device %q: missing connection_desc", name))
}

func errUnknownConnectionType(name, kind string) error {
	return moerr.ErrConfiguration.Error(fmt.Errorf("registry: device %q: unregistered connection type %q", name, kind))
}
