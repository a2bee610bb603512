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
	"sync"

	"github.com/fsnotify/fsnotify"
	libval "github.com/go-playground/validator/v10"
	spfvpr "github.com/spf13/viper"

	"github.com/AdamKlekowski/moler/logger"
)

// Loader assembles a File from a *spf13/viper.Viper tree - file, env vars
// and flags layered the way viper always layers them - the same indirection
// the teacher's config package threads through its own fctGolibViper field,
// narrowed here from "any component's config" down to one fleet File.
//
// ReloadBefore/ReloadAfter mirror the teacher's fctReloadBefore/
// fctReloadAfter hook pair: ReloadBefore runs (and can veto) before a
// file-change-triggered reload re-parses the tree, ReloadAfter runs once the
// new File has been validated, before it is handed to the caller's callback.
type Loader struct {
	mu  sync.Mutex
	vpr *spfvpr.Viper
	log logger.SLogger
	val *libval.Validate

	ReloadBefore func() error
	ReloadAfter  func() error
}

// New returns a Loader with its own *viper.Viper instance, ready for
// SetConfigFile/Viper to be called before the first Load.
func New(log logger.SLogger) *Loader {
	if log == nil {
		log = logger.Discard()
	}
	return &Loader{
		vpr: spfvpr.New(),
		log: log,
		val: libval.New(),
	}
}

// Viper exposes the underlying *viper.Viper so a caller can set defaults,
// bind flags or env var prefixes before the first Load - the same escape
// hatch the teacher's viper wrapper exposes via its own Viper() method.
func (l *Loader) Viper() *spfvpr.Viper {
	return l.vpr
}

// SetConfigFile points the loader at a concrete file path.
func (l *Loader) SetConfigFile(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.vpr.SetConfigFile(path)
}

// Load reads the configured file (if any path was set; viper's own
// env/flag/default layers still apply even without one), unmarshals it into
// a File and validates the result, returning the validator's report of every
// failing field wrapped as one Configuration error.
func (l *Loader) Load() (*File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load()
}

func (l *Loader) load() (*File, error) {
	if err := l.vpr.ReadInConfig(); err != nil {
		if _, ok := err.(spfvpr.ConfigFileNotFoundError); !ok {
			return nil, errReadConfig(l.vpr.ConfigFileUsed(), err)
		}
	}

	var f File
	if err := l.vpr.Unmarshal(&f); err != nil {
		return nil, errUnmarshal(err)
	}
	if err := l.val.Struct(&f); err != nil {
		return nil, errValidate(err)
	}

	l.log.Debug("config loaded", logger.F("file", l.vpr.ConfigFileUsed()), logger.F("devices", len(f.Devices)))
	return &f, nil
}

// Watch arms viper's file-watcher and reports every subsequent reload
// (triggered by the underlying file changing on disk) to onReload, running
// ReloadBefore/ReloadAfter around each one. onReload receives either a
// freshly validated File or the error that stopped the reload short; when
// only ReloadAfter fails, it receives the validated File together with that
// error.
func (l *Loader) Watch(onReload func(*File, error)) {
	l.vpr.OnConfigChange(func(ev fsnotify.Event) {
		l.mu.Lock()
		defer l.mu.Unlock()

		l.log.Info("config file changed, reloading", logger.F("file", ev.Name))

		if l.ReloadBefore != nil {
			if err := l.ReloadBefore(); err != nil {
				onReload(nil, errReloadBefore(err))
				return
			}
		}

		f, err := l.load()
		if err != nil {
			onReload(nil, err)
			return
		}

		if l.ReloadAfter != nil {
			if err := l.ReloadAfter(); err != nil {
				onReload(f, errReloadAfter(err))
				return
			}
		}

		onReload(f, nil)
	})
	l.vpr.WatchConfig()
}
