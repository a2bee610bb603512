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

// Package registry is the process-wide device factory and connection-type
// registry: explicit structs with a New/Clear lifecycle rather than
// package-level mutable state, so a test can build a fresh one per case
// instead of resetting shared globals.
package registry

import (
	"sync"

	"github.com/AdamKlekowski/moler/config"
	"github.com/AdamKlekowski/moler/device"
	"github.com/AdamKlekowski/moler/logger"
	"github.com/AdamKlekowski/moler/state"
)

// ConnectionFactory turns a device's ConnectionDesc into the
// device.RawIOFactory device.New needs, resolved by the connection kind
// name (after any config.File.ConnectionTypes alias is applied).
type ConnectionFactory func(desc *config.ConnectionDesc, log logger.SLogger) (device.RawIOFactory, error)

// DeviceClass is what RegisterClass binds a DEVICE_CLASS name to: the
// device-family layers its state machine is merged from (Layers, not a
// premerged *state.Machine, so GetDevice can append a per-device
// ConnectionHops overlay before the final Merge) and the command/event
// registries its transitions resolve against.
type DeviceClass struct {
	Layers   []state.PartialConfig
	Commands device.CommandRegistryFactory
	Events   device.EventRegistryFactory
}

// DeviceFactory is the process-wide device factory spec.md §9 calls for:
// GetDevice builds (and caches) a *device.Device per fleet entry in the
// loaded config.File, resolving DeviceClass and ConnectionFactory by name.
type DeviceFactory struct {
	mu sync.Mutex

	log  logger.SLogger
	file *config.File

	classes     map[string]DeviceClass
	connections map[string]ConnectionFactory
	devices     map[string]*device.Device
}
