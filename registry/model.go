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
	"context"

	"github.com/AdamKlekowski/moler/config"
	"github.com/AdamKlekowski/moler/device"
	"github.com/AdamKlekowski/moler/logger"
	"github.com/AdamKlekowski/moler/state"
)

// New returns an empty DeviceFactory. Call LoadConfig, RegisterClass and
// RegisterConnectionType before the first GetDevice.
func New(log logger.SLogger) *DeviceFactory {
	if log == nil {
		log = logger.Discard()
	}
	return &DeviceFactory{
		log:         log,
		classes:     make(map[string]DeviceClass),
		connections: make(map[string]ConnectionFactory),
		devices:     make(map[string]*device.Device),
	}
}

// LoadConfig swaps in the fleet description GetDevice resolves names
// against. Already-built devices are unaffected; call Clear first if a
// reload should also tear them down.
func (f *DeviceFactory) LoadConfig(file *config.File) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.file = file
}

// RegisterClass binds a DEVICE_CLASS name to the family layers and
// command/event registries devices of that class use.
func (f *DeviceFactory) RegisterClass(name string, dc DeviceClass) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.classes[name] = dc
}

// RegisterConnectionType binds a connection kind name (after any
// config.File.ConnectionTypes alias resolves to it) to the factory that
// builds its device.RawIOFactory.
func (f *DeviceFactory) RegisterConnectionType(kind string, cf ConnectionFactory) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connections[kind] = cf
}

// GetDevice returns the fleet's named device, building it on first request
// and caching it for every call after. opts are appended after the
// defaults LoadConfig's entry for name implies (its InitialState, this
// factory's logger), so a caller's Option always wins on conflict.
func (f *DeviceFactory) GetDevice(name string, opts ...device.Option) (*device.Device, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if d, ok := f.devices[name]; ok {
		return d, nil
	}

	if f.file == nil {
		return nil, errNoConfigLoaded(name)
	}
	entry, ok := f.file.Devices[name]
	if !ok {
		return nil, errUnknownDevice(name)
	}
	class, ok := f.classes[entry.DeviceClass]
	if !ok {
		return nil, errUnknownClass(name, entry.DeviceClass)
	}
	if entry.ConnectionDesc == nil {
		return nil, errMissingConnectionDesc(name)
	}

	kind := entry.ConnectionDesc.Kind
	if alias, ok := f.file.ConnectionTypes[kind]; ok {
		kind = alias
	}
	connFactory, ok := f.connections[kind]
	if !ok {
		return nil, errUnknownConnectionType(name, kind)
	}

	layers := append([]state.PartialConfig{}, class.Layers...)
	if len(entry.ConnectionHops) > 0 {
		layers = append(layers, state.PartialConfig{Hops: entry.ConnectionHops})
	}
	machine, err := state.Merge(layers...)
	if err != nil {
		return nil, err
	}

	rioOf, err := connFactory(entry.ConnectionDesc, f.log)
	if err != nil {
		return nil, err
	}

	deviceOpts := []device.Option{device.WithLogger(f.log)}
	if entry.InitialState != "" {
		deviceOpts = append(deviceOpts, device.WithInitialState(entry.InitialState))
	}
	deviceOpts = append(deviceOpts, opts...)

	d, err := device.New(name, machine, rioOf, class.Commands, class.Events, deviceOpts...)
	if err != nil {
		return nil, err
	}

	f.devices[name] = d
	return d, nil
}

// Remove tears down and forgets the named device. A no-op if it was never
// built.
func (f *DeviceFactory) Remove(ctx context.Context, name string) error {
	f.mu.Lock()
	d, ok := f.devices[name]
	delete(f.devices, name)
	f.mu.Unlock()

	if !ok {
		return nil
	}
	return d.Remove(ctx)
}

// Clear tears down and forgets every device this factory has built -
// spec.md §9's "explicit registry structs with an init()/clear() lifecycle
// suitable for tests", applied to the device cache rather than to the
// whole factory (LoadConfig/RegisterClass/RegisterConnectionType survive a
// Clear).
func (f *DeviceFactory) Clear(ctx context.Context) error {
	f.mu.Lock()
	devices := f.devices
	f.devices = make(map[string]*device.Device)
	f.mu.Unlock()

	var firstErr error
	for _, d := range devices {
		if err := d.Remove(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
