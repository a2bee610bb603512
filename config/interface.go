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

// Package config holds the on-disk/environment shape of a device fleet: a
// file or viper-assembled tree of named devices, each naming its family,
// initial state, connection description and any device-specific hop-table
// overrides, validated before a registry.DeviceFactory ever sees it.
package config

import "github.com/AdamKlekowski/moler/state"

// ConnectionDesc describes how to reach a device's raw transport: which
// ioplugin family to dial (tcp, ssh-shell or terminal), its address, and -
// for shell-spawning transports - the shell binary and arguments to launch.
type ConnectionDesc struct {
	Kind        string   `mapstructure:"kind" json:"kind" yaml:"kind" toml:"kind" validate:"required,oneof=tcp ssh-shell terminal"`
	Address     string   `mapstructure:"address" json:"address" yaml:"address" toml:"address" validate:"omitempty"`
	Shell       string   `mapstructure:"shell" json:"shell" yaml:"shell" toml:"shell" validate:"omitempty"`
	Args        []string `mapstructure:"args" json:"args" yaml:"args" toml:"args"`
	Interactive bool     `mapstructure:"interactive" json:"interactive" yaml:"interactive" toml:"interactive"`
}

// Device is one fleet member: which family builds its state machine, which
// state it starts in, how to reach it, and any hop-table entries that
// override or extend what the family chain already computed.
type Device struct {
	DeviceClass    string            `mapstructure:"device_class" json:"device_class" yaml:"device_class" toml:"device_class" validate:"required"`
	InitialState   string            `mapstructure:"initial_state" json:"initial_state" yaml:"initial_state" toml:"initial_state" validate:"required"`
	ConnectionDesc *ConnectionDesc   `mapstructure:"connection_desc" json:"connection_desc" yaml:"connection_desc" toml:"connection_desc" validate:"required"`
	ConnectionHops state.PartialHops `mapstructure:"connection_hops" json:"connection_hops" yaml:"connection_hops" toml:"connection_hops"`
}

// File is the full fleet tree: every named device plus the connection-type
// aliases (e.g. "terminal" -> "ssh-shell") that registry.DeviceFactory
// applies to a device's Kind before looking up its connection factory.
// Kind itself is still validated as one of tcp, ssh-shell or terminal, so an
// alias name that is not one of those three is rejected on Load/LoadFile.
type File struct {
	Devices         map[string]Device `mapstructure:"devices" json:"devices" yaml:"devices" toml:"devices" validate:"required,dive"`
	ConnectionTypes map[string]string `mapstructure:"connection_types" json:"connection_types" yaml:"connection_types" toml:"connection_types"`
}
