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

// Command molerctl is a thin demo CLI over this module's core: load a
// fleet file, drive a named device to a target state, print its current
// state. Not part of the core contract - a convenience wrapper the core
// packages don't depend on.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AdamKlekowski/moler/config"
	"github.com/AdamKlekowski/moler/device/family"
	moerr "github.com/AdamKlekowski/moler/errors"
	"github.com/AdamKlekowski/moler/logger"
	"github.com/AdamKlekowski/moler/registry"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configFile    string
		logLevel      string
		useProxy      bool
		minSSH        string
		verboseErrors bool
	)

	root := &cobra.Command{
		Use:          "molerctl",
		Short:        "Drive devices through their shell state machines from the command line",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verboseErrors {
				moerr.SetModeReturnError(moerr.Verbose)
			}
		},
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "fleet.yaml", "fleet YAML file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "critical|fatal|error|warning|info|debug")
	root.PersistentFlags().BoolVar(&useProxy, "use-proxy", false, "route unix-family devices through PROXY_PC")
	root.PersistentFlags().StringVar(&minSSH, "min-ssh-version", "0.0.0", "minimum negotiated ssh banner version")
	root.PersistentFlags().BoolVar(&verboseErrors, "verbose-errors", false, "append the build call site to every printed error")

	newFactory := func() (*registry.DeviceFactory, error) {
		log := logger.New(os.Stderr, logger.ParseLevel(logLevel))

		file, err := config.LoadFile(configFile)
		if err != nil {
			return nil, err
		}

		f := registry.New(log)
		f.LoadConfig(file)
		registry.RegisterDefaultConnectionTypes(f)
		f.RegisterClass("unix", registry.DeviceClass{
			Layers:   family.Layers(useProxy, minSSH),
			Commands: family.CommandRegistry(log),
		})
		return f, nil
	}

	root.AddCommand(&cobra.Command{
		Use:   "status <device>",
		Short: "print a device's current state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := newFactory()
			if err != nil {
				return err
			}
			d, err := f.GetDevice(args[0])
			if err != nil {
				return err
			}
			fmt.Println(d.CurrentState())
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "goto <device> <state>",
		Short: "drive a device to the named state",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := newFactory()
			if err != nil {
				return err
			}
			d, err := f.GetDevice(args[0])
			if err != nil {
				return err
			}
			if err := d.GotoState(context.Background(), args[1]); err != nil {
				return err
			}
			fmt.Println(d.CurrentState())
			return nil
		},
	})

	return root
}
