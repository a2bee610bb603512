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

// Package metrics exposes the Prometheus counters and gauges the runner,
// observer and device-transition layers update as they work. Registration
// is opt-in: with a nil Registry the collectors still count but are not
// registered anywhere.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Runner counts what runner.Runner does to the in-flight observer
// population: submissions, completions by outcome kind, and how many
// observers are in flight right now.
type Runner struct {
	Submitted   prometheus.Counter
	Completed   prometheus.Counter
	TimedOut    prometheus.Counter
	Cancelled   prometheus.Counter
	InFlight    prometheus.Gauge
}

// NewRunner registers and returns a Runner's metrics under reg. If reg is
// nil, the returned Runner's fields are still usable (prometheus.NewCounter
// et al. work unregistered) but nothing is exposed on a /metrics endpoint.
func NewRunner(reg *prometheus.Registry, namespace string) *Runner {
	r := &Runner{
		Submitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "runner", Name: "submitted_total",
			Help: "Observers submitted to the runner.",
		}),
		Completed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "runner", Name: "completed_total",
			Help: "Observers that ended with a result, or with a failure other than a timeout or cancellation.",
		}),
		TimedOut: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "runner", Name: "timed_out_total",
			Help: "Observers that ended by timeout.",
		}),
		Cancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "runner", Name: "cancelled_total",
			Help: "Observers that ended by cancellation.",
		}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "runner", Name: "in_flight",
			Help: "Observers currently submitted and not yet done.",
		}),
	}

	if reg != nil {
		reg.MustRegister(r.Submitted, r.Completed, r.TimedOut, r.Cancelled, r.InFlight)
	}

	return r
}

// Device counts state-machine transitions per device.
type Device struct {
	Transitions prometheus.Counter
	Failures    prometheus.Counter
}

// NewDevice registers and returns a Device's metrics under reg.
func NewDevice(reg *prometheus.Registry, namespace string) *Device {
	d := &Device{
		Transitions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "device", Name: "transitions_total",
			Help: "State-machine hops successfully executed.",
		}),
		Failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "device", Name: "transition_failures_total",
			Help: "State-machine hops that ended in an error.",
		}),
	}

	if reg != nil {
		reg.MustRegister(d.Transitions, d.Failures)
	}

	return d
}
