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

// Package state implements the per-device state machine core: a directed
// graph of named shell states, command-backed transition edges, and a
// precomputed hop table that replaces runtime shortest-path search with a
// constant-time lookup. Device families contribute PartialConfig values
// that Merge deep-merges (base device overridden by each more-derived
// family) into one immutable Machine.
package state

// StateMeta is the per-state metadata derived from the edges landing in
// it: the prompt that identifies the state at end-of-line, and the
// newline sequence to use when sending a command from that state.
type StateMeta struct {
	Prompt  string
	Newline string
}

// Action is the tagged union backing a transition edge's command
// construction: Kind selects a registered command.Constructor ("ssh",
// "su", "exit", ...), Params supplies its default parameters (merged with
// any caller overrides at transition time), Required lists the parameter
// names that must be present before the command is constructed.
type Action struct {
	Kind     string
	Params   map[string]any
	Required []string
}

// Edge is a directed transition from one state to another, naming the
// command that performs it and the prompt/newline the destination state
// is recognized by.
type Edge struct {
	To             string
	Action         Action
	ExpectedPrompt string
	TargetNewline  string
}

// PartialHops is a from -> to -> next-hop-state lookup table, the
// precomputed-shortest-path replacement a device family layer or a device's
// own configuration contributes to a Machine.
type PartialHops map[string]map[string]string

// PartialConfig is what a single device family layer (device/family/
// unixlocal.go, proxypc.go, unixremote.go) contributes: States/Edges/Hops
// are merged key-wise across the family chain, most-derived family's
// values winning on conflict (spec.md §4.5 "maps merged key-wise, lists
// concatenated, scalars overridden by child").
type PartialConfig struct {
	States map[string]StateMeta
	Edges  map[string]map[string]Edge
	Hops   PartialHops
}

// Machine is the immutable, validated result of merging a device family
// chain's PartialConfig values.
type Machine struct {
	states map[string]StateMeta
	edges  map[string]map[string]Edge
	hops   map[string]map[string]string
}

// States returns the names of every state in the machine.
func (m *Machine) States() []string {
	out := make([]string, 0, len(m.states))
	for s := range m.states {
		out = append(out, s)
	}
	return out
}

// StateMeta returns the prompt/newline metadata for state s.
func (m *Machine) StateMeta(s string) (StateMeta, bool) {
	meta, ok := m.states[s]
	return meta, ok
}

// Edge returns the transition edge from -> to, if one exists.
func (m *Machine) Edge(from, to string) (Edge, bool) {
	byTo, ok := m.edges[from]
	if !ok {
		return Edge{}, false
	}
	e, ok := byTo[to]
	return e, ok
}
