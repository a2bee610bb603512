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

package state

// NotConnected is the one state every device family chain must declare
// and every merged Machine must be able to reach and return from.
const NotConnected = "NOT_CONNECTED"

// Merge deep-merges a device family chain's PartialConfig values, base
// device first and each more-derived family layered on top (spec.md
// §4.5/§9: "the effective configuration is the deep-merge of the chain").
// States/Edges/Hops are merged key-wise; a later layer's leaf value wins
// on conflict. The result is validated: every state reachable from (and
// able to return to) NOT_CONNECTED, and every state landed on by more than
// one edge agreeing on prompt and newline.
func Merge(layers ...PartialConfig) (*Machine, error) {
	m := &Machine{
		states: make(map[string]StateMeta),
		edges:  make(map[string]map[string]Edge),
		hops:   make(map[string]map[string]string),
	}

	for _, l := range layers {
		for name, meta := range l.States {
			m.states[name] = meta
		}
		for from, byTo := range l.Edges {
			if m.edges[from] == nil {
				m.edges[from] = make(map[string]Edge)
			}
			for to, e := range byTo {
				m.edges[from][to] = e
			}
		}
		for from, byTarget := range l.Hops {
			if m.hops[from] == nil {
				m.hops[from] = make(map[string]string)
			}
			for target, next := range byTarget {
				m.hops[from][target] = next
			}
		}
	}

	if err := m.deriveAndValidateStateMeta(); err != nil {
		return nil, err
	}
	if err := m.validateConnectivity(); err != nil {
		return nil, err
	}
	if err := m.validateHopsTerminate(); err != nil {
		return nil, err
	}

	return m, nil
}

// validateHopsTerminate checks invariant 5: following NextHop iteratively
// from every declared state toward every other reaches the target in
// finitely many steps without revisiting the starting state.
func (m *Machine) validateHopsTerminate() error {
	limit := len(m.states) + 1

	for from := range m.states {
		for target := range m.states {
			if from == target {
				continue
			}
			cur := from
			for steps := 0; cur != target; steps++ {
				if steps > limit {
					return errHopCycle(from, target)
				}
				next, err := m.NextHop(cur, target)
				if err != nil {
					break
				}
				if next == from {
					return errHopCycle(from, target)
				}
				cur = next
			}
		}
	}
	return nil
}

// deriveAndValidateStateMeta derives each state's prompt/newline from the
// edges landing in it (spec.md §4.5 "these are not separately configured
// but derived"), checking that every edge landing in the same state agrees,
// and that any explicitly declared StateMeta for that state (e.g.
// NOT_CONNECTED's, which has no landing edge) does not conflict.
func (m *Machine) deriveAndValidateStateMeta() error {
	derived := make(map[string]StateMeta)

	for _, byTo := range m.edges {
		for to, e := range byTo {
			want := StateMeta{Prompt: e.ExpectedPrompt, Newline: e.TargetNewline}
			got, ok := derived[to]
			if !ok {
				derived[to] = want
				continue
			}
			if got.Prompt != want.Prompt {
				return errInconsistentPrompt(to, got.Prompt, want.Prompt)
			}
			if got.Newline != want.Newline {
				return errInconsistentNewline(to, got.Newline, want.Newline)
			}
		}
	}

	for name, want := range derived {
		if declared, ok := m.states[name]; ok {
			if declared.Prompt != "" && declared.Prompt != want.Prompt {
				return errInconsistentPrompt(name, declared.Prompt, want.Prompt)
			}
			if declared.Newline != "" && declared.Newline != want.Newline {
				return errInconsistentNewline(name, declared.Newline, want.Newline)
			}
		}
		m.states[name] = want
	}

	if _, ok := m.states[NotConnected]; !ok {
		m.states[NotConnected] = StateMeta{}
	}

	return nil
}

// validateConnectivity checks invariant 4: every declared state is
// reachable from NOT_CONNECTED, and every state can reach NOT_CONNECTED.
func (m *Machine) validateConnectivity() error {
	forward := m.reachableFrom(NotConnected, m.edges)
	backward := m.reachableFrom(NotConnected, m.reversed())

	for name := range m.states {
		if !forward[name] {
			return errUnreachableFromNotConnected(name)
		}
		if !backward[name] {
			return errCannotReturnToNotConnected(name)
		}
	}
	return nil
}

func (m *Machine) reachableFrom(start string, graph map[string]map[string]Edge) map[string]bool {
	seen := map[string]bool{start: true}
	queue := []string{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for to := range graph[cur] {
			if !seen[to] {
				seen[to] = true
				queue = append(queue, to)
			}
		}
	}
	return seen
}

func (m *Machine) reversed() map[string]map[string]Edge {
	rev := make(map[string]map[string]Edge)
	for from, byTo := range m.edges {
		for to, e := range byTo {
			if rev[to] == nil {
				rev[to] = make(map[string]Edge)
			}
			rev[to][from] = e
		}
	}
	return rev
}

// NextHop resolves the next state to visit when travelling from current
// toward target: current itself if they are equal, the direct edge if one
// exists, or the precomputed hop otherwise. Returns a State-machine error
// if neither exists (spec.md §7 "no hop from current to target").
func (m *Machine) NextHop(current, target string) (string, error) {
	if current == target {
		return current, nil
	}
	if _, ok := m.Edge(current, target); ok {
		return target, nil
	}
	if next, ok := m.hops[current][target]; ok {
		return next, nil
	}
	return "", errNoHop(current, target)
}

// ValidateCommands checks that every edge's Action.Kind is known to known
// (a command.Registry.Known predicate), returning a Configuration error
// naming the first unresolved edge. Kept as a predicate rather than an
// import of command.Registry so this package has no dependency on
// command/.
func (m *Machine) ValidateCommands(known func(kind string) bool) error {
	for from, byTo := range m.edges {
		for to, e := range byTo {
			if !known(e.Action.Kind) {
				return errUnknownEdgeCommand(from, to, e.Action.Kind)
			}
		}
	}
	return nil
}
