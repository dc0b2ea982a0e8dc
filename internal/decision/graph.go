// Package decision implements the signal decision graph: a static,
// data-only directed acyclic graph of RSI threshold comparisons whose
// terminals are trading-signal labels. The graph is validated once at
// construction and interpreted by a single generic traversal routine.
package decision

import (
	"fmt"
	"sort"

	"rsi-rotation/internal/indicator"
)

// Op is a comparison operator applied to an indicator value.
type Op string

const (
	OpGreater Op = ">"
	OpLess    Op = "<"
)

// Successor is one outgoing edge of a node: either another node id, a
// terminal signal label, or the tie-break sentinel that delegates to
// ResolveBottomTwo.
type Successor struct {
	Node     int    // next node id; 0 when terminal
	Label    string // terminal label when Node == 0
	TieBreak bool   // terminal resolved by the bottom-two rule
}

// Goto returns a successor pointing at another node.
func Goto(id int) Successor { return Successor{Node: id} }

// Terminal returns a successor carrying a final signal label.
func Terminal(label string) Successor { return Successor{Label: label} }

// TieBreak returns the sentinel successor resolved by the bottom-two rule.
func TieBreak() Successor { return Successor{TieBreak: true} }

// Node is one comparison in the graph. Nodes are immutable after New.
type Node struct {
	Symbol    string
	Window    int
	Op        Op
	Threshold float64
	True      Successor
	False     Successor
}

// TieBreakRule configures the bottom-two resolver: which candidates to
// rank and at which lookback window.
type TieBreakRule struct {
	Candidates []string
	Window     int
}

// ConfigurationError reports an invalid graph definition. It is raised at
// construction time so a bad graph can never be traversed.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string { return "decision: " + e.Reason }

// Graph is a validated decision graph with a single entry node.
type Graph struct {
	entry    int
	nodes    map[int]Node
	tieBreak TieBreakRule
}

// New validates the node set and returns a Graph. It rejects undefined
// entry or successor ids, malformed successors and operators, cycles, and
// a tie-break sentinel without a usable rule.
func New(entry int, nodes map[int]Node, rule TieBreakRule) (*Graph, error) {
	if _, ok := nodes[entry]; !ok {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("entry node %d is not defined", entry)}
	}

	usesTieBreak := false
	for id, node := range nodes {
		if node.Symbol == "" || node.Window < 1 {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("node %d: missing symbol or window", id)}
		}
		if node.Op != OpGreater && node.Op != OpLess {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("node %d: unknown operator %q", id, node.Op)}
		}
		for _, succ := range []Successor{node.True, node.False} {
			switch {
			case succ.TieBreak:
				usesTieBreak = true
				if succ.Node != 0 || succ.Label != "" {
					return nil, &ConfigurationError{Reason: fmt.Sprintf("node %d: ambiguous tie-break successor", id)}
				}
			case succ.Node != 0:
				if succ.Label != "" {
					return nil, &ConfigurationError{Reason: fmt.Sprintf("node %d: successor has both node and label", id)}
				}
				if _, ok := nodes[succ.Node]; !ok {
					return nil, &ConfigurationError{Reason: fmt.Sprintf("node %d: successor %d is not defined", id, succ.Node)}
				}
			case succ.Label == "":
				return nil, &ConfigurationError{Reason: fmt.Sprintf("node %d: empty terminal label", id)}
			}
		}
	}

	if usesTieBreak && (len(rule.Candidates) < 2 || rule.Window < 1) {
		return nil, &ConfigurationError{Reason: "tie-break sentinel used but rule has fewer than 2 candidates"}
	}

	if cyclic(entry, nodes) {
		return nil, &ConfigurationError{Reason: "graph contains a cycle"}
	}

	return &Graph{entry: entry, nodes: nodes, tieBreak: rule}, nil
}

// cyclic runs a three-color DFS from entry looking for a back edge.
func cyclic(entry int, nodes map[int]Node) bool {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[int]int, len(nodes))

	var visit func(id int) bool
	visit = func(id int) bool {
		color[id] = gray
		node := nodes[id]
		for _, succ := range []Successor{node.True, node.False} {
			if succ.Node == 0 {
				continue
			}
			switch color[succ.Node] {
			case gray:
				return true
			case white:
				if visit(succ.Node) {
					return true
				}
			}
		}
		color[id] = black
		return false
	}
	return visit(entry)
}

// reachable returns the ids of all nodes reachable from the entry.
func (g *Graph) reachable() []int {
	seen := make(map[int]bool, len(g.nodes))
	stack := []int{g.entry}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			continue
		}
		seen[id] = true
		node := g.nodes[id]
		for _, succ := range []Successor{node.True, node.False} {
			if succ.Node != 0 && !seen[succ.Node] {
				stack = append(stack, succ.Node)
			}
		}
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// RequiredKeys returns every (symbol, window) pair the graph can read during
// a traversal: all reachable nodes plus the tie-break candidates. The cache
// handed to Evaluate must cover all of them.
func (g *Graph) RequiredKeys() []indicator.Key {
	seen := make(map[indicator.Key]bool)
	keys := make([]indicator.Key, 0, len(g.nodes))

	add := func(k indicator.Key) {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}

	for _, id := range g.reachable() {
		node := g.nodes[id]
		add(indicator.Key{Symbol: node.Symbol, Window: node.Window})
	}
	for _, sym := range g.tieBreak.Candidates {
		add(indicator.Key{Symbol: sym, Window: g.tieBreak.Window})
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Symbol != keys[j].Symbol {
			return keys[i].Symbol < keys[j].Symbol
		}
		return keys[i].Window < keys[j].Window
	})
	return keys
}

// Symbols returns the sorted set of instrument symbols the graph reads.
func (g *Graph) Symbols() []string {
	seen := make(map[string]bool)
	var syms []string
	for _, k := range g.RequiredKeys() {
		if !seen[k.Symbol] {
			seen[k.Symbol] = true
			syms = append(syms, k.Symbol)
		}
	}
	sort.Strings(syms)
	return syms
}

// MaxWindow returns the largest lookback window the graph reads. The data
// provider must supply at least MaxWindow()+1 observations per symbol.
func (g *Graph) MaxWindow() int {
	max := 0
	for _, k := range g.RequiredKeys() {
		if k.Window > max {
			max = k.Window
		}
	}
	return max
}
