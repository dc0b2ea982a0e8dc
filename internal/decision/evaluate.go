package decision

import (
	"fmt"

	"rsi-rotation/internal/indicator"
	"rsi-rotation/internal/model"
)

// Evaluate walks the graph from its entry node over the given indicator
// cache and returns the terminal signal label together with the ordered
// decision path. A cache miss is a hard error rather than an implicit
// zero: the cache is required to cover RequiredKeys() before evaluation
// begins. Evaluation is a pure function of the cache: the same cache
// always yields the same label and path.
func (g *Graph) Evaluate(cache indicator.Cache) (string, []model.DecisionStep, error) {
	path := make([]model.DecisionStep, 0, 8)
	id := g.entry

	for {
		node := g.nodes[id]

		value, ok := cache.Get(node.Symbol, node.Window)
		if !ok {
			return "", path, fmt.Errorf("decision: node %d: no cached value for %s RSI(%d)",
				id, node.Symbol, node.Window)
		}

		var outcome bool
		if node.Op == OpGreater {
			outcome = value > node.Threshold
		} else {
			outcome = value < node.Threshold
		}

		path = append(path, model.DecisionStep{
			Symbol:    node.Symbol,
			Window:    node.Window,
			Operator:  string(node.Op),
			Threshold: node.Threshold,
			Outcome:   outcome,
			Value:     value,
		})

		next := node.False
		if outcome {
			next = node.True
		}

		if next.Node != 0 {
			id = next.Node
			continue
		}
		if next.TieBreak {
			label, err := ResolveBottomTwo(cache, g.tieBreak.Candidates, g.tieBreak.Window)
			if err != nil {
				return "", path, fmt.Errorf("decision: node %d: %w", id, err)
			}
			return label, path, nil
		}
		return next.Label, path, nil
	}
}
