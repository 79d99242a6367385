package simulation

import (
	"GossipQuorum/internal/consensus"
)

// NodeResult is one node's terminal read-out.
type NodeResult struct {
	ID        consensus.NodeID
	Kind      consensus.Kind
	Strategy  consensus.StrategyKind  // Strategy is only meaningful for malicious nodes
	Followees int                     // Followees is the node's out-degree
	Consensus []consensus.Transaction // Consensus is sorted ascending
	Untrusted int                     // Untrusted counts candidates dropped by a compliant node
}

// Result is the outcome of a finished run.
type Result struct {
	Seed   uint64
	Config Config
	Valid  consensus.TxSet
	Edges  int
	Nodes  []NodeResult
	Rounds []consensus.RoundStats
	Totals consensus.RoundStats
}

func newResult(cfg Config, g *consensus.FollowGraph, valid consensus.TxSet, nodes []consensus.Node, final []consensus.TxSet, rounds []consensus.RoundStats, totals consensus.RoundStats) *Result {
	r := &Result{
		Seed:   cfg.Seed,
		Config: cfg,
		Valid:  valid,
		Edges:  g.EdgeCount(),
		Nodes:  make([]NodeResult, len(nodes)),
		Rounds: rounds,
		Totals: totals,
	}

	for i, n := range nodes {
		nr := NodeResult{
			ID:        consensus.NodeID(i),
			Kind:      n.Kind(),
			Followees: len(g.Followees(consensus.NodeID(i))),
			Consensus: final[i].Sorted(),
		}

		switch v := n.(type) {
		case *consensus.Compliant:
			nr.Untrusted = v.Untrusted()
		case *consensus.Malicious:
			nr.Strategy = v.Strategy()
		}

		r.Nodes[i] = nr
	}

	return r
}

// Compliant returns the read-outs of compliant nodes only.
func (r *Result) Compliant() []NodeResult {
	var out []NodeResult
	for _, n := range r.Nodes {
		if n.Kind == consensus.KindCompliant {
			out = append(out, n)
		}
	}
	return out
}

// ConsensusSet returns node id's final set.
func (r *Result) ConsensusSet(id consensus.NodeID) consensus.TxSet {
	if id < 0 || int(id) >= len(r.Nodes) {
		return nil
	}
	return consensus.NewTxSet(r.Nodes[id].Consensus...)
}
