package report

import (
	"slices"
	"strconv"
	"strings"

	"GossipQuorum/internal/consensus"
)

// Summary condenses a report into agreement statistics over compliant nodes.
type Summary struct {
	Nodes     int
	Compliant int
	Malicious int
	Edges     int

	MeanConsensus float64 // MeanConsensus is the average compliant set size
	MinConsensus  int
	MaxConsensus  int
	Empty         int     // Empty counts compliant nodes that believe nothing
	Agreement     float64 // Agreement is the share of compliant nodes holding the modal set
	Coverage      float64 // Coverage is |union of compliant sets| / |valid|
	Leaked        int     // Leaked counts invalid ids held by compliant nodes

	Proposed int
	Invalid  int
	Routed   int
	Accepted int
}

// Summarize computes the summary of r.
func Summarize(r *Report) Summary {
	s := Summary{
		Nodes: len(r.Nodes),
		Edges: r.Edges,
	}

	for _, round := range r.Rounds {
		s.Proposed += round.Proposed
		s.Invalid += round.Invalid
		s.Routed += round.Routed
		s.Accepted += round.Accepted
	}

	valid := consensus.NewTxSet(r.Valid...)
	union := make(consensus.TxSet)
	modes := make(map[string]int)

	total := 0
	s.MinConsensus = -1

	for _, n := range r.Nodes {
		if n.Kind != consensus.KindCompliant {
			s.Malicious++
			continue
		}

		s.Compliant++

		size := len(n.Consensus)
		total += size

		if s.MinConsensus < 0 || size < s.MinConsensus {
			s.MinConsensus = size
		}
		s.MaxConsensus = max(s.MaxConsensus, size)

		if size == 0 {
			s.Empty++
		}

		for _, tx := range n.Consensus {
			if !valid.Has(tx) {
				s.Leaked++
				continue
			}
			union.Add(tx)
		}

		modes[setKey(n.Consensus)]++
	}

	if s.Compliant == 0 {
		s.MinConsensus = 0
		return s
	}

	s.MeanConsensus = float64(total) / float64(s.Compliant)
	s.Agreement = float64(modalCount(modes)) / float64(s.Compliant)

	if len(r.Valid) > 0 {
		s.Coverage = float64(union.Len()) / float64(len(r.Valid))
	}

	return s
}

// setKey renders a sorted id list as a map key.
func setKey(ids []consensus.Transaction) string {
	var b strings.Builder
	for i, tx := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(int64(tx), 10))
	}
	return b.String()
}

// modalCount returns the multiplicity of the most common set.
func modalCount(modes map[string]int) int {
	counts := make([]int, 0, len(modes))
	for _, c := range modes {
		counts = append(counts, c)
	}
	if len(counts) == 0 {
		return 0
	}
	return slices.Max(counts)
}
