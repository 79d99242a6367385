package consensus

import (
	"GossipQuorum/internal/logger"
)

// Compliant is a node that follows the protocol.
//
// It keeps, per transaction, the set of followees that vouched for it and
// believes a transaction once that set clears the quorum threshold
// pTxDistribution * (1 - pMalicious) * |followees|.
type Compliant struct {
	id              NodeID
	pMalicious      float64
	pTxDistribution float64

	mask       FollowMask
	followees  int // |mask|, the base of the threshold
	provenance map[Transaction]map[NodeID]struct{}

	untrusted int // untrusted counts dropped candidates
}

// NewCompliant creates a compliant node using the run's probabilities to
// size its quorum threshold.
func NewCompliant(id NodeID, pMalicious, pTxDistribution float64) *Compliant {
	return &Compliant{
		id:              id,
		pMalicious:      pMalicious,
		pTxDistribution: pTxDistribution,
		provenance:      make(map[Transaction]map[NodeID]struct{}),
	}
}

// Initialize records the followee mask.
func (c *Compliant) Initialize(mask FollowMask) {
	c.mask = append(FollowMask(nil), mask...)
	c.followees = c.mask.Count()
}

// Seed replaces local knowledge with txs. Every seeded transaction starts
// with the full followee set as provenance, so the first round's baseline
// is maximal.
func (c *Compliant) Seed(txs TxSet) {
	members := c.mask.Members()
	c.provenance = make(map[Transaction]map[NodeID]struct{}, len(txs))

	for tx := range txs {
		senders := make(map[NodeID]struct{}, len(members))
		for _, id := range members {
			senders[id] = struct{}{}
		}

		c.provenance[tx] = senders
	}
}

// Propose returns every tracked transaction that reached the threshold and
// stops tracking them.
func (c *Compliant) Propose() TxSet {
	threshold := c.Threshold()
	accepted := make(TxSet)

	for tx, senders := range c.provenance {
		if float64(len(senders)) >= threshold {
			accepted.Add(tx)
		}
	}

	for tx := range accepted {
		delete(c.provenance, tx)
	}

	return accepted
}

// Ingest records each trusted sender as provenance for its transaction.
// Candidates from peers outside the followee mask are dropped.
func (c *Compliant) Ingest(candidates CandidateSet) {
	for cand := range candidates {
		if !c.mask.Contains(cand.Sender) {
			c.untrusted++
			logger.Warn("dropping candidate from untrusted sender",
				"node", c.id,
				"sender", cand.Sender,
				"tx", cand.Tx,
			)
			continue
		}

		senders, ok := c.provenance[cand.Tx]
		if !ok {
			senders = make(map[NodeID]struct{})
			c.provenance[cand.Tx] = senders
		}

		senders[cand.Sender] = struct{}{}
	}
}

// Kind returns KindCompliant.
func (c *Compliant) Kind() Kind {
	return KindCompliant
}

// Threshold returns the provenance count a transaction must reach.
// With no followees it is zero, so every tracked transaction passes.
func (c *Compliant) Threshold() float64 {
	return c.pTxDistribution * (1 - c.pMalicious) * float64(c.followees)
}

// Provenance returns how many followees vouched for tx.
func (c *Compliant) Provenance(tx Transaction) int {
	return len(c.provenance[tx])
}

// Pending returns the number of tracked, not yet accepted transactions.
func (c *Compliant) Pending() int {
	return len(c.provenance)
}

// Untrusted returns the number of candidates dropped for untrusted senders.
func (c *Compliant) Untrusted() int {
	return c.untrusted
}

func (c *Compliant) sealed() {}
