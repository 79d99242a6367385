package consensus

// Kind tags the behaviour variant of a node. The set is closed.
type Kind uint8

const (
	// KindCompliant follows the protocol.
	KindCompliant Kind = iota

	// KindMalicious runs an adversarial Strategy.
	KindMalicious
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindCompliant:
		return "compliant"
	case KindMalicious:
		return "malicious"
	default:
		return "unknown"
	}
}

// Node is the capability every participant exposes to the engine.
// The engine calls Initialize and Seed once before the first round, then
// Propose and Ingest once per round, in that order.
type Node interface {
	// Initialize records which peers this node listens to.
	Initialize(mask FollowMask)

	// Seed establishes the starting local knowledge.
	Seed(txs TxSet)

	// Propose returns the transactions broadcast this round.
	Propose() TxSet

	// Ingest receives this round's candidates.
	Ingest(candidates CandidateSet)

	// Kind returns the behaviour variant.
	Kind() Kind

	// sealed keeps the variant set closed to this package.
	sealed()
}
