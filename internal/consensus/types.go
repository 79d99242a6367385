package consensus

import (
	"slices"
)

// NodeID is the stable index of a participant, in [0, N).
type NodeID int

// Transaction is an opaque unit of consensus. Two transactions are the same
// transaction iff their ids are equal.
type Transaction int64

// SyntheticBase is the first id of the range reserved for transactions minted
// by flooding nodes. Valid pools only draw ids below it.
const SyntheticBase Transaction = 1 << 62

// IsSynthetic reports whether tx lies in the flooding range.
func (tx Transaction) IsSynthetic() bool {
	return tx >= SyntheticBase
}

// TxSet is an unordered set of transactions.
type TxSet map[Transaction]struct{}

// NewTxSet creates a set holding txs.
func NewTxSet(txs ...Transaction) TxSet {
	s := make(TxSet, len(txs))
	for _, tx := range txs {
		s[tx] = struct{}{}
	}
	return s
}

// Add inserts tx. Returns true if it was not present.
func (s TxSet) Add(tx Transaction) bool {
	if _, ok := s[tx]; ok {
		return false
	}
	s[tx] = struct{}{}
	return true
}

// Has reports whether tx is in the set.
func (s TxSet) Has(tx Transaction) bool {
	_, ok := s[tx]
	return ok
}

// Len returns the number of transactions.
func (s TxSet) Len() int {
	return len(s)
}

// Sorted returns the ids in ascending order.
func (s TxSet) Sorted() []Transaction {
	out := make([]Transaction, 0, len(s))
	for tx := range s {
		out = append(out, tx)
	}
	slices.Sort(out)
	return out
}

// Clone returns an independent copy.
func (s TxSet) Clone() TxSet {
	out := make(TxSet, len(s))
	for tx := range s {
		out[tx] = struct{}{}
	}
	return out
}

// Equal reports whether both sets hold exactly the same ids.
func (s TxSet) Equal(o TxSet) bool {
	if len(s) != len(o) {
		return false
	}
	for tx := range s {
		if !o.Has(tx) {
			return false
		}
	}
	return true
}

// Candidate is one (transaction, origin) unit in transit for a single hop.
type Candidate struct {
	Tx     Transaction // Tx is the proposed transaction
	Sender NodeID      // Sender is the node that proposed it
}

// CandidateSet collapses duplicate (tx, sender) pairs so delivery order and
// multiplicity never affect ingestion.
type CandidateSet map[Candidate]struct{}

// Add inserts c.
func (s CandidateSet) Add(c Candidate) {
	s[c] = struct{}{}
}

// Len returns the number of distinct candidates.
func (s CandidateSet) Len() int {
	return len(s)
}

// FollowMask marks which peers a node listens to: mask[j] is true iff the
// owner follows j.
type FollowMask []bool

// Contains reports whether id is a followee. Out-of-range ids are never
// followees.
func (m FollowMask) Contains(id NodeID) bool {
	return id >= 0 && int(id) < len(m) && m[id]
}

// Count returns the number of followees.
func (m FollowMask) Count() int {
	n := 0
	for _, f := range m {
		if f {
			n++
		}
	}
	return n
}

// Members returns the followee ids in ascending order.
func (m FollowMask) Members() []NodeID {
	var out []NodeID
	for j, f := range m {
		if f {
			out = append(out, NodeID(j))
		}
	}
	return out
}
