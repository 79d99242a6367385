package consensus

// Oracle decides whether a proposed transaction is globally legitimate and
// may propagate. The engine consults it once per proposal per round.
type Oracle interface {
	IsValid(tx Transaction) bool
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(tx Transaction) bool

// IsValid calls f(tx).
func (f OracleFunc) IsValid(tx Transaction) bool {
	return f(tx)
}

// SetOracle accepts exactly the transactions of a fixed ground-truth set.
// It is read-only after construction and safe for concurrent use.
type SetOracle struct {
	valid TxSet
}

// NewSetOracle copies valid into a new oracle.
func NewSetOracle(valid TxSet) *SetOracle {
	return &SetOracle{valid: valid.Clone()}
}

// IsValid reports whether tx belongs to the ground truth.
func (o *SetOracle) IsValid(tx Transaction) bool {
	return o.valid.Has(tx)
}

// Len returns the size of the ground truth.
func (o *SetOracle) Len() int {
	return o.valid.Len()
}
