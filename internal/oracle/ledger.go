// Package oracle implements a validity oracle backed by signed issuance:
// a transaction is valid iff the issuer's BLS signature over its id has been
// verified and registered.
package oracle

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/zeebo/blake3"

	"GossipQuorum/internal/consensus"
)

var (
	// ErrBadSignature is returned when an issuance signature does not verify.
	ErrBadSignature = errors.New("invalid issuance signature")

	// ErrNoIssuerKey is returned when a verify-only ledger is asked to sign.
	ErrNoIssuerKey = errors.New("ledger has no issuer key")

	// ErrDuplicateID is returned when a batch repeats an id.
	ErrDuplicateID = errors.New("duplicate transaction id in batch")
)

// txContext is the BLAKE3 domain separator for issuance messages.
const txContext = "gossipquorum-tx"

// Message returns the digest the issuer signs for tx.
func Message(tx consensus.Transaction) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(tx))

	h := blake3.New()
	h.Write([]byte(txContext))
	h.Write(buf[:])

	return h.Sum(nil)
}

// Ledger is the set of transactions with a verified issuance signature.
// Reads are safe for concurrent use with registration.
type Ledger struct {
	key    *IssuerKey // key is nil on verify-only ledgers
	public []byte

	mu    sync.RWMutex
	valid consensus.TxSet
}

// NewLedger creates a ledger that can both issue and verify.
func NewLedger(key *IssuerKey) *Ledger {
	return &Ledger{
		key:    key,
		public: key.PublicKeyBytes(),
		valid:  make(consensus.TxSet),
	}
}

// NewVerifier creates a verify-only ledger trusting publicKey.
func NewVerifier(publicKey []byte) (*Ledger, error) {
	if len(publicKey) != PublicKeySize {
		return nil, fmt.Errorf("public key is %d bytes, want %d", len(publicKey), PublicKeySize)
	}

	return &Ledger{
		public: bytes.Clone(publicKey),
		valid:  make(consensus.TxSet),
	}, nil
}

// PublicKey returns the issuer's compressed public key.
func (l *Ledger) PublicKey() []byte {
	return bytes.Clone(l.public)
}

// IsValid reports whether tx has been registered.
func (l *Ledger) IsValid(tx consensus.Transaction) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.valid.Has(tx)
}

// Len returns the number of registered transactions.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.valid.Len()
}

// Sign returns the issuance signature for tx without registering it.
func (l *Ledger) Sign(tx consensus.Transaction) ([]byte, error) {
	if l.key == nil {
		return nil, ErrNoIssuerKey
	}

	return l.key.Sign(Message(tx)), nil
}

// Register admits tx if sig is the issuer's signature over it.
func (l *Ledger) Register(tx consensus.Transaction, sig []byte) error {
	if !Verify(sig, Message(tx), l.public) {
		return fmt.Errorf("tx %d:\n%w", tx, ErrBadSignature)
	}

	l.mu.Lock()
	l.valid.Add(tx)
	l.mu.Unlock()

	return nil
}

// Issue signs and registers every id, returning the individual signatures.
func (l *Ledger) Issue(ids ...consensus.Transaction) ([][]byte, error) {
	sigs := make([][]byte, len(ids))

	for i, tx := range ids {
		sig, err := l.Sign(tx)
		if err != nil {
			return nil, err
		}

		if err := l.Register(tx, sig); err != nil {
			return nil, err
		}

		sigs[i] = sig
	}

	return sigs, nil
}

// IssueBatch signs ids and aggregates the signatures into one. Nothing is
// registered; pass the result to RegisterBatch on any ledger trusting this
// issuer.
func (l *Ledger) IssueBatch(ids []consensus.Transaction) ([]byte, error) {
	if err := checkDistinct(ids); err != nil {
		return nil, err
	}

	sigs := make([][]byte, len(ids))
	for i, tx := range ids {
		sig, err := l.Sign(tx)
		if err != nil {
			return nil, err
		}
		sigs[i] = sig
	}

	agg, err := Aggregate(sigs)
	if err != nil {
		return nil, fmt.Errorf("aggregate issuance:\n%w", err)
	}

	return agg, nil
}

// RegisterBatch verifies one aggregate signature over all ids and admits
// them together. Either every id is registered or none is.
func (l *Ledger) RegisterBatch(ids []consensus.Transaction, aggregate []byte) error {
	if err := checkDistinct(ids); err != nil {
		return err
	}

	messages := make([][]byte, len(ids))
	for i, tx := range ids {
		messages[i] = Message(tx)
	}

	if !VerifyAggregate(aggregate, messages, l.public) {
		return fmt.Errorf("batch of %d:\n%w", len(ids), ErrBadSignature)
	}

	l.mu.Lock()
	for _, tx := range ids {
		l.valid.Add(tx)
	}
	l.mu.Unlock()

	return nil
}

// checkDistinct rejects batches with repeated ids, which aggregate
// verification over identical messages cannot tell apart.
func checkDistinct(ids []consensus.Transaction) error {
	if len(ids) == 0 {
		return errors.New("empty batch")
	}

	seen := make(consensus.TxSet, len(ids))
	for _, tx := range ids {
		if !seen.Add(tx) {
			return fmt.Errorf("tx %d:\n%w", tx, ErrDuplicateID)
		}
	}

	return nil
}

// FromPool issues the whole pool as one batch under key and returns a
// verify-only ledger that admitted it.
func FromPool(key *IssuerKey, valid consensus.TxSet) (*Ledger, error) {
	verifier, err := NewVerifier(key.PublicKeyBytes())
	if err != nil {
		return nil, err
	}

	if valid.Len() == 0 {
		return verifier, nil
	}

	ids := valid.Sorted()

	agg, err := NewLedger(key).IssueBatch(ids)
	if err != nil {
		return nil, fmt.Errorf("issue pool:\n%w", err)
	}

	if err := verifier.RegisterBatch(ids, agg); err != nil {
		return nil, fmt.Errorf("register pool:\n%w", err)
	}

	return verifier, nil
}
