package oracle

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"GossipQuorum/internal/consensus"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()

	key, err := DeriveIssuerKey(1)
	if err != nil {
		t.Fatalf("derive key: %v", err)
	}

	return NewLedger(key)
}

func TestIssuerKey_SignVerify(t *testing.T) {
	key, err := GenerateIssuerKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	msg := Message(42)
	sig := key.Sign(msg)

	if len(sig) != SignatureSize {
		t.Errorf("signature size: got %d, want %d", len(sig), SignatureSize)
	}

	if !Verify(sig, msg, key.PublicKeyBytes()) {
		t.Error("valid signature should verify")
	}

	if Verify(sig, Message(43), key.PublicKeyBytes()) {
		t.Error("signature should not verify for another id")
	}

	other, _ := GenerateIssuerKey()
	if Verify(sig, msg, other.PublicKeyBytes()) {
		t.Error("signature should not verify under another key")
	}
}

func TestDeriveIssuerKey_Deterministic(t *testing.T) {
	a, _ := DeriveIssuerKey(7)
	b, _ := DeriveIssuerKey(7)
	c, _ := DeriveIssuerKey(8)

	if !bytes.Equal(a.PublicKeyBytes(), b.PublicKeyBytes()) {
		t.Error("same seed should produce the same key")
	}
	if bytes.Equal(a.PublicKeyBytes(), c.PublicKeyBytes()) {
		t.Error("different seeds should produce different keys")
	}
}

func TestIssuerKeyFromSeed_Short(t *testing.T) {
	if _, err := IssuerKeyFromSeed(make([]byte, 16)); err == nil {
		t.Fatal("short seed accepted")
	}
}

func TestLedger_IssueAndRegister(t *testing.T) {
	l := newTestLedger(t)

	sigs, err := l.Issue(1, 2, 3)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	for _, tx := range []consensus.Transaction{1, 2, 3} {
		if !l.IsValid(tx) {
			t.Errorf("issued tx %d not valid", tx)
		}
	}
	if l.IsValid(4) {
		t.Error("unissued tx reported valid")
	}

	verifier, err := NewVerifier(l.PublicKey())
	if err != nil {
		t.Fatalf("verifier: %v", err)
	}

	if err := verifier.Register(2, sigs[1]); err != nil {
		t.Fatalf("register: %v", err)
	}
	if !verifier.IsValid(2) || verifier.Len() != 1 {
		t.Errorf("verifier state: valid(2)=%v len=%d", verifier.IsValid(2), verifier.Len())
	}
}

func TestLedger_RejectsForgery(t *testing.T) {
	l := newTestLedger(t)

	sig, _ := l.Sign(5)

	if err := l.Register(6, sig); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("signature for another id: expected ErrBadSignature, got %v", err)
	}

	forger, _ := DeriveIssuerKey(99)
	forged := forger.Sign(Message(5))
	if err := l.Register(5, forged); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("forged signature: expected ErrBadSignature, got %v", err)
	}

	if err := l.Register(5, []byte("short")); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("malformed signature: expected ErrBadSignature, got %v", err)
	}

	if l.Len() != 0 {
		t.Errorf("forgeries registered: %d", l.Len())
	}
}

func TestLedger_VerifierCannotSign(t *testing.T) {
	l := newTestLedger(t)
	v, _ := NewVerifier(l.PublicKey())

	if _, err := v.Sign(1); !errors.Is(err, ErrNoIssuerKey) {
		t.Fatalf("expected ErrNoIssuerKey, got %v", err)
	}
	if _, err := v.Issue(1); !errors.Is(err, ErrNoIssuerKey) {
		t.Fatalf("expected ErrNoIssuerKey, got %v", err)
	}
}

func TestNewVerifier_BadKey(t *testing.T) {
	if _, err := NewVerifier(make([]byte, 10)); err == nil {
		t.Fatal("short public key accepted")
	}
}

func TestLedger_Batch(t *testing.T) {
	l := newTestLedger(t)
	ids := []consensus.Transaction{10, 20, 30, 40}

	agg, err := l.IssueBatch(ids)
	if err != nil {
		t.Fatalf("issue batch: %v", err)
	}

	if l.Len() != 0 {
		t.Fatal("IssueBatch must not register")
	}

	v, _ := NewVerifier(l.PublicKey())

	if err := v.RegisterBatch([]consensus.Transaction{10, 20, 30, 41}, agg); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("tampered batch: expected ErrBadSignature, got %v", err)
	}
	if v.Len() != 0 {
		t.Fatal("tampered batch partially registered")
	}

	if err := v.RegisterBatch(ids, agg); err != nil {
		t.Fatalf("register batch: %v", err)
	}
	for _, tx := range ids {
		if !v.IsValid(tx) {
			t.Errorf("batch tx %d not valid", tx)
		}
	}
}

func TestLedger_BatchRejectsDuplicates(t *testing.T) {
	l := newTestLedger(t)

	if _, err := l.IssueBatch([]consensus.Transaction{1, 2, 1}); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if _, err := l.IssueBatch(nil); err == nil {
		t.Fatal("empty batch accepted")
	}
}

func TestFromPool(t *testing.T) {
	key, _ := DeriveIssuerKey(3)
	pool := consensus.NewTxSet(5, 6, 7, 8, 9)

	l, err := FromPool(key, pool)
	if err != nil {
		t.Fatalf("from pool: %v", err)
	}

	if l.Len() != pool.Len() {
		t.Fatalf("registered %d, want %d", l.Len(), pool.Len())
	}
	if l.IsValid(consensus.SyntheticBase + 5) {
		t.Error("synthetic id reported valid")
	}

	empty, err := FromPool(key, consensus.NewTxSet())
	if err != nil || empty.Len() != 0 {
		t.Fatalf("empty pool: len %d, err %v", empty.Len(), err)
	}
}

func TestLedger_ConcurrentReads(t *testing.T) {
	l := newTestLedger(t)
	if _, err := l.Issue(1, 2, 3); err != nil {
		t.Fatalf("issue: %v", err)
	}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				if !l.IsValid(2) {
					t.Error("lost registration under concurrent reads")
					return
				}
			}
		}()
	}

	sig, _ := l.Sign(4)
	_ = l.Register(4, sig)

	wg.Wait()
}

// Ledger is a drop-in validity oracle for the engine.
var _ consensus.Oracle = (*Ledger)(nil)

func BenchmarkLedgerIsValid(b *testing.B) {
	key, _ := DeriveIssuerKey(1)
	l := NewLedger(key)
	_, _ = l.Issue(1, 2, 3)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.IsValid(consensus.Transaction(i % 4))
	}
}
