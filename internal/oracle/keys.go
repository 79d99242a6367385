package oracle

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	blst "github.com/supranational/blst/bindings/go"
	"github.com/zeebo/blake3"
)

const (
	// PublicKeySize is the size of a compressed issuer public key in bytes.
	PublicKeySize = 48

	// SignatureSize is the size of a compressed issuance signature in bytes.
	SignatureSize = 96
)

// dst is the domain separation tag for issuance signatures.
var dst = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_NUL_")

// IssuerKey is the BLS key pair that mints valid transactions.
type IssuerKey struct {
	secret *blst.SecretKey // secret is the private key
	public *blst.P1Affine  // public is the public key
}

// DeriveIssuerKey derives a deterministic issuer key from a simulation seed,
// as BLAKE3("gossipquorum-issuer-keygen" || seed).
func DeriveIssuerKey(seed uint64) (*IssuerKey, error) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], seed)

	h := blake3.New()
	h.Write([]byte("gossipquorum-issuer-keygen"))
	h.Write(buf[:])

	var derived [32]byte
	h.Sum(derived[:0])

	return IssuerKeyFromSeed(derived[:])
}

// GenerateIssuerKey creates a key pair from a random seed.
func GenerateIssuerKey() (*IssuerKey, error) {
	var ikm [32]byte
	if _, err := rand.Read(ikm[:]); err != nil {
		return nil, fmt.Errorf("generate random seed:\n%w", err)
	}

	return IssuerKeyFromSeed(ikm[:])
}

// IssuerKeyFromSeed creates a key pair from at least 32 bytes of seed.
func IssuerKeyFromSeed(seed []byte) (*IssuerKey, error) {
	if len(seed) < 32 {
		return nil, fmt.Errorf("seed must be at least 32 bytes")
	}

	secret := blst.KeyGen(seed)
	if secret == nil {
		return nil, fmt.Errorf("failed to generate BLS key")
	}

	return &IssuerKey{
		secret: secret,
		public: new(blst.P1Affine).From(secret),
	}, nil
}

// Sign signs an arbitrary message.
func (k *IssuerKey) Sign(message []byte) []byte {
	return new(blst.P2Affine).Sign(k.secret, message, dst).Compress()
}

// PublicKeyBytes returns the compressed public key.
func (k *IssuerKey) PublicKeyBytes() []byte {
	return k.public.Compress()
}

// Verify checks a signature against a message and compressed public key.
func Verify(signature, message, publicKey []byte) bool {
	if len(signature) != SignatureSize || len(publicKey) != PublicKeySize {
		return false
	}

	sig := new(blst.P2Affine).Uncompress(signature)
	if sig == nil {
		return false
	}

	pk := new(blst.P1Affine).Uncompress(publicKey)
	if pk == nil {
		return false
	}

	return sig.Verify(true, pk, true, message, dst)
}

// Aggregate combines signatures into one.
func Aggregate(signatures [][]byte) ([]byte, error) {
	if len(signatures) == 0 {
		return nil, fmt.Errorf("no signatures to aggregate")
	}

	sigs := make([]*blst.P2Affine, len(signatures))

	for i, b := range signatures {
		if len(b) != SignatureSize {
			return nil, fmt.Errorf("invalid signature size at index %d", i)
		}

		sig := new(blst.P2Affine).Uncompress(b)
		if sig == nil {
			return nil, fmt.Errorf("invalid signature at index %d", i)
		}

		sigs[i] = sig
	}

	agg := new(blst.P2Aggregate)
	if !agg.Aggregate(sigs, true) {
		return nil, fmt.Errorf("signature aggregation failed")
	}

	return agg.ToAffine().Compress(), nil
}

// VerifyAggregate checks an aggregate signature over distinct messages, all
// signed by the same public key.
func VerifyAggregate(signature []byte, messages [][]byte, publicKey []byte) bool {
	if len(signature) != SignatureSize || len(publicKey) != PublicKeySize || len(messages) == 0 {
		return false
	}

	sig := new(blst.P2Affine).Uncompress(signature)
	if sig == nil {
		return false
	}

	pk := new(blst.P1Affine).Uncompress(publicKey)
	if pk == nil {
		return false
	}

	pks := make([]*blst.P1Affine, len(messages))
	msgs := make([]blst.Message, len(messages))

	for i, m := range messages {
		pks[i] = pk
		msgs[i] = m
	}

	return sig.AggregateVerify(true, pks, true, msgs, dst)
}
