// Package entropy derives the independent, reproducible random streams a
// simulation needs from one master seed.
//
// Every consumer (graph builder, behaviour assignment, initial distribution,
// per-node strategies) gets its own stream so that adding draws to one of them
// never shifts the others, and so that per-node work can run on parallel
// workers without sharing a source.
package entropy

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/zeebo/blake3"
	"gonum.org/v1/gonum/stat/distuv"
)

// Stream labels used by the simulator.
const (
	StreamGraph        = "graph"
	StreamBehaviour    = "behaviour"
	StreamDistribution = "distribution"
	StreamPool         = "pool"
	StreamNode         = "node"
	StreamStrategy     = "strategy"
)

// derivationContext is the BLAKE3 domain separator for stream seeds.
const derivationContext = "gossipquorum-entropy-v1"

// ErrBadWeights is returned when categorical weights cannot form a distribution.
var ErrBadWeights = errors.New("weights must be non-negative with a positive sum")

// Derive returns the two PCG seed words for stream (label, index) of master.
func Derive(master uint64, label string, index uint64) (uint64, uint64) {
	var buf [8]byte

	h := blake3.New()
	h.Write([]byte(derivationContext))

	binary.LittleEndian.PutUint64(buf[:], master)
	h.Write(buf[:])

	h.Write([]byte(label))

	binary.LittleEndian.PutUint64(buf[:], index)
	h.Write(buf[:])

	var sum [32]byte
	h.Sum(sum[:0])

	return binary.LittleEndian.Uint64(sum[0:8]), binary.LittleEndian.Uint64(sum[8:16])
}

// NewSource returns a PCG source for stream (label, index) of master.
func NewSource(master uint64, label string, index uint64) rand.Source {
	s1, s2 := Derive(master, label, index)
	return rand.NewPCG(s1, s2)
}

// RandomSeed draws a non-zero master seed from the OS.
// Zero is reserved to mean "pick one for me".
func RandomSeed() uint64 {
	var buf [8]byte

	for {
		if _, err := crand.Read(buf[:]); err != nil {
			// crypto/rand does not fail on supported platforms
			return rand.Uint64() | 1
		}

		if seed := binary.LittleEndian.Uint64(buf[:]); seed != 0 {
			return seed
		}
	}
}

// Coin is a Bernoulli trial with a fixed success probability.
type Coin struct {
	dist distuv.Bernoulli
}

// NewCoin creates a coin landing true with probability p, drawing from src.
// A nil src uses the process-level source.
func NewCoin(p float64, src rand.Source) Coin {
	return Coin{dist: distuv.Bernoulli{P: p, Src: src}}
}

// Flip performs one trial.
func (c Coin) Flip() bool {
	return c.dist.Rand() == 1
}

// Chooser draws indices from a weighted categorical distribution.
type Chooser struct {
	dist distuv.Categorical
}

// NewChooser validates weights and builds a chooser over their indices.
func NewChooser(weights []float64, src rand.Source) (*Chooser, error) {
	if len(weights) == 0 {
		return nil, ErrBadWeights
	}

	var sum float64
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("weight %d is %v:\n%w", i, w, ErrBadWeights)
		}
		sum += w
	}

	if sum <= 0 {
		return nil, ErrBadWeights
	}

	return &Chooser{dist: distuv.NewCategorical(weights, src)}, nil
}

// Choose returns a weighted random index.
func (c *Chooser) Choose() int {
	return int(c.dist.Rand())
}
