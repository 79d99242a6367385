package simulation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"GossipQuorum/internal/consensus"
)

// ErrInvalidConfig is returned when a Config field is out of range.
var ErrInvalidConfig = errors.New("invalid simulation config")

// Config holds the parameters of one simulation run.
type Config struct {
	NumNodes        int     // NumNodes is the population size N
	PGraph          float64 // PGraph is the probability that i follows j
	PMalicious      float64 // PMalicious is the probability a node is Byzantine
	PTxDistribution float64 // PTxDistribution is the probability a node is seeded with a given valid id
	NumRounds       int     // NumRounds is the number of full gossip rounds
	NumTransactions int     // NumTransactions is the size of the valid pool

	Seed       uint64                // Seed is the master seed; 0 picks a random one
	Workers    int                   // Workers bounds per-phase parallelism; 0 uses GOMAXPROCS
	Strategies consensus.StrategyMix // Strategies weighs malicious behaviours; zero value uses the switcher
	FloodMax   int                   // FloodMax bounds flood batch sizes; 0 uses the default
}

// DefaultConfig returns the harness defaults: 100 nodes and 500 valid ids,
// with the lowest point of the standard sweep grid.
func DefaultConfig() Config {
	return Config{
		NumNodes:        100,
		PGraph:          0.1,
		PMalicious:      0.15,
		PTxDistribution: 0.01,
		NumRounds:       10,
		NumTransactions: 500,
		Strategies:      consensus.OnlyStrategy(consensus.StrategySwitcher),
		FloodMax:        consensus.DefaultFloodMax,
	}
}

// Validate checks every field and reports the first offending one.
func (c Config) Validate() error {
	if c.NumNodes <= 0 {
		return fmt.Errorf("num nodes %d must be positive:\n%w", c.NumNodes, ErrInvalidConfig)
	}

	probabilities := []struct {
		name string
		p    float64
	}{
		{"p graph", c.PGraph},
		{"p malicious", c.PMalicious},
		{"p tx distribution", c.PTxDistribution},
	}

	for _, f := range probabilities {
		if math.IsNaN(f.p) || f.p < 0 || f.p > 1 {
			return fmt.Errorf("%s %v outside [0, 1]:\n%w", f.name, f.p, ErrInvalidConfig)
		}
	}

	if c.NumRounds < 0 {
		return fmt.Errorf("num rounds %d is negative:\n%w", c.NumRounds, ErrInvalidConfig)
	}

	if c.NumTransactions < 0 {
		return fmt.Errorf("num transactions %d is negative:\n%w", c.NumTransactions, ErrInvalidConfig)
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers %d is negative:\n%w", c.Workers, ErrInvalidConfig)
	}

	if c.FloodMax < 0 {
		return fmt.Errorf("flood max %d is negative:\n%w", c.FloodMax, ErrInvalidConfig)
	}

	if c.Strategies != (consensus.StrategyMix{}) {
		if err := c.Strategies.Validate(); err != nil {
			return fmt.Errorf("strategies:\n%w", errors.Join(err, ErrInvalidConfig))
		}
	}

	return nil
}

// strategies returns the effective strategy mix.
func (c Config) strategies() consensus.StrategyMix {
	if c.Strategies == (consensus.StrategyMix{}) {
		return consensus.OnlyStrategy(consensus.StrategySwitcher)
	}
	return c.Strategies
}

// Key returns a canonical, stable identifier of the run parameters.
// Workers is excluded since it never changes results.
func (c Config) Key() string {
	var b strings.Builder

	b.WriteString("n=" + strconv.Itoa(c.NumNodes))
	b.WriteString(",pg=" + formatProb(c.PGraph))
	b.WriteString(",pm=" + formatProb(c.PMalicious))
	b.WriteString(",pt=" + formatProb(c.PTxDistribution))
	b.WriteString(",r=" + strconv.Itoa(c.NumRounds))
	b.WriteString(",tx=" + strconv.Itoa(c.NumTransactions))
	b.WriteString(",seed=" + strconv.FormatUint(c.Seed, 10))
	b.WriteString(",mix=" + c.strategies().String())

	floodMax := c.FloodMax
	if floodMax == 0 {
		floodMax = consensus.DefaultFloodMax
	}
	b.WriteString(",flood=" + strconv.Itoa(floodMax))

	return b.String()
}

func formatProb(p float64) string {
	return strconv.FormatFloat(p, 'g', -1, 64)
}
