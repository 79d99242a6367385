// Package simulation composes a follow graph, a population of compliant and
// malicious nodes, a validity oracle and the diffusion engine into one
// reproducible run.
package simulation

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rcrowley/go-metrics"

	"GossipQuorum/internal/consensus"
	"GossipQuorum/internal/entropy"
	"GossipQuorum/internal/logger"
)

// PoolGenerator produces the ground-truth set of n valid transaction ids.
type PoolGenerator func(n int, src rand.Source) consensus.TxSet

// OracleFactory builds the validity oracle for a run's valid pool.
type OracleFactory func(valid consensus.TxSet) (consensus.Oracle, error)

// Option configures a Simulation.
type Option func(*Simulation)

// WithPool replaces the default random pool generator.
func WithPool(gen PoolGenerator) Option {
	return func(s *Simulation) {
		s.pool = gen
	}
}

// WithOracle replaces the default set-membership oracle.
func WithOracle(factory OracleFactory) Option {
	return func(s *Simulation) {
		s.oracle = factory
	}
}

// WithGraph runs on an explicit graph instead of a random one.
// PGraph is then ignored.
func WithGraph(g *consensus.FollowGraph) Option {
	return func(s *Simulation) {
		s.graph = g
	}
}

// WithSeeds fixes the initial knowledge of each node instead of sampling it
// from the pool. seeds[i] belongs to node i; missing entries seed nothing.
func WithSeeds(seeds []consensus.TxSet) Option {
	return func(s *Simulation) {
		s.seeds = seeds
	}
}

// WithObserver forwards each round's statistics as the run progresses.
func WithObserver(fn consensus.Observer) Option {
	return func(s *Simulation) {
		s.observer = fn
	}
}

// WithRegistry records engine metrics into r.
func WithRegistry(r metrics.Registry) Option {
	return func(s *Simulation) {
		s.registry = r
	}
}

// Simulation is a configured, not yet executed run.
type Simulation struct {
	cfg  Config
	seed uint64

	pool     PoolGenerator
	oracle   OracleFactory
	graph    *consensus.FollowGraph
	seeds    []consensus.TxSet
	observer consensus.Observer
	registry metrics.Registry
}

// New validates cfg and prepares a simulation. A zero seed is replaced by a
// random one, visible through Seed and in the result.
func New(cfg Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Simulation{
		cfg:    cfg,
		seed:   cfg.Seed,
		pool:   RandomPool,
		oracle: setOracle,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.seed == 0 {
		s.seed = entropy.RandomSeed()
	}
	s.cfg.Seed = s.seed

	if s.graph != nil && s.graph.Len() != cfg.NumNodes {
		return nil, fmt.Errorf("graph has %d nodes, config %d:\n%w", s.graph.Len(), cfg.NumNodes, ErrInvalidConfig)
	}

	return s, nil
}

// Seed returns the master seed the run uses.
func (s *Simulation) Seed() uint64 {
	return s.seed
}

// Config returns the effective configuration, seed included.
func (s *Simulation) Config() Config {
	return s.cfg
}

// Run builds everything from the master seed, executes the configured rounds
// and reads out every node's final set.
func (s *Simulation) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	graph, err := s.buildGraph()
	if err != nil {
		return nil, fmt.Errorf("build graph:\n%w", err)
	}

	valid := s.pool(s.cfg.NumTransactions, entropy.NewSource(s.seed, entropy.StreamPool, 0))

	oracle, err := s.oracle(valid)
	if err != nil {
		return nil, fmt.Errorf("build oracle:\n%w", err)
	}

	nodes, err := s.buildNodes()
	if err != nil {
		return nil, fmt.Errorf("build nodes:\n%w", err)
	}

	seeds := s.seeds
	if seeds == nil {
		seeds = s.distribute(valid)
	}

	var rounds []consensus.RoundStats

	opts := []consensus.EngineOption{
		consensus.WithWorkers(s.cfg.Workers),
		consensus.WithObserver(func(stats consensus.RoundStats) {
			rounds = append(rounds, stats)
			if s.observer != nil {
				s.observer(stats)
			}
		}),
	}
	if s.registry != nil {
		opts = append(opts, consensus.WithRegistry(s.registry))
	}

	engine, err := consensus.NewEngine(graph, nodes, oracle, opts...)
	if err != nil {
		return nil, fmt.Errorf("create engine:\n%w", err)
	}

	logger.Info("simulation started",
		"seed", s.seed,
		"nodes", s.cfg.NumNodes,
		"edges", graph.EdgeCount(),
		"valid", valid.Len(),
		"rounds", s.cfg.NumRounds,
	)

	if err := engine.Start(seeds); err != nil {
		return nil, fmt.Errorf("start engine:\n%w", err)
	}

	if err := engine.Run(ctx, s.cfg.NumRounds); err != nil {
		return nil, fmt.Errorf("run rounds:\n%w", err)
	}

	final, err := engine.Finish()
	if err != nil {
		return nil, fmt.Errorf("finish:\n%w", err)
	}

	result := newResult(s.cfg, graph, valid, nodes, final, rounds, engine.Totals())

	logger.Info("simulation finished",
		"seed", s.seed,
		"accepted", result.Totals.Accepted,
		"invalid", result.Totals.Invalid,
		logger.Timed(start),
	)

	return result, nil
}

func (s *Simulation) buildGraph() (*consensus.FollowGraph, error) {
	if s.graph != nil {
		return s.graph, nil
	}

	src := entropy.NewSource(s.seed, entropy.StreamGraph, 0)
	return consensus.NewFollowGraph(s.cfg.NumNodes, s.cfg.PGraph, src)
}

// buildNodes flips the behaviour coin for every node in id order and picks
// a strategy for each malicious one.
func (s *Simulation) buildNodes() ([]consensus.Node, error) {
	coin := entropy.NewCoin(s.cfg.PMalicious, entropy.NewSource(s.seed, entropy.StreamBehaviour, 0))

	picker, err := consensus.NewStrategyPicker(s.cfg.strategies(), entropy.NewSource(s.seed, entropy.StreamStrategy, 0))
	if err != nil {
		return nil, err
	}

	nodes := make([]consensus.Node, s.cfg.NumNodes)

	for i := range nodes {
		id := consensus.NodeID(i)

		if !coin.Flip() {
			nodes[i] = consensus.NewCompliant(id, s.cfg.PMalicious, s.cfg.PTxDistribution)
			continue
		}

		kind := picker.Pick()

		strategy, err := consensus.NewStrategy(kind, entropy.NewSource(s.seed, entropy.StreamNode, uint64(i)), s.cfg.FloodMax)
		if err != nil {
			return nil, fmt.Errorf("node %d:\n%w", i, err)
		}

		nodes[i] = consensus.NewMalicious(id, strategy)
	}

	return nodes, nil
}

// distribute samples each node's initial knowledge. Every node draws, so the
// distribution stream does not depend on behaviour assignment.
func (s *Simulation) distribute(valid consensus.TxSet) []consensus.TxSet {
	coin := entropy.NewCoin(s.cfg.PTxDistribution, entropy.NewSource(s.seed, entropy.StreamDistribution, 0))
	pool := valid.Sorted()

	seeds := make([]consensus.TxSet, s.cfg.NumNodes)
	for i := range seeds {
		seeds[i] = make(consensus.TxSet)

		for _, tx := range pool {
			if coin.Flip() {
				seeds[i].Add(tx)
			}
		}
	}

	return seeds
}

// RandomPool draws n distinct ids in [0, SyntheticBase).
func RandomPool(n int, src rand.Source) consensus.TxSet {
	rng := rand.New(src)
	pool := make(consensus.TxSet, n)

	for pool.Len() < n {
		pool.Add(consensus.Transaction(rng.Int64N(int64(consensus.SyntheticBase))))
	}

	return pool
}

// SequentialPool returns the ids 0..n-1. Handy for readable scenarios.
func SequentialPool(n int, _ rand.Source) consensus.TxSet {
	pool := make(consensus.TxSet, n)
	for i := 0; i < n; i++ {
		pool.Add(consensus.Transaction(i))
	}
	return pool
}

func setOracle(valid consensus.TxSet) (consensus.Oracle, error) {
	return consensus.NewSetOracle(valid), nil
}
