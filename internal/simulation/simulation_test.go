package simulation

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/rcrowley/go-metrics"

	"GossipQuorum/internal/consensus"
	"GossipQuorum/internal/entropy"
)

// runSim builds and runs a simulation, failing the test on any error.
func runSim(t *testing.T, cfg Config, opts ...Option) *Result {
	t.Helper()

	sim, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("new simulation: %v", err)
	}

	res, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	return res
}

func fixedPool(txs ...consensus.Transaction) PoolGenerator {
	return func(int, rand.Source) consensus.TxSet {
		return consensus.NewTxSet(txs...)
	}
}

func TestSimulation_FullTrustConvergence(t *testing.T) {
	cfg := Config{
		NumNodes:        10,
		PGraph:          1,
		PMalicious:      0,
		PTxDistribution: 1,
		NumRounds:       3,
		NumTransactions: 20,
		Seed:            1,
	}

	res := runSim(t, cfg)

	for _, n := range res.Nodes {
		if n.Kind != consensus.KindCompliant {
			t.Fatalf("node %d is %s with p malicious 0", n.ID, n.Kind)
		}
		if got := res.ConsensusSet(n.ID); !got.Equal(res.Valid) {
			t.Errorf("node %d: %d of %d valid ids", n.ID, got.Len(), res.Valid.Len())
		}
	}
}

func TestSimulation_ZeroDistributionStaysEmpty(t *testing.T) {
	cfg := Config{
		NumNodes:        30,
		PGraph:          0.3,
		PMalicious:      0.3,
		PTxDistribution: 0,
		NumRounds:       5,
		NumTransactions: 50,
		Seed:            2,
		Strategies:      consensus.OnlyStrategy(consensus.StrategyFlooder),
	}

	res := runSim(t, cfg)

	for _, n := range res.Compliant() {
		if len(n.Consensus) != 0 {
			t.Errorf("node %d accepted %v without seeds", n.ID, n.Consensus)
		}
	}

	if res.Totals.Routed != 0 {
		t.Errorf("routed %d candidates without valid seeds", res.Totals.Routed)
	}
}

func TestSimulation_SingleSeederScenario(t *testing.T) {
	g, err := consensus.FullyConnected(4)
	if err != nil {
		t.Fatalf("graph: %v", err)
	}

	for _, rounds := range []int{1, 2, 4} {
		cfg := Config{
			NumNodes:        4,
			PGraph:          1,
			PTxDistribution: 1,
			NumRounds:       rounds,
			NumTransactions: 3,
			Seed:            3,
		}

		res := runSim(t, cfg,
			WithGraph(g),
			WithPool(fixedPool(10, 20, 30)),
			WithSeeds([]consensus.TxSet{consensus.NewTxSet(10)}),
		)

		if res.Rounds[0].Accepted != 1 {
			t.Errorf("rounds=%d: first round accepted %d, want 1", rounds, res.Rounds[0].Accepted)
		}

		for _, n := range res.Nodes {
			if len(n.Consensus) != 0 {
				t.Errorf("rounds=%d node %d: final set %v, want empty", rounds, n.ID, n.Consensus)
			}
		}
	}
}

func TestSimulation_Deterministic(t *testing.T) {
	cfg := Config{
		NumNodes:        50,
		PGraph:          0.2,
		PMalicious:      0.3,
		PTxDistribution: 0.1,
		NumRounds:       6,
		NumTransactions: 80,
		Seed:            12345,
		Strategies:      consensus.DefaultStrategyMix(),
	}

	a := runSim(t, cfg)

	cfg.Workers = 1
	b := runSim(t, cfg)

	if !reflect.DeepEqual(a.Nodes, b.Nodes) {
		t.Fatal("same seed produced different node results")
	}
	if !reflect.DeepEqual(a.Rounds, b.Rounds) {
		t.Fatal("same seed produced different round statistics")
	}
	if !a.Valid.Equal(b.Valid) || a.Edges != b.Edges {
		t.Fatal("same seed produced a different pool or graph")
	}

	cfg.Seed = 54321
	c := runSim(t, cfg)

	if a.Valid.Equal(c.Valid) {
		t.Error("different seeds produced the same pool")
	}
}

func TestSimulation_NoSyntheticLeak(t *testing.T) {
	mix, err := consensus.ParseStrategyMix("flooder=2,echo=1,switcher=1")
	if err != nil {
		t.Fatalf("mix: %v", err)
	}

	cfg := Config{
		NumNodes:        60,
		PGraph:          0.3,
		PMalicious:      0.45,
		PTxDistribution: 0.1,
		NumRounds:       5,
		NumTransactions: 50,
		Seed:            99,
		Strategies:      mix,
	}

	res := runSim(t, cfg)

	if res.Totals.Invalid == 0 {
		t.Fatal("expected flooders to produce invalid proposals")
	}

	for _, n := range res.Compliant() {
		for _, tx := range n.Consensus {
			if tx.IsSynthetic() || !res.Valid.Has(tx) {
				t.Fatalf("node %d accepted invalid id %d", n.ID, tx)
			}
		}
	}
}

func TestSimulation_RandomSeedRecorded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumNodes = 5
	cfg.NumTransactions = 10
	cfg.NumRounds = 1

	sim, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if sim.Seed() == 0 {
		t.Fatal("zero seed was not replaced")
	}

	res, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if res.Seed != sim.Seed() || res.Config.Seed != sim.Seed() {
		t.Errorf("result seed %d, config seed %d, simulation seed %d", res.Seed, res.Config.Seed, sim.Seed())
	}
}

func TestSimulation_ObserverAndRegistry(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumNodes = 20
	cfg.NumTransactions = 30
	cfg.NumRounds = 4
	cfg.Seed = 8

	registry := metrics.NewRegistry()
	observed := 0

	res := runSim(t, cfg,
		WithRegistry(registry),
		WithObserver(func(consensus.RoundStats) { observed++ }),
	)

	if observed != 4 || len(res.Rounds) != 4 {
		t.Fatalf("observed %d rounds, recorded %d, want 4", observed, len(res.Rounds))
	}

	if got := registry.Get(consensus.MetricRounds).(metrics.Counter).Count(); got != 4 {
		t.Errorf("rounds counter: got %d, want 4", got)
	}
}

func TestSimulation_Cancelled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumNodes = 10
	cfg.NumTransactions = 10
	cfg.Seed = 4

	sim, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := sim.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNew_GraphSizeMismatch(t *testing.T) {
	g, _ := consensus.FullyConnected(3)

	cfg := DefaultConfig()
	cfg.NumNodes = 4

	if _, err := New(cfg, WithGraph(g)); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero nodes", func(c *Config) { c.NumNodes = 0 }},
		{"p graph above one", func(c *Config) { c.PGraph = 1.01 }},
		{"negative p malicious", func(c *Config) { c.PMalicious = -0.1 }},
		{"NaN p tx", func(c *Config) { c.PTxDistribution = math.NaN() }},
		{"negative rounds", func(c *Config) { c.NumRounds = -1 }},
		{"negative transactions", func(c *Config) { c.NumTransactions = -5 }},
		{"negative workers", func(c *Config) { c.Workers = -2 }},
		{"negative flood max", func(c *Config) { c.FloodMax = -1 }},
		{"negative strategy weight", func(c *Config) { c.Strategies = consensus.StrategyMix{-1, 1, 0, 0} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}

			if _, err := New(cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("New: expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	edge := DefaultConfig()
	edge.NumRounds = 0
	edge.NumTransactions = 0
	edge.Strategies = consensus.StrategyMix{}
	if err := edge.Validate(); err != nil {
		t.Fatalf("edge config invalid: %v", err)
	}
}

func TestConfig_Key(t *testing.T) {
	a := DefaultConfig()
	a.Seed = 1

	b := a
	b.Workers = 7
	if a.Key() != b.Key() {
		t.Error("workers must not change the key")
	}

	c := a
	c.Seed = 2
	if a.Key() == c.Key() {
		t.Error("seed must change the key")
	}

	d := a
	d.Strategies = consensus.StrategyMix{}
	if a.Key() != d.Key() {
		t.Error("zero mix should key like the default switcher mix")
	}

	want := "n=100,pg=0.1,pm=0.15,pt=0.01,r=10,tx=500,seed=1,mix=switcher=1,flood=50"
	if a.Key() != want {
		t.Errorf("key: got %q, want %q", a.Key(), want)
	}
}

func TestRandomPool(t *testing.T) {
	pool := RandomPool(500, entropy.NewSource(1, entropy.StreamPool, 0))

	if pool.Len() != 500 {
		t.Fatalf("pool size: got %d, want 500", pool.Len())
	}

	for tx := range pool {
		if tx < 0 || tx.IsSynthetic() {
			t.Fatalf("pool id %d outside the valid range", tx)
		}
	}

	again := RandomPool(500, entropy.NewSource(1, entropy.StreamPool, 0))
	if !pool.Equal(again) {
		t.Error("pool is not reproducible")
	}
}

func BenchmarkSimulation(b *testing.B) {
	cfg := DefaultConfig()
	cfg.Seed = 1

	for i := 0; i < b.N; i++ {
		sim, err := New(cfg)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := sim.Run(context.Background()); err != nil {
			b.Fatal(err)
		}
	}
}
