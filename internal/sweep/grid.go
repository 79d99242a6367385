// Package sweep runs a grid of simulation configurations and archives
// their reports.
package sweep

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"GossipQuorum/internal/consensus"
	"GossipQuorum/internal/simulation"
)

// ErrEmptyGrid is returned when an axis of the grid has no values.
var ErrEmptyGrid = errors.New("empty sweep grid axis")

// Grid is the cartesian product of simulation parameters.
// Scalar fields apply to every run; slice fields are swept.
type Grid struct {
	NumNodes        int    `mapstructure:"num_nodes"`
	NumTransactions int    `mapstructure:"num_transactions"`
	Strategies      string `mapstructure:"strategies"` // Strategies is a mix like "flooder=2,echo=1"
	FloodMax        int    `mapstructure:"flood_max"`
	Workers         int    `mapstructure:"workers"`  // Workers is the engine parallelism of each run
	Parallel        int    `mapstructure:"parallel"` // Parallel is how many runs execute at once

	PGraph          []float64 `mapstructure:"p_graph"`
	PMalicious      []float64 `mapstructure:"p_malicious"`
	PTxDistribution []float64 `mapstructure:"p_tx_distribution"`
	NumRounds       []int     `mapstructure:"num_rounds"`
	Seeds           []uint64  `mapstructure:"seeds"` // Seeds of 0 draw a random seed per run
}

// DefaultGrid is the standard 54-run sweep over 100 nodes and 500 valid ids.
func DefaultGrid() Grid {
	return Grid{
		NumNodes:        100,
		NumTransactions: 500,
		Strategies:      consensus.StrategySwitcher.String(),
		FloodMax:        consensus.DefaultFloodMax,
		PGraph:          []float64{0.1, 0.2, 0.3},
		PMalicious:      []float64{0.15, 0.30, 0.45},
		PTxDistribution: []float64{0.01, 0.05, 0.10},
		NumRounds:       []int{10, 20},
		Seeds:           []uint64{0},
	}
}

// LoadGrid reads a grid file (any format viper understands). Keys missing
// from the file keep their DefaultGrid value.
func LoadGrid(path string) (Grid, error) {
	def := DefaultGrid()

	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("num_nodes", def.NumNodes)
	v.SetDefault("num_transactions", def.NumTransactions)
	v.SetDefault("strategies", def.Strategies)
	v.SetDefault("flood_max", def.FloodMax)
	v.SetDefault("workers", def.Workers)
	v.SetDefault("parallel", def.Parallel)
	v.SetDefault("p_graph", def.PGraph)
	v.SetDefault("p_malicious", def.PMalicious)
	v.SetDefault("p_tx_distribution", def.PTxDistribution)
	v.SetDefault("num_rounds", def.NumRounds)
	v.SetDefault("seeds", def.Seeds)

	if err := v.ReadInConfig(); err != nil {
		return Grid{}, fmt.Errorf("read grid %s:\n%w", path, err)
	}

	var g Grid
	if err := v.Unmarshal(&g); err != nil {
		return Grid{}, fmt.Errorf("decode grid %s:\n%w", path, err)
	}

	return g, nil
}

// Size returns the number of runs the grid expands to.
func (g Grid) Size() int {
	return len(g.PGraph) * len(g.PMalicious) * len(g.PTxDistribution) * len(g.NumRounds) * len(g.Seeds)
}

// Expand returns one validated config per grid point, with p graph as the
// outermost axis and seeds as the innermost.
func (g Grid) Expand() ([]simulation.Config, error) {
	axes := []struct {
		name string
		n    int
	}{
		{"p_graph", len(g.PGraph)},
		{"p_malicious", len(g.PMalicious)},
		{"p_tx_distribution", len(g.PTxDistribution)},
		{"num_rounds", len(g.NumRounds)},
		{"seeds", len(g.Seeds)},
	}

	for _, a := range axes {
		if a.n == 0 {
			return nil, fmt.Errorf("%s:\n%w", a.name, ErrEmptyGrid)
		}
	}

	var mix consensus.StrategyMix
	if strings.TrimSpace(g.Strategies) != "" {
		var err error
		if mix, err = consensus.ParseStrategyMix(g.Strategies); err != nil {
			return nil, fmt.Errorf("strategies:\n%w", err)
		}
	}

	configs := make([]simulation.Config, 0, g.Size())

	for _, pg := range g.PGraph {
		for _, pm := range g.PMalicious {
			for _, pt := range g.PTxDistribution {
				for _, rounds := range g.NumRounds {
					for _, seed := range g.Seeds {
						cfg := simulation.Config{
							NumNodes:        g.NumNodes,
							PGraph:          pg,
							PMalicious:      pm,
							PTxDistribution: pt,
							NumRounds:       rounds,
							NumTransactions: g.NumTransactions,
							Seed:            seed,
							Workers:         g.Workers,
							Strategies:      mix,
							FloodMax:        g.FloodMax,
						}

						if err := cfg.Validate(); err != nil {
							return nil, fmt.Errorf("grid point %d:\n%w", len(configs), err)
						}

						configs = append(configs, cfg)
					}
				}
			}
		}
	}

	return configs, nil
}

// String renders the grid on one line.
func (g Grid) String() string {
	return fmt.Sprintf("nodes=%d txs=%d strategies=%q flood=%d p_graph=%v p_malicious=%v p_tx=%v rounds=%v seeds=%v",
		g.NumNodes, g.NumTransactions, g.Strategies, g.FloodMax,
		g.PGraph, g.PMalicious, g.PTxDistribution, g.NumRounds, g.Seeds)
}
