package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli"

	"GossipQuorum/internal/consensus"
	"GossipQuorum/internal/oracle"
	"GossipQuorum/internal/simulation"
	"GossipQuorum/internal/sweep"
)

// Oracle kinds selectable with --oracle.
const (
	oracleSet    = "set"
	oracleLedger = "ledger"
)

// runConfig is the parsed form of the run command's flags.
type runConfig struct {
	Sim         simulation.Config
	Oracle      string
	ArchivePath string
	Verbose     bool
}

// parseRunConfig maps run flags onto a simulation config.
func parseRunConfig(c *cli.Context) (*runConfig, error) {
	mix, err := parseMix(c.String("strategies"))
	if err != nil {
		return nil, err
	}

	cfg := &runConfig{
		Sim: simulation.Config{
			NumNodes:        c.Int("nodes"),
			PGraph:          c.Float64("p-graph"),
			PMalicious:      c.Float64("p-malicious"),
			PTxDistribution: c.Float64("p-tx"),
			NumRounds:       c.Int("rounds"),
			NumTransactions: c.Int("txs"),
			Seed:            c.Uint64("seed"),
			Workers:         c.Int("workers"),
			Strategies:      mix,
			FloodMax:        c.Int("flood-max"),
		},
		Oracle:      c.String("oracle"),
		ArchivePath: c.String("archive"),
		Verbose:     c.Bool("verbose"),
	}

	if err := cfg.Sim.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// parseGrid loads the grid file if any, then applies explicitly set flags.
func parseGrid(c *cli.Context) (sweep.Grid, error) {
	g := sweep.DefaultGrid()

	if path := c.String("config"); path != "" {
		var err error
		if g, err = sweep.LoadGrid(path); err != nil {
			return g, err
		}
	}

	if c.IsSet("nodes") {
		g.NumNodes = c.Int("nodes")
	}
	if c.IsSet("txs") {
		g.NumTransactions = c.Int("txs")
	}
	if c.IsSet("strategies") {
		g.Strategies = c.String("strategies")
	}
	if c.IsSet("flood-max") {
		g.FloodMax = c.Int("flood-max")
	}
	if c.IsSet("workers") {
		g.Workers = c.Int("workers")
	}
	if c.IsSet("parallel") {
		g.Parallel = c.Int("parallel")
	}
	if c.IsSet("seeds") || c.String("config") == "" {
		seeds, err := parseSeeds(c.String("seeds"))
		if err != nil {
			return g, err
		}
		g.Seeds = seeds
	}

	return g, nil
}

// parseMix accepts an empty string as the default mix.
func parseMix(list string) (consensus.StrategyMix, error) {
	if strings.TrimSpace(list) == "" {
		return consensus.StrategyMix{}, nil
	}
	return consensus.ParseStrategyMix(list)
}

// parseSeeds parses a comma separated list of seeds.
func parseSeeds(list string) ([]uint64, error) {
	var seeds []uint64

	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		seed, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("seed %q:\n%w", part, err)
		}

		seeds = append(seeds, seed)
	}

	if len(seeds) == 0 {
		return nil, fmt.Errorf("no seeds in %q", list)
	}

	return seeds, nil
}

// oracleOptions returns the simulation options selecting the oracle kind.
func oracleOptions(kind string) ([]simulation.Option, error) {
	switch kind {
	case oracleSet, "":
		return nil, nil
	case oracleLedger:
		return []simulation.Option{simulation.WithOracle(ledgerOracle)}, nil
	default:
		return nil, fmt.Errorf("unknown oracle %q (want %s or %s)", kind, oracleSet, oracleLedger)
	}
}

// ledgerOracle issues the pool under a fresh issuer key and validates
// through signature-checked registration.
func ledgerOracle(valid consensus.TxSet) (consensus.Oracle, error) {
	key, err := oracle.GenerateIssuerKey()
	if err != nil {
		return nil, err
	}

	return oracle.FromPool(key, valid)
}
