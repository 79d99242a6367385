package main

import (
	"github.com/urfave/cli"

	"GossipQuorum/internal/consensus"
	"GossipQuorum/internal/logger"
	"GossipQuorum/internal/simulation"
)

// newApp wires the command tree.
func newApp() *cli.App {
	def := simulation.DefaultConfig()

	app := cli.NewApp()
	app.Name = "gossipsim"
	app.Version = "0.1"
	app.Usage = "simulate gossip consensus over a random follow graph with Byzantine nodes"

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "log-level",
			Value: "info",
			Usage: "minimum log level (debug, info, warn, error)",
		},
	}

	app.Before = func(c *cli.Context) error {
		lvl, err := logger.ParseLevel(c.GlobalString("log-level"))
		if err != nil {
			return err
		}
		logger.SetLevel(lvl)
		return nil
	}

	commonFlags := []cli.Flag{
		cli.IntFlag{
			Name:  "nodes,n",
			Value: def.NumNodes,
			Usage: "number of nodes",
		},
		cli.IntFlag{
			Name:  "txs,t",
			Value: def.NumTransactions,
			Usage: "number of valid transactions in the pool",
		},
		cli.StringFlag{
			Name:  "strategies",
			Value: consensus.StrategySwitcher.String(),
			Usage: "malicious strategy mix, e.g. \"flooder=2,echo=1\"",
		},
		cli.IntFlag{
			Name:  "flood-max",
			Value: consensus.DefaultFloodMax,
			Usage: "largest flood batch",
		},
		cli.IntFlag{
			Name:  "workers,w",
			Usage: "per-run worker goroutines (0 = GOMAXPROCS)",
		},
		cli.StringFlag{
			Name:  "oracle",
			Value: oracleSet,
			Usage: "validity oracle: set or ledger (BLS-signed issuance)",
		},
		cli.StringFlag{
			Name:  "archive,a",
			Usage: "pebble archive directory for encoded reports",
		},
	}

	runFlags := append([]cli.Flag{
		cli.Float64Flag{
			Name:  "p-graph",
			Value: def.PGraph,
			Usage: "probability that a node follows another",
		},
		cli.Float64Flag{
			Name:  "p-malicious",
			Value: def.PMalicious,
			Usage: "probability that a node is malicious",
		},
		cli.Float64Flag{
			Name:  "p-tx",
			Value: def.PTxDistribution,
			Usage: "probability that a node starts with a given transaction",
		},
		cli.IntFlag{
			Name:  "rounds,r",
			Value: def.NumRounds,
			Usage: "number of gossip rounds",
		},
		cli.Uint64Flag{
			Name:  "seed,s",
			Usage: "master seed (0 = random)",
		},
		cli.BoolFlag{
			Name:  "verbose,v",
			Usage: "list every node's final transactions",
		},
	}, commonFlags...)

	sweepFlags := append([]cli.Flag{
		cli.StringFlag{
			Name:  "config,c",
			Usage: "grid file (yaml, toml or json); flags override its scalars",
		},
		cli.StringFlag{
			Name:  "seeds",
			Value: "0",
			Usage: "comma separated seeds per grid point (0 = random)",
		},
		cli.IntFlag{
			Name:  "parallel,p",
			Usage: "concurrent runs (0 = GOMAXPROCS)",
		},
	}, commonFlags...)

	app.Commands = []cli.Command{
		{
			Name:    "run",
			Aliases: []string{"r"},
			Usage:   "run a single simulation",
			Action:  runCommand,
			Flags:   runFlags,
		},
		{
			Name:    "sweep",
			Aliases: []string{"s"},
			Usage:   "run a parameter grid (54 runs by default)",
			Action:  sweepCommand,
			Flags:   sweepFlags,
		},
		{
			Name:      "show",
			Usage:     "list archived runs or show one report",
			ArgsUsage: "[run key]",
			Action:    showCommand,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "archive,a",
					Usage: "pebble archive directory",
				},
				cli.BoolFlag{
					Name:  "verbose,v",
					Usage: "list every node's final transactions",
				},
			},
		},
	}

	return app
}
