package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/pterm/pterm"
	"github.com/urfave/cli"

	"GossipQuorum/internal/report"
	"GossipQuorum/internal/simulation"
	"GossipQuorum/internal/storage"
	"GossipQuorum/internal/sweep"
)

// runCommand executes one simulation and prints its result.
func runCommand(c *cli.Context) error {
	cfg, err := parseRunConfig(c)
	if err != nil {
		return err
	}

	opts, err := oracleOptions(cfg.Oracle)
	if err != nil {
		return err
	}

	sim, err := simulation.New(cfg.Sim, opts...)
	if err != nil {
		return fmt.Errorf("create simulation:\n%w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	rep := report.FromResult(res)

	if cfg.ArchivePath != "" {
		if err := archiveReport(cfg.ArchivePath, res.Config.Key(), rep); err != nil {
			return err
		}
	}

	return renderReport(rep, cfg.Verbose)
}

// sweepCommand runs a parameter grid and prints one line per run.
func sweepCommand(c *cli.Context) error {
	grid, err := parseGrid(c)
	if err != nil {
		return err
	}

	oracleOpts, err := oracleOptions(c.String("oracle"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := []sweep.Option{sweep.WithSimulationOptions(oracleOpts...)}

	if path := c.String("archive"); path != "" {
		archive, err := storage.Open(path)
		if err != nil {
			return fmt.Errorf("open archive:\n%w", err)
		}
		defer archive.Close()

		opts = append(opts, sweep.WithArchive(archive))
	}

	bar, err := pterm.DefaultProgressbar.WithTotal(grid.Size()).WithTitle("Sweeping").Start()
	if err != nil {
		return err
	}

	opts = append(opts, sweep.WithProgress(func(_, _ int, _ sweep.Outcome) {
		bar.Increment()
	}))

	outcomes, err := sweep.Run(ctx, grid, opts...)
	_, _ = bar.Stop()
	if err != nil {
		return err
	}

	return renderOutcomes(outcomes)
}

// showCommand lists the archive or prints one archived report.
func showCommand(c *cli.Context) error {
	path := c.String("archive")
	if path == "" {
		return errors.New("--archive is required")
	}

	archive, err := storage.Open(path)
	if err != nil {
		return fmt.Errorf("open archive:\n%w", err)
	}
	defer archive.Close()

	key := c.Args().First()
	if key == "" {
		return renderArchive(archive)
	}

	data, err := archive.Get(key)
	if err != nil {
		return fmt.Errorf("read %q:\n%w", key, err)
	}
	if data == nil {
		return fmt.Errorf("no report under %q", key)
	}

	rep, err := report.Decode(data)
	if err != nil {
		return fmt.Errorf("decode %q:\n%w", key, err)
	}

	return renderReport(rep, c.Bool("verbose"))
}

// archiveReport stores one encoded report.
func archiveReport(path, key string, rep *report.Report) error {
	archive, err := storage.Open(path)
	if err != nil {
		return fmt.Errorf("open archive:\n%w", err)
	}
	defer archive.Close()

	data, err := report.Compress(report.Marshal(rep))
	if err != nil {
		return fmt.Errorf("encode report:\n%w", err)
	}

	if err := archive.Put(key, data); err != nil {
		return fmt.Errorf("archive report:\n%w", err)
	}

	pterm.Info.Printfln("archived as %s", key)

	return nil
}
