package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"GossipQuorum/internal/consensus"
	"GossipQuorum/internal/report"
	"GossipQuorum/internal/storage"
	"GossipQuorum/internal/sweep"
)

// renderReport prints the configuration, per-round stats, per-node sizes
// and the agreement summary.
func renderReport(rep *report.Report, verbose bool) error {
	cfg := rep.Config

	pterm.DefaultSection.Println("Run")
	pterm.Info.Printfln("seed %d, %d nodes, %d edges, %d valid txs, %d rounds",
		cfg.Seed, cfg.NumNodes, rep.Edges, len(rep.Valid), cfg.NumRounds)
	pterm.Info.Printfln("p graph %g, p malicious %g, p tx %g", cfg.PGraph, cfg.PMalicious, cfg.PTxDistribution)

	if len(rep.Rounds) > 0 {
		rounds := pterm.TableData{{"Round", "Proposed", "Invalid", "Routed", "Delivered", "Accepted"}}
		for _, s := range rep.Rounds {
			rounds = append(rounds, []string{
				strconv.Itoa(s.Round),
				strconv.Itoa(s.Proposed),
				strconv.Itoa(s.Invalid),
				strconv.Itoa(s.Routed),
				strconv.Itoa(s.Delivered),
				strconv.Itoa(s.Accepted),
			})
		}

		if err := pterm.DefaultTable.WithHasHeader().WithData(rounds).Render(); err != nil {
			return err
		}
	}

	pterm.DefaultSection.Println("Nodes")

	nodes := pterm.TableData{{"Node", "Kind", "Followees", "Consensus"}}
	for _, n := range rep.Nodes {
		kind := n.Kind.String()
		if n.Kind == consensus.KindMalicious {
			kind += " (" + n.Strategy.String() + ")"
		}

		row := []string{
			strconv.Itoa(int(n.ID)),
			kind,
			strconv.Itoa(n.Followees),
			strconv.Itoa(len(n.Consensus)),
		}

		if verbose {
			row[3] = formatIDs(n.Consensus)
		}

		nodes = append(nodes, row)
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(nodes).Render(); err != nil {
		return err
	}

	renderSummary(report.Summarize(rep))
	pterm.Info.Printfln("checksum %s", hex.EncodeToString(rep.Checksum[:]))

	return nil
}

// renderSummary prints agreement statistics.
func renderSummary(s report.Summary) {
	pterm.DefaultSection.Println("Summary")

	pterm.Info.Printfln("%d compliant, %d malicious", s.Compliant, s.Malicious)
	pterm.Info.Printfln("consensus size mean %.2f, min %d, max %d, empty %d",
		s.MeanConsensus, s.MinConsensus, s.MaxConsensus, s.Empty)
	pterm.Info.Printfln("agreement %.1f%%, coverage %.1f%%", 100*s.Agreement, 100*s.Coverage)

	if s.Leaked > 0 {
		pterm.Error.Printfln("%d invalid transactions reached compliant consensus", s.Leaked)
	} else {
		pterm.Success.Println("no invalid transaction reached compliant consensus")
	}
}

// renderOutcomes prints one row per sweep run.
func renderOutcomes(outcomes []sweep.Outcome) error {
	data := pterm.TableData{{"p graph", "p mal", "p tx", "rounds", "seed", "compliant", "mean", "agreement", "coverage", "leaked"}}

	for _, o := range outcomes {
		cfg := o.Config
		s := o.Summary

		data = append(data, []string{
			fmt.Sprintf("%g", cfg.PGraph),
			fmt.Sprintf("%g", cfg.PMalicious),
			fmt.Sprintf("%g", cfg.PTxDistribution),
			strconv.Itoa(cfg.NumRounds),
			strconv.FormatUint(cfg.Seed, 10),
			strconv.Itoa(s.Compliant),
			fmt.Sprintf("%.2f", s.MeanConsensus),
			fmt.Sprintf("%.1f%%", 100*s.Agreement),
			fmt.Sprintf("%.1f%%", 100*s.Coverage),
			strconv.Itoa(s.Leaked),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// renderArchive lists archived run keys with their compressed sizes.
func renderArchive(a *storage.Archive) error {
	if meta, err := a.GetMeta(sweep.GridMetaKey); err == nil && meta != nil {
		pterm.Info.Printfln("last sweep: %s", meta)
	}

	data := pterm.TableData{{"Run key", "Bytes"}}

	err := a.Iterate(func(key string, rep []byte) error {
		data = append(data, []string{key, strconv.Itoa(len(rep))})
		return nil
	})
	if err != nil {
		return err
	}

	if len(data) == 1 {
		pterm.Warning.Println("archive is empty")
		return nil
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// formatIDs joins ids, or "-" when there are none.
func formatIDs(ids []consensus.Transaction) string {
	if len(ids) == 0 {
		return "-"
	}

	parts := make([]string, len(ids))
	for i, tx := range ids {
		parts[i] = strconv.FormatInt(int64(tx), 10)
	}

	return strings.Join(parts, " ")
}
