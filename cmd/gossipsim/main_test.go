package main

import (
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"

	"GossipQuorum/internal/consensus"
	"GossipQuorum/internal/storage"
)

func TestMain(m *testing.M) {
	pterm.DisableOutput()
	m.Run()
}

func TestParseSeeds(t *testing.T) {
	tests := []struct {
		in      string
		want    []uint64
		wantErr bool
	}{
		{"1", []uint64{1}, false},
		{" 1, 2 ,3", []uint64{1, 2, 3}, false},
		{"0", []uint64{0}, false},
		{"", nil, true},
		{"1,x", nil, true},
		{"-1", nil, true},
	}

	for _, tt := range tests {
		got, err := parseSeeds(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseSeeds(%q): expected an error", tt.in)
			}
			continue
		}

		if err != nil {
			t.Errorf("parseSeeds(%q): %v", tt.in, err)
			continue
		}

		if len(got) != len(tt.want) {
			t.Errorf("parseSeeds(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseSeeds(%q) = %v, want %v", tt.in, got, tt.want)
			}
		}
	}
}

func TestParseMix(t *testing.T) {
	mix, err := parseMix("  ")
	if err != nil || mix != (consensus.StrategyMix{}) {
		t.Fatalf("blank mix: %v, %v", mix, err)
	}

	if _, err := parseMix("nope"); err == nil {
		t.Fatal("unknown strategy accepted")
	}
}

func TestOracleOptions(t *testing.T) {
	for _, kind := range []string{"", oracleSet} {
		opts, err := oracleOptions(kind)
		if err != nil || len(opts) != 0 {
			t.Errorf("oracle %q: %d options, %v", kind, len(opts), err)
		}
	}

	opts, err := oracleOptions(oracleLedger)
	if err != nil || len(opts) != 1 {
		t.Errorf("ledger oracle: %d options, %v", len(opts), err)
	}

	if _, err := oracleOptions("psychic"); err == nil {
		t.Error("unknown oracle accepted")
	}
}

func TestLedgerOracle(t *testing.T) {
	valid := consensus.NewTxSet(1, 2, 3)

	o, err := ledgerOracle(valid)
	if err != nil {
		t.Fatalf("ledger oracle: %v", err)
	}

	for tx := range valid {
		if !o.IsValid(tx) {
			t.Errorf("tx %d not valid", tx)
		}
	}
	if o.IsValid(4) {
		t.Error("tx outside the pool is valid")
	}
}

func TestRunAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive")

	args := []string{"gossipsim", "--log-level", "error", "run",
		"-n", "8", "-t", "10", "-r", "2", "-s", "5",
		"--p-graph", "0.5", "--p-malicious", "0.25", "--p-tx", "0.5",
		"--oracle", "ledger", "--archive", path, "--verbose",
	}

	if err := run(args); err != nil {
		t.Fatalf("run command: %v", err)
	}

	a, err := storage.Open(path)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	keys, err := a.Keys()
	a.Close()

	if err != nil || len(keys) != 1 {
		t.Fatalf("archive keys: %v, %v", keys, err)
	}

	if err := run([]string{"gossipsim", "show", "--archive", path}); err != nil {
		t.Fatalf("show archive: %v", err)
	}

	if err := run([]string{"gossipsim", "show", "--archive", path, keys[0]}); err != nil {
		t.Fatalf("show report: %v", err)
	}

	if err := run([]string{"gossipsim", "show", "--archive", path, "missing"}); err == nil {
		t.Fatal("showing a missing key succeeded")
	}
}

func TestSweepCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive")

	args := []string{"gossipsim", "--log-level", "error", "sweep",
		"-n", "10", "-t", "10", "--seeds", "1,2", "-p", "4", "--archive", path,
	}

	if err := run(args); err != nil {
		t.Fatalf("sweep command: %v", err)
	}

	a, err := storage.Open(path)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer a.Close()

	keys, _ := a.Keys()
	if len(keys) != 108 {
		t.Fatalf("archived %d runs, want 108", len(keys))
	}
}

func TestRunCommand_InvalidConfig(t *testing.T) {
	if err := run([]string{"gossipsim", "run", "--p-graph", "2"}); err == nil {
		t.Fatal("invalid probability accepted")
	}
	if err := run([]string{"gossipsim", "--log-level", "loud", "run"}); err == nil {
		t.Fatal("invalid log level accepted")
	}
}
