package report

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"GossipQuorum/internal/consensus"
	"GossipQuorum/internal/simulation"
)

// createTestResult runs a small simulation with malicious nodes.
func createTestResult(t *testing.T) *simulation.Result {
	t.Helper()

	cfg := simulation.Config{
		NumNodes:        25,
		PGraph:          0.3,
		PMalicious:      0.3,
		PTxDistribution: 0.2,
		NumRounds:       4,
		NumTransactions: 40,
		Seed:            77,
		Strategies:      consensus.DefaultStrategyMix(),
	}

	sim, err := simulation.New(cfg)
	if err != nil {
		t.Fatalf("new simulation: %v", err)
	}

	res, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	return res
}

func TestEncodeDecode(t *testing.T) {
	res := createTestResult(t)

	data, err := Encode(res)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	r, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := FromResult(res)
	want.Config.Workers = 0

	if r.Checksum != want.Checksum {
		t.Error("checksum changed across encoding")
	}
	if r.Config != want.Config {
		t.Errorf("config: got %+v, want %+v", r.Config, want.Config)
	}
	if !reflect.DeepEqual(r.Nodes, want.Nodes) {
		t.Error("node results changed across encoding")
	}
	if !reflect.DeepEqual(r.Rounds, want.Rounds) {
		t.Error("round stats changed across encoding")
	}
	if !reflect.DeepEqual(r.Valid, want.Valid) || r.Edges != want.Edges {
		t.Error("valid pool or edge count changed across encoding")
	}
}

func TestCompression(t *testing.T) {
	res := createTestResult(t)

	raw := Build(res)

	compressed, err := Compress(raw)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}

	if len(compressed) >= len(raw) {
		t.Logf("compression did not shrink: %d -> %d", len(raw), len(compressed))
	}

	back, err := Decompress(compressed)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}

	if !reflect.DeepEqual(raw, back) {
		t.Fatal("decompressed bytes differ")
	}
}

func TestUnmarshal_DetectsTampering(t *testing.T) {
	res := createTestResult(t)
	r := FromResult(res)

	r.Nodes = append([]simulation.NodeResult(nil), r.Nodes...)
	r.Nodes[0].Consensus = append([]consensus.Transaction{consensus.SyntheticBase}, r.Nodes[0].Consensus...)

	if _, err := Unmarshal(Marshal(r)); !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("expected ErrChecksumMismatch, got %v", err)
	}
}

func TestUnmarshal_RejectsVersion(t *testing.T) {
	r := FromResult(createTestResult(t))
	r.Version = reportVersion + 1

	if _, err := Unmarshal(Marshal(r)); !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestDecode_Garbage(t *testing.T) {
	if _, err := Decode([]byte("definitely not zstd")); err == nil {
		t.Fatal("garbage decoded without error")
	}

	junk, _ := Compress([]byte{1, 2, 3})
	if _, err := Decode(junk); err == nil {
		t.Fatal("truncated report decoded without error")
	}
}

func TestChecksum_Deterministic(t *testing.T) {
	a := FromResult(createTestResult(t))
	b := FromResult(createTestResult(t))

	if a.Checksum != b.Checksum {
		t.Fatal("same seed produced different checksums")
	}

	b.Config.Seed++
	if Checksum(b) == a.Checksum {
		t.Fatal("checksum ignores the seed")
	}
}

func TestSummarize(t *testing.T) {
	r := &Report{
		Edges: 6,
		Valid: []consensus.Transaction{1, 2, 3, 4},
		Nodes: []simulation.NodeResult{
			{ID: 0, Kind: consensus.KindCompliant, Consensus: []consensus.Transaction{1, 2}},
			{ID: 1, Kind: consensus.KindCompliant, Consensus: []consensus.Transaction{1, 2}},
			{ID: 2, Kind: consensus.KindCompliant, Consensus: []consensus.Transaction{3}},
			{ID: 3, Kind: consensus.KindCompliant, Consensus: []consensus.Transaction{}},
			{ID: 4, Kind: consensus.KindMalicious, Consensus: []consensus.Transaction{consensus.SyntheticBase}},
		},
		Rounds: []consensus.RoundStats{
			{Round: 1, Proposed: 5, Invalid: 1, Routed: 8, Accepted: 4},
			{Round: 2, Proposed: 3, Invalid: 1, Routed: 4, Accepted: 2},
		},
	}

	s := Summarize(r)

	if s.Compliant != 4 || s.Malicious != 1 || s.Nodes != 5 {
		t.Errorf("counts: %+v", s)
	}
	if s.MeanConsensus != 1.25 {
		t.Errorf("mean: got %v, want 1.25", s.MeanConsensus)
	}
	if s.MinConsensus != 0 || s.MaxConsensus != 2 || s.Empty != 1 {
		t.Errorf("min/max/empty: %d/%d/%d", s.MinConsensus, s.MaxConsensus, s.Empty)
	}
	if s.Agreement != 0.5 {
		t.Errorf("agreement: got %v, want 0.5", s.Agreement)
	}
	if s.Coverage != 0.75 {
		t.Errorf("coverage: got %v, want 0.75", s.Coverage)
	}
	if s.Leaked != 0 {
		t.Errorf("malicious output must not count as leaked: %d", s.Leaked)
	}
	if s.Proposed != 8 || s.Invalid != 2 || s.Routed != 12 || s.Accepted != 6 {
		t.Errorf("totals: %+v", s)
	}
}

func TestSummarize_CountsLeaks(t *testing.T) {
	r := &Report{
		Valid: []consensus.Transaction{1},
		Nodes: []simulation.NodeResult{
			{Kind: consensus.KindCompliant, Consensus: []consensus.Transaction{1, 99}},
		},
	}

	if s := Summarize(r); s.Leaked != 1 {
		t.Fatalf("leaked: got %d, want 1", s.Leaked)
	}
}

func TestSummarize_NoLeakInSimulation(t *testing.T) {
	s := Summarize(FromResult(createTestResult(t)))

	if s.Leaked != 0 {
		t.Fatalf("compliant nodes hold %d invalid ids", s.Leaked)
	}
	if s.Compliant+s.Malicious != s.Nodes {
		t.Fatalf("inconsistent counts: %+v", s)
	}
}

func TestSummarize_NoCompliant(t *testing.T) {
	s := Summarize(&Report{Nodes: []simulation.NodeResult{{Kind: consensus.KindMalicious}}})

	if s.Agreement != 0 || s.MinConsensus != 0 || s.MeanConsensus != 0 {
		t.Fatalf("empty compliant summary: %+v", s)
	}
}

func BenchmarkEncode(b *testing.B) {
	cfg := simulation.DefaultConfig()
	cfg.Seed = 1

	sim, _ := simulation.New(cfg)
	res, err := sim.Run(context.Background())
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Encode(res); err != nil {
			b.Fatal(err)
		}
	}
}
