// Package report serializes simulation results into checksummed,
// compressed FlatBuffers documents and summarizes agreement.
package report

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"

	"GossipQuorum/internal/consensus"
	"GossipQuorum/internal/simulation"
	"GossipQuorum/internal/types"
)

// reportVersion is the current report format version.
const reportVersion = 1

var (
	// ErrChecksumMismatch is returned when a decoded report fails verification.
	ErrChecksumMismatch = errors.New("report checksum mismatch")

	// ErrUnsupportedVersion is returned for reports written by another format version.
	ErrUnsupportedVersion = errors.New("unsupported report version")
)

// Report is the decoded, in-memory form of a run report.
type Report struct {
	Version  uint16
	Config   simulation.Config
	Edges    int
	Valid    []consensus.Transaction // Valid is sorted ascending
	Nodes    []simulation.NodeResult
	Rounds   []consensus.RoundStats
	Checksum [32]byte
}

// FromResult captures a finished run.
func FromResult(res *simulation.Result) *Report {
	r := &Report{
		Version: reportVersion,
		Config:  res.Config,
		Edges:   res.Edges,
		Valid:   res.Valid.Sorted(),
		Nodes:   res.Nodes,
		Rounds:  res.Rounds,
	}

	r.Checksum = Checksum(r)

	return r
}

// Build serializes a finished run into FlatBuffers bytes.
func Build(res *simulation.Result) []byte {
	return Marshal(FromResult(res))
}

// Marshal serializes r as-is, including its stored checksum.
func Marshal(r *Report) []byte {
	builder := flatbuffers.NewBuilder(1024)

	// Build nodes vector
	nodeOffsets := make([]flatbuffers.UOffsetT, len(r.Nodes))
	for i, n := range r.Nodes {
		types.NodeReportStartConsensusVector(builder, len(n.Consensus))
		for k := len(n.Consensus) - 1; k >= 0; k-- {
			builder.PrependInt64(int64(n.Consensus[k]))
		}
		consensusVector := builder.EndVector(len(n.Consensus))

		types.NodeReportStart(builder)
		types.NodeReportAddId(builder, uint32(n.ID))
		types.NodeReportAddKind(builder, byte(n.Kind))
		types.NodeReportAddStrategy(builder, byte(n.Strategy))
		types.NodeReportAddFollowees(builder, uint32(n.Followees))
		types.NodeReportAddUntrusted(builder, uint32(n.Untrusted))
		types.NodeReportAddConsensus(builder, consensusVector)
		nodeOffsets[i] = types.NodeReportEnd(builder)
	}

	types.ReportStartNodesVector(builder, len(nodeOffsets))
	for i := len(nodeOffsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(nodeOffsets[i])
	}
	nodesVector := builder.EndVector(len(nodeOffsets))

	// Build rounds vector
	roundOffsets := make([]flatbuffers.UOffsetT, len(r.Rounds))
	for i, s := range r.Rounds {
		types.RoundReportStart(builder)
		types.RoundReportAddRound(builder, uint32(s.Round))
		types.RoundReportAddProposed(builder, uint32(s.Proposed))
		types.RoundReportAddInvalid(builder, uint32(s.Invalid))
		types.RoundReportAddRouted(builder, uint32(s.Routed))
		types.RoundReportAddDelivered(builder, uint32(s.Delivered))
		types.RoundReportAddAccepted(builder, uint32(s.Accepted))
		roundOffsets[i] = types.RoundReportEnd(builder)
	}

	types.ReportStartRoundsVector(builder, len(roundOffsets))
	for i := len(roundOffsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(roundOffsets[i])
	}
	roundsVector := builder.EndVector(len(roundOffsets))

	types.ReportStartValidVector(builder, len(r.Valid))
	for i := len(r.Valid) - 1; i >= 0; i-- {
		builder.PrependInt64(int64(r.Valid[i]))
	}
	validVector := builder.EndVector(len(r.Valid))

	mix := r.Config.Strategies
	types.ReportStartStrategiesVector(builder, len(mix))
	for i := len(mix) - 1; i >= 0; i-- {
		builder.PrependFloat64(mix[i])
	}
	strategiesVector := builder.EndVector(len(mix))

	checksumOffset := builder.CreateByteVector(r.Checksum[:])

	cfg := r.Config

	types.ReportStart(builder)
	types.ReportAddVersion(builder, r.Version)
	types.ReportAddSeed(builder, cfg.Seed)
	types.ReportAddNumNodes(builder, uint32(cfg.NumNodes))
	types.ReportAddPGraph(builder, cfg.PGraph)
	types.ReportAddPMalicious(builder, cfg.PMalicious)
	types.ReportAddPTxDistribution(builder, cfg.PTxDistribution)
	types.ReportAddNumRounds(builder, uint32(cfg.NumRounds))
	types.ReportAddNumTransactions(builder, uint32(cfg.NumTransactions))
	types.ReportAddFloodMax(builder, uint32(cfg.FloodMax))
	types.ReportAddStrategies(builder, strategiesVector)
	types.ReportAddEdges(builder, uint32(r.Edges))
	types.ReportAddValid(builder, validVector)
	types.ReportAddNodes(builder, nodesVector)
	types.ReportAddRounds(builder, roundsVector)
	types.ReportAddChecksum(builder, checksumOffset)
	offset := types.ReportEnd(builder)
	types.FinishReportBuffer(builder, offset)

	return builder.FinishedBytes()
}

// Unmarshal reads FlatBuffers bytes and verifies the stored checksum.
func Unmarshal(data []byte) (r *Report, err error) {
	// flatbuffers panics on truncated or foreign input
	defer func() {
		if p := recover(); p != nil {
			r, err = nil, fmt.Errorf("malformed report: %v", p)
		}
	}()

	fb := types.GetRootAsReport(data, 0)

	if fb.Version() != reportVersion {
		return nil, fmt.Errorf("version %d:\n%w", fb.Version(), ErrUnsupportedVersion)
	}

	r = &Report{
		Version: fb.Version(),
		Config: simulation.Config{
			NumNodes:        int(fb.NumNodes()),
			PGraph:          fb.PGraph(),
			PMalicious:      fb.PMalicious(),
			PTxDistribution: fb.PTxDistribution(),
			NumRounds:       int(fb.NumRounds()),
			NumTransactions: int(fb.NumTransactions()),
			Seed:            fb.Seed(),
			FloodMax:        int(fb.FloodMax()),
		},
		Edges: int(fb.Edges()),
	}

	for i := 0; i < fb.StrategiesLength() && i < len(r.Config.Strategies); i++ {
		r.Config.Strategies[i] = fb.Strategies(i)
	}

	r.Valid = make([]consensus.Transaction, fb.ValidLength())
	for i := range r.Valid {
		r.Valid[i] = consensus.Transaction(fb.Valid(i))
	}

	r.Nodes = make([]simulation.NodeResult, fb.NodesLength())
	var node types.NodeReport

	for i := range r.Nodes {
		if !fb.Nodes(&node, i) {
			return nil, fmt.Errorf("read node %d", i)
		}

		ids := make([]consensus.Transaction, node.ConsensusLength())
		for k := range ids {
			ids[k] = consensus.Transaction(node.Consensus(k))
		}

		r.Nodes[i] = simulation.NodeResult{
			ID:        consensus.NodeID(node.Id()),
			Kind:      consensus.Kind(node.Kind()),
			Strategy:  consensus.StrategyKind(node.Strategy()),
			Followees: int(node.Followees()),
			Untrusted: int(node.Untrusted()),
			Consensus: ids,
		}
	}

	r.Rounds = make([]consensus.RoundStats, fb.RoundsLength())
	var round types.RoundReport

	for i := range r.Rounds {
		if !fb.Rounds(&round, i) {
			return nil, fmt.Errorf("read round %d", i)
		}

		r.Rounds[i] = consensus.RoundStats{
			Round:     int(round.Round()),
			Proposed:  int(round.Proposed()),
			Invalid:   int(round.Invalid()),
			Routed:    int(round.Routed()),
			Delivered: int(round.Delivered()),
			Accepted:  int(round.Accepted()),
		}
	}

	stored := fb.ChecksumBytes()
	if len(stored) != len(r.Checksum) {
		return nil, fmt.Errorf("invalid checksum length: %d", len(stored))
	}
	copy(r.Checksum[:], stored)

	computed := Checksum(r)
	if !bytes.Equal(computed[:], stored) {
		return nil, ErrChecksumMismatch
	}

	return r, nil
}

// Encode builds and zstd-compresses a run report.
func Encode(res *simulation.Result) ([]byte, error) {
	return Compress(Build(res))
}

// Decode decompresses, parses and verifies a report produced by Encode.
func Decode(data []byte) (*Report, error) {
	raw, err := Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("decompress:\n%w", err)
	}

	r, err := Unmarshal(raw)
	if err != nil {
		return nil, fmt.Errorf("unmarshal:\n%w", err)
	}

	return r, nil
}

// Compress compresses report data using zstd.
func Compress(data []byte) ([]byte, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create encoder:\n%w", err)
	}
	defer encoder.Close()

	return encoder.EncodeAll(data, nil), nil
}

// Decompress decompresses zstd-compressed report data.
func Decompress(data []byte) ([]byte, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create decoder:\n%w", err)
	}
	defer decoder.Close()

	return decoder.DecodeAll(data, nil)
}

// Checksum computes a blake3 checksum over the canonical report content.
// Format: version, config, edges, valid ids, nodes, rounds; all big endian.
func Checksum(r *Report) [32]byte {
	h := blake3.New()

	var buf [8]byte
	put16 := func(v uint16) {
		binary.BigEndian.PutUint16(buf[:2], v)
		h.Write(buf[:2])
	}
	put32 := func(v int) {
		binary.BigEndian.PutUint32(buf[:4], uint32(v))
		h.Write(buf[:4])
	}
	put64 := func(v uint64) {
		binary.BigEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}

	cfg := r.Config

	put16(r.Version)
	put64(cfg.Seed)
	put32(cfg.NumNodes)
	put64(math.Float64bits(cfg.PGraph))
	put64(math.Float64bits(cfg.PMalicious))
	put64(math.Float64bits(cfg.PTxDistribution))
	put32(cfg.NumRounds)
	put32(cfg.NumTransactions)
	put32(cfg.FloodMax)
	for _, w := range cfg.Strategies {
		put64(math.Float64bits(w))
	}
	put32(r.Edges)

	put32(len(r.Valid))
	for _, tx := range r.Valid {
		put64(uint64(tx))
	}

	put32(len(r.Nodes))
	for _, n := range r.Nodes {
		put32(int(n.ID))
		h.Write([]byte{byte(n.Kind), byte(n.Strategy)})
		put32(n.Followees)
		put32(n.Untrusted)
		put32(len(n.Consensus))
		for _, tx := range n.Consensus {
			put64(uint64(tx))
		}
	}

	put32(len(r.Rounds))
	for _, s := range r.Rounds {
		put32(s.Round)
		put32(s.Proposed)
		put32(s.Invalid)
		put32(s.Routed)
		put32(s.Delivered)
		put32(s.Accepted)
	}

	var sum [32]byte
	h.Sum(sum[:0])

	return sum
}
