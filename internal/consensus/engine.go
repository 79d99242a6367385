package consensus

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/rcrowley/go-metrics"

	"GossipQuorum/internal/logger"
)

const (
	// metricsSampleSize is the reservoir size of per-round histograms.
	metricsSampleSize = 1028
)

// Metric names registered by the engine.
const (
	MetricProposed  = "engine/proposed"
	MetricInvalid   = "engine/invalid"
	MetricRouted    = "engine/routed"
	MetricAccepted  = "engine/accepted"
	MetricPerRound  = "engine/accepted/round"
	MetricRounds    = "engine/rounds"
	MetricDelivered = "engine/delivered"
)

var (
	// ErrInvalidTransition is returned when an operation is called in the wrong phase.
	ErrInvalidTransition = errors.New("invalid engine transition")

	// ErrNotStarted is returned when rounds are requested before Start.
	ErrNotStarted = errors.New("engine not started")
)

// Phase is the engine state.
type Phase uint8

const (
	PhaseNotStarted Phase = iota
	PhaseProposing
	PhaseRouting
	PhaseIngesting
	PhaseFinished
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseProposing:
		return "proposing"
	case PhaseRouting:
		return "routing"
	case PhaseIngesting:
		return "ingesting"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// transitions lists the allowed phase changes.
var transitions = map[Phase][]Phase{
	PhaseNotStarted: {PhaseProposing, PhaseFinished},
	PhaseProposing:  {PhaseRouting},
	PhaseRouting:    {PhaseIngesting},
	PhaseIngesting:  {PhaseProposing, PhaseFinished},
}

// RoundStats summarizes one round.
type RoundStats struct {
	Round     int // Round is 1-based
	Proposed  int // Proposed counts (origin, tx) pairs emitted
	Invalid   int // Invalid counts pairs rejected by the oracle
	Routed    int // Routed counts candidates enqueued after fan-out
	Delivered int // Delivered counts nodes with a non-empty inbox
	Accepted  int // Accepted counts transactions proposed by compliant nodes
}

// Observer receives the statistics of every completed round.
type Observer func(RoundStats)

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithWorkers sets how many goroutines run the per-node work of a phase.
// Values below 1 use GOMAXPROCS.
func WithWorkers(n int) EngineOption {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithObserver registers a callback invoked after each round.
func WithObserver(fn Observer) EngineOption {
	return func(e *Engine) {
		e.observer = fn
	}
}

// WithRegistry records engine metrics into r instead of a private registry.
func WithRegistry(r metrics.Registry) EngineOption {
	return func(e *Engine) {
		e.registry = r
	}
}

// Engine runs synchronous gossip rounds over a follow graph.
//
// Every round is propose, validity filter, route, ingest, with a full
// barrier between phases. Per-node work inside a phase may run on parallel
// workers because each node only touches its own state.
type Engine struct {
	graph  *FollowGraph
	nodes  []Node
	oracle Oracle

	workers  int
	observer Observer
	registry metrics.Registry

	phase   Phase
	started bool
	round   int

	proposals []TxSet
	inboxes   []CandidateSet

	proposed  metrics.Counter
	invalid   metrics.Counter
	routed    metrics.Counter
	delivered metrics.Counter
	rounds    metrics.Counter
	accepted  metrics.Counter
	perRound  metrics.Histogram
}

// NewEngine creates an engine over graph with one node per graph vertex.
func NewEngine(graph *FollowGraph, nodes []Node, oracle Oracle, opts ...EngineOption) (*Engine, error) {
	if graph == nil {
		return nil, fmt.Errorf("nil graph:\n%w", ErrInvalidGraph)
	}

	if len(nodes) != graph.Len() {
		return nil, fmt.Errorf("%d nodes for a graph of %d:\n%w", len(nodes), graph.Len(), ErrInvalidGraph)
	}

	if oracle == nil {
		return nil, errors.New("nil validity oracle")
	}

	e := &Engine{
		graph:     graph,
		nodes:     nodes,
		oracle:    oracle,
		proposals: make([]TxSet, len(nodes)),
		inboxes:   make([]CandidateSet, len(nodes)),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.workers < 1 {
		e.workers = runtime.GOMAXPROCS(0)
	}

	if e.registry == nil {
		e.registry = metrics.NewRegistry()
	}

	e.proposed = metrics.GetOrRegisterCounter(MetricProposed, e.registry)
	e.invalid = metrics.GetOrRegisterCounter(MetricInvalid, e.registry)
	e.routed = metrics.GetOrRegisterCounter(MetricRouted, e.registry)
	e.delivered = metrics.GetOrRegisterCounter(MetricDelivered, e.registry)
	e.rounds = metrics.GetOrRegisterCounter(MetricRounds, e.registry)
	e.accepted = metrics.GetOrRegisterCounter(MetricAccepted, e.registry)
	e.perRound = metrics.GetOrRegisterHistogram(MetricPerRound, e.registry, metrics.NewUniformSample(metricsSampleSize))

	return e, nil
}

// Start initializes every node with its follow mask and seeds it with
// seeds[i] (a nil or short slice seeds nothing).
func (e *Engine) Start(seeds []TxSet) error {
	if e.started || e.phase != PhaseNotStarted {
		return fmt.Errorf("start in phase %s:\n%w", e.phase, ErrInvalidTransition)
	}

	e.forEach(func(i int) {
		n := e.nodes[i]
		n.Initialize(e.graph.FollowMask(NodeID(i)))

		var txs TxSet
		if i < len(seeds) && seeds[i] != nil {
			txs = seeds[i]
		} else {
			txs = TxSet{}
		}

		n.Seed(txs.Clone())
	})

	e.started = true

	return nil
}

// Run executes rounds sequentially. Cancellation is only observed between
// rounds, so a round is never partially applied.
func (e *Engine) Run(ctx context.Context, rounds int) error {
	for r := 0; r < rounds; r++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("stopped before round %d:\n%w", e.round+1, err)
		}

		if _, err := e.Step(); err != nil {
			return err
		}
	}

	return nil
}

// Step executes exactly one round and returns its statistics.
func (e *Engine) Step() (RoundStats, error) {
	if !e.started {
		return RoundStats{}, ErrNotStarted
	}

	stats := RoundStats{Round: e.round + 1}

	if err := e.transition(PhaseProposing); err != nil {
		return stats, err
	}
	e.propose(&stats)

	if err := e.transition(PhaseRouting); err != nil {
		return stats, err
	}
	e.route(&stats)

	if err := e.transition(PhaseIngesting); err != nil {
		return stats, err
	}
	e.ingest(&stats)

	e.round++
	e.record(stats)

	return stats, nil
}

// Finish performs the terminal read-out: one last Propose per node with no
// following ingest. The returned slice is indexed by NodeID.
func (e *Engine) Finish() ([]TxSet, error) {
	if !e.started {
		return nil, ErrNotStarted
	}

	if err := e.transition(PhaseFinished); err != nil {
		return nil, err
	}

	final := make([]TxSet, len(e.nodes))
	e.forEach(func(i int) {
		final[i] = e.nodes[i].Propose()
	})

	logger.Debug("engine finished", "rounds", e.round, "nodes", len(e.nodes))

	return final, nil
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Round returns the number of completed rounds.
func (e *Engine) Round() int {
	return e.round
}

// Registry returns the metrics registry the engine records into.
func (e *Engine) Registry() metrics.Registry {
	return e.registry
}

// Totals returns the cumulative counters since construction.
func (e *Engine) Totals() RoundStats {
	return RoundStats{
		Round:     int(e.rounds.Count()),
		Proposed:  int(e.proposed.Count()),
		Invalid:   int(e.invalid.Count()),
		Routed:    int(e.routed.Count()),
		Delivered: int(e.delivered.Count()),
		Accepted:  int(e.accepted.Count()),
	}
}

// transition moves to next if the state machine allows it.
func (e *Engine) transition(next Phase) error {
	for _, allowed := range transitions[e.phase] {
		if allowed == next {
			e.phase = next
			return nil
		}
	}

	return fmt.Errorf("%s -> %s:\n%w", e.phase, next, ErrInvalidTransition)
}

// propose collects every node's proposals for this round.
func (e *Engine) propose(stats *RoundStats) {
	e.forEach(func(i int) {
		e.proposals[i] = e.nodes[i].Propose()
	})

	for i, p := range e.proposals {
		stats.Proposed += p.Len()

		if e.nodes[i].Kind() == KindCompliant {
			stats.Accepted += p.Len()
		}
	}
}

// route filters proposals through the oracle and fans survivors out to
// every follower of their origin.
func (e *Engine) route(stats *RoundStats) {
	for j := range e.inboxes {
		e.inboxes[j] = nil
	}

	for i, proposal := range e.proposals {
		origin := NodeID(i)
		followers := e.graph.followers[i]

		for tx := range proposal {
			if !e.oracle.IsValid(tx) {
				stats.Invalid++
				continue
			}

			for _, j := range followers {
				if e.inboxes[j] == nil {
					e.inboxes[j] = make(CandidateSet)
				}

				e.inboxes[j].Add(Candidate{Tx: tx, Sender: origin})
				stats.Routed++
			}
		}

		e.proposals[i] = nil
	}
}

// ingest delivers each non-empty inbox to its node.
func (e *Engine) ingest(stats *RoundStats) {
	for _, inbox := range e.inboxes {
		if inbox.Len() > 0 {
			stats.Delivered++
		}
	}

	e.forEach(func(i int) {
		if inbox := e.inboxes[i]; inbox.Len() > 0 {
			e.nodes[i].Ingest(inbox)
		}
	})
}

// record updates metrics and notifies the observer.
func (e *Engine) record(stats RoundStats) {
	e.rounds.Inc(1)
	e.proposed.Inc(int64(stats.Proposed))
	e.invalid.Inc(int64(stats.Invalid))
	e.routed.Inc(int64(stats.Routed))
	e.delivered.Inc(int64(stats.Delivered))
	e.accepted.Inc(int64(stats.Accepted))
	e.perRound.Update(int64(stats.Accepted))

	logger.Debug("round complete",
		"round", stats.Round,
		"proposed", stats.Proposed,
		"invalid", stats.Invalid,
		"routed", stats.Routed,
		"accepted", stats.Accepted,
	)

	if e.observer != nil {
		e.observer(stats)
	}
}

// forEach runs fn for every node index on the worker pool and returns once
// all calls have completed.
func (e *Engine) forEach(fn func(i int)) {
	n := len(e.nodes)

	if e.workers <= 1 || n <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	workers := min(e.workers, n)
	jobs := make(chan int, n)

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()

			for i := range jobs {
				fn(i)
			}
		}()
	}

	wg.Wait()
}
