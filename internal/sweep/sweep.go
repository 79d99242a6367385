package sweep

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"GossipQuorum/internal/logger"
	"GossipQuorum/internal/report"
	"GossipQuorum/internal/simulation"
	"GossipQuorum/internal/storage"
)

// GridMetaKey names the archive metadata entry describing the last sweep.
const GridMetaKey = "grid"

// Outcome is the result of one grid point.
type Outcome struct {
	Key      string            // Key is the archive key, with the resolved seed
	Config   simulation.Config // Config has the resolved seed
	Summary  report.Summary
	Checksum [32]byte
	Elapsed  time.Duration
}

// Progress is called after every finished run.
type Progress func(done, total int, o Outcome)

// Option configures a sweep.
type Option func(*runner)

// WithArchive stores every encoded report into a.
func WithArchive(a *storage.Archive) Option {
	return func(r *runner) {
		r.archive = a
	}
}

// WithProgress reports completion of each run.
func WithProgress(fn Progress) Option {
	return func(r *runner) {
		r.progress = fn
	}
}

// WithSimulationOptions passes opts to every simulation.
func WithSimulationOptions(opts ...simulation.Option) Option {
	return func(r *runner) {
		r.simOpts = append(r.simOpts, opts...)
	}
}

type runner struct {
	archive  *storage.Archive
	progress Progress
	simOpts  []simulation.Option

	mu   sync.Mutex
	done int
}

// Run executes every grid point on at most grid.Parallel concurrent runs
// and returns outcomes in grid order. The first failure cancels the rest.
func Run(ctx context.Context, g Grid, opts ...Option) ([]Outcome, error) {
	configs, err := g.Expand()
	if err != nil {
		return nil, err
	}

	r := &runner{}
	for _, opt := range opts {
		opt(r)
	}

	if r.archive != nil {
		if err := r.archive.PutMeta(GridMetaKey, []byte(g.String())); err != nil {
			return nil, fmt.Errorf("store grid:\n%w", err)
		}
	}

	parallel := g.Parallel
	if parallel < 1 {
		parallel = runtime.GOMAXPROCS(0)
	}
	parallel = min(parallel, len(configs))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := time.Now()
	outcomes := make([]Outcome, len(configs))
	jobs := make(chan int, len(configs))

	for i := range configs {
		jobs <- i
	}
	close(jobs)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	wg.Add(parallel)

	for w := 0; w < parallel; w++ {
		go func() {
			defer wg.Done()

			for i := range jobs {
				if ctx.Err() != nil {
					return
				}

				o, err := r.runOne(ctx, configs[i])
				if err != nil {
					errOnce.Do(func() {
						firstErr = fmt.Errorf("run %d (%s):\n%w", i, configs[i].Key(), err)
						cancel()
					})
					return
				}

				outcomes[i] = o
				r.finished(len(configs), o)
			}
		}()
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Info("sweep finished", "runs", len(configs), logger.Timed(start))

	return outcomes, nil
}

// runOne executes and archives a single configuration.
func (r *runner) runOne(ctx context.Context, cfg simulation.Config) (Outcome, error) {
	start := time.Now()

	sim, err := simulation.New(cfg, r.simOpts...)
	if err != nil {
		return Outcome{}, err
	}

	res, err := sim.Run(ctx)
	if err != nil {
		return Outcome{}, err
	}

	rep := report.FromResult(res)

	o := Outcome{
		Key:      res.Config.Key(),
		Config:   res.Config,
		Summary:  report.Summarize(rep),
		Checksum: rep.Checksum,
	}

	if r.archive != nil {
		data, err := report.Compress(report.Marshal(rep))
		if err != nil {
			return Outcome{}, fmt.Errorf("encode report:\n%w", err)
		}

		if err := r.archive.Put(o.Key, data); err != nil {
			return Outcome{}, fmt.Errorf("archive report:\n%w", err)
		}
	}

	o.Elapsed = time.Since(start)

	return o, nil
}

// finished records progress and notifies the callback in completion order.
func (r *runner) finished(total int, o Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.done++

	logger.Debug("run finished",
		"done", r.done,
		"total", total,
		"key", o.Key,
		"agreement", o.Summary.Agreement,
	)

	if r.progress != nil {
		r.progress(r.done, total, o)
	}
}
