// Package runner validates many JSON inputs concurrently.
//
// Each input is read and parsed by one pool worker with its own parser
// state; inputs never share mutable state, so the only coordination is
// collecting results.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/panjf2000/ants/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lattice-substrate/json-parse/internal/config"
	"github.com/lattice-substrate/json-parse/jsonerr"
	"github.com/lattice-substrate/json-parse/jsontoken"
	"github.com/lattice-substrate/json-parse/jsonvalue"
)

// Result is the outcome for one input.
type Result struct {
	Input  string
	Bytes  int
	Digest uint64 // xxhash64 of the input bytes

	// Root is the kind of the parsed root value when the input is valid.
	Root jsonvalue.Kind

	// Kind and Offset classify ParseErr.
	Kind   jsonerr.Kind
	Offset int

	ParseErr error
	ReadErr  error
	Duration time.Duration
}

// Valid reports whether the input was read and parsed successfully.
func (r Result) Valid() bool { return r.ReadErr == nil && r.ParseErr == nil }

// Summary aggregates the results of a run, in input order.
type Summary struct {
	Results []Result
	Valid   int
	Invalid int
	Errors  int
}

// Runner validates inputs on a bounded worker pool.
type Runner struct {
	workers      int
	maxInputSize int
	stdin        io.Reader
	logger       log.Logger
	metrics      *Metrics
}

// New returns a Runner configured by cfg. Metrics are registered with reg.
func New(cfg config.Config, stdin io.Reader, logger log.Logger, reg prometheus.Registerer) *Runner {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Runner{
		workers:      cfg.Workers,
		maxInputSize: cfg.MaxInputSize,
		stdin:        stdin,
		logger:       logger,
		metrics:      NewMetrics(reg),
	}
}

// Run validates inputs and waits for all of them. StdinName may appear at
// most once. Inputs not yet started when ctx is cancelled are reported with
// ctx's error and Run returns that error alongside the partial summary.
func (r *Runner) Run(ctx context.Context, inputs []string) (Summary, error) {
	stdinUses := 0
	for _, in := range inputs {
		if in == StdinName {
			stdinUses++
		}
	}
	if stdinUses > 1 {
		return Summary{}, errors.New("runner: standard input named more than once")
	}

	pool, err := ants.NewPool(r.workers)
	if err != nil {
		return Summary{}, fmt.Errorf("runner: create worker pool: %w", err)
	}
	defer pool.Release()

	results := make([]Result, len(inputs))
	var wg sync.WaitGroup
	for i, name := range inputs {
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			results[i] = r.process(ctx, name)
		})
		if err != nil {
			wg.Done()
			results[i] = Result{Input: name, ReadErr: fmt.Errorf("submit: %w", err)}
		}
	}
	wg.Wait()

	s := Summary{Results: results}
	for _, res := range results {
		switch {
		case res.ReadErr != nil:
			s.Errors++
		case res.ParseErr != nil:
			s.Invalid++
		default:
			s.Valid++
		}
	}
	level.Info(r.logger).Log("msg", "validation finished", "inputs", len(inputs),
		"valid", s.Valid, "invalid", s.Invalid, "errors", s.Errors)
	return s, ctx.Err()
}

func (r *Runner) process(ctx context.Context, name string) Result {
	res := Result{Input: name}
	if err := ctx.Err(); err != nil {
		res.ReadErr = err
		return res
	}

	data, err := ReadInput(name, r.stdin, r.maxInputSize)
	if err != nil {
		res.ReadErr = err
		r.metrics.observe(res)
		level.Error(r.logger).Log("msg", "input unreadable", "input", name, "err", err)
		return res
	}
	res.Bytes = len(data)
	res.Digest = xxhash.Sum64(data)

	start := time.Now()
	v, err := jsontoken.Parse(data)
	res.Duration = time.Since(start)

	digest := fmt.Sprintf("%016x", res.Digest)
	if err != nil {
		res.ParseErr = err
		var je *jsonerr.Error
		if errors.As(err, &je) {
			res.Kind = je.Kind
			res.Offset = je.Offset
		}
		r.metrics.observe(res)
		level.Warn(r.logger).Log("msg", "input invalid", "input", name, "bytes", res.Bytes,
			"digest", digest, "kind", res.Kind, "offset", res.Offset, "err", err)
		return res
	}

	res.Root = v.Kind()
	r.metrics.observe(res)
	level.Debug(r.logger).Log("msg", "input valid", "input", name, "bytes", res.Bytes,
		"digest", digest, "root", res.Root, "duration", res.Duration)
	return res
}

// WriteMetricsFile writes everything gathered by g to path in the
// Prometheus text exposition format.
func WriteMetricsFile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics file: %w", err)
	}
	return nil
}
