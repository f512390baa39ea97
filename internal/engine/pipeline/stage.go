package pipeline

import (
	"context"
	"time"

	"go.trai.ch/nanoindent/internal/core/ports"
	"go.trai.ch/zerr"
)

// Job is the work of one curve within a stage. Hash addresses its cached result.
type Job[In any] struct {
	CurveID int
	Hash    string
	Input   In
}

// Stage is one cached step of the pipeline. Lookup returns the cached results among
// jobs keyed by curve id; Compute derives a missing one and reports false when the
// curve has no result; Row turns a computed result into a cache row for Persist.
type Stage[In, Out, Row any] struct {
	Name    string
	Lookup  func(ctx context.Context, jobs []Job[In]) (map[int]Out, error)
	Compute func(job Job[In]) (Out, bool)
	Row     func(job Job[In], out Out) Row
	Persist func(ctx context.Context, rows []Row) error
}

// Outcome is what a stage produced for one batch.
type Outcome[Out any] struct {
	Values   map[int]Out
	Hits     int
	Misses   int
	NotFound int

	persist func(ctx context.Context) error
}

// Persist inserts the rows computed by the stage. Rows already cached are left untouched.
func (o Outcome[Out]) Persist(ctx context.Context) error {
	if o.persist == nil {
		return nil
	}
	return o.persist(ctx)
}

// runStage partitions jobs into cache hits and misses, computes the misses on the
// worker pool and merges both. Curves without a result are absent from Values.
func runStage[In, Out, Row any](ctx context.Context, e *Executor, s Stage[In, Out, Row], jobs []Job[In]) (Outcome[Out], error) {
	out := Outcome[Out]{Values: make(map[int]Out, len(jobs))}
	if len(jobs) == 0 {
		return out, nil
	}

	start := time.Now()
	ctx, span := e.tracer.Start(ctx, "stage."+s.Name, ports.WithAttribute("curves", len(jobs)))
	defer span.End()

	hits, err := s.Lookup(ctx, jobs)
	if err != nil {
		span.RecordError(err)
		return out, zerr.With(zerr.Wrap(err, "cache lookup"), "stage", s.Name)
	}

	var misses []Job[In]
	for _, job := range jobs {
		if v, ok := hits[job.CurveID]; ok {
			out.Values[job.CurveID] = v
			out.Hits++
			continue
		}
		misses = append(misses, job)
	}
	out.Misses = len(misses)

	type computed struct {
		value Out
		ok    bool
	}
	results := make([]computed, len(misses))
	err = e.each(ctx, len(misses), func(i int) error {
		v, ok := s.Compute(misses[i])
		results[i] = computed{value: v, ok: ok}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return out, zerr.With(zerr.Wrap(err, "compute misses"), "stage", s.Name)
	}

	rows := make([]Row, 0, len(misses))
	for i, job := range misses {
		if !results[i].ok {
			out.NotFound++
			continue
		}
		out.Values[job.CurveID] = results[i].value
		rows = append(rows, s.Row(job, results[i].value))
	}
	if len(rows) > 0 {
		out.persist = func(ctx context.Context) error {
			if err := s.Persist(ctx, rows); err != nil {
				return zerr.With(zerr.Wrap(err, "cache insert"), "stage", s.Name)
			}
			return nil
		}
	}

	span.SetAttribute("hits", out.Hits)
	span.SetAttribute("misses", out.Misses)
	span.SetAttribute("not_found", out.NotFound)
	e.metrics.observeStage(s.Name, out.Hits, out.Misses, out.NotFound, time.Since(start))
	e.logger.Info("stage complete",
		"stage", s.Name,
		"hits", out.Hits,
		"misses", out.Misses,
		"not_found", out.NotFound,
	)
	return out, nil
}
