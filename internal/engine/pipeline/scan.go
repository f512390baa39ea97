package pipeline

import (
	"context"
	"fmt"

	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/core/ports"
	"go.trai.ch/zerr"
)

// Scan implements ports.Pipeline. Every chunk runs the full cached pipeline and fits the
// requested elastic models; cancelled contexts stop the scan between chunks.
func (e *Executor) Scan(ctx context.Context, req *domain.ScanRequest, emit func(domain.ScanChunk) error) (err error) {
	ctx, span := e.tracer.Start(ctx, "pipeline.scan")
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		e.metrics.observeRequest("scan", err)
		span.End()
	}()

	if err := e.validate.Struct(req); err != nil {
		return zerr.Wrap(domain.ErrInvalidRequest, err.Error())
	}
	ids, err := e.curves.IDs(ctx)
	if err != nil {
		return err
	}
	batch := req.Batch(ids)
	p, err := e.newPlan(&batch)
	if err != nil {
		return err
	}

	size := req.ChunkSize
	if size <= 0 {
		size = e.chunkSize
	}
	total := (len(ids) + size - 1) / size
	span.SetAttribute("curves", len(ids))
	span.SetAttribute("chunks", total)

	done := 0
	for b := range total {
		if err := ctx.Err(); err != nil {
			return err
		}
		chunk := ids[b*size : min((b+1)*size, len(ids))]
		entries, err := e.scanChunk(ctx, p, chunk, b, total)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "scan chunk"), "batch_index", b)
		}
		done += len(chunk)
		err = emit(domain.ScanChunk{
			Progress: domain.Progress{
				BatchIndex:   b,
				TotalBatches: total,
				Done:         done,
				Total:        len(ids),
			},
			Entries: entries,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) scanChunk(ctx context.Context, p *plan, ids []int, index, total int) (entries []domain.ScanEntry, err error) {
	var vertex ports.Vertex
	if e.telemetry != nil {
		ctx, vertex = e.telemetry.Record(ctx, fmt.Sprintf("scan chunk %d/%d", index+1, total))
		defer func() { vertex.Complete(err) }()
	}

	d, err := e.derive(ctx, p, ids)
	if err != nil {
		return nil, err
	}
	entries = []domain.ScanEntry{}
	for _, c := range d.curves {
		s, ok := d.spectra[c.id]
		if !ok {
			continue
		}
		for _, m := range p.emodels {
			res, ok := m.Impl.Fit(s, m.Params, c.meta)
			if !ok {
				continue
			}
			entries = append(entries, domain.ScanEntry{CurveID: c.id, Model: m.Name, Params: res.Params, R2: res.R2})
		}
	}
	if err := d.persist(ctx); err != nil {
		return nil, err
	}

	if vertex != nil {
		_, _ = fmt.Fprintf(vertex.Stdout(), "%d curves, %d fits\n", len(ids), len(entries))
		if d.misses == 0 && len(d.contacts) > 0 {
			vertex.Cached()
		}
	}
	return entries, nil
}
