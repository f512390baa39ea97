package pipeline

import (
	"context"
	"fmt"
	"strconv"

	"go.trai.ch/nanoindent/internal/algorithms/mechanics"
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/core/ports"
	"go.trai.ch/zerr"
)

// Stage names, as reported in spans, logs and metrics.
const (
	StageContact     = "contact_point"
	StageIndentation = "indentation"
	StageElasticity  = "elasticity"
)

// derived holds everything a batch produced before fitting.
type derived struct {
	curves       []prepared
	contacts     map[int]domain.ContactPoint
	indentations map[int]domain.IndentationCurve
	spectra      map[int]domain.ElasticitySpectrum
	stages       []interface{ Persist(context.Context) error }
	misses       int
}

// persist inserts every newly computed row, stage by stage.
func (d *derived) persist(ctx context.Context) error {
	for _, s := range d.stages {
		if err := s.Persist(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Process implements ports.Pipeline.
func (e *Executor) Process(ctx context.Context, req *domain.Request) (resp *domain.Response, err error) {
	ctx, span := e.tracer.Start(ctx, "pipeline.process", ports.WithAttribute("curves", len(req.CurveIDs)))
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		e.metrics.observeRequest("process", err)
		span.End()
	}()

	p, err := e.resolve(req)
	if err != nil {
		return nil, err
	}
	d, err := e.derive(ctx, p, dedupe(req.CurveIDs))
	if err != nil {
		return nil, err
	}

	resp = &domain.Response{}
	for _, c := range d.curves {
		resp.ForceVsPosition.Add(domain.Series{ID: seriesID(c.id), X: c.z, Y: c.f})
	}
	for _, c := range d.curves {
		if ind, ok := d.indentations[c.id]; ok {
			resp.ForceVsIndentation.Add(domain.Series{ID: seriesID(c.id), X: ind.Zi, Y: ind.Fi})
		}
		if s, ok := d.spectra[c.id]; ok {
			resp.ElasticitySpectrum.Add(domain.Series{ID: seriesID(c.id), X: s.Ze, Y: s.Ee})
		}
	}
	if p.single {
		e.fitModels(p, d, resp)
	}

	if err := d.persist(ctx); err != nil {
		return nil, err
	}
	return resp, nil
}

func seriesID(id int) string {
	return strconv.Itoa(id)
}

// fitModels overlays every fitted model on its graph. Fits that fail are omitted.
func (e *Executor) fitModels(p *plan, d *derived, resp *domain.Response) {
	for idx, c := range d.curves {
		if ind, ok := d.indentations[c.id]; ok {
			for _, m := range p.fmodels {
				res, ok := m.Impl.Fit(ind, m.Params, c.meta)
				if !ok {
					continue
				}
				resp.ForceVsIndentation.Add(domain.Series{ID: overlayID(c.id, m.Name), X: res.X, Y: res.Y})
				resp.ForceVsIndentation.FitParams = append(resp.ForceVsIndentation.FitParams, domain.FitParams{
					CurveIndex: idx, Model: m.Name, Params: res.Params, R2: res.R2,
				})
			}
		}
		if s, ok := d.spectra[c.id]; ok {
			for _, m := range p.emodels {
				res, ok := m.Impl.Fit(s, m.Params, c.meta)
				if !ok {
					continue
				}
				resp.ElasticitySpectrum.Add(domain.Series{ID: overlayID(c.id, m.Name), X: res.X, Y: res.Y})
				resp.ElasticitySpectrum.FitParams = append(resp.ElasticitySpectrum.FitParams, domain.FitParams{
					CurveIndex: idx, Model: m.Name, Params: res.Params, R2: res.R2,
				})
			}
		}
	}
}

func overlayID(id int, model string) string {
	return fmt.Sprintf("%d_%s", id, model)
}

// derive loads and pre-processes the curves, then runs the contact, indentation and
// elasticity stages. Nothing is persisted yet.
func (e *Executor) derive(ctx context.Context, p *plan, ids []int) (*derived, error) {
	curves, err := e.curves.Get(ctx, ids)
	if err != nil {
		return nil, err
	}
	d := &derived{
		contacts:     map[int]domain.ContactPoint{},
		indentations: map[int]domain.IndentationCurve{},
		spectra:      map[int]domain.ElasticitySpectrum{},
	}
	if d.curves, err = e.prepare(ctx, p, curves); err != nil {
		return nil, zerr.Wrap(err, "prepare curves")
	}
	if p.detector == nil {
		return d, nil
	}

	byID := make(map[int]prepared, len(d.curves))
	for _, c := range d.curves {
		byID[c.id] = c
	}

	cpJobs, err := e.contactJobs(p, d.curves)
	if err != nil {
		return nil, err
	}
	cps, err := runStage(ctx, e, e.contactStage(p, byID), cpJobs)
	if err != nil {
		return nil, err
	}
	d.contacts = cps.Values
	d.stages = append(d.stages, cps)
	d.misses += cps.Misses

	indJobs, err := e.indentationJobs(p, cpJobs, cps.Values)
	if err != nil {
		return nil, err
	}
	inds, err := runStage(ctx, e, e.indentationStage(p, byID), indJobs)
	if err != nil {
		return nil, err
	}
	d.indentations = inds.Values
	d.stages = append(d.stages, inds)
	d.misses += inds.Misses

	specJobs, err := e.spectrumJobs(p, byID, indJobs, inds.Values)
	if err != nil {
		return nil, err
	}
	specs, err := runStage(ctx, e, e.spectrumStage(p, byID), specJobs)
	if err != nil {
		return nil, err
	}
	d.spectra = specs.Values
	d.stages = append(d.stages, specs)
	d.misses += specs.Misses
	return d, nil
}

func (e *Executor) hash(fields map[string]any, curveID int) (string, error) {
	h, err := e.hasher.Hash(fields)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "cache key"), "curve_id", curveID)
	}
	return h, nil
}

func (e *Executor) contactJobs(p *plan, curves []prepared) ([]Job[struct{}], error) {
	chain := p.filterChain()
	jobs := make([]Job[struct{}], 0, len(curves))
	for _, c := range curves {
		h, err := e.hash(map[string]any{
			"method":          p.detector.Name,
			"params":          p.detector.Params,
			"spring_constant": c.meta.SpringConstant,
			"tip_radius":      c.meta.TipRadius,
			"tip_geometry":    c.meta.TipGeometry,
			"filters":         chain,
		}, c.id)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, Job[struct{}]{CurveID: c.id, Hash: h})
	}
	return jobs, nil
}

func (e *Executor) contactStage(p *plan, curves map[int]prepared) Stage[struct{}, domain.ContactPoint, domain.ContactEntry] {
	key := func(job Job[struct{}]) domain.ContactKey {
		return domain.ContactKey{CurveID: job.CurveID, Method: p.detector.Name, ParamsHash: job.Hash}
	}
	return Stage[struct{}, domain.ContactPoint, domain.ContactEntry]{
		Name: StageContact,
		Lookup: func(ctx context.Context, jobs []Job[struct{}]) (map[int]domain.ContactPoint, error) {
			keys := make([]domain.ContactKey, len(jobs))
			for i, job := range jobs {
				keys[i] = key(job)
			}
			hits, err := e.cache.GetContactPoints(ctx, keys)
			if err != nil {
				return nil, err
			}
			out := make(map[int]domain.ContactPoint, len(hits))
			for id, entry := range hits {
				out[id] = entry.Point
			}
			return out, nil
		},
		Compute: func(job Job[struct{}]) (domain.ContactPoint, bool) {
			c := curves[job.CurveID]
			return p.detector.Impl.Detect(c.z, c.f, p.detector.Params, c.meta)
		},
		Row: func(job Job[struct{}], cp domain.ContactPoint) domain.ContactEntry {
			meta := curves[job.CurveID].meta
			return domain.ContactEntry{
				ContactKey:     key(job),
				Point:          cp,
				SpringConstant: meta.SpringConstant,
				TipRadius:      meta.TipRadius,
				TipGeometry:    meta.TipGeometry,
			}
		},
		Persist: e.cache.PutContactPoints,
	}
}

func (e *Executor) indentationJobs(p *plan, cpJobs []Job[struct{}], cps map[int]domain.ContactPoint) ([]Job[domain.ContactPoint], error) {
	jobs := make([]Job[domain.ContactPoint], 0, len(cps))
	for _, cpJob := range cpJobs {
		cp, ok := cps[cpJob.CurveID]
		if !ok {
			continue
		}
		h, err := e.hash(map[string]any{
			"contact":    cpJob.Hash,
			"zero_force": p.zeroForce,
		}, cpJob.CurveID)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, Job[domain.ContactPoint]{CurveID: cpJob.CurveID, Hash: h, Input: cp})
	}
	return jobs, nil
}

func (e *Executor) indentationStage(p *plan, curves map[int]prepared) Stage[domain.ContactPoint, domain.IndentationCurve, domain.IndentationEntry] {
	key := func(job Job[domain.ContactPoint]) domain.IndentationKey {
		return domain.IndentationKey{CurveID: job.CurveID, ContactHash: job.Hash}
	}
	return Stage[domain.ContactPoint, domain.IndentationCurve, domain.IndentationEntry]{
		Name: StageIndentation,
		Lookup: func(ctx context.Context, jobs []Job[domain.ContactPoint]) (map[int]domain.IndentationCurve, error) {
			keys := make([]domain.IndentationKey, len(jobs))
			for i, job := range jobs {
				keys[i] = key(job)
			}
			return e.cache.GetIndentations(ctx, keys)
		},
		Compute: func(job Job[domain.ContactPoint]) (domain.IndentationCurve, bool) {
			c := curves[job.CurveID]
			return mechanics.Indentation(c.z, c.f, job.Input, c.meta.SpringConstant, p.zeroForce)
		},
		Row: func(job Job[domain.ContactPoint], curve domain.IndentationCurve) domain.IndentationEntry {
			return domain.IndentationEntry{IndentationKey: key(job), Curve: curve}
		},
		Persist: e.cache.PutIndentations,
	}
}

func (e *Executor) spectrumJobs(
	p *plan,
	curves map[int]prepared,
	indJobs []Job[domain.ContactPoint],
	inds map[int]domain.IndentationCurve,
) ([]Job[domain.IndentationCurve], error) {
	jobs := make([]Job[domain.IndentationCurve], 0, len(inds))
	for _, indJob := range indJobs {
		ind, ok := inds[indJob.CurveID]
		if !ok {
			continue
		}
		meta := curves[indJob.CurveID].meta
		h, err := e.hash(map[string]any{
			"indentation":  indJob.Hash,
			"window":       p.elasticity.Window,
			"order":        p.elasticity.Order,
			"interpolate":  p.elasticity.Interpolate,
			"tip_geometry": meta.TipGeometry,
			"tip_radius":   meta.TipRadius,
			"tip_angle":    meta.TipAngle,
		}, indJob.CurveID)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, Job[domain.IndentationCurve]{CurveID: indJob.CurveID, Hash: h, Input: ind})
	}
	return jobs, nil
}

func (e *Executor) spectrumStage(p *plan, curves map[int]prepared) Stage[domain.IndentationCurve, domain.ElasticitySpectrum, domain.SpectrumEntry] {
	key := func(job Job[domain.IndentationCurve]) domain.SpectrumKey {
		return domain.SpectrumKey{CurveID: job.CurveID, SpectrumHash: job.Hash}
	}
	return Stage[domain.IndentationCurve, domain.ElasticitySpectrum, domain.SpectrumEntry]{
		Name: StageElasticity,
		Lookup: func(ctx context.Context, jobs []Job[domain.IndentationCurve]) (map[int]domain.ElasticitySpectrum, error) {
			keys := make([]domain.SpectrumKey, len(jobs))
			for i, job := range jobs {
				keys[i] = key(job)
			}
			return e.cache.GetSpectra(ctx, keys)
		},
		Compute: func(job Job[domain.IndentationCurve]) (domain.ElasticitySpectrum, bool) {
			return mechanics.Elasticity(job.Input, p.elasticity, curves[job.CurveID].meta)
		},
		Row: func(job Job[domain.IndentationCurve], s domain.ElasticitySpectrum) domain.SpectrumEntry {
			return domain.SpectrumEntry{SpectrumKey: key(job), Spectrum: s}
		},
		Persist: e.cache.PutSpectra,
	}
}
