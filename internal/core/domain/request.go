package domain

import "math"

// Filters selects the algorithms of every family for one request.
// Regular filters are applied in order. Only the first contact-point detector is active.
type Filters struct {
	Regular  Algorithms `json:"regular,omitempty" validate:"dive"`
	CPFilter Algorithms `json:"cp_filters,omitempty" validate:"max=1,dive"`
	FModels  Algorithms `json:"f_models,omitempty" validate:"dive"`
	EModels  Algorithms `json:"e_models,omitempty" validate:"dive"`
}

// Detector returns the active contact-point detector, if any.
func (f Filters) Detector() (AlgorithmConfig, bool) {
	if len(f.CPFilter) == 0 {
		return AlgorithmConfig{}, false
	}
	return f.CPFilter[0], true
}

// HasModels reports whether any force or elastic model is requested.
func (f Filters) HasModels() bool {
	return len(f.FModels) > 0 || len(f.EModels) > 0
}

// MetadataOverrides replaces per-curve metadata for one request.
type MetadataOverrides struct {
	SpringConstant *float64 `json:"spring_constant,omitempty" validate:"omitempty,gt=0"`
	TipRadius      *float64 `json:"tip_radius,omitempty" validate:"omitempty,gt=0"`
	TipGeometry    *string  `json:"tip_geometry,omitempty" validate:"omitempty,oneof=sphere cylinder cone pyramid"`
	TipAngle       *float64 `json:"tip_angle,omitempty" validate:"omitempty,gt=0,lt=90"`
}

// ElasticitySettings parameterizes the elasticity spectrum stage.
type ElasticitySettings struct {
	Window      int  `json:"window" yaml:"window" validate:"gte=1"`
	Order       int  `json:"order" yaml:"order" validate:"gte=0"`
	Interpolate bool `json:"interpolate" yaml:"interpolate"`
}

// DefaultElasticitySettings returns the spectrum settings used when a request omits them.
func DefaultElasticitySettings() ElasticitySettings {
	return ElasticitySettings{Window: 61, Order: 2, Interpolate: true}
}

// Request asks for the derived graphs of a set of curves.
type Request struct {
	CurveIDs          []int               `json:"curve_ids" validate:"required,min=1,dive,gte=0"`
	Filters           Filters             `json:"filters"`
	Single            bool                `json:"single"`
	MetadataOverrides *MetadataOverrides  `json:"metadata_overrides,omitempty"`
	ZeroForce         *bool               `json:"zero_force,omitempty"`
	Elasticity        *ElasticitySettings `json:"elasticity,omitempty"`
}

// ZeroForceEnabled reports whether the contact force is subtracted. It defaults to true.
func (r *Request) ZeroForceEnabled() bool {
	return r.ZeroForce == nil || *r.ZeroForce
}

// SingleMode reports whether fitted-model overlays are produced. A request for exactly
// one curve with a model switches single mode on.
func (r *Request) SingleMode() bool {
	if r.Single {
		return true
	}
	return len(r.CurveIDs) == 1 && r.Filters.HasModels()
}

// Series is one plotted curve.
type Series struct {
	ID string    `json:"curve_id"`
	X  []float64 `json:"x"`
	Y  []float64 `json:"y"`
}

// Domain is the bounding box over all plotted samples of a graph.
type Domain struct {
	XMin float64 `json:"xMin"`
	XMax float64 `json:"xMax"`
	YMin float64 `json:"yMin"`
	YMax float64 `json:"yMax"`
}

// FitParams carries the fitted parameters of one model on one curve.
type FitParams struct {
	CurveIndex int       `json:"curve_index"`
	Model      string    `json:"model"`
	Params     []float64 `json:"params"`
	R2         float64   `json:"r2"`
}

// Graph is one of the three response graphs.
type Graph struct {
	Curves    []Series    `json:"curves"`
	Domain    *Domain     `json:"domain"`
	FitParams []FitParams `json:"fit_params,omitempty"`
}

// Add appends a series and widens the domain to include it.
func (g *Graph) Add(s Series) {
	g.Curves = append(g.Curves, s)
	for i := range s.X {
		if i >= len(s.Y) {
			break
		}
		x, y := s.X[i], s.Y[i]
		if !finite(x) || !finite(y) {
			continue
		}
		if g.Domain == nil {
			g.Domain = &Domain{XMin: x, XMax: x, YMin: y, YMax: y}
			continue
		}
		g.Domain.XMin = min(g.Domain.XMin, x)
		g.Domain.XMax = max(g.Domain.XMax, x)
		g.Domain.YMin = min(g.Domain.YMin, y)
		g.Domain.YMax = max(g.Domain.YMax, y)
	}
}

// Response carries the three graphs derived for a request.
type Response struct {
	ForceVsPosition    Graph `json:"force_vs_position"`
	ForceVsIndentation Graph `json:"force_vs_indentation"`
	ElasticitySpectrum Graph `json:"elasticity_spectrum"`
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
