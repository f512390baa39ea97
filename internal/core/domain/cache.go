package domain

// NoFilters is the hash token standing in for an empty pre-processing chain.
const NoFilters = "no_filters"

// ContactKey addresses a cached contact point.
type ContactKey struct {
	CurveID    int    `json:"curve_id"`
	Method     string `json:"method"`
	ParamsHash string `json:"params_hash"`
}

// ContactEntry is a row of the contact-point table.
type ContactEntry struct {
	ContactKey
	Point          ContactPoint `json:"cp_value"`
	SpringConstant float64      `json:"spring_constant"`
	TipRadius      float64      `json:"tip_radius"`
	TipGeometry    TipGeometry  `json:"tip_geometry"`
}

// IndentationKey addresses a cached indentation curve.
type IndentationKey struct {
	CurveID     int    `json:"curve_id"`
	ContactHash string `json:"contact_hash"`
}

// IndentationEntry is a row of the indentation table.
type IndentationEntry struct {
	IndentationKey
	Curve IndentationCurve `json:"curve"`
}

// SpectrumKey addresses a cached elasticity spectrum.
type SpectrumKey struct {
	CurveID      int    `json:"curve_id"`
	SpectrumHash string `json:"spectrum_hash"`
}

// SpectrumEntry is a row of the elasticity table.
type SpectrumEntry struct {
	SpectrumKey
	Spectrum ElasticitySpectrum `json:"spectrum"`
}
