// Package domain holds the core types of the force-curve processing pipeline.
package domain

import (
	"math"
	"strings"

	"go.trai.ch/zerr"
)

// TipGeometry is the shape of the indenter tip.
type TipGeometry string

const (
	// GeometrySphere is a spherical tip described by its radius.
	GeometrySphere TipGeometry = "sphere"
	// GeometryCylinder is a flat cylindrical punch described by its radius.
	GeometryCylinder TipGeometry = "cylinder"
	// GeometryCone is a conical tip described by its half-opening angle.
	GeometryCone TipGeometry = "cone"
	// GeometryPyramid is a four-sided pyramidal tip described by its half-opening angle.
	GeometryPyramid TipGeometry = "pyramid"
)

// ParseTipGeometry normalizes s and checks it names a supported geometry.
func ParseTipGeometry(s string) (TipGeometry, error) {
	g := TipGeometry(strings.ToLower(strings.TrimSpace(s)))
	switch g {
	case GeometrySphere, GeometryCylinder, GeometryCone, GeometryPyramid:
		return g, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrUnknownGeometry, "parse tip geometry"), "geometry", s)
	}
}

const (
	// DefaultSpringConstant is used when a curve carries no usable spring constant [N/m].
	DefaultSpringConstant = 1.0
	// DefaultTipRadius is used when a curve carries no usable tip radius [m].
	DefaultTipRadius = 1e-5
	// DefaultTipAngle is the half-opening angle assumed for cones and pyramids [deg].
	DefaultTipAngle = 30.0
)

// Metadata describes the instrument and tip a curve was acquired with.
type Metadata struct {
	SpringConstant float64     `json:"spring_constant" yaml:"spring_constant"`
	TipRadius      float64     `json:"tip_radius" yaml:"tip_radius"`
	TipGeometry    TipGeometry `json:"tip_geometry" yaml:"tip_geometry"`
	TipAngle       float64     `json:"tip_angle" yaml:"tip_angle"`
}

// DefaultMetadata returns the metadata assumed for curves that carry none.
func DefaultMetadata() Metadata {
	return Metadata{
		SpringConstant: DefaultSpringConstant,
		TipRadius:      DefaultTipRadius,
		TipGeometry:    GeometrySphere,
		TipAngle:       DefaultTipAngle,
	}
}

// WithDefaults replaces every missing or unusable field of m with the matching field of def.
func (m Metadata) WithDefaults(def Metadata) Metadata {
	if !positive(m.SpringConstant) {
		m.SpringConstant = def.SpringConstant
	}
	if !positive(m.TipRadius) {
		m.TipRadius = def.TipRadius
	}
	if g, err := ParseTipGeometry(string(m.TipGeometry)); err == nil {
		m.TipGeometry = g
	} else {
		m.TipGeometry = def.TipGeometry
	}
	if !positive(m.TipAngle) {
		m.TipAngle = def.TipAngle
	}
	return m
}

// Override applies the non-nil fields of o on top of m.
func (m Metadata) Override(o *MetadataOverrides) Metadata {
	if o == nil {
		return m
	}
	if o.SpringConstant != nil {
		m.SpringConstant = *o.SpringConstant
	}
	if o.TipRadius != nil {
		m.TipRadius = *o.TipRadius
	}
	if o.TipGeometry != nil {
		m.TipGeometry = TipGeometry(*o.TipGeometry)
	}
	if o.TipAngle != nil {
		m.TipAngle = *o.TipAngle
	}
	return m
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Curve is one raw force-displacement measurement. Curves are immutable once loaded.
type Curve struct {
	ID       int
	Z        []float64
	F        []float64
	Metadata Metadata
}

// Validate checks that the position and force arrays pair up.
func (c *Curve) Validate() error {
	if len(c.Z) != len(c.F) {
		err := zerr.Wrap(ErrInvalidCurve, "position and force lengths differ")
		err = zerr.With(err, "curve_id", c.ID)
		err = zerr.With(err, "z_len", len(c.Z))
		return zerr.With(err, "f_len", len(c.F))
	}
	return nil
}

// ContactPoint is the detected onset of tip-sample contact.
type ContactPoint struct {
	Z float64 `json:"z"`
	F float64 `json:"f"`
}

// IndentationCurve is force against indentation depth, starting at the contact point.
type IndentationCurve struct {
	Zi []float64 `json:"zi"`
	Fi []float64 `json:"fi"`
}

// Len returns the number of samples.
func (c IndentationCurve) Len() int { return len(c.Zi) }

// ElasticitySpectrum is the apparent Young's modulus against indentation depth.
type ElasticitySpectrum struct {
	Ze []float64 `json:"ze"`
	Ee []float64 `json:"ee"`
}

// Len returns the number of samples.
func (s ElasticitySpectrum) Len() int { return len(s.Ze) }

// FitResult is the outcome of a model fit. It is never cached.
type FitResult struct {
	Params []float64
	X      []float64
	Y      []float64
	R2     float64
}
