package fs

import (
	"context"
	"encoding/json"
	"os"
	"slices"

	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CurveStore = (*CurveStore)(nil)

// CurveDTO is the on-disk representation of one curve.
type CurveDTO struct {
	ID             int       `json:"id"`
	Z              []float64 `json:"z"`
	F              []float64 `json:"f"`
	SpringConstant float64   `json:"spring_constant,omitempty"`
	TipRadius      float64   `json:"tip_radius,omitempty"`
	TipGeometry    string    `json:"tip_geometry,omitempty"`
	TipAngle       float64   `json:"tip_angle,omitempty"`
}

// CurveStore is a read-only in-memory curve store.
type CurveStore struct {
	curves map[int]domain.Curve
	ids    []int
}

// NewCurveStore indexes curves by id. Missing metadata falls back to defaults.
func NewCurveStore(curves []domain.Curve, defaults domain.Metadata) (*CurveStore, error) {
	s := &CurveStore{curves: make(map[int]domain.Curve, len(curves))}
	for _, c := range curves {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if _, dup := s.curves[c.ID]; dup {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidCurve, "duplicate curve id"), "curve_id", c.ID)
		}
		c.Metadata = c.Metadata.WithDefaults(defaults)
		s.curves[c.ID] = c
		s.ids = append(s.ids, c.ID)
	}
	slices.Sort(s.ids)
	return s, nil
}

// LoadCurveStore reads a JSON array of curves from path. An empty path yields an empty store.
func LoadCurveStore(path string, defaults domain.Metadata) (*CurveStore, error) {
	if path == "" {
		return NewCurveStore(nil, defaults)
	}
	data, err := os.ReadFile(path) //nolint:gosec // path comes from trusted configuration
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCurveFileReadFailed.Error()), "path", path)
	}
	curves, err := DecodeCurves(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return NewCurveStore(curves, defaults)
}

// DecodeCurves parses a JSON array of curves.
func DecodeCurves(data []byte) ([]domain.Curve, error) {
	var dtos []CurveDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, zerr.Wrap(err, domain.ErrCurveFileParseFailed.Error())
	}
	curves := make([]domain.Curve, len(dtos))
	for i, dto := range dtos {
		curves[i] = domain.Curve{
			ID: dto.ID,
			Z:  dto.Z,
			F:  dto.F,
			Metadata: domain.Metadata{
				SpringConstant: dto.SpringConstant,
				TipRadius:      dto.TipRadius,
				TipGeometry:    domain.TipGeometry(dto.TipGeometry),
				TipAngle:       dto.TipAngle,
			},
		}
	}
	return curves, nil
}

// Get returns the curves with the given ids in request order.
func (s *CurveStore) Get(ctx context.Context, ids []int) ([]domain.Curve, error) {
	if err := ctx.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreUnavailable.Error())
	}
	out := make([]domain.Curve, 0, len(ids))
	for _, id := range ids {
		c, ok := s.curves[id]
		if !ok {
			return nil, zerr.With(zerr.Wrap(domain.ErrCurveNotFound, "get curves"), "curve_id", id)
		}
		out = append(out, c)
	}
	return out, nil
}

// IDs lists every curve id in ascending order.
func (s *CurveStore) IDs(ctx context.Context) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreUnavailable.Error())
	}
	return slices.Clone(s.ids), nil
}

// Len returns the number of stored curves.
func (s *CurveStore) Len() int {
	return len(s.ids)
}
