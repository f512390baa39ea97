package ports

import (
	"context"

	"go.trai.ch/nanoindent/internal/core/domain"
)

// CurveStore provides read-only access to raw curves.
//
//go:generate mockgen -source=curve_store.go -destination=mocks/mock_curve_store.go -package=mocks
type CurveStore interface {
	// Get returns the curves with the given ids in request order.
	// Unknown ids yield domain.ErrCurveNotFound.
	Get(ctx context.Context, ids []int) ([]domain.Curve, error)

	// IDs lists every curve id in ascending order.
	IDs(ctx context.Context) ([]int, error)
}
