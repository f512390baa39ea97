package ports

import (
	"context"

	"go.trai.ch/nanoindent/internal/core/domain"
)

// Pipeline processes curve requests end to end.
//
//go:generate mockgen -source=pipeline.go -destination=mocks/mock_pipeline.go -package=mocks
type Pipeline interface {
	// Process derives the three response graphs for the requested curves.
	Process(ctx context.Context, req *domain.Request) (*domain.Response, error)

	// Scan fits elastic models over every stored curve chunk by chunk, calling emit
	// after each chunk. It stops early when ctx is cancelled or emit fails.
	Scan(ctx context.Context, req *domain.ScanRequest, emit func(domain.ScanChunk) error) error
}
