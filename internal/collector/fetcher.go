package collector

import (
	"context"

	"MiniQuant/internal/model"
)

// Source is one backend able to serve the two acquisition phases and a health probe.
// Implementations must return the classified error types of this package.
type Source interface {
	// Refresh asks the backend to pull the symbol's series from upstream. The body is discarded.
	Refresh(ctx context.Context, symbol string) error
	// Read retrieves the persisted series for symbol.
	Read(ctx context.Context, symbol string) (*model.StockDataset, error)
	Health(ctx context.Context) error
	Name() string
}

type requestIDKey struct{}

// WithRequestID attaches a correlation id that sources forward to the backend.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the id set by WithRequestID, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
