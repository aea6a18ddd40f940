package bar

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock

// BarRepository represents the repository interface for exported bars.
type BarRepository interface {
	Store(ctx context.Context, bar *Bar) error
	StoreBatch(ctx context.Context, bars []*Bar) error
	GetByFilter(ctx context.Context, filter BarFilter) ([]*Bar, error)
}
