// Package bar exports generated bar files into QuestDB for charting and
// ad-hoc SQL over the derived series.
package bar

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/questdb"
)

// Repository represents the repository for exported bars.
type Repository struct {
	client questdb.QuestDBClient
}

// NewRepository creates a new bar repository.
func NewRepository(client questdb.QuestDBClient) *Repository {
	return &Repository{
		client: client,
	}
}

// Store stores one bar row.
func (r *Repository) Store(ctx context.Context, bar *Bar) error {
	query := `INSERT INTO bars (timestamp, symbol, venue, series, open, high, low, close, volume)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	err := r.client.Exec(ctx, query,
		bar.Timestamp, bar.Symbol, bar.Venue, bar.Series,
		bar.Open, bar.High, bar.Low, bar.Close, bar.Volume)

	if err != nil {
		return fmt.Errorf("failed to store bar: %w", err)
	}

	return nil
}

// StoreBatch stores a batch of bar rows.
func (r *Repository) StoreBatch(ctx context.Context, bars []*Bar) error {
	if len(bars) == 0 {
		return nil
	}

	// Use CopyFrom for better performance
	_, err := r.client.CopyFrom(
		ctx,
		pgx.Identifier{"bars"},
		[]string{"timestamp", "symbol", "venue", "series", "open", "high", "low", "close", "volume"},
		pgx.CopyFromSlice(len(bars), func(i int) ([]any, error) {
			bar := bars[i]
			return []any{
				bar.Timestamp,
				bar.Symbol,
				bar.Venue,
				bar.Series,
				bar.Open,
				bar.High,
				bar.Low,
				bar.Close,
				bar.Volume,
			}, nil
		}),
	)

	if err != nil {
		return fmt.Errorf("failed to copy bar batch: %w", err)
	}

	return nil
}

// GetByFilter retrieves bar rows by filter.
func (r *Repository) GetByFilter(ctx context.Context, filter BarFilter) ([]*Bar, error) {
	query := "SELECT timestamp, symbol, venue, series, open, high, low, close, volume FROM bars WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.Symbol != "" {
		query += fmt.Sprintf(" AND symbol = $%d", argIndex)
		args = append(args, filter.Symbol)
		argIndex++
	}

	if filter.Venue != "" {
		query += fmt.Sprintf(" AND venue = $%d", argIndex)
		args = append(args, filter.Venue)
		argIndex++
	}

	if filter.Series != "" {
		query += fmt.Sprintf(" AND series = $%d", argIndex)
		args = append(args, filter.Series)
		argIndex++
	}

	if filter.From != nil {
		query += fmt.Sprintf(" AND timestamp >= $%d", argIndex)
		args = append(args, *filter.From)
		argIndex++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND timestamp <= $%d", argIndex)
		args = append(args, *filter.To)
		argIndex++
	}

	query += " ORDER BY timestamp ASC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
	}

	rows, err := r.client.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bars: %w", err)
	}
	defer rows.Close()

	var bars []*Bar
	for rows.Next() {
		bar := &Bar{}
		err := rows.Scan(&bar.Timestamp, &bar.Symbol, &bar.Venue, &bar.Series,
			&bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bar: %w", err)
		}
		bars = append(bars, bar)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return bars, nil
}
