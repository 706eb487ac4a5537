package store

import (
	"context"
	"errors"

	"videotube/internal/platform/store/ch"
)

// chAdapter narrows *ch.CH to Clickhouse; inserts take [][]any batches
type chAdapter struct{ c *ch.CH }

func (a *chAdapter) Insert(ctx context.Context, table string, data any) error {
	batch, ok := data.([][]any)
	if !ok {
		return errors.New("store: clickhouse insert wants [][]any")
	}
	return a.c.Insert(ctx, table, batch)
}

func (a *chAdapter) Exec(ctx context.Context, sql string, args ...any) error {
	return a.c.Exec(ctx, sql, args...)
}

func (a *chAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := a.c.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{r}, nil
}

func (a *chAdapter) Ping(ctx context.Context) error {
	if a == nil || a.c == nil {
		return errors.New("store: clickhouse not open")
	}
	return a.c.Ping(ctx)
}

func (a *chAdapter) Close() error { return a.c.Close() }

// chRows drops the error from ch.Rows.Close
type chRows struct{ ch.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }
