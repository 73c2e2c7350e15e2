package postgres

import (
	"context"
	"database/sql"
	"time"
)

// GridRepo ejecuta el SQL que arma grid.Builder.
type GridRepo struct {
	db *sql.DB
}

func NewGridRepo(db *sql.DB) *GridRepo {
	return &GridRepo{db: db}
}

// QueryRows devuelve cada fila como alias => valor.
// Las fechas salen como "2006-01-02" y los []byte como string.
func (r *GridRepo) QueryRows(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, 64)
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(map[string]any, len(cols))
		for i, c := range cols {
			row[c] = normalizeValue(values[i])
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *GridRepo) CountRecords(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM princ`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.Format("2006-01-02")
	case []byte:
		return string(t)
	default:
		return v
	}
}
