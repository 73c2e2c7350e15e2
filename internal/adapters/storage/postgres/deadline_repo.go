package postgres

import (
	"context"
	"database/sql"
)

// DeadlineRepo persiste el prazo calculado en princ.
type DeadlineRepo struct {
	db *sql.DB
}

func NewDeadlineRepo(db *sql.DB) *DeadlineRepo {
	return &DeadlineRepo{db: db}
}

// SaveDeadline es idempotente: no toca la fila si el valor ya está guardado.
func (r *DeadlineRepo) SaveDeadline(ctx context.Context, recordID int64, days int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE princ
		SET prazo = $1
		WHERE id_princ = $2
		  AND prazo IS DISTINCT FROM $1
	`, days, recordID)
	return err
}
