package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"xfinance/internal/domain/markers"
)

// MarkersRepo guarda tempstate.
type MarkersRepo struct {
	db *sql.DB
}

func NewMarkersRepo(db *sql.DB) *MarkersRepo {
	return &MarkersRepo{db: db}
}

// Set aplica el valor en una transacción: asegura la fila, actualiza el canal
// y, si el valor es 0, borra la fila cuando los cuatro canales quedaron en 0.
func (r *MarkersRepo) Set(ctx context.Context, recordID int64, ch markers.Channel, value int) (bool, error) {
	// el nombre de columna sale de la lista cerrada, nunca del cliente
	col, err := markers.ParseChannel(string(ch))
	if err != nil {
		return false, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO tempstate (state_id_princ)
		SELECT $1
		WHERE EXISTS (SELECT 1 FROM princ WHERE id_princ = $1)
		ON CONFLICT (state_id_princ) DO NOTHING
	`, recordID); err != nil {
		return false, fmt.Errorf("ensure tempstate: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		fmt.Sprintf(`UPDATE tempstate SET %s = $1 WHERE state_id_princ = $2`, string(col)),
		value, recordID,
	)
	if err != nil {
		return false, fmt.Errorf("update tempstate: %w", err)
	}
	n, _ := res.RowsAffected()

	if value == 0 {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM tempstate
			WHERE state_id_princ = $1
			  AND COALESCE(state_loc, 0) = 0
			  AND COALESCE(state_dt_envio, 0) = 0
			  AND COALESCE(state_dt_denvio, 0) = 0
			  AND COALESCE(state_dt_pago, 0) = 0
		`, recordID); err != nil {
			return false, fmt.Errorf("cleanup tempstate: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *MarkersRepo) Get(ctx context.Context, recordID int64) (markers.State, bool, error) {
	var loc, envio, denvio, pago int
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(state_loc, 0),
			COALESCE(state_dt_envio, 0),
			COALESCE(state_dt_denvio, 0),
			COALESCE(state_dt_pago, 0)
		FROM tempstate
		WHERE state_id_princ = $1
	`, recordID).Scan(&loc, &envio, &denvio, &pago)
	if errors.Is(err, sql.ErrNoRows) {
		return markers.State{}, false, nil
	}
	if err != nil {
		return markers.State{}, false, err
	}

	return markers.State{
		RecordID: recordID,
		Values: map[markers.Channel]int{
			markers.ChannelLoc:      loc,
			markers.ChannelDtEnvio:  envio,
			markers.ChannelDtDEnvio: denvio,
			markers.ChannelDtPago:   pago,
		},
	}, true, nil
}
