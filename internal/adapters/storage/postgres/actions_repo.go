package postgres

import (
	"context"
	"database/sql"
	"errors"
)

// ActionsRepo implementa encaminhar y excluir sobre princ.
type ActionsRepo struct {
	db *sql.DB
}

func NewActionsRepo(db *sql.DB) *ActionsRepo {
	return &ActionsRepo{db: db}
}

func (r *ActionsRepo) UserNick(ctx context.Context, userID int64) (string, bool, error) {
	var nick string
	err := r.db.QueryRowContext(ctx, `SELECT nick FROM users WHERE id_user = $1`, userID).Scan(&nick)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return nick, true, nil
}

func (r *ActionsRepo) Forward(ctx context.Context, ids []int64, userID int64) (int, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE princ
		SET id_user_guilty = $1
		WHERE id_princ = ANY($2)
	`, userID, ids)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// Delete borra los registros; tempstate cae por ON DELETE CASCADE.
func (r *ActionsRepo) Delete(ctx context.Context, ids []int64) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM princ WHERE id_princ = ANY($1)`, ids)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}
