package postgres

import (
	"context"
	"database/sql"
	"strings"

	"xfinance/internal/domain/columns"
)

// PermissionsRepo lee la tabla permi.
type PermissionsRepo struct {
	db    *sql.DB
	known []string
}

func NewPermissionsRepo(db *sql.DB) *PermissionsRepo {
	return &PermissionsRepo{db: db, known: columns.Default().Names()}
}

// ColumnsForRole devuelve las columnas permitidas al papel. Una fila de permi
// que no es campo del catálogo ni columna de princ se descarta: proyectarla
// haría fallar toda la consulta del grid.
func (r *PermissionsRepo) ColumnsForRole(ctx context.Context, role string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT pm.coluna
		FROM permi pm
		WHERE pm.user_papel = $1
		  AND (btrim(pm.coluna) = ANY($2)
		       OR EXISTS (
		           SELECT 1
		           FROM information_schema.columns ic
		           WHERE ic.table_schema = current_schema()
		             AND ic.table_name = 'princ'
		             AND ic.column_name = btrim(pm.coluna)))
		ORDER BY pm.coluna
	`, role, r.known)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0, 32)
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return nil, err
		}
		col = strings.TrimSpace(col)
		if col != "" {
			out = append(out, col)
		}
	}
	return out, rows.Err()
}

func (r *PermissionsRepo) Roles(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT user_papel
		FROM permi
		ORDER BY user_papel
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		out = append(out, role)
	}
	return out, rows.Err()
}
