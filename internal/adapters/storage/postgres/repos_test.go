package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xfinance/internal/domain/columns"
	"xfinance/internal/domain/markers"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// passThrough deja pasar []int64 tal cual, como hace pgx con ANY($1).
type passThrough struct{}

func (passThrough) ConvertValue(v any) (driver.Value, error) { return v, nil }

func TestPermissionsRepo_ColumnsForRole(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.ValueConverterOption(passThrough{}))
	require.NoError(t, err)
	defer db.Close()
	repo := NewPermissionsRepo(db)

	mock.ExpectQuery(`SELECT pm.coluna\s+FROM permi pm\s+WHERE pm.user_papel = \$1\s+AND \(btrim\(pm.coluna\) = ANY\(\$2\)`).
		WithArgs("Inspetor", columns.Default().Names()).
		WillReturnRows(sqlmock.NewRows([]string{"coluna"}).
			AddRow("dt_entregue").
			AddRow(" loc ").
			AddRow(""))

	cols, err := repo.ColumnsForRole(context.Background(), "Inspetor")
	require.NoError(t, err)
	assert.Equal(t, []string{"dt_entregue", "loc"}, cols)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPermissionsRepo_Roles(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPermissionsRepo(db)

	mock.ExpectQuery(`SELECT DISTINCT user_papel`).
		WillReturnRows(sqlmock.NewRows([]string{"user_papel"}).AddRow("BackOffice").AddRow("admin"))

	roles, err := repo.Roles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"BackOffice", "admin"}, roles)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGridRepo_QueryRowsNormalizesValues(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGridRepo(db)

	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"obs", "dt_inspecao", "honorario", "prazo"}).
			AddRow([]byte("texto"), day, 10.5, nil))

	rows, err := repo.QueryRows(context.Background(), "SELECT x FROM princ p LIMIT $1", 2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "texto", rows[0]["obs"])
	assert.Equal(t, "2024-01-02", rows[0]["dt_inspecao"])
	assert.Equal(t, 10.5, rows[0]["honorario"])
	assert.Nil(t, rows[0]["prazo"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGridRepo_CountRecords(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGridRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM princ`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	n, err := repo.CountRecords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestDeadlineRepo_SaveDeadline(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDeadlineRepo(db)

	mock.ExpectExec(`UPDATE princ\s+SET prazo = \$1\s+WHERE id_princ = \$2\s+AND prazo IS DISTINCT FROM \$1`).
		WithArgs(4, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SaveDeadline(context.Background(), 4, 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkersRepo_SetNonZero(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMarkersRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO tempstate`).WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE tempstate SET state_dt_pago = $1 WHERE state_id_princ = $2`)).
		WithArgs(3, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ok, err := repo.Set(context.Background(), 7, markers.ChannelDtPago, 3)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkersRepo_SetZeroCleansUp(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMarkersRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO tempstate`).WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE tempstate SET state_loc`).WithArgs(0, int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM tempstate`).WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ok, err := repo.Set(context.Background(), 7, markers.ChannelLoc, 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkersRepo_SetMissingRecord(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMarkersRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO tempstate`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE tempstate`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	ok, err := repo.Set(context.Background(), 404, markers.ChannelLoc, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMarkersRepo_SetRejectsUnknownChannel(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMarkersRepo(db)

	_, err := repo.Set(context.Background(), 1, markers.Channel("obs; DROP TABLE princ"), 1)
	assert.ErrorIs(t, err, markers.ErrUnknownChannel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkersRepo_SetRollsBackOnError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMarkersRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO tempstate`).WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	_, err := repo.Set(context.Background(), 1, markers.ChannelLoc, 1)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkersRepo_Get(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMarkersRepo(db)

	mock.ExpectQuery(`FROM tempstate`).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"a", "b", "c", "d"}).AddRow(1, 0, 2, 3))
	st, ok, err := repo.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, st.Get(markers.ChannelDtDEnvio))

	mock.ExpectQuery(`FROM tempstate`).WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"a", "b", "c", "d"}))
	_, ok, err = repo.Get(context.Background(), 4)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestActionsRepo(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.ValueConverterOption(passThrough{}))
	require.NoError(t, err)
	defer db.Close()
	repo := NewActionsRepo(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT nick FROM users`).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"nick"}).AddRow("ana"))
	nick, ok, err := repo.UserNick(ctx, 3)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ana", nick)

	mock.ExpectQuery(`SELECT nick FROM users`).WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"nick"}))
	_, ok, err = repo.UserNick(ctx, 9)
	require.NoError(t, err)
	assert.False(t, ok)

	ids := []int64{10, 11}
	mock.ExpectExec(`UPDATE princ\s+SET id_user_guilty = \$1`).WithArgs(int64(3), ids).
		WillReturnResult(sqlmock.NewResult(0, 2))
	n, err := repo.Forward(ctx, ids, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	mock.ExpectExec(`DELETE FROM princ WHERE id_princ = ANY\(\$1\)`).WithArgs(ids).
		WillReturnResult(sqlmock.NewResult(0, 1))
	n, err = repo.Delete(ctx, ids)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateURL(t *testing.T) {
	u, err := migrateURL("postgres://u:p@localhost:5432/x?sslmode=disable")
	require.NoError(t, err)
	assert.Equal(t, "pgx5://u:p@localhost:5432/x?sslmode=disable", u)

	u, err = migrateURL("postgresql://h/x")
	require.NoError(t, err)
	assert.Equal(t, "pgx5://h/x", u)

	_, err = migrateURL("host=localhost dbname=x")
	assert.Error(t, err)
}
