package store

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return &PostgresStore{pool: mock}, mock
}

func TestPostgresStore_SaveRun(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO runs`).
		WithArgs(pgxmock.AnyArg(), "cases.csv", 2, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	run, err := s.SaveRun(context.Background(), "cases.csv", computedRows(t))
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, 2, run.RowCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetRun_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, source, row_count, rows, created_at FROM runs WHERE id = \$1`).
		WithArgs("nonexistent").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetRun(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetRun(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT id, source, row_count, rows, created_at FROM runs WHERE id = \$1`).
		WithArgs("run-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "source", "row_count", "rows", "created_at"}).
			AddRow("run-1", "cases.csv", 1,
				`[{"dmc":"X-0","delta_ev":0.4,"v_ev":0,"delta_op_ev":0.6,"t_k":300,"r":"inf","sin2phi":0,"delta_mix_ev":0.4,"t_used_k":300,"kbt_ev":0.0258,"theta_t":0.064,"tau":0,"crs_auto":0,"crs_label":"0","unclassified":false}]`,
				now))

	run, err := s.GetRun(context.Background(), "run-1")
	require.NoError(t, err)
	require.Len(t, run.Rows, 1)
	assert.Equal(t, "X-0", run.Rows[0].DMC)
	assert.True(t, math.IsInf(run.Rows[0].R, 1), "R should decode as +Inf")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListRuns(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT id, source, row_count, created_at FROM runs ORDER BY created_at DESC LIMIT \$1`).
		WithArgs(10).
		WillReturnRows(pgxmock.NewRows([]string{"id", "source", "row_count", "created_at"}).
			AddRow("run-1", "a.csv", 3, now).
			AddRow("run-2", "b.csv", 1, now.Add(-time.Hour)))

	runs, err := s.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-1", runs[0].ID)
	assert.Nil(t, runs[0].Rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
