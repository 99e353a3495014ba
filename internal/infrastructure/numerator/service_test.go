package numerator

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/core/id"
	corenumerator "stayhub/internal/core/numerator"
)

func newMockService(t *testing.T) (*Service, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return New(QuerierProviderFunc(func(context.Context) Querier { return mock })), mock
}

func TestGetNextNumber(t *testing.T) {
	svc, mock := newMockService(t)
	tenantID := id.New()
	period := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO number_sequences`).
		WithArgs(tenantID, "INV_2026").
		WillReturnRows(pgxmock.NewRows([]string{"last_value"}).AddRow(int64(42)))

	got, err := svc.GetNextNumber(context.Background(), tenantID, corenumerator.DefaultConfig("INV"), period)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-00042", got)
}

func TestGetNextNumber_RequiresTenant(t *testing.T) {
	svc, _ := newMockService(t)

	_, err := svc.GetNextNumber(context.Background(), id.Nil(), corenumerator.DefaultConfig("INV"), time.Now())
	assert.Error(t, err)
}

func TestGetNextNumber_QueryError(t *testing.T) {
	svc, mock := newMockService(t)
	mock.ExpectQuery(`INSERT INTO number_sequences`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("deadlock detected"))

	_, err := svc.GetNextNumber(context.Background(), id.New(), corenumerator.DefaultConfig("INV"), time.Now())
	assert.ErrorContains(t, err, "deadlock detected")
}

func TestSetNextNumber(t *testing.T) {
	svc, mock := newMockService(t)
	tenantID := id.New()
	cfg := corenumerator.Config{Prefix: "PAY", PadWidth: 4, ResetPeriod: corenumerator.ResetNever}

	mock.ExpectQuery(`INSERT INTO number_sequences .+ DO UPDATE SET last_value = \$3`).
		WithArgs(tenantID, "PAY", int64(100)).
		WillReturnRows(pgxmock.NewRows([]string{"last_value"}).AddRow(int64(100)))

	require.NoError(t, svc.SetNextNumber(context.Background(), tenantID, cfg, time.Now(), 100))
	assert.Error(t, svc.SetNextNumber(context.Background(), tenantID, cfg, time.Now(), -1))
}
