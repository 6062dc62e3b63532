package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/afisha-analytics/infrastructure/database/postgres"
	"github.com/vfg2006/afisha-analytics/internal/domain"
)

func setupReportRepository(t *testing.T) (*reportRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := &reportRepository{
		conn: &postgres.Connection{DB: db},
		now:  func() time.Time { return time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC) },
	}
	return repo, mock
}

func TestReportRepository_SaveOrUpdate(t *testing.T) {
	repo, mock := setupReportRepository(t)

	generatedAt := time.Date(2024, 3, 30, 3, 0, 0, 0, time.UTC)
	entry := &domain.ReportEntry{
		ID:          "abc123",
		Fingerprint: "f1",
		GeneratedAt: generatedAt,
		Report:      &domain.Report{ID: "abc123", Fingerprint: "f1"},
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO analytics_reports (id,fingerprint,generated_at,payload) VALUES ($1,$2,$3,$4)")).
		WithArgs("abc123", "f1", generatedAt, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.SaveOrUpdate(context.Background(), entry)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_SaveOrUpdateUniqueViolation(t *testing.T) {
	repo, mock := setupReportRepository(t)

	mock.ExpectExec("INSERT INTO analytics_reports").
		WillReturnError(&pq.Error{Code: uniqueViolation, Message: "duplicate key value"})

	err := repo.SaveOrUpdate(context.Background(), &domain.ReportEntry{ID: "x", Report: &domain.Report{}})
	assert.True(t, errors.Is(err, ErrDuplicateReport))
}

func TestReportRepository_SaveOrUpdateNil(t *testing.T) {
	repo, _ := setupReportRepository(t)

	assert.Error(t, repo.SaveOrUpdate(context.Background(), &domain.ReportEntry{ID: "x"}))
}

func TestReportRepository_GetByID(t *testing.T) {
	repo, mock := setupReportRepository(t)

	now := time.Date(2024, 3, 30, 3, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "fingerprint", "generated_at", "payload", "created_at", "updated_at"}).
		AddRow("abc123", "f1", now, []byte(`{"id":"abc123","fingerprint":"f1","summary":{"visits":3,"total_revenue":"10.5"}}`), now, now)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, fingerprint, generated_at, payload, created_at, updated_at FROM analytics_reports WHERE id = $1")).
		WithArgs("abc123").
		WillReturnRows(rows)

	entry, err := repo.GetByID(context.Background(), "abc123")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "f1", entry.Fingerprint)
	assert.Equal(t, 3, entry.Report.Summary.Visits)
	assert.Equal(t, "10.5", entry.Report.Summary.TotalRevenue.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_GetByIDNotFound(t *testing.T) {
	repo, mock := setupReportRepository(t)

	mock.ExpectQuery("SELECT (.+) FROM analytics_reports").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	entry, err := repo.GetByID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, entry)
}

func TestReportRepository_GetLatest(t *testing.T) {
	repo, mock := setupReportRepository(t)

	now := time.Date(2024, 3, 30, 3, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "fingerprint", "generated_at", "payload", "created_at", "updated_at"}).
		AddRow("latest", "f2", now, []byte(`{"id":"latest"}`), now, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM analytics_reports ORDER BY generated_at DESC LIMIT 1")).
		WillReturnRows(rows)

	entry, err := repo.GetLatest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "latest", entry.Report.ID)
}

func TestReportRepository_ListSummaries(t *testing.T) {
	repo, mock := setupReportRepository(t)

	first := time.Date(2024, 3, 30, 3, 0, 0, 0, time.UTC)
	second := first.AddDate(0, 0, -1)
	rows := sqlmock.NewRows([]string{"id", "fingerprint", "generated_at", "created_at"}).
		AddRow("b", "f2", first, first).
		AddRow("a", "f1", second, second)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, fingerprint, generated_at, created_at FROM analytics_reports ORDER BY generated_at DESC LIMIT 10")).
		WillReturnRows(rows)

	items, err := repo.ListSummaries(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, "f1", items[1].Fingerprint)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_DeleteOlderThan(t *testing.T) {
	repo, mock := setupReportRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM analytics_reports WHERE generated_at < $1")).
		WithArgs(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)).
		WillReturnResult(sqlmock.NewResult(0, 4))

	deleted, err := repo.DeleteOlderThan(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
