// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/afisha-analytics/infrastructure/database/postgres"
	"github.com/vfg2006/afisha-analytics/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	reportTable = "analytics_reports"

	uniqueViolation = "23505"
)

var ErrDuplicateReport = errors.New("relatório já registrado com outro id")

type ReportRepository interface {
	SaveOrUpdate(ctx context.Context, entry *domain.ReportEntry) error
	GetByID(ctx context.Context, id string) (*domain.ReportEntry, error)
	GetLatest(ctx context.Context) (*domain.ReportEntry, error)
	ListSummaries(ctx context.Context, limit int) ([]*domain.ReportHistoryItem, error)
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

type reportRepository struct {
	conn *postgres.Connection
	now  func() time.Time
}

func NewReportRepository(conn *postgres.Connection) ReportRepository {
	return &reportRepository{
		conn: conn,
		now:  time.Now,
	}
}

// SaveOrUpdate grava o relatório; um fingerprint já existente tem o payload substituído
func (r *reportRepository) SaveOrUpdate(ctx context.Context, entry *domain.ReportEntry) error {
	if entry == nil || entry.Report == nil {
		return errors.New("relatório não pode ser nulo")
	}

	payload, err := json.Marshal(entry.Report)
	if err != nil {
		return errors.Wrap(err, "erro ao serializar relatório")
	}

	query, args, err := squirrel.
		Insert(reportTable).
		Columns("id", "fingerprint", "generated_at", "payload").
		Values(entry.ID, entry.Fingerprint, entry.GeneratedAt, payload).
		Suffix(`
			ON CONFLICT (fingerprint) DO UPDATE SET
				id = EXCLUDED.id,
				generated_at = EXCLUDED.generated_at,
				payload = EXCLUDED.payload,
				updated_at = CURRENT_TIMESTAMP`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir query de inserção")
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return errors.Wrap(ErrDuplicateReport, pqErr.Message)
		}
		return errors.Wrap(err, "erro ao salvar relatório")
	}

	return nil
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*domain.ReportEntry, error) {
	query, args, err := squirrel.
		Select("id", "fingerprint", "generated_at", "payload", "created_at", "updated_at").
		From(reportTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	return r.scanEntry(r.conn.QueryRowContext(ctx, query, args...))
}

func (r *reportRepository) GetLatest(ctx context.Context) (*domain.ReportEntry, error) {
	query, args, err := squirrel.
		Select("id", "fingerprint", "generated_at", "payload", "created_at", "updated_at").
		From(reportTable).
		OrderBy("generated_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	return r.scanEntry(r.conn.QueryRowContext(ctx, query, args...))
}

func (r *reportRepository) ListSummaries(ctx context.Context, limit int) ([]*domain.ReportHistoryItem, error) {
	query, args, err := squirrel.
		Select("id", "fingerprint", "generated_at", "created_at").
		From(reportTable).
		OrderBy("generated_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	items := make([]*domain.ReportHistoryItem, 0)
	for rows.Next() {
		item := &domain.ReportHistoryItem{}
		if err := rows.Scan(&item.ID, &item.Fingerprint, &item.GeneratedAt, &item.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear histórico")
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return items, nil
}

// DeleteOlderThan remove relatórios gerados há mais de days dias e retorna quantos foram apagados
func (r *reportRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	cutoff := r.now().AddDate(0, 0, -days)

	query, args, err := squirrel.
		Delete(reportTable).
		Where(squirrel.Lt{"generated_at": cutoff}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao construir query de remoção")
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrap(err, "erro ao remover relatórios antigos")
	}

	return result.RowsAffected()
}

func (r *reportRepository) scanEntry(row *sql.Row) (*domain.ReportEntry, error) {
	var (
		entry   domain.ReportEntry
		payload []byte
	)

	err := row.Scan(&entry.ID, &entry.Fingerprint, &entry.GeneratedAt, &payload, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "erro ao escanear relatório")
	}

	entry.Report = &domain.Report{}
	if err := json.Unmarshal(payload, entry.Report); err != nil {
		return nil, errors.Wrap(err, "erro ao deserializar relatório")
	}

	return &entry, nil
}
