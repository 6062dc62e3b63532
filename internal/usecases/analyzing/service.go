package analyzing

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/afisha-analytics/infrastructure/cache"
	"github.com/vfg2006/afisha-analytics/infrastructure/dataset"
	"github.com/vfg2006/afisha-analytics/infrastructure/repository"
	"github.com/vfg2006/afisha-analytics/internal/domain"
	"github.com/vfg2006/afisha-analytics/pkg/metrics"
	"github.com/vfg2006/afisha-analytics/pkg/utils"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// Service mantém o relatório mais recente em memória e coordena cache e histórico
type Service struct {
	loader dataset.DatasetLoader
	opts   Options
	cache  cache.ReportCache
	store  repository.ReportRepository

	// buildMu serializa as reconstruções; mu protege apenas o relatório atual
	buildMu sync.Mutex
	mu      sync.RWMutex
	current *domain.Report

	now func() time.Time
}

// NewService cria o serviço de relatórios. Cache e histórico são habilitados por WithCache e WithStore.
func NewService(loader dataset.DatasetLoader, opts Options) *Service {
	return &Service{
		loader: loader,
		opts:   opts,
		now:    time.Now,
	}
}

// WithCache habilita o cache de relatórios por fingerprint do dataset
func (s *Service) WithCache(c cache.ReportCache) *Service {
	s.cache = c
	return s
}

// WithStore habilita o histórico de relatórios no banco
func (s *Service) WithStore(store repository.ReportRepository) *Service {
	s.store = store
	return s
}

func (s *Service) GetReport(ctx context.Context) (*domain.Report, error) {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	if current != nil {
		return current, nil
	}

	return s.Refresh(ctx)
}

func (s *Service) Refresh(ctx context.Context) (*domain.Report, error) {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	start := s.now()

	ds, err := s.loader.Load(ctx)
	if err != nil {
		metrics.ReportBuildFailures.Inc()
		logrus.WithError(err).Error("Erro ao carregar os logs de origem")
		return nil, errors.Wrap(ErrLoadDataset, err.Error())
	}

	if report := s.fromCache(ctx, ds.Fingerprint); report != nil {
		s.setCurrent(report)
		return report, nil
	}

	report, err := Analyze(ds, s.opts)
	if err != nil {
		metrics.ReportBuildFailures.Inc()
		return nil, errors.Wrap(ErrBuildReport, err.Error())
	}

	report.ID, err = utils.GenerateID()
	if err != nil {
		metrics.ReportBuildFailures.Inc()
		return nil, errors.Wrap(err, "erro ao gerar id do relatório")
	}
	report.GeneratedAt = s.now().UTC()

	metrics.ReportBuildDuration.Observe(s.now().Sub(start).Seconds())

	s.toCache(ctx, report)
	s.toStore(ctx, report)
	s.setCurrent(report)

	logrus.WithFields(logrus.Fields{
		"report_id":   report.ID,
		"fingerprint": report.Fingerprint,
		"visits":      report.Summary.Visits,
		"orders":      report.Summary.Orders,
		"costs":       report.Summary.CostRecords,
	}).Info("Relatório recalculado")

	return report, nil
}

func (s *Service) GetHistory(ctx context.Context, limit int) ([]*domain.ReportHistoryItem, error) {
	if s.store == nil {
		return nil, ErrStoreDisabled
	}

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	items, err := s.store.ListSummaries(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar histórico de relatórios")
	}

	return items, nil
}

func (s *Service) GetHistoryEntry(ctx context.Context, id string) (*domain.ReportEntry, error) {
	if s.store == nil {
		return nil, ErrStoreDisabled
	}

	if id == "" {
		return nil, ErrIDRequired
	}

	entry, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao buscar relatório %s", id)
	}

	if entry == nil {
		return nil, ErrReportNotFound
	}

	return entry, nil
}

func (s *Service) setCurrent(report *domain.Report) {
	s.mu.Lock()
	s.current = report
	s.mu.Unlock()
}

// fromCache retorna nil em caso de miss ou falha do cache; o relatório é então recalculado
func (s *Service) fromCache(ctx context.Context, fingerprint string) *domain.Report {
	if s.cache == nil {
		return nil
	}

	report, err := s.cache.Get(ctx, fingerprint)
	if err != nil {
		logrus.WithError(err).Warn("Erro ao consultar cache de relatórios")
		return nil
	}

	if report != nil {
		metrics.ReportCacheHits.Inc()
		logrus.WithField("fingerprint", fingerprint).Debug("Relatório obtido do cache")
	}

	return report
}

func (s *Service) toCache(ctx context.Context, report *domain.Report) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Set(ctx, report.Fingerprint, report); err != nil {
		logrus.WithError(err).Warn("Erro ao gravar relatório no cache")
	}
}

func (s *Service) toStore(ctx context.Context, report *domain.Report) {
	if s.store == nil {
		return
	}

	entry := &domain.ReportEntry{
		ID:          report.ID,
		Fingerprint: report.Fingerprint,
		GeneratedAt: report.GeneratedAt,
		Report:      report,
	}

	if err := s.store.SaveOrUpdate(ctx, entry); err != nil {
		logrus.WithError(err).Error("Erro ao salvar relatório no histórico")
	}
}
