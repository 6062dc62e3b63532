// Package scheduler contém os serviços de agendamento do recálculo dos relatórios
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/afisha-analytics/infrastructure/repository"
	"github.com/vfg2006/afisha-analytics/internal/config"
	"github.com/vfg2006/afisha-analytics/internal/usecases/analyzing"
)

type ReportRefreshConfig struct {
	CronSchedule  string
	Enabled       bool
	RetentionDays int
}

// ReportRefreshService recalcula o relatório periodicamente e apaga o histórico expirado
type ReportRefreshService struct {
	scheduler           *gocron.Scheduler
	reporter            analyzing.Reporter
	store               repository.ReportRepository
	config              ReportRefreshConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastReportID        string
	lastError           string
}

// NewReportRefreshService cria o agendador; store pode ser nil quando o histórico está desabilitado
func NewReportRefreshService(
	reporter analyzing.Reporter,
	store repository.ReportRepository,
	cfg *config.Config,
) *ReportRefreshService {
	refreshConfig := ReportRefreshConfig{
		CronSchedule:  cfg.ReportRefresh.CronSchedule,
		Enabled:       cfg.ReportRefresh.Enabled,
		RetentionDays: cfg.Report.RetentionDays,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  refreshConfig.CronSchedule,
		"enabled":        refreshConfig.Enabled,
		"retention_days": refreshConfig.RetentionDays,
	}).Info("Configuração do agendador de relatórios carregada")

	return &ReportRefreshService{
		scheduler: gocron.NewScheduler(time.Local),
		reporter:  reporter,
		store:     store,
		config:    refreshConfig,
	}
}

func (s *ReportRefreshService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron de recálculo de relatórios desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de recálculo de relatórios")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RefreshReport(ctx); err != nil {
			logrus.WithError(err).Error("Erro no recálculo agendado do relatório")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar recálculo de relatórios: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de recálculo de relatórios")
		s.scheduler.Stop()
	}()

	return nil
}

// RefreshReport recalcula o relatório e, com histórico habilitado, remove entradas expiradas.
// Uma execução em andamento faz a nova chamada retornar sem efeito.
func (s *ReportRefreshService) RefreshReport(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Recálculo de relatório já está em execução")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	report, err := s.reporter.Refresh(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	if err != nil {
		s.lastError = err.Error()
	} else {
		s.lastError = ""
		s.lastReportID = report.ID
	}
	s.syncMutex.Unlock()

	if err != nil {
		return err
	}

	logrus.WithField("report_id", report.ID).Info("Recálculo de relatório concluído")

	s.purgeHistory(ctx)

	return nil
}

func (s *ReportRefreshService) purgeHistory(ctx context.Context) {
	if s.store == nil || s.config.RetentionDays <= 0 {
		return
	}

	deleted, err := s.store.DeleteOlderThan(ctx, s.config.RetentionDays)
	if err != nil {
		logrus.WithError(err).Error("Erro ao remover relatórios expirados")
		return
	}

	if deleted > 0 {
		logrus.WithFields(logrus.Fields{
			"deleted":        deleted,
			"retention_days": s.config.RetentionDays,
		}).Info("Relatórios expirados removidos do histórico")
	}
}

// TriggerManualSync inicia manualmente um recálculo em segundo plano
func (s *ReportRefreshService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Recálculo de relatório já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando recálculo manual de relatório")
	go func() {
		if err := s.RefreshReport(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro no recálculo manual do relatório")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *ReportRefreshService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"retention_days":         s.config.RetentionDays,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_report_id":         s.lastReportID,
		"last_error":             s.lastError,
	}
}
