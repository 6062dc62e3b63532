package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/afisha-analytics/infrastructure/cache"
	"github.com/vfg2006/afisha-analytics/infrastructure/database/postgres"
	"github.com/vfg2006/afisha-analytics/infrastructure/dataset"
	"github.com/vfg2006/afisha-analytics/infrastructure/repository"
	"github.com/vfg2006/afisha-analytics/internal/api"
	"github.com/vfg2006/afisha-analytics/internal/config"
	"github.com/vfg2006/afisha-analytics/internal/scheduler"
	"github.com/vfg2006/afisha-analytics/internal/usecases/analyzing"
	"github.com/vfg2006/afisha-analytics/internal/usecases/authenticating"
	"github.com/vfg2006/afisha-analytics/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loader, err := dataset.NewLoaderFromConfig(ctx, cfg.Dataset)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar a origem dos logs")
	}

	opts := analyzing.DefaultOptions()
	opts.DurationBins = cfg.Report.DurationBins

	reportService := analyzing.NewService(loader, opts)

	if cfg.Redis.Enabled {
		redisClient, err := cache.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logrus.WithError(err).Fatal("Erro ao conectar ao Redis")
		}
		defer redisClient.Close()

		reportService.WithCache(cache.NewReportCache(redisClient, cfg.Report.CacheTTL))
		logrus.Info("Cache de relatórios habilitado")
	}

	var reportRepo repository.ReportRepository
	if cfg.Report.StoreEnabled {
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		reportRepo = repository.NewReportRepository(pgConn)
		reportService.WithStore(reportRepo)
		logrus.Info("Histórico de relatórios habilitado")
	}

	authenticator := authenticating.NewService(cfg)

	reportRefreshService := scheduler.NewReportRefreshService(reportService, reportRepo, cfg)
	if err := reportRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de recálculo de relatórios")
	} else {
		logrus.Info("Agendador de recálculo de relatórios iniciado com sucesso")
	}

	// Monta o primeiro relatório sem segurar a subida do servidor
	go func() {
		if _, err := reportService.GetReport(ctx); err != nil {
			logrus.WithError(err).Error("Erro ao montar o relatório inicial")
		}
	}()

	server, err := api.New(cfg, reportService, authenticator, reportRefreshService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
