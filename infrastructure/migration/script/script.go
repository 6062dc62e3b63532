package main

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/afisha-analytics/infrastructure/database/postgres"
	"github.com/vfg2006/afisha-analytics/internal/config"
)

// step é uma alteração idempotente do schema: exists decide se apply precisa rodar
type step struct {
	name   string
	exists string
	apply  []string
}

var steps = []step{
	{
		name: "tabela analytics_reports",
		exists: `SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_name = 'analytics_reports'
		)`,
		apply: []string{
			`CREATE TABLE analytics_reports (
				id           VARCHAR(32) PRIMARY KEY,
				fingerprint  VARCHAR(64) NOT NULL,
				generated_at TIMESTAMPTZ NOT NULL,
				payload      JSONB NOT NULL,
				created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
		},
	},
	{
		name: "constraint UNIQUE em analytics_reports.fingerprint",
		exists: `SELECT EXISTS (
			SELECT 1 FROM information_schema.table_constraints
			WHERE table_name = 'analytics_reports'
			AND constraint_type = 'UNIQUE'
			AND constraint_name = 'analytics_reports_fingerprint_unique'
		)`,
		apply: []string{
			`ALTER TABLE analytics_reports ADD CONSTRAINT analytics_reports_fingerprint_unique UNIQUE (fingerprint)`,
		},
	},
	{
		name: "índice analytics_reports.generated_at",
		exists: `SELECT EXISTS (
			SELECT 1 FROM pg_indexes
			WHERE tablename = 'analytics_reports'
			AND indexname = 'analytics_reports_generated_at_idx'
		)`,
		apply: []string{
			`CREATE INDEX analytics_reports_generated_at_idx ON analytics_reports (generated_at DESC)`,
		},
	},
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.Info("Iniciando script de migração...")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar configuração")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	applied, err := migrate(ctx, conn)
	if err != nil {
		logrus.WithError(err).Fatal("Migração interrompida")
	}

	logrus.WithField("applied", applied).Info("Migração concluída")
}

// migrate aplica, numa única transação, os passos que ainda não existem no banco
func migrate(ctx context.Context, conn *postgres.Connection) (int, error) {
	applied := 0
	startTime := time.Now()

	err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, s := range steps {
			var exists bool
			if err := tx.QueryRowContext(ctx, s.exists).Scan(&exists); err != nil {
				return errors.Wrapf(err, "erro ao verificar %s", s.name)
			}

			if exists {
				logrus.Infof("%s já existe", s.name)
				continue
			}

			for _, stmt := range s.apply {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return errors.Wrapf(err, "erro ao aplicar %s", s.name)
				}
			}

			applied++
			logrus.Infof("%s criado(a) com sucesso", s.name)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logrus.WithField("elapsed", time.Since(startTime).String()).Debug("Transação de migração finalizada")
	return applied, nil
}
