// Package cache guarda relatórios já calculados no redis
package cache

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/vfg2006/afisha-analytics/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const keyPrefix = "afisha:report:"

// ReportCache guarda relatórios indexados pelo fingerprint do dataset de origem
type ReportCache interface {
	Get(ctx context.Context, fingerprint string) (*domain.Report, error)
	Set(ctx context.Context, fingerprint string, report *domain.Report) error
}

type redisReportCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewReportCache(client redis.UniversalClient, ttl time.Duration) ReportCache {
	return &redisReportCache{
		client: client,
		ttl:    ttl,
	}
}

func key(fingerprint string) string {
	return keyPrefix + fingerprint
}

// Get retorna nil, nil quando não há relatório para o fingerprint
func (c *redisReportCache) Get(ctx context.Context, fingerprint string) (*domain.Report, error) {
	data, err := c.client.Get(ctx, key(fingerprint)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "erro ao ler relatório do cache")
	}

	report := &domain.Report{}
	if err := json.Unmarshal(data, report); err != nil {
		return nil, errors.Wrap(err, "erro ao deserializar relatório do cache")
	}

	return report, nil
}

// Set grava o relatório; ttl zero mantém a chave sem expiração
func (c *redisReportCache) Set(ctx context.Context, fingerprint string, report *domain.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return errors.Wrap(err, "erro ao serializar relatório")
	}

	if err := c.client.Set(ctx, key(fingerprint), data, c.ttl).Err(); err != nil {
		return errors.Wrap(err, "erro ao gravar relatório no cache")
	}

	return nil
}

// NewClient cria o cliente redis e valida a conexão
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrapf(err, "erro ao conectar no redis %s", addr)
	}

	return client, nil
}
