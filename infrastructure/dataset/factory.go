package dataset

import (
	"context"
	"fmt"

	"github.com/vfg2006/afisha-analytics/internal/config"
)

// NewSource escolhe a origem dos arquivos conforme DATASET_SOURCE
func NewSource(ctx context.Context, cfg config.Dataset) (Source, error) {
	switch cfg.Source {
	case config.SourceFile:
		return NewFileSource(cfg.Dir), nil
	case config.SourceS3:
		return NewS3Source(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3Prefix)
	default:
		return nil, fmt.Errorf("origem de dataset desconhecida: %q", cfg.Source)
	}
}

// NewLoaderFromConfig monta o loader com a origem e os nomes de arquivo configurados
func NewLoaderFromConfig(ctx context.Context, cfg config.Dataset) (*Loader, error) {
	source, err := NewSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return NewLoader(source, Files{
		Visits: cfg.VisitsFile,
		Orders: cfg.OrdersFile,
		Costs:  cfg.CostsFile,
	}), nil
}
