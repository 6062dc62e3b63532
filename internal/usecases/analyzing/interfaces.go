package analyzing

import (
	"context"

	"github.com/vfg2006/afisha-analytics/internal/domain"
)

// Reporter expõe o relatório analítico para a API e para o agendador
type Reporter interface {
	// GetReport retorna o relatório atual, montando-o na primeira chamada
	GetReport(ctx context.Context) (*domain.Report, error)

	// Refresh recarrega os logs de origem e recalcula o relatório
	Refresh(ctx context.Context) (*domain.Report, error)

	// GetHistory lista os relatórios armazenados, do mais recente para o mais antigo
	GetHistory(ctx context.Context, limit int) ([]*domain.ReportHistoryItem, error)

	// GetHistoryEntry obtém um relatório armazenado pelo id
	GetHistoryEntry(ctx context.Context, id string) (*domain.ReportEntry, error)
}
