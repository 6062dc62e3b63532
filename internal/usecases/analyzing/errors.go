package analyzing

import (
	"github.com/pkg/errors"
)

// Erros do pipeline e do serviço de relatórios
var (
	ErrEmptyDataset   = errors.New("dataset vazio")
	ErrLoadDataset    = errors.New("erro ao carregar os logs de origem")
	ErrBuildReport    = errors.New("erro ao montar o relatório")
	ErrStoreDisabled  = errors.New("histórico de relatórios desabilitado")
	ErrReportNotFound = errors.New("relatório não encontrado")
	ErrIDRequired     = errors.New("id do relatório é obrigatório")
)
