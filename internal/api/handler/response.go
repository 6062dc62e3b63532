package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/afisha-analytics/internal/usecases/analyzing"
	"github.com/vfg2006/afisha-analytics/pkg/apiErrors"
	"github.com/vfg2006/afisha-analytics/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao codificar resposta")
	}
}

// writeReportError converte os erros do serviço de relatórios em códigos da API
func writeReportError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.ForContext(r.Context()).WithError(err)

	switch {
	case errors.Is(err, analyzing.ErrStoreDisabled):
		apiErrors.WriteError(w, apiErrors.ErrHistoryDisabled, "Histórico de relatórios desabilitado", nil)
	case errors.Is(err, analyzing.ErrIDRequired):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
	case errors.Is(err, analyzing.ErrReportNotFound):
		apiErrors.WriteError(w, apiErrors.ErrReportNotFound, err.Error(), nil)
	case errors.Is(err, analyzing.ErrLoadDataset):
		logger.Warn("Logs de origem rejeitados")
		apiErrors.WriteError(w, apiErrors.ErrDatasetInvalid, err.Error(), nil)
	case errors.Is(err, analyzing.ErrEmptyDataset), errors.Is(err, analyzing.ErrBuildReport):
		logger.Error("Relatório indisponível")
		apiErrors.WriteError(w, apiErrors.ErrReportUnavailable, err.Error(), nil)
	default:
		logger.Error("Erro inesperado no serviço de relatórios")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
	}
}
