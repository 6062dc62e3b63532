package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/afisha-analytics/internal/usecases/analyzing"
	"github.com/vfg2006/afisha-analytics/pkg/apiErrors"
	"github.com/vfg2006/afisha-analytics/pkg/log"
)

// ListReportHistory lista os relatórios armazenados. Aceita ?limit=N.
func ListReportHistory(service analyzing.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit deve ser um inteiro não negativo", nil)
				return
			}
			limit = parsed
		}

		items, err := service.GetHistory(r.Context(), limit)
		if err != nil {
			writeReportError(w, r, err)
			return
		}

		log.ForContext(r.Context()).WithField("count", len(items)).Debug("history: listagem concluída")
		writeJSON(w, r, http.StatusOK, items)
	})
}

// GetReportHistoryEntry devolve um relatório armazenado pelo id
func GetReportHistoryEntry(service analyzing.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		entry, err := service.GetHistoryEntry(r.Context(), id)
		if err != nil {
			writeReportError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, entry)
	})
}
