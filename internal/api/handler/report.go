package handler

import (
	"net/http"

	"github.com/vfg2006/afisha-analytics/internal/domain"
	"github.com/vfg2006/afisha-analytics/internal/presenter"
	"github.com/vfg2006/afisha-analytics/internal/usecases/analyzing"
	"github.com/vfg2006/afisha-analytics/pkg/log"
)

const formatText = "text"

// sectionPickers extrai de um relatório a tabela servida por cada rota
var sectionPickers = map[string]func(*domain.Report) any{
	presenter.SectionSummary: func(r *domain.Report) any {
		return map[string]any{
			"id":           r.ID,
			"fingerprint":  r.Fingerprint,
			"generated_at": r.GeneratedAt,
			"summary":      r.Summary,
		}
	},
	presenter.SectionActivity:    func(r *domain.Report) any { return r.Activity },
	presenter.SectionSessions:    func(r *domain.Report) any { return r.Sessions },
	presenter.SectionConversion:  func(r *domain.Report) any { return r.Conversion },
	presenter.SectionOrders:      func(r *domain.Report) any { return r.Orders },
	presenter.SectionLTV:         func(r *domain.Report) any { return r.LTV },
	presenter.SectionAcquisition: func(r *domain.Report) any { return r.Acquisition },
}

// GetReportSection devolve uma seção do relatório atual em JSON, ou como texto com ?format=text
func GetReportSection(service analyzing.Reporter, section string) http.Handler {
	pick := sectionPickers[section]

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		report, err := service.GetReport(r.Context())
		if err != nil {
			writeReportError(w, r, err)
			return
		}

		logger.WithFields(log.Fields{
			"report_id": report.ID,
			"section":   section,
		}).Debug("reports: servindo seção do relatório")

		if r.URL.Query().Get("format") == formatText {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			if err := presenter.RenderSection(w, report, section); err != nil {
				logger.WithError(err).Error("reports: erro ao renderizar seção")
			}
			return
		}

		writeJSON(w, r, http.StatusOK, pick(report))
	})
}

// RefreshReport recarrega os logs de origem e recalcula o relatório imediatamente
func RefreshReport(service analyzing.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("reports: recálculo solicitado")

		report, err := service.Refresh(r.Context())
		if err != nil {
			writeReportError(w, r, err)
			return
		}

		logger.WithField("report_id", report.ID).Info("reports: relatório recalculado")
		writeJSON(w, r, http.StatusOK, sectionPickers[presenter.SectionSummary](report))
	})
}
