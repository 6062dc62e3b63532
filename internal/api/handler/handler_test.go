package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/afisha-analytics/internal/domain"
	"github.com/vfg2006/afisha-analytics/internal/presenter"
	"github.com/vfg2006/afisha-analytics/internal/usecases/analyzing"
	"github.com/vfg2006/afisha-analytics/internal/usecases/analyzing/mocks"
	"github.com/vfg2006/afisha-analytics/pkg/apiErrors"
	"github.com/vfg2006/afisha-analytics/pkg/utils"
	"go.uber.org/mock/gomock"
)

func testReport() *domain.Report {
	return &domain.Report{
		ID:          "rep1",
		Fingerprint: "fp",
		GeneratedAt: time.Date(2018, 6, 1, 3, 0, 0, 0, time.UTC),
		Summary: domain.ReportSummary{
			Visits:       4,
			TotalRevenue: decimal.RequireFromString("28"),
		},
		Activity: domain.ActivityReport{DAU: utils.Float(1.5)},
	}
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Code
}

func withParams(req *http.Request, params httprouter.Params) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), httprouter.ParamsKey, params))
}

func TestGetReportSection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReporter := mocks.NewMockReporter(ctrl)

	tests := []struct {
		name       string
		section    string
		query      string
		setup      func()
		wantStatus int
		validate   func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:    "Resumo em JSON",
			section: presenter.SectionSummary,
			setup: func() {
				mockReporter.EXPECT().GetReport(gomock.Any()).Return(testReport(), nil)
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "rep1", body["id"])
				summary := body["summary"].(map[string]any)
				assert.Equal(t, float64(4), summary["visits"])
				assert.Nil(t, summary["overall_romi"])
			},
		},
		{
			name:    "Atividade em JSON",
			section: presenter.SectionActivity,
			setup: func() {
				mockReporter.EXPECT().GetReport(gomock.Any()).Return(testReport(), nil)
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var body domain.ActivityReport
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				require.NotNil(t, body.DAU)
				assert.Equal(t, 1.5, *body.DAU)
				assert.Nil(t, body.WAU)
			},
		},
		{
			name:    "Resumo em texto",
			section: presenter.SectionSummary,
			query:   "?format=text",
			setup: func() {
				mockReporter.EXPECT().GetReport(gomock.Any()).Return(testReport(), nil)
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))
				assert.Contains(t, rec.Body.String(), "== Resumo ==")
				assert.Contains(t, rec.Body.String(), "28.00")
			},
		},
		{
			name:    "Logs de origem inválidos - 422",
			section: presenter.SectionLTV,
			setup: func() {
				mockReporter.EXPECT().GetReport(gomock.Any()).
					Return(nil, errors.Wrap(analyzing.ErrLoadDataset, "orders_log_us.csv:3: valor vazio"))
			},
			wantStatus: http.StatusUnprocessableEntity,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, apiErrors.ErrDatasetInvalid, errorCode(t, rec))
			},
		},
		{
			name:    "Dataset vazio - 503",
			section: presenter.SectionOrders,
			setup: func() {
				mockReporter.EXPECT().GetReport(gomock.Any()).Return(nil, analyzing.ErrEmptyDataset)
			},
			wantStatus: http.StatusServiceUnavailable,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, apiErrors.ErrReportUnavailable, errorCode(t, rec))
			},
		},
		{
			name:    "Erro inesperado - 500",
			section: presenter.SectionAcquisition,
			setup: func() {
				mockReporter.EXPECT().GetReport(gomock.Any()).Return(nil, errors.New("falha"))
			},
			wantStatus: http.StatusInternalServerError,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, apiErrors.ErrInternalServer, errorCode(t, rec))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			req := httptest.NewRequest(http.MethodGet, "/v1/reports/"+tt.section+tt.query, nil)
			rec := httptest.NewRecorder()
			GetReportSection(mockReporter, tt.section).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			tt.validate(t, rec)
		})
	}
}

func TestRefreshReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReporter := mocks.NewMockReporter(ctrl)
	mockReporter.EXPECT().Refresh(gomock.Any()).Return(testReport(), nil)

	rec := httptest.NewRecorder()
	RefreshReport(mockReporter).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/reports/refresh", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "rep1", body["id"])
	assert.Equal(t, "fp", body["fingerprint"])
}

func TestListReportHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReporter := mocks.NewMockReporter(ctrl)

	tests := []struct {
		name       string
		query      string
		setup      func()
		wantStatus int
		wantCode   string
	}{
		{
			name:  "Sem limite - usa o padrão do serviço",
			query: "",
			setup: func() {
				mockReporter.EXPECT().GetHistory(gomock.Any(), 0).
					Return([]*domain.ReportHistoryItem{{ID: "a"}, {ID: "b"}}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:  "Limite informado",
			query: "?limit=5",
			setup: func() {
				mockReporter.EXPECT().GetHistory(gomock.Any(), 5).Return([]*domain.ReportHistoryItem{}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Limite inválido - 400",
			query:      "?limit=abc",
			setup:      func() {},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidFormat,
		},
		{
			name:  "Histórico desabilitado - 501",
			query: "",
			setup: func() {
				mockReporter.EXPECT().GetHistory(gomock.Any(), 0).Return(nil, analyzing.ErrStoreDisabled)
			},
			wantStatus: http.StatusNotImplemented,
			wantCode:   apiErrors.ErrHistoryDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			rec := httptest.NewRecorder()
			ListReportHistory(mockReporter).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/reports/history"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, rec))
			}
		})
	}
}

func TestGetReportHistoryEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReporter := mocks.NewMockReporter(ctrl)

	tests := []struct {
		name       string
		id         string
		setup      func()
		wantStatus int
		wantCode   string
	}{
		{
			name: "Relatório encontrado",
			id:   "rep1",
			setup: func() {
				mockReporter.EXPECT().GetHistoryEntry(gomock.Any(), "rep1").
					Return(&domain.ReportEntry{ID: "rep1", Report: testReport()}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "Relatório inexistente - 404",
			id:   "nope",
			setup: func() {
				mockReporter.EXPECT().GetHistoryEntry(gomock.Any(), "nope").Return(nil, analyzing.ErrReportNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantCode:   apiErrors.ErrReportNotFound,
		},
		{
			name: "Falha no banco - 500",
			id:   "rep2",
			setup: func() {
				mockReporter.EXPECT().GetHistoryEntry(gomock.Any(), "rep2").Return(nil, errors.New("conexão recusada"))
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   apiErrors.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			req := withParams(httptest.NewRequest(http.MethodGet, "/v1/reports/history/"+tt.id, nil),
				httprouter.Params{{Key: "id", Value: tt.id}})
			rec := httptest.NewRecorder()
			GetReportHistoryEntry(mockReporter).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, rec))
			}
		})
	}
}

type fakeCronJob struct {
	triggered int
}

func (f *fakeCronJob) TriggerManualSync() { f.triggered++ }

func (f *fakeCronJob) GetStatus() map[string]any {
	return map[string]any{"sync_running": false, "triggered": f.triggered}
}

func TestRunCronJob(t *testing.T) {
	tests := []struct {
		name          string
		cronType      string
		services      func(job *fakeCronJob) CronJobServices
		wantStatus    int
		wantTriggered int
	}{
		{
			name:          "Recálculo de relatório",
			cronType:      CronJobTypeReportRefresh,
			services:      func(job *fakeCronJob) CronJobServices { return CronJobServices{ReportRefreshService: job} },
			wantStatus:    http.StatusAccepted,
			wantTriggered: 1,
		},
		{
			name:          "Todas as crons",
			cronType:      CronJobTypeAll,
			services:      func(job *fakeCronJob) CronJobServices { return CronJobServices{ReportRefreshService: job} },
			wantStatus:    http.StatusAccepted,
			wantTriggered: 1,
		},
		{
			name:       "Tipo desconhecido - 400",
			cronType:   "meta",
			services:   func(job *fakeCronJob) CronJobServices { return CronJobServices{ReportRefreshService: job} },
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Serviço ausente - 500",
			cronType:   CronJobTypeReportRefresh,
			services:   func(job *fakeCronJob) CronJobServices { return CronJobServices{} },
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &fakeCronJob{}

			req := withParams(httptest.NewRequest(http.MethodPost, "/v1/cron/run/"+tt.cronType, nil),
				httprouter.Params{{Key: "type", Value: tt.cronType}})
			rec := httptest.NewRecorder()
			RunCronJob(tt.services(job)).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantTriggered, job.triggered)
		})
	}
}

func TestGetCronStatus(t *testing.T) {
	job := &fakeCronJob{}
	rec := httptest.NewRecorder()
	GetCronStatus(CronJobServices{ReportRefreshService: job}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, CronJobTypeReportRefresh)
}

func TestInstrument(t *testing.T) {
	routes := Instrument(Healthcheck()...)
	require.Len(t, routes, 1)
	assert.Len(t, routes[0].Middlewares, 1)
}
