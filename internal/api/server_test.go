package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/afisha-analytics/internal/api/handler"
	"github.com/vfg2006/afisha-analytics/internal/config"
	"github.com/vfg2006/afisha-analytics/internal/domain"
	"github.com/vfg2006/afisha-analytics/internal/usecases/analyzing/mocks"
	"github.com/vfg2006/afisha-analytics/internal/usecases/authenticating"
	"go.uber.org/mock/gomock"
)

type stubCronJob struct{ triggered int }

func (s *stubCronJob) TriggerManualSync()        { s.triggered++ }
func (s *stubCronJob) GetStatus() map[string]any { return map[string]any{} }

func testConfig() *config.Config {
	return &config.Config{
		Server: config.Server{Host: "localhost", Port: "0", CorsAllowedOrigins: []string{"*"}},
		Auth:   config.Auth{Secret: "segredo", TokenTTL: time.Hour},
	}
}

func TestNewHandler_Routes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := testConfig()
	auth := authenticating.NewService(cfg)
	operatorToken, err := auth.IssueToken("ops", domain.RoleOperator)
	require.NoError(t, err)
	viewerToken, err := auth.IssueToken("dash", domain.RoleViewer)
	require.NoError(t, err)

	mockReporter := mocks.NewMockReporter(ctrl)
	job := &stubCronJob{}
	h := NewHandler(cfg, mockReporter, auth, handler.CronJobServices{ReportRefreshService: job})

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		setup      func()
		wantStatus int
	}{
		{
			name:       "Healthcheck público",
			method:     http.MethodGet,
			path:       "/healthcheck",
			setup:      func() {},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Métricas públicas",
			method:     http.MethodGet,
			path:       "/metrics",
			setup:      func() {},
			wantStatus: http.StatusOK,
		},
		{
			name:   "Seção do relatório pública",
			method: http.MethodGet,
			path:   "/v1/reports/conversion",
			setup: func() {
				mockReporter.EXPECT().GetReport(gomock.Any()).Return(&domain.Report{ID: "r"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "Histórico por id",
			method: http.MethodGet,
			path:   "/v1/reports/history/r1",
			setup: func() {
				mockReporter.EXPECT().GetHistoryEntry(gomock.Any(), "r1").Return(&domain.ReportEntry{ID: "r1"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Recálculo sem token - 401",
			method:     http.MethodPost,
			path:       "/v1/reports/refresh",
			setup:      func() {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Recálculo com perfil leitor - 403",
			method:     http.MethodPost,
			path:       "/v1/reports/refresh",
			token:      viewerToken,
			setup:      func() {},
			wantStatus: http.StatusForbidden,
		},
		{
			name:   "Recálculo com operador",
			method: http.MethodPost,
			path:   "/v1/reports/refresh",
			token:  operatorToken,
			setup: func() {
				mockReporter.EXPECT().Refresh(gomock.Any()).Return(&domain.Report{ID: "r2"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Status das crons com leitor",
			method:     http.MethodGet,
			path:       "/v1/cron/status",
			token:      viewerToken,
			setup:      func() {},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Disparo manual com operador",
			method:     http.MethodPost,
			path:       "/v1/cron/run/report-refresh",
			token:      operatorToken,
			setup:      func() {},
			wantStatus: http.StatusAccepted,
		},
		{
			name:       "Rota inexistente - 404",
			method:     http.MethodGet,
			path:       "/v1/reports/charts",
			setup:      func() {},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	assert.Equal(t, 1, job.triggered)
}

func TestNew(t *testing.T) {
	srv, err := New(testConfig(), nil, nil, &stubCronJob{})
	require.NoError(t, err)
	assert.Equal(t, "localhost:0", srv.httpServer.Addr)
}
