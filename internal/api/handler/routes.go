package handler

import (
	"net/http"

	"github.com/vfg2006/afisha-analytics/internal/api/handler/router"
	"github.com/vfg2006/afisha-analytics/internal/presenter"
	"github.com/vfg2006/afisha-analytics/internal/usecases/analyzing"
	"github.com/vfg2006/afisha-analytics/internal/usecases/authenticating"
	"github.com/vfg2006/afisha-analytics/pkg/metrics"
	"github.com/vfg2006/afisha-analytics/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metrics.Handler(),
		},
	}
}

func Reports(service analyzing.Reporter, authenticator authenticating.Authenticator) []router.Route {
	routes := make([]router.Route, 0, len(presenter.Sections)+3)
	for _, section := range presenter.Sections {
		routes = append(routes, router.Route{
			Path:    "/v1/reports/" + section,
			Method:  http.MethodGet,
			Handler: GetReportSection(service, section),
		})
	}

	return append(routes,
		router.Route{
			Path:    "/v1/reports/history",
			Method:  http.MethodGet,
			Handler: ListReportHistory(service),
		},
		router.Route{
			Path:    "/v1/reports/history/:id",
			Method:  http.MethodGet,
			Handler: GetReportHistoryEntry(service),
		},
		router.Route{
			Path:    "/v1/reports/refresh",
			Method:  http.MethodPost,
			Handler: RefreshReport(service),
			Middlewares: []func(http.Handler) http.Handler{
				middleware.AuthMiddleware(authenticator),
				middleware.OperatorOnly(),
			},
		},
	)
}

func CronJobs(services CronJobServices, authenticator authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/run/:type",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{
				middleware.AuthMiddleware(authenticator),
				middleware.OperatorOnly(),
			},
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{
				middleware.AuthMiddleware(authenticator),
				middleware.AllRoles(),
			},
		},
	}
}

// Instrument adiciona o middleware de métricas a cada rota, rotulado pelo padrão da rota
func Instrument(routes ...router.Route) []router.Route {
	instrumented := make([]router.Route, 0, len(routes))
	for _, route := range routes {
		route.Middlewares = append([]func(http.Handler) http.Handler{middleware.Metrics(route.Path)}, route.Middlewares...)
		instrumented = append(instrumented, route)
	}
	return instrumented
}
