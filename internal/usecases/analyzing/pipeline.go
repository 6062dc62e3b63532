package analyzing

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/afisha-analytics/internal/domain"
)

const defaultDurationBins = 100

// Options controla os parâmetros ajustáveis do pipeline
type Options struct {
	DurationBins int
}

func DefaultOptions() Options {
	return Options{DurationBins: defaultDurationBins}
}

// Analyze executa o pipeline completo sobre um dataset já carregado.
// O dataset não é modificado; todas as tabelas são derivadas dele a cada chamada.
func Analyze(ds *domain.Dataset, opts Options) (*domain.Report, error) {
	if ds == nil {
		return nil, ErrEmptyDataset
	}

	if opts.DurationBins <= 0 {
		opts.DurationBins = defaultDurationBins
	}

	ltv := BuildLTV(ds.Orders)
	acquisition := BuildAcquisition(ltv, ds.Costs)

	return &domain.Report{
		Fingerprint: ds.Fingerprint,
		Summary:     Summarize(ds),
		Activity:    BuildActivity(ds.Visits),
		Sessions:    BuildSessions(ds.Visits, opts.DurationBins),
		Conversion:  BuildConversion(ds.Visits, ds.Orders),
		Orders:      BuildOrders(ds.Orders),
		LTV:         ltv,
		Acquisition: acquisition,
	}, nil
}

// Summarize calcula os totais gerais do dataset
func Summarize(ds *domain.Dataset) domain.ReportSummary {
	users := make(map[domain.UserID]struct{})
	for _, v := range ds.Visits {
		users[v.UserID] = struct{}{}
	}

	revenue := decimal.Zero
	for _, o := range ds.Orders {
		revenue = revenue.Add(o.Revenue)
	}

	costs := decimal.Zero
	for _, c := range ds.Costs {
		costs = costs.Add(c.Amount)
	}

	return domain.ReportSummary{
		Visits:       len(ds.Visits),
		Orders:       len(ds.Orders),
		CostRecords:  len(ds.Costs),
		Users:        len(users),
		Buyers:       len(FirstOrders(ds.Orders)),
		TotalRevenue: revenue,
		TotalCosts:   costs,
		OverallROMI:  moneyRatio(revenue, costs),
	}
}
