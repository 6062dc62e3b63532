package analyzing

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/afisha-analytics/internal/domain"
	"github.com/vfg2006/afisha-analytics/pkg/utils"
)

// BuildAcquisition junta cada célula de LTV com o custo de cada fonte no mês do pedido
// e deriva CAC = custo / compradores e ROMI = LTV / CAC.
func BuildAcquisition(ltv domain.LTVReport, costs []domain.Cost) domain.AcquisitionReport {
	monthly := make(map[string]map[domain.SourceID]decimal.Decimal)
	total := decimal.Zero
	for _, c := range costs {
		m := Month(c.Date)
		if monthly[m] == nil {
			monthly[m] = make(map[domain.SourceID]decimal.Decimal)
		}
		monthly[m][c.SourceID] = monthly[m][c.SourceID].Add(c.Amount)
		total = total.Add(c.Amount)
	}

	report := domain.AcquisitionReport{
		Cells:        make([]domain.AcquisitionCell, 0),
		CostsByMonth: costsByMonth(monthly),
		TotalCosts:   total,
	}

	romi := newPivotBuilder()
	cacBySource := make(map[domain.SourceID]float64)

	for _, cell := range ltv.Cells {
		bySource := monthly[cell.OrderMonth]
		for _, src := range sortedSources(bySource) {
			cac := decimalRatio(bySource[src], cell.Buyers)

			var r *float64
			if cell.LTV != nil && cac != nil {
				r = utils.SafeRatio(*cell.LTV, *cac)
			}

			report.Cells = append(report.Cells, domain.AcquisitionCell{
				CohortMonth: cell.CohortMonth,
				OrderMonth:  cell.OrderMonth,
				Age:         cell.Age,
				SourceID:    src,
				Buyers:      cell.Buyers,
				Costs:       bySource[src],
				LTV:         cell.LTV,
				CAC:         cac,
				ROMI:        r,
			})

			if cac != nil {
				cacBySource[src] += *cac
			}
			if r != nil {
				romi.add(cell.CohortMonth, ageLabel(cell.Age), *r)
			}
		}
	}

	report.CACBySource = make([]domain.SourceCAC, 0, len(cacBySource))
	for src, cac := range cacBySource {
		report.CACBySource = append(report.CACBySource, domain.SourceCAC{SourceID: src, CAC: cac})
	}
	sort.Slice(report.CACBySource, func(i, j int) bool {
		if report.CACBySource[i].CAC != report.CACBySource[j].CAC {
			return report.CACBySource[i].CAC > report.CACBySource[j].CAC
		}
		return report.CACBySource[i].SourceID < report.CACBySource[j].SourceID
	})

	report.ROMIPivot = romi.build(
		"ROMI médio por coorte",
		"first_order_month",
		"age",
		aggregateMean,
		nil,
		numericLess,
	)

	return report
}

func sortedSources(bySource map[domain.SourceID]decimal.Decimal) []domain.SourceID {
	sources := make([]domain.SourceID, 0, len(bySource))
	for src := range bySource {
		sources = append(sources, src)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })
	return sources
}

func costsByMonth(monthly map[string]map[domain.SourceID]decimal.Decimal) []domain.MonthlyCost {
	result := make([]domain.MonthlyCost, 0, len(monthly))
	for month, bySource := range monthly {
		sum := decimal.Zero
		for _, amount := range bySource {
			sum = sum.Add(amount)
		}
		result = append(result, domain.MonthlyCost{Month: month, Costs: sum})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })
	return result
}
