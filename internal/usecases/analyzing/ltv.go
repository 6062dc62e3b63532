package analyzing

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/afisha-analytics/internal/domain"
)

type cohortKey struct {
	cohort time.Time
	order  time.Time
}

// BuildLTV monta as coortes pelo mês do primeiro pedido e calcula o LTV de cada célula coorte x idade
func BuildLTV(orders []domain.Order) domain.LTVReport {
	cohortOf := CohortMonths(FirstOrders(orders))

	sizes := make(map[time.Time]int)
	for _, cohort := range cohortOf {
		sizes[cohort]++
	}

	revenue := make(map[cohortKey]decimal.Decimal)
	for _, o := range orders {
		key := cohortKey{cohort: cohortOf[o.UserID], order: MonthStart(o.BuyTs)}
		revenue[key] = revenue[key].Add(o.Revenue)
	}

	keys := make([]cohortKey, 0, len(revenue))
	for k := range revenue {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if !keys[i].cohort.Equal(keys[j].cohort) {
			return keys[i].cohort.Before(keys[j].cohort)
		}
		return keys[i].order.Before(keys[j].order)
	})

	pivot := newPivotBuilder()
	cells := make([]domain.CohortCell, 0, len(keys))
	cohortRevenue := make(map[time.Time]decimal.Decimal)
	cumulative := make(map[time.Time]*float64)

	for _, k := range keys {
		buyers := sizes[k.cohort]
		cell := domain.CohortCell{
			CohortMonth: Month(k.cohort),
			OrderMonth:  Month(k.order),
			Age:         MonthsBetween(k.cohort, k.order),
			Buyers:      buyers,
			Revenue:     revenue[k],
			LTV:         decimalRatio(revenue[k], buyers),
		}
		cells = append(cells, cell)

		cohortRevenue[k.cohort] = cohortRevenue[k.cohort].Add(cell.Revenue)
		if cell.LTV != nil {
			pivot.add(cell.CohortMonth, ageLabel(cell.Age), *cell.LTV)

			sum := *cell.LTV
			if prev := cumulative[k.cohort]; prev != nil {
				sum += *prev
			}
			cumulative[k.cohort] = &sum
		}
	}

	cohorts := make([]domain.Cohort, 0, len(sizes))
	for month, buyers := range sizes {
		cohorts = append(cohorts, domain.Cohort{
			Month:         Month(month),
			Buyers:        buyers,
			Revenue:       cohortRevenue[month],
			CumulativeLTV: cumulative[month],
		})
	}

	// Maior LTV acumulado primeiro; coortes sem LTV definido vão para o final
	sort.Slice(cohorts, func(i, j int) bool {
		a, b := cohorts[i].CumulativeLTV, cohorts[j].CumulativeLTV
		switch {
		case a != nil && b != nil && *a != *b:
			return *a > *b
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		return cohorts[i].Month < cohorts[j].Month
	})

	return domain.LTVReport{
		Cohorts: cohorts,
		Cells:   cells,
		Pivot: pivot.build(
			"LTV médio por coorte",
			"first_order_month",
			"age",
			aggregateMean,
			nil,
			numericLess,
		),
	}
}
