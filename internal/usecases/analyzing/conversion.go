package analyzing

import (
	"sort"
	"strconv"

	"github.com/vfg2006/afisha-analytics/internal/domain"
)

// BuildConversion agrupa os compradores pelo mês da primeira sessão e pelo tempo até a primeira compra.
// Compradores sem nenhuma sessão não entram na tabela.
func BuildConversion(visits []domain.Visit, orders []domain.Order) domain.ConversionReport {
	firstSessions := FirstSessions(visits)
	firstOrders := FirstOrders(orders)

	sources := make(map[domain.UserID]map[domain.SourceID]struct{})
	for _, v := range visits {
		if sources[v.UserID] == nil {
			sources[v.UserID] = make(map[domain.SourceID]struct{})
		}
		sources[v.UserID][v.SourceID] = struct{}{}
	}

	// Iterar em ordem de uid mantém a construção determinística
	buyers := make([]domain.UserID, 0, len(firstOrders))
	for uid := range firstOrders {
		buyers = append(buyers, uid)
	}
	sort.Slice(buyers, func(i, j int) bool { return buyers[i] < buyers[j] })

	byMonth := newPivotBuilder()
	bySource := newPivotBuilder()

	report := domain.ConversionReport{
		Buckets: ConversionBucketLabels(),
	}

	for _, uid := range buyers {
		firstSession, ok := firstSessions[uid]
		if !ok {
			continue
		}
		report.Buyers++

		label, ok := ConversionBucket(ConversionDays(firstSession, firstOrders[uid]))
		if !ok {
			report.Unbucketed++
			continue
		}

		byMonth.add(Month(firstSession), label, 1)
		for src := range sources[uid] {
			bySource.add(label, strconv.Itoa(int(src)), 1)
		}
	}

	report.ByFirstSessionMonth = byMonth.build(
		"Compradores por mês da primeira sessão",
		"first_session_month",
		"conversion_bucket",
		aggregateSum,
		nil,
		bucketLess,
	)
	report.BySource = bySource.build(
		"Compradores por fonte de tráfego",
		"conversion_bucket",
		"source_id",
		aggregateSum,
		bucketLess,
		numericLess,
	)

	return report
}
