package analyzing

import (
	"sort"

	"github.com/vfg2006/afisha-analytics/internal/domain"
	"github.com/vfg2006/afisha-analytics/pkg/utils"
)

// BuildOrders calcula pedidos, compradores e pedidos por comprador em cada mês
func BuildOrders(orders []domain.Order) domain.OrdersReport {
	counts := make(map[string]int)
	buyers := make(map[string]map[domain.UserID]struct{})
	for _, o := range orders {
		m := Month(o.BuyTs)
		counts[m]++
		if buyers[m] == nil {
			buyers[m] = make(map[domain.UserID]struct{})
		}
		buyers[m][o.UserID] = struct{}{}
	}

	monthly := make([]domain.MonthlyOrders, 0, len(counts))
	for month, n := range counts {
		monthly = append(monthly, domain.MonthlyOrders{
			Month:          month,
			Orders:         n,
			Buyers:         len(buyers[month]),
			OrdersPerBuyer: utils.SafeRatio(float64(n), float64(len(buyers[month]))),
		})
	}
	sort.Slice(monthly, func(i, j int) bool { return monthly[i].Month < monthly[j].Month })

	orderCounts := make([]float64, 0, len(monthly))
	perBuyer := make([]float64, 0, len(monthly))
	for _, m := range monthly {
		orderCounts = append(orderCounts, float64(m.Orders))
		if m.OrdersPerBuyer != nil {
			perBuyer = append(perBuyer, *m.OrdersPerBuyer)
		}
	}

	return domain.OrdersReport{
		Monthly:            monthly,
		MeanOrders:         mean(orderCounts),
		MeanOrdersPerBuyer: mean(perBuyer),
	}
}
