package analyzing

import (
	"time"

	"github.com/vfg2006/afisha-analytics/internal/domain"
)

// FirstSessions retorna o início da primeira sessão de cada usuário
func FirstSessions(visits []domain.Visit) map[domain.UserID]time.Time {
	first := make(map[domain.UserID]time.Time)
	for _, v := range visits {
		current, ok := first[v.UserID]
		if !ok || v.StartTs.Before(current) {
			first[v.UserID] = v.StartTs
		}
	}
	return first
}

// FirstOrders retorna o momento do primeiro pedido de cada usuário
func FirstOrders(orders []domain.Order) map[domain.UserID]time.Time {
	first := make(map[domain.UserID]time.Time)
	for _, o := range orders {
		current, ok := first[o.UserID]
		if !ok || o.BuyTs.Before(current) {
			first[o.UserID] = o.BuyTs
		}
	}
	return first
}

// CohortMonths converte o primeiro evento de cada usuário no mês da sua coorte
func CohortMonths(first map[domain.UserID]time.Time) map[domain.UserID]time.Time {
	cohorts := make(map[domain.UserID]time.Time, len(first))
	for uid, ts := range first {
		cohorts[uid] = MonthStart(ts)
	}
	return cohorts
}
