package analyzing

import (
	"sort"

	"github.com/vfg2006/afisha-analytics/internal/domain"
	"github.com/vfg2006/afisha-analytics/pkg/utils"
)

// BuildActivity calcula DAU/WAU/MAU, fatores de aderência e uso por dispositivo
func BuildActivity(visits []domain.Visit) domain.ActivityReport {
	daily := uniqueUsersBy(visits, func(v domain.Visit) string { return Day(v.StartTs) })
	weekly := uniqueUsersBy(visits, func(v domain.Visit) string { return Week(v.StartTs) })
	monthly := uniqueUsersBy(visits, func(v domain.Visit) string { return Month(v.StartTs) })

	report := domain.ActivityReport{
		DAU:     meanUsers(daily),
		WAU:     meanUsers(weekly),
		MAU:     meanUsers(monthly),
		Daily:   daily,
		Weekly:  weekly,
		Monthly: monthly,
		Devices: deviceUsage(visits),
	}

	if report.DAU != nil && report.WAU != nil {
		report.StickyWAU = utils.SafeRatio(*report.DAU, *report.WAU)
	}
	if report.DAU != nil && report.MAU != nil {
		report.StickyMAU = utils.SafeRatio(*report.DAU, *report.MAU)
	}

	return report
}

func uniqueUsersBy(visits []domain.Visit, key func(domain.Visit) string) []domain.ActiveUsersPoint {
	users := make(map[string]map[domain.UserID]struct{})
	for _, v := range visits {
		k := key(v)
		if users[k] == nil {
			users[k] = make(map[domain.UserID]struct{})
		}
		users[k][v.UserID] = struct{}{}
	}

	points := make([]domain.ActiveUsersPoint, 0, len(users))
	for period, set := range users {
		points = append(points, domain.ActiveUsersPoint{Period: period, Users: len(set)})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Period < points[j].Period })

	return points
}

func meanUsers(points []domain.ActiveUsersPoint) *float64 {
	values := make([]float64, 0, len(points))
	for _, p := range points {
		values = append(values, float64(p.Users))
	}
	return mean(values)
}

func deviceUsage(visits []domain.Visit) []domain.DeviceUsage {
	sessions := make(map[domain.Device]int)
	users := make(map[domain.Device]map[domain.UserID]struct{})
	for _, v := range visits {
		sessions[v.Device]++
		if users[v.Device] == nil {
			users[v.Device] = make(map[domain.UserID]struct{})
		}
		users[v.Device][v.UserID] = struct{}{}
	}

	usage := make([]domain.DeviceUsage, 0, len(sessions))
	for device, count := range sessions {
		usage = append(usage, domain.DeviceUsage{
			Device:   device,
			Sessions: count,
			Users:    len(users[device]),
		})
	}

	// Mais sessões primeiro, como no value_counts
	sort.Slice(usage, func(i, j int) bool {
		if usage[i].Sessions != usage[j].Sessions {
			return usage[i].Sessions > usage[j].Sessions
		}
		return usage[i].Device < usage[j].Device
	})

	return usage
}

// BuildSessions calcula sessões por usuário por dia e a distribuição da duração das sessões
func BuildSessions(visits []domain.Visit, durationBins int) domain.SessionReport {
	type dayAgg struct {
		sessions int
		users    map[domain.UserID]struct{}
	}

	days := make(map[string]*dayAgg)
	durations := make([]float64, 0, len(visits))

	for _, v := range visits {
		d := Day(v.StartTs)
		agg := days[d]
		if agg == nil {
			agg = &dayAgg{users: make(map[domain.UserID]struct{})}
			days[d] = agg
		}
		agg.sessions++
		agg.users[v.UserID] = struct{}{}

		durations = append(durations, float64(SessionSeconds(v.StartTs, v.EndTs))/60)
	}

	daily := make([]domain.DailySessions, 0, len(days))
	for date, agg := range days {
		daily = append(daily, domain.DailySessions{
			Date:            date,
			Sessions:        agg.sessions,
			Users:           len(agg.users),
			SessionsPerUser: utils.SafeRatio(float64(agg.sessions), float64(len(agg.users))),
		})
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date < daily[j].Date })

	ratios := make([]float64, 0, len(daily))
	for _, d := range daily {
		if d.SessionsPerUser != nil {
			ratios = append(ratios, *d.SessionsPerUser)
		}
	}

	return domain.SessionReport{
		Daily:               daily,
		MeanSessionsPerUser: mean(ratios),
		Duration:            describe(durations),
		DurationHistogram:   histogram(durations, durationBins),
	}
}
