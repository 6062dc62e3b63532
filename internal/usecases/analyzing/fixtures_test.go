package analyzing

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/afisha-analytics/internal/domain"
)

func ts(value string) time.Time {
	t, err := time.Parse(time.DateTime, value)
	if err != nil {
		panic(err)
	}
	return t
}

func money(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// Quatro sessões de três usuários; u4 compra sem nunca ter visitado o site
func fixtureDataset() *domain.Dataset {
	return &domain.Dataset{
		Visits: []domain.Visit{
			{UserID: 1, Device: domain.DeviceTouch, StartTs: ts("2017-06-01 10:00:00"), EndTs: ts("2017-06-01 10:20:00"), SourceID: 1},
			{UserID: 1, Device: domain.DeviceDesktop, StartTs: ts("2017-06-02 09:00:00"), EndTs: ts("2017-06-02 09:30:00"), SourceID: 3},
			{UserID: 2, Device: domain.DeviceDesktop, StartTs: ts("2017-06-01 12:00:00"), EndTs: ts("2017-06-01 12:10:00"), SourceID: 2},
			{UserID: 3, Device: domain.DeviceDesktop, StartTs: ts("2017-07-03 08:00:00"), EndTs: ts("2017-07-03 07:59:00"), SourceID: 2},
		},
		Orders: []domain.Order{
			{UserID: 1, BuyTs: ts("2017-06-01 15:00:00"), Revenue: money("10.00")},
			{UserID: 1, BuyTs: ts("2017-07-10 11:00:00"), Revenue: money("5.00")},
			{UserID: 2, BuyTs: ts("2017-06-20 12:00:00"), Revenue: money("4.00")},
			{UserID: 3, BuyTs: ts("2017-07-05 00:00:00"), Revenue: money("6.00")},
			{UserID: 4, BuyTs: ts("2017-07-01 18:30:00"), Revenue: money("3.00")},
		},
		Costs: []domain.Cost{
			{SourceID: 1, Date: ts("2017-06-01 00:00:00"), Amount: money("20.00")},
			{SourceID: 1, Date: ts("2017-06-15 00:00:00"), Amount: money("10.00")},
			{SourceID: 2, Date: ts("2017-06-10 00:00:00"), Amount: money("15.00")},
			{SourceID: 1, Date: ts("2017-07-01 00:00:00"), Amount: money("8.00")},
		},
		Fingerprint: "fixture",
	}
}
