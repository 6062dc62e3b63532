package domain

// DailySessions representa as sessões de um dia e a razão sessões por usuário
type DailySessions struct {
	Date            string   `json:"date"`
	Sessions        int      `json:"sessions"`
	Users           int      `json:"users"`
	SessionsPerUser *float64 `json:"sessions_per_user"`
}

// DurationStats descreve a distribuição da duração das sessões em minutos
type DurationStats struct {
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean"`
	Std    *float64 `json:"std"`
	Min    *float64 `json:"min"`
	P25    *float64 `json:"p25"`
	Median *float64 `json:"median"`
	P75    *float64 `json:"p75"`
	Max    *float64 `json:"max"`
	Mode   *float64 `json:"mode"`
}

type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

type SessionReport struct {
	Daily               []DailySessions `json:"daily"`
	MeanSessionsPerUser *float64        `json:"mean_sessions_per_user"`
	Duration            DurationStats   `json:"duration"`
	DurationHistogram   []HistogramBin  `json:"duration_histogram"`
}
