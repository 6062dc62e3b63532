package domain

// ConversionReport agrupa os compradores pelo tempo entre a primeira sessão e a primeira compra
type ConversionReport struct {
	Buckets             []string   `json:"buckets"`
	Buyers              int        `json:"buyers"`
	Unbucketed          int        `json:"unbucketed"`
	ByFirstSessionMonth PivotTable `json:"by_first_session_month"`
	BySource            PivotTable `json:"by_source"`
}
