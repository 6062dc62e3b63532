package domain

import "time"

// Dataset agrupa os três logs de origem já validados. Nenhum campo é alterado depois do carregamento.
type Dataset struct {
	Visits      []Visit
	Orders      []Order
	Costs       []Cost
	Fingerprint string
	LoadedAt    time.Time
}
