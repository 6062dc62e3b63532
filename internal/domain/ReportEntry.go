package domain

import "time"

// ReportEntry representa um relatório armazenado no banco
type ReportEntry struct {
	ID          string    `json:"id"`
	Fingerprint string    `json:"fingerprint"`
	GeneratedAt time.Time `json:"generated_at"`
	Report      *Report   `json:"report"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ReportHistoryItem é a versão resumida usada na listagem do histórico
type ReportHistoryItem struct {
	ID          string    `json:"id"`
	Fingerprint string    `json:"fingerprint"`
	GeneratedAt time.Time `json:"generated_at"`
	CreatedAt   time.Time `json:"created_at"`
}
