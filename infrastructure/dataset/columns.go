package dataset

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	visitColumns = []string{"uid", "device", "start_ts", "end_ts", "source_id"}
	orderColumns = []string{"uid", "buy_ts", "revenue"}
	costColumns  = []string{"source_id", "dt", "costs"}
)

// normalizeHeader converte "Start Ts" em "start_ts"
func normalizeHeader(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(name), "_")
}

// columnIndex mapeia cada coluna obrigatória para sua posição no cabeçalho.
// Colunas desconhecidas são ignoradas.
func columnIndex(header []string, required []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		key := normalizeHeader(name)
		if _, ok := positions[key]; ok {
			return nil, errors.Errorf("coluna duplicada: %s", key)
		}
		positions[key] = i
	}

	index := make(map[string]int, len(required))
	for _, col := range required {
		i, ok := positions[col]
		if !ok {
			return nil, errors.Wrap(ErrMissingColumn, col)
		}
		index[col] = i
	}

	return index, nil
}
