package utils

import (
	"fmt"
	"time"
)

// Formatos aceitos nos arquivos de origem, do mais específico para o menos específico
var timestampLayouts = []string{
	time.DateTime,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// ParseTimestamp interpreta um timestamp sem fuso horário como UTC
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("timestamp inválido: %q", value)
}
