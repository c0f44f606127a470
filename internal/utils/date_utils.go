package utils

import (
	"fmt"
	"time"
)

// ParseDate aceita datas no formato "2006-01-02" ou RFC3339. Todas as
// operações de data do serviço trabalham em UTC - os occurred_at dos eventos
// são gravados em UTC pelo pipeline de ingestão.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unsupported date format: %q", s)
}

// StartOfDay normaliza a data para 00:00:00 UTC
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay normaliza a data para o último instante do dia em UTC
func EndOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, time.UTC)
}
