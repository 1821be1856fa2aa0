package batch

import "time"

// Formatos aceptados para fechas que llegan del front o de importaciones.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Age calcula la edad de un lote en días completos de calendario.
// Ambas fechas se normalizan a su medianoche antes de restar: un lote horneado
// ayer a las 23:59 tiene 1 día de edad hoy a las 00:01, y dos horas distintas
// del mismo día siempre dan edad 0. Fechas cero o futuras devuelven 0.
func Age(dateAdded, now time.Time) int {
	if dateAdded.IsZero() {
		return 0
	}
	days := int(midnight(now).Sub(midnight(dateAdded)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// AgeFromString parsea una fecha ISO-8601 (fecha o fecha-hora) y calcula la
// edad. Entradas vacías o no parseables devuelven 0: la edad es un dato
// cosmético y no debe tumbar al que la pide.
func AgeFromString(dateAdded string, now time.Time) int {
	t, ok := ParseDate(dateAdded)
	if !ok {
		return 0
	}
	return Age(t, now)
}

// ParseDate intenta los formatos ISO-8601 aceptados, del más específico al
// más simple.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// midnight reconstruye la fecha a las 00:00 UTC para comparar solo días de
// calendario, sin que la hora ni la zona horaria de origen afecten la resta.
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
