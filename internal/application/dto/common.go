package dto

import "time"

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero y acota
// Limit al máximo permitido.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// DateRangeRequest rango de fechas para historiales y analítica.
// Fechas en formato 2006-01-02; vacías caen al rango por defecto.
type DateRangeRequest struct {
	From string `query:"from"`
	To   string `query:"to"`
}

// Resolve parsea el rango. Sin `from` se asume `days` días atrás; sin `to`,
// hoy. `to` es inclusivo: se devuelve el inicio del día siguiente.
func (r *DateRangeRequest) Resolve(now time.Time, days int) (from, to time.Time, err error) {
	to = now.AddDate(0, 0, 1).Truncate(24 * time.Hour)
	if r.To != "" {
		t, perr := time.Parse("2006-01-02", r.To)
		if perr != nil {
			return from, to, perr
		}
		to = t.AddDate(0, 0, 1)
	}
	from = to.AddDate(0, 0, -days-1)
	if r.From != "" {
		f, perr := time.Parse("2006-01-02", r.From)
		if perr != nil {
			return from, to, perr
		}
		from = f
	}
	return from, to, nil
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
