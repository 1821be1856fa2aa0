package batch

import (
	"sort"

	"github.com/jhoicas/Hornada-api/internal/domain/entity"
)

// SortByAge devuelve los lotes ordenados del más viejo al más nuevo (FIFO).
// Nunca muta la entrada; el orden es estable, así que lotes con la misma
// fecha conservan su orden de llegada. Entradas nil o sin fecha se omiten
// del resultado en lugar de reventar el ordenamiento.
func SortByAge(batches []*entity.Batch) []*entity.Batch {
	out := make([]*entity.Batch, 0, len(batches))
	for _, b := range batches {
		if b == nil || b.DateAdded.IsZero() {
			continue
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DateAdded.Before(out[j].DateAdded)
	})
	return out
}

// OnlyActive filtra los lotes disponibles para venta, preservando el orden.
func OnlyActive(batches []*entity.Batch) []*entity.Batch {
	out := make([]*entity.Batch, 0, len(batches))
	for _, b := range batches {
		if b != nil && b.IsActive() {
			out = append(out, b)
		}
	}
	return out
}
