package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Hornada-api/internal/application/dto"
	"github.com/jhoicas/Hornada-api/internal/domain/batch"
	"github.com/jhoicas/Hornada-api/internal/domain/repository"
)

// ReviewUseCase genera la revisión de fin de día: todos los lotes activos con
// edad, categoría, ranking FIFO por producto y acción sugerida. Es la foto
// que mira el panadero antes de decidir qué devolver y qué conservar.
type ReviewUseCase struct {
	batchRepo repository.BatchRepository
	policy    batch.AgePolicy
	clock     Clock
	timeout   time.Duration
}

// NewReviewUseCase construye el caso de uso de revisión.
func NewReviewUseCase(batchRepo repository.BatchRepository, policy batch.AgePolicy, clock Clock, timeout time.Duration) *ReviewUseCase {
	return &ReviewUseCase{batchRepo: batchRepo, policy: policy, clock: clock, timeout: timeout}
}

// EndOfDayReview devuelve los lotes activos ordenados para la revisión:
// primero los más viejos, y dentro de cada producto el rank FIFO (1 = se
// vende o devuelve primero).
func (uc *ReviewUseCase) EndOfDayReview(ctx context.Context) (*dto.ReviewResponse, error) {
	opCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	active, err := uc.batchRepo.List(opCtx, repository.BatchFilter{
		Status: "active",
		Limit:  1000, // una panadería no maneja más lotes vivos que esto
	})
	if err != nil {
		return nil, err
	}

	now := uc.clock()
	ordered := batch.SortByAge(active)

	// 1. Construir los ítems enriquecidos
	items := make([]dto.ReviewItemDTO, 0, len(ordered))
	for _, b := range ordered {
		age := batch.Age(b.DateAdded, now)
		category := uc.policy.Categorize(age)
		items = append(items, dto.ReviewItemDTO{
			BatchID:         b.ID,
			ProductID:       b.ProductID,
			Quantity:        b.Quantity,
			OriginalPrice:   b.OriginalPrice,
			SalePrice:       b.SalePrice,
			DateAdded:       b.DateAdded.Format("2006-01-02"),
			AgeDays:         age,
			AgeCategory:     category,
			Colors:          batch.Colors(category),
			SuggestedAction: uc.policy.SuggestedAction(age),
		})
	}

	// 2. Rank FIFO por producto (la lista ya viene del más viejo al más nuevo)
	rankByProduct := make(map[string]int)
	for i := range items {
		rankByProduct[items[i].ProductID]++
		items[i].FIFORank = rankByProduct[items[i].ProductID]
	}

	// 3. Ordenar para pantalla: lo más urgente arriba (más viejo primero),
	//    empates por producto para agrupar visualmente
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].AgeDays != items[j].AgeDays {
			return items[i].AgeDays > items[j].AgeDays
		}
		return items[i].ProductID < items[j].ProductID
	})

	// 4. Stock activo total por producto
	totals := make(map[string]decimal.Decimal)
	for _, b := range ordered {
		totals[b.ProductID] = totals[b.ProductID].Add(b.Quantity)
	}

	return &dto.ReviewResponse{
		GeneratedAt:   now,
		Items:         items,
		ProductTotals: totals,
	}, nil
}
