package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Hornada-api/internal/application/dto"
	"github.com/jhoicas/Hornada-api/internal/domain"
	"github.com/jhoicas/Hornada-api/internal/domain/batch"
	"github.com/jhoicas/Hornada-api/internal/domain/repository"
)

// BatchQueryUseCase resuelve las lecturas de lotes y stock. Solo lectura,
// sin transacciones.
type BatchQueryUseCase struct {
	batchRepo repository.BatchRepository
	policy    batch.AgePolicy
	clock     Clock
	timeout   time.Duration
}

// NewBatchQueryUseCase construye el caso de uso.
func NewBatchQueryUseCase(batchRepo repository.BatchRepository, policy batch.AgePolicy, clock Clock, timeout time.Duration) *BatchQueryUseCase {
	return &BatchQueryUseCase{batchRepo: batchRepo, policy: policy, clock: clock, timeout: timeout}
}

// GetBatch devuelve un lote con su edad y categoría calculadas.
func (uc *BatchQueryUseCase) GetBatch(ctx context.Context, id string) (*dto.BatchDTO, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	opCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	b, err := uc.batchRepo.GetByID(opCtx, id)
	if err != nil {
		return nil, err
	}
	out := ToBatchDTO(b, uc.policy, uc.clock())
	return &out, nil
}

// ListBatches lista lotes con filtros opcionales de producto y estado.
func (uc *BatchQueryUseCase) ListBatches(ctx context.Context, filter repository.BatchFilter) (*dto.BatchListResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	opCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	batches, err := uc.batchRepo.List(opCtx, filter)
	if err != nil {
		return nil, err
	}

	now := uc.clock()
	items := make([]dto.BatchDTO, 0, len(batches))
	for _, b := range batches {
		items = append(items, ToBatchDTO(b, uc.policy, now))
	}
	return &dto.BatchListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// GetStock suma el stock activo de un producto (los lotes depleted y
// returned no cuentan).
func (uc *BatchQueryUseCase) GetStock(ctx context.Context, productID string) (*dto.StockResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	opCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	batches, err := uc.batchRepo.ListActiveByProduct(opCtx, productID)
	if err != nil {
		return nil, err
	}

	resp := &dto.StockResponse{
		ProductID:  productID,
		TotalStock: batch.TotalStock(batches),
		BatchCount: len(batches),
	}
	if ordered := batch.SortByAge(batches); len(ordered) > 0 {
		resp.OldestDate = ordered[0].DateAdded.Format("2006-01-02")
	}
	return resp, nil
}
