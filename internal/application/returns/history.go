package returns

import (
	"context"
	"time"

	"github.com/jhoicas/Hornada-api/internal/application/dto"
	"github.com/jhoicas/Hornada-api/internal/domain"
	"github.com/jhoicas/Hornada-api/internal/domain/entity"
	"github.com/jhoicas/Hornada-api/internal/domain/repository"
)

// HistoryUseCase resuelve las lecturas de actas de devolución.
type HistoryUseCase struct {
	returnRepo repository.ReturnRepository
	clock      Clock
	timeout    time.Duration
}

// NewHistoryUseCase construye el caso de uso de historial.
func NewHistoryUseCase(returnRepo repository.ReturnRepository, clock Clock, timeout time.Duration) *HistoryUseCase {
	return &HistoryUseCase{returnRepo: returnRepo, clock: clock, timeout: timeout}
}

// GetReturn devuelve un acta por id.
func (uc *HistoryUseCase) GetReturn(ctx context.Context, id string) (*dto.ReturnRecordDTO, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	opCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	rec, err := uc.returnRepo.GetByID(opCtx, id)
	if err != nil {
		return nil, err
	}
	out := toRecordDTO(rec)
	return &out, nil
}

// ListReturns lista las actas del rango de fechas, más recientes primero.
// Sin rango explícito se devuelven los últimos 30 días.
func (uc *HistoryUseCase) ListReturns(ctx context.Context, dr dto.DateRangeRequest, page dto.PageRequest) (*dto.ReturnListResponse, error) {
	page.DefaultPage()
	from, to, err := dr.Resolve(uc.clock(), 30)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	opCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	records, err := uc.returnRepo.List(opCtx, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ReturnRecordDTO, 0, len(records))
	for _, rec := range records {
		items = append(items, toRecordDTO(rec))
	}
	return &dto.ReturnListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toRecordDTO(rec *entity.ReturnRecord) dto.ReturnRecordDTO {
	return dto.ReturnRecordDTO{
		ID:            rec.ID,
		ProcessedBy:   rec.ProcessedBy,
		TotalQuantity: rec.TotalQuantity,
		TotalValue:    rec.TotalValue,
		Lines:         toLineDTOs(rec.Lines),
		KeptBatchIDs:  rec.KeptBatchIDs,
		CreatedAt:     rec.CreatedAt,
	}
}
