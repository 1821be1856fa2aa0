package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/Hornada-api/internal/application/dto"
	"github.com/jhoicas/Hornada-api/internal/domain"
	"github.com/jhoicas/Hornada-api/internal/domain/repository"
)

// Clock entrega el "ahora" del negocio; inyectable para tests deterministas.
type Clock func() time.Time

// ReturnsReportUseCase arma el reporte de mermas: cuánto valor se devolvió,
// cuántas unidades y qué productos se devuelven más.
type ReturnsReportUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	clock         Clock
	timeout       time.Duration
}

// NewReturnsReportUseCase construye el caso de uso de reporte.
func NewReturnsReportUseCase(analyticsRepo repository.AnalyticsRepository, clock Clock, timeout time.Duration) *ReturnsReportUseCase {
	return &ReturnsReportUseCase{analyticsRepo: analyticsRepo, clock: clock, timeout: timeout}
}

// GetReturnsReport resume las devoluciones del rango pedido (por defecto los
// últimos 30 días) con desglose por producto. topN acota el desglose
// (default 20, máximo 200).
func (uc *ReturnsReportUseCase) GetReturnsReport(ctx context.Context, dr dto.DateRangeRequest, topN int) (*dto.ReturnsAnalyticsResponse, error) {
	if topN <= 0 {
		topN = 20
	}
	if topN > 200 {
		topN = 200
	}
	from, to, err := dr.Resolve(uc.clock(), 30)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	opCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	totals, err := uc.analyticsRepo.GetReturnTotals(opCtx, from, to)
	if err != nil {
		return nil, err
	}
	byProduct, err := uc.analyticsRepo.GetReturnsByProduct(opCtx, from, to, topN)
	if err != nil {
		return nil, err
	}

	products := make([]dto.ProductReturnsDTO, 0, len(byProduct))
	for _, p := range byProduct {
		products = append(products, dto.ProductReturnsDTO{
			ProductID:        p.ProductID,
			BatchCount:       p.BatchCount,
			QuantityReturned: p.QuantityReturned,
			ValueReturned:    p.ValueReturned,
		})
	}

	return &dto.ReturnsAnalyticsResponse{
		Summary: dto.ReturnsSummaryDTO{
			From:          from.Format("2006-01-02"),
			To:            to.AddDate(0, 0, -1).Format("2006-01-02"), // `to` interno es exclusivo
			ReturnCount:   totals.ReturnCount,
			BatchCount:    totals.BatchCount,
			TotalQuantity: totals.TotalQuantity,
			TotalValue:    totals.TotalValue,
			AvgPercentage: totals.AvgPercentage,
		},
		ByProduct: products,
	}, nil
}
