package returns

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Hornada-api/internal/domain"
	"github.com/jhoicas/Hornada-api/internal/domain/repository"
)

// SlipUseCase genera el PDF del acta de devolución para imprimir y archivar
// con la mercancía que sale.
type SlipUseCase struct {
	returnRepo repository.ReturnRepository
	generator  SlipGenerator
	timeout    time.Duration
}

// NewSlipUseCase construye el caso de uso inyectando sus dependencias.
func NewSlipUseCase(returnRepo repository.ReturnRepository, generator SlipGenerator, timeout time.Duration) *SlipUseCase {
	return &SlipUseCase{returnRepo: returnRepo, generator: generator, timeout: timeout}
}

// DownloadSlip recupera el acta y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si el acta no existe.
func (uc *SlipUseCase) DownloadSlip(ctx context.Context, returnID string) (pdfBytes []byte, filename string, err error) {
	if returnID == "" {
		return nil, "", domain.ErrInvalidInput
	}

	opCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	rec, err := uc.returnRepo.GetByID(opCtx, returnID)
	if err != nil {
		return nil, "", fmt.Errorf("acta: obtener devolución: %w", err)
	}

	pdfBytes, err = uc.generator.Generate(rec)
	if err != nil {
		return nil, "", fmt.Errorf("acta: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("devolucion_%s.pdf", rec.CreatedAt.Format("20060102"))
	return pdfBytes, filename, nil
}
