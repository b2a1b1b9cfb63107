package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

// PaymentTypeUseCase consulta del catálogo de tipos de pago.
type PaymentTypeUseCase struct {
	repo repository.PaymentTypeRepository
}

// NewPaymentTypeUseCase construye el caso de uso.
func NewPaymentTypeUseCase(repo repository.PaymentTypeRepository) *PaymentTypeUseCase {
	return &PaymentTypeUseCase{repo: repo}
}

// List devuelve los tipos de pago activos. Cualquier empleado autenticado puede consultarlos.
func (uc *PaymentTypeUseCase) List(ctx context.Context, userID string) ([]dto.PaymentTypeResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar tipos de pago: %w", err)
	}
	out := make([]dto.PaymentTypeResponse, 0, len(list))
	for _, pt := range list {
		out = append(out, dto.PaymentTypeResponse{
			ID:                pt.ID,
			Name:              pt.Name,
			Description:       pt.Description,
			RequiresReference: pt.RequiresReference,
		})
	}
	return out, nil
}
