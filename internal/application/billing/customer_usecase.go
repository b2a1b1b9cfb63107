package billing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/access"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

// CustomerUseCase casos de uso para clientes. El acumulado de compras solo lo mueve el ledger.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un nuevo cliente. Código y email duplicados devuelven ErrDuplicate.
func (uc *CustomerUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := access.Authorize(p, access.CustomerCreate); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Code) == "" || strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" {
		return nil, domain.Wrap(domain.ErrInvalidInput, "código, nombre y email son obligatorios")
	}
	typ := in.Type
	if typ == "" {
		typ = entity.CustomerTypeIndividual
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:                uuid.New().String(),
		Code:              strings.TrimSpace(in.Code),
		Name:              strings.TrimSpace(in.Name),
		Email:             strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:             in.Phone,
		Address:           in.Address,
		NIT:               in.NIT,
		Type:              typ,
		AcceptsPromotions: in.AcceptsPromotions,
		TotalPurchases:    decimal.Zero,
		Status:            entity.CustomerStatusActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente.
func (uc *CustomerUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*dto.CustomerResponse, error) {
	if err := access.Authorize(p, access.CustomerRead); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCustomerNotFound
	}
	return toCustomerResponse(c), nil
}

// Update modifica datos de contacto y estado. Los campos nil no cambian.
func (uc *CustomerUseCase) Update(ctx context.Context, p access.Principal, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := access.Authorize(p, access.CustomerUpdate); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCustomerNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.Wrap(domain.ErrInvalidInput, "nombre vacío")
		}
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		c.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.Address != nil {
		c.Address = *in.Address
	}
	if in.NIT != nil {
		c.NIT = *in.NIT
	}
	if in.Type != nil {
		c.Type = *in.Type
	}
	if in.AcceptsPromotions != nil {
		c.AcceptsPromotions = *in.AcceptsPromotions
	}
	if in.Status != nil {
		c.Status = *in.Status
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// List lista clientes; search filtra por código, nombre o email.
func (uc *CustomerUseCase) List(ctx context.Context, p access.Principal, search string, page dto.PageRequest) ([]*dto.CustomerResponse, error) {
	if err := access.Authorize(p, access.CustomerRead); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, strings.TrimSpace(search), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:                c.ID,
		Code:              c.Code,
		Name:              c.Name,
		Email:             c.Email,
		Phone:             c.Phone,
		Address:           c.Address,
		NIT:               c.NIT,
		Type:              c.Type,
		AcceptsPromotions: c.AcceptsPromotions,
		TotalPurchases:    c.TotalPurchases,
		LastPurchaseAt:    c.LastPurchaseAt,
		Status:            c.Status,
	}
}
