package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	appinv "github.com/jhoicas/ferreteria-api/internal/application/inventory"
	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/access"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/inventory"
	"github.com/jhoicas/ferreteria-api/internal/domain/pricing"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// ProductUseCase casos de uso CRUD para productos. Stock se maneja vía movimientos.
type ProductUseCase struct {
	txRunner appinv.TxRunner
	repo     repository.ProductRepository
	stock    *appinv.StockUseCase
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner appinv.TxRunner, repo repository.ProductRepository, stock *appinv.StockUseCase) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo, stock: stock}
}

// Create crea un producto Activo. El stock inicial entra como movimiento de ajuste en la misma transacción.
func (uc *ProductUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := access.Authorize(p, access.ProductCreate); err != nil {
		return nil, err
	}
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.Wrap(domain.ErrInvalidInput, "código y nombre son obligatorios")
	}
	if err := validatePriceAndDiscount(in.Price, in.DiscountPercent); err != nil {
		return nil, err
	}
	if err := validateQuantity("el stock inicial", in.Stock); err != nil {
		return nil, err
	}
	minStock := decimal.NewFromInt(entity.DefaultMinStock)
	if in.MinStock != nil {
		if err := validateQuantity("el stock mínimo", *in.MinStock); err != nil {
			return nil, err
		}
		minStock = *in.MinStock
	}
	existing, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Wrap(domain.ErrDuplicate, "código %s", code)
	}

	now := time.Now()
	product := &entity.Product{
		ID:              uuid.New().String(),
		Code:            code,
		Name:            strings.TrimSpace(in.Name),
		Description:     in.Description,
		CategoryID:      in.CategoryID,
		UnitID:          in.UnitID,
		Price:           in.Price,
		DiscountPercent: in.DiscountPercent,
		Stock:           decimal.Zero,
		MinStock:        minStock,
		Brand:           in.Brand,
		Paint:           toPaint(in.Paint),
		Status:          entity.ProductStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err = uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}
		if in.Stock.IsPositive() {
			_, err := uc.stock.ApplyInTx(ctx, repos, product, in.Stock, inventory.Increase,
				entity.MovementReasonManual, "", p.UserID)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*dto.ProductResponse, error) {
	if err := access.Authorize(p, access.ProductRead); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar Stock (se maneja vía movimientos) ni el código.
func (uc *ProductUseCase) Update(ctx context.Context, p access.Principal, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := access.Authorize(p, access.ProductUpdate); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.Wrap(domain.ErrInvalidInput, "nombre vacío")
		}
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.UnitID != nil {
		product.UnitID = *in.UnitID
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.DiscountPercent != nil {
		product.DiscountPercent = *in.DiscountPercent
	}
	if err := validatePriceAndDiscount(product.Price, product.DiscountPercent); err != nil {
		return nil, err
	}
	if in.MinStock != nil {
		if err := validateQuantity("el stock mínimo", *in.MinStock); err != nil {
			return nil, err
		}
		product.MinStock = *in.MinStock
	}
	if in.Brand != nil {
		product.Brand = *in.Brand
	}
	if in.Paint != nil {
		product.Paint = toPaint(in.Paint)
	}
	if in.Status != nil {
		product.Status = *in.Status
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con filtros y paginación.
func (uc *ProductUseCase) List(ctx context.Context, p access.Principal, in dto.ProductListRequest) ([]dto.ProductResponse, error) {
	if err := access.Authorize(p, access.ProductRead); err != nil {
		return nil, err
	}
	in.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ProductFilter{
		Search:     strings.TrimSpace(in.Search),
		CategoryID: in.CategoryID,
		Status:     in.Status,
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, pr := range list {
		items = append(items, *toProductResponse(pr))
	}
	return items, nil
}

// Delete no borra: deja el producto Descontinuado (las facturas lo siguen referenciando).
func (uc *ProductUseCase) Delete(ctx context.Context, p access.Principal, id string) error {
	if err := access.Authorize(p, access.ProductDelete); err != nil {
		return err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	product.Status = entity.ProductStatusDiscontinued
	product.UpdatedAt = time.Now()
	return uc.repo.Update(ctx, product)
}

func validatePriceAndDiscount(price, discount decimal.Decimal) error {
	if !price.IsPositive() {
		return domain.Wrap(domain.ErrInvalidInput, "el precio debe ser mayor a cero")
	}
	if discount.IsNegative() || discount.GreaterThan(hundred) {
		return domain.Wrap(domain.ErrInvalidInput, "el descuento debe estar entre 0 y 100")
	}
	if !pricing.FitsScale(price, pricing.MoneyPlaces) {
		return domain.Wrap(domain.ErrInvalidInput, "el precio admite hasta %d decimales", pricing.MoneyPlaces)
	}
	if !pricing.FitsScale(discount, pricing.PercentPlaces) {
		return domain.Wrap(domain.ErrInvalidInput, "el descuento admite hasta %d decimales", pricing.PercentPlaces)
	}
	return nil
}

func validateQuantity(field string, q decimal.Decimal) error {
	if q.IsNegative() {
		return domain.Wrap(domain.ErrInvalidInput, "%s no puede ser negativo", field)
	}
	if !pricing.FitsScale(q, pricing.QuantityPlaces) {
		return domain.Wrap(domain.ErrInvalidInput, "%s admite hasta %d decimales", field, pricing.QuantityPlaces)
	}
	return nil
}

func toPaint(in *dto.PaintAttributesDTO) *entity.PaintAttributes {
	if in == nil {
		return nil
	}
	return &entity.PaintAttributes{
		DurabilityYears: in.DurabilityYears,
		CoverageM2:      in.CoverageM2,
		ColorID:         in.ColorID,
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	out := &dto.ProductResponse{
		ID:              p.ID,
		Code:            p.Code,
		Name:            p.Name,
		Description:     p.Description,
		CategoryID:      p.CategoryID,
		UnitID:          p.UnitID,
		Price:           p.Price,
		DiscountPercent: p.DiscountPercent,
		Stock:           p.Stock,
		MinStock:        p.MinStock,
		Brand:           p.Brand,
		Status:          p.Status,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.Paint != nil {
		out.Paint = &dto.PaintAttributesDTO{
			DurabilityYears: p.Paint.DurabilityYears,
			CoverageM2:      p.Paint.CoverageM2,
			ColorID:         p.Paint.ColorID,
		}
	}
	return out
}
