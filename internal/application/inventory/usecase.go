package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/access"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/inventory"
	"github.com/jhoicas/ferreteria-api/internal/domain/pricing"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
	"github.com/jhoicas/ferreteria-api/pkg/logger"
)

// StockUseCase ajustes de stock con bloqueo de fila (SELECT FOR UPDATE) y registro de movimiento.
// También lo usa facturación para descontar y reponer stock dentro de su propia transacción.
type StockUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	log          *logger.Logger
	now          func() time.Time
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	log *logger.Logger,
) *StockUseCase {
	return &StockUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		log:          log.Named("inventory"),
		now:          time.Now,
	}
}

// AdjustStock aplica un ajuste manual. Cantidad cero no modifica nada y devuelve el stock actual.
func (uc *StockUseCase) AdjustStock(ctx context.Context, p access.Principal, productID string, in dto.AdjustStockRequest) (*dto.StockAdjustmentResponse, error) {
	if err := access.Authorize(p, access.StockAdjust); err != nil {
		return nil, err
	}
	if productID == "" {
		return nil, domain.Wrap(domain.ErrInvalidInput, "producto requerido")
	}
	dir, err := inventory.ParseDirection(in.Direction)
	if err != nil {
		return nil, err
	}
	if in.Quantity.IsNegative() {
		return nil, domain.Wrap(domain.ErrInvalidInput, "la cantidad no puede ser negativa")
	}
	if !pricing.FitsScale(in.Quantity, pricing.QuantityPlaces) {
		return nil, domain.Wrap(domain.ErrInvalidInput, "la cantidad admite hasta %d decimales", pricing.QuantityPlaces)
	}

	if in.Quantity.IsZero() {
		product, err := uc.productRepo.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrProductNotFound
		}
		return &dto.StockAdjustmentResponse{
			ProductID: productID, PreviousStock: product.Stock, NewStock: product.Stock,
			Direction: dir.String(), Quantity: decimal.Zero,
		}, nil
	}

	var mov *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		locked, err := repos.Products.LockByIDs(ctx, []string{productID})
		if err != nil {
			return err
		}
		product, ok := locked[productID]
		if !ok {
			return domain.ErrProductNotFound
		}
		mov, err = uc.ApplyInTx(ctx, repos, product, in.Quantity, dir, entity.MovementReasonManual, "", p.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("product_id", productID).
		Str("direction", dir.String()).
		Str("quantity", in.Quantity.String()).
		Str("stock", mov.StockAfter.String()).
		Str("user_id", p.UserID).
		Msg("ajuste de stock")

	return &dto.StockAdjustmentResponse{
		ProductID:     productID,
		PreviousStock: mov.StockBefore,
		NewStock:      mov.StockAfter,
		Direction:     dir.String(),
		Quantity:      in.Quantity,
	}, nil
}

// ApplyInTx mueve el stock de un producto ya bloqueado usando los repositorios del caller (misma transacción)
// y registra el movimiento. Actualiza product.Stock. Si devuelve error el caller debe hacer rollback.
func (uc *StockUseCase) ApplyInTx(
	ctx context.Context,
	repos repository.TxRepos,
	product *entity.Product,
	quantity decimal.Decimal,
	dir inventory.Direction,
	reason, referenceID, userID string,
) (*entity.StockMovement, error) {
	newStock, err := inventory.Apply(product.Stock, quantity, dir)
	if err != nil {
		return nil, fmt.Errorf("producto %s: %w", product.Code, err)
	}
	if err := repos.Products.UpdateStock(ctx, product.ID, newStock); err != nil {
		return nil, err
	}
	mov := &entity.StockMovement{
		ID:          uuid.New().String(),
		ProductID:   product.ID,
		Direction:   dir.String(),
		Quantity:    quantity,
		StockBefore: product.Stock,
		StockAfter:  newStock,
		Reason:      reason,
		ReferenceID: referenceID,
		CreatedBy:   userID,
		CreatedAt:   uc.now(),
	}
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	product.Stock = newStock
	return mov, nil
}

// ListMovements historial de stock de un producto, más reciente primero.
func (uc *StockUseCase) ListMovements(ctx context.Context, p access.Principal, productID string, page dto.PageRequest) ([]dto.StockMovementResponse, error) {
	if err := access.Authorize(p, access.ProductRead); err != nil {
		return nil, err
	}
	page.DefaultPage()
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	list, err := uc.movementRepo.ListByProduct(ctx, productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.StockMovementResponse{
			ID:          m.ID,
			Direction:   m.Direction,
			Quantity:    m.Quantity,
			StockBefore: m.StockBefore,
			StockAfter:  m.StockAfter,
			Reason:      m.Reason,
			ReferenceID: m.ReferenceID,
			CreatedBy:   m.CreatedBy,
			CreatedAt:   m.CreatedAt,
		})
	}
	return out, nil
}
