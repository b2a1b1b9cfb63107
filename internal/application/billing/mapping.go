package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
)

func toDetailResponse(
	line int, productID string,
	qty, unitPrice, discountPct, discountAmount, subtotal decimal.Decimal,
	products map[string]*entity.Product,
) dto.InvoiceDetailResponse {
	out := dto.InvoiceDetailResponse{
		LineNumber:      line,
		ProductID:       productID,
		Quantity:        qty,
		UnitPrice:       unitPrice,
		DiscountPercent: discountPct,
		DiscountAmount:  discountAmount,
		Subtotal:        subtotal,
	}
	if pr, ok := products[productID]; ok {
		out.ProductCode = pr.Code
		out.ProductName = pr.Name
	}
	return out
}
