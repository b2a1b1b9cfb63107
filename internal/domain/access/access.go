package access

import (
	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
)

// Capability permiso atómico que un rol puede tener.
type Capability string

const (
	InvoiceCreate  Capability = "invoice.create"
	InvoiceVoid    Capability = "invoice.void"
	InvoiceRead    Capability = "invoice.read"
	QuoteCreate    Capability = "quote.create"
	QuoteUpdate    Capability = "quote.update"
	QuoteRead      Capability = "quote.read"
	QuoteConvert   Capability = "quote.convert"
	ProductRead    Capability = "product.read"
	ProductCreate  Capability = "product.create"
	ProductUpdate  Capability = "product.update"
	ProductDelete  Capability = "product.delete"
	CustomerRead   Capability = "customer.read"
	CustomerCreate Capability = "customer.create"
	CustomerUpdate Capability = "customer.update"
	StockAdjust    Capability = "stock.adjust"
	ReportRead     Capability = "report.read"
)

type capSet map[Capability]struct{}

func setOf(caps ...Capability) capSet {
	s := make(capSet, len(caps))
	for _, c := range caps {
		s[c] = struct{}{}
	}
	return s
}

var allCapabilities = []Capability{
	InvoiceCreate, InvoiceVoid, InvoiceRead,
	QuoteCreate, QuoteUpdate, QuoteRead, QuoteConvert,
	ProductRead, ProductCreate, ProductUpdate, ProductDelete,
	CustomerRead, CustomerCreate, CustomerUpdate,
	StockAdjust, ReportRead,
}

var roleCapabilities = map[string]capSet{
	entity.RoleManager: setOf(allCapabilities...),
	entity.RoleDataEntry: setOf(
		ProductRead, ProductCreate, ProductUpdate,
		CustomerRead, CustomerCreate, CustomerUpdate,
		QuoteCreate, QuoteUpdate, QuoteRead,
		InvoiceRead,
	),
	entity.RoleCashier: setOf(
		InvoiceCreate, InvoiceRead,
		QuoteRead, QuoteConvert,
		ProductRead, CustomerRead,
		StockAdjust,
	),
}

// Principal es el empleado autenticado que ejecuta la operación.
type Principal struct {
	UserID   string
	Role     string
	BranchID string
}

// IsManager indica si el principal es gerente.
func (p Principal) IsManager() bool { return p.Role == entity.RoleManager }

// Can indica si el rol del principal incluye la capacidad.
func (p Principal) Can(c Capability) bool {
	caps, ok := roleCapabilities[p.Role]
	if !ok {
		return false
	}
	_, ok = caps[c]
	return ok
}

// Authorize falla con ErrForbidden si el principal no tiene la capacidad.
func Authorize(p Principal, c Capability) error {
	if p.UserID == "" {
		return domain.ErrUnauthorized
	}
	if !p.Can(c) {
		return domain.Wrap(domain.ErrForbidden, "el rol %q no puede %s", p.Role, c)
	}
	return nil
}

// AuthorizeBranch exige que un principal que no es gerente opere solo sobre su sucursal.
func AuthorizeBranch(p Principal, branchID string) error {
	if p.IsManager() || p.BranchID == branchID {
		return nil
	}
	return domain.Wrap(domain.ErrForbidden, "la sucursal %s no corresponde al usuario", branchID)
}

// ValidRole indica si el rol existe.
func ValidRole(role string) bool {
	_, ok := roleCapabilities[role]
	return ok
}
