package domain

import (
	"errors"
	"fmt"
)

// Kind clasifica un error de dominio; la capa HTTP lo traduce a un status code.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindUnavailable  Kind = "unavailable"
	KindInternal     Kind = "internal"
)

// Error es un error de dominio con código estable (legible por máquina) y mensaje para el usuario.
// Los casos de uso devuelven los sentinels de abajo, envueltos con fmt.Errorf("%w: ...") cuando
// necesitan agregar detalle (producto, faltante, diferencia de pago).
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = newError(KindNotFound, "NOT_FOUND", "recurso no encontrado")
	ErrUserNotFound       = newError(KindNotFound, "USER_NOT_FOUND", "usuario no encontrado")
	ErrEmailAlreadyExists = newError(KindConflict, "EMAIL_EXISTS", "el email ya está registrado")
	ErrInvalidInput       = newError(KindValidation, "VALIDATION", "entrada inválida")
	ErrDuplicate          = newError(KindConflict, "DUPLICATE", "recurso duplicado")
	ErrUnauthorized       = newError(KindUnauthorized, "UNAUTHORIZED", "no autorizado")
	ErrForbidden          = newError(KindForbidden, "FORBIDDEN", "acceso denegado")
	ErrConflict           = newError(KindConflict, "CONFLICT", "conflicto con el estado actual")

	ErrProductNotFound  = newError(KindNotFound, "PRODUCT_NOT_FOUND", "producto no encontrado")
	ErrProductInactive  = newError(KindValidation, "PRODUCT_INACTIVE", "producto inactivo")
	ErrCustomerNotFound = newError(KindNotFound, "CUSTOMER_NOT_FOUND", "cliente no encontrado")
	ErrCustomerInactive = newError(KindValidation, "CUSTOMER_INACTIVE", "cliente inactivo o bloqueado")
	ErrBranchNotFound   = newError(KindNotFound, "BRANCH_NOT_FOUND", "sucursal no encontrada")
	ErrInvoiceNotFound  = newError(KindNotFound, "INVOICE_NOT_FOUND", "factura no encontrada")
	ErrQuoteNotFound    = newError(KindNotFound, "QUOTE_NOT_FOUND", "cotización no encontrada")

	ErrInsufficientStock       = newError(KindConflict, "INSUFFICIENT_STOCK", "stock insuficiente")
	ErrPaymentMismatch         = newError(KindValidation, "PAYMENT_MISMATCH", "la suma de pagos no coincide con el total")
	ErrMissingPaymentReference = newError(KindValidation, "MISSING_PAYMENT_REFERENCE", "faltan datos de referencia del pago")
	ErrAlreadyVoided           = newError(KindConflict, "ALREADY_VOIDED", "la factura ya está anulada")
	ErrAlreadyConverted        = newError(KindConflict, "ALREADY_CONVERTED", "la cotización ya fue convertida")
	ErrQuoteNotConvertible     = newError(KindConflict, "QUOTE_NOT_CONVERTIBLE", "la cotización no puede convertirse en factura")
	ErrInvalidTransition       = newError(KindConflict, "INVALID_STATUS_TRANSITION", "cambio de estado no permitido")
	ErrDuplicateNumber         = newError(KindConflict, "DUPLICATE_NUMBER", "número de factura duplicado")

	ErrStorageUnavailable = newError(KindUnavailable, "STORAGE_UNAVAILABLE", "almacenamiento no disponible, reintente")
)

// Wrap agrega detalle a un error de dominio conservando el sentinel para errors.Is/As.
func Wrap(base *Error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", base, fmt.Sprintf(format, args...))
}

// AsError extrae el *Error de dominio de la cadena. Devuelve nil si no hay ninguno.
func AsError(err error) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return nil
}

// KindOf devuelve la clase del error; KindInternal si no es un error de dominio.
func KindOf(err error) Kind {
	if de := AsError(err); de != nil {
		return de.Kind
	}
	return KindInternal
}
