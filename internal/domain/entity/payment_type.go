package entity

// Códigos de los tres tipos de pago aceptados. Son también su ID.
const (
	PaymentTypeCash  = "EFECTIVO"
	PaymentTypeCheck = "CHEQUE"
	PaymentTypeCard  = "TARJETA"
)

// PaymentType catálogo fijo de medios de pago.
type PaymentType struct {
	ID                string
	Name              string
	Description       string
	RequiresReference bool // cheque y tarjeta exigen datos de referencia
	Active            bool
}

// DefaultPaymentTypes devuelve el catálogo fijo (Efectivo, Cheque, Tarjeta).
func DefaultPaymentTypes() []PaymentType {
	return []PaymentType{
		{ID: PaymentTypeCash, Name: "Efectivo", Description: "Pago en efectivo al momento de la compra", Active: true},
		{ID: PaymentTypeCheck, Name: "Cheque", Description: "Pago con cheque, requiere validación bancaria", RequiresReference: true, Active: true},
		{ID: PaymentTypeCard, Name: "Tarjeta", Description: "Pago con tarjeta de crédito o débito", RequiresReference: true, Active: true},
	}
}
