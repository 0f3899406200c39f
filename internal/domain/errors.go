package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrValidation         = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	// ErrStockUnderflow indica que un ajuste dejaría la cantidad bajo cero aunque el
	// validador lo haya aceptado. No debería alcanzarse; se trata como error interno.
	ErrStockUnderflow = errors.New("la cantidad en inventario quedaría negativa")
	// ErrTransactionAborted conflicto o fallo del almacén; es seguro reintentar la operación completa.
	ErrTransactionAborted = errors.New("transacción abortada")
)

// ErrInvalidInput se mantiene como alias de ErrValidation.
var ErrInvalidInput = ErrValidation

// Tipos estables de error expuestos a los clientes.
const (
	KindValidation         = "VALIDATION"
	KindNotFound           = "NOT_FOUND"
	KindInsufficientStock  = "INSUFFICIENT_STOCK"
	KindStockUnderflow     = "STOCK_UNDERFLOW"
	KindTransactionAborted = "TRANSACTION_ABORTED"
	KindDuplicate          = "DUPLICATE"
	KindConflict           = "CONFLICT"
	KindUnauthorized       = "UNAUTHORIZED"
	KindForbidden          = "FORBIDDEN"
	KindEmailExists        = "EMAIL_EXISTS"
	KindInternal           = "INTERNAL"
)

var kinds = []struct {
	err  error
	kind string
}{
	{ErrValidation, KindValidation},
	{ErrUserNotFound, KindNotFound},
	{ErrNotFound, KindNotFound},
	{ErrInsufficientStock, KindInsufficientStock},
	{ErrStockUnderflow, KindStockUnderflow},
	{ErrTransactionAborted, KindTransactionAborted},
	{ErrDuplicate, KindDuplicate},
	{ErrEmailAlreadyExists, KindEmailExists},
	{ErrConflict, KindConflict},
	{ErrUnauthorized, KindUnauthorized},
	{ErrForbidden, KindForbidden},
}

// KindOf devuelve el tipo estable del error (VALIDATION, NOT_FOUND, ...) o INTERNAL si no es de dominio.
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}
