package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/stock-orders-api/internal/application/dto"
	"github.com/jhoicas/stock-orders-api/internal/domain"
)

var statusByKind = map[string]int{
	domain.KindValidation:         fiber.StatusBadRequest,
	domain.KindNotFound:           fiber.StatusNotFound,
	domain.KindInsufficientStock:  fiber.StatusConflict,
	domain.KindDuplicate:          fiber.StatusConflict,
	domain.KindConflict:           fiber.StatusConflict,
	domain.KindEmailExists:        fiber.StatusConflict,
	domain.KindUnauthorized:       fiber.StatusUnauthorized,
	domain.KindForbidden:          fiber.StatusForbidden,
	domain.KindTransactionAborted: fiber.StatusServiceUnavailable,
	domain.KindStockUnderflow:     fiber.StatusInternalServerError,
}

// Para estos tipos el detalle se registra y el cliente recibe solo el mensaje estable.
var publicMessage = map[string]string{
	domain.KindTransactionAborted: domain.ErrTransactionAborted.Error(),
	domain.KindStockUnderflow:     domain.ErrStockUnderflow.Error(),
}

// writeError traduce un error de dominio a status + ErrorResponse{Code, Message}.
// Errores no clasificados se registran y se devuelven como INTERNAL sin detalle.
func writeError(c *fiber.Ctx, err error) error {
	kind := domain.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: domain.KindInternal, Message: "error interno"})
	}
	if msg, ok := publicMessage[kind]; ok {
		log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Str("kind", kind).Msg("error de almacén")
		return c.Status(status).JSON(dto.ErrorResponse{Code: kind, Message: msg})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: kind, Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.Normalize()
	return page
}
