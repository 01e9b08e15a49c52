package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/zonaazul/enforcement-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. The
// legacy mobile client expects the "message" key, not "error".
type errorResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"message": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors map to deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "invalid request"
	case errors.Is(err, domain.ErrInspectorNotFound):
		return http.StatusNotFound, "Fiscal não encontrado."
	case errors.Is(err, domain.ErrStreetNotFound):
		return http.StatusNotFound, "Rua não encontrada."
	case errors.Is(err, domain.ErrNoActiveSpots):
		return http.StatusNotFound, "Não há vagas ativas na rua especificada"
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound, "Vaga não encontrada."
	case errors.Is(err, domain.ErrDuplicatePending):
		return http.StatusConflict, "Vaga pendente já registrada para esta placa."
	case errors.Is(err, domain.ErrInspectorExists):
		return http.StatusConflict, "Fiscal já registrado."
	case errors.Is(err, domain.ErrStreetExists):
		return http.StatusConflict, "Rua já registrada."
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Senha incorreta."
	case errors.Is(err, domain.ErrLedgerUnavailable):
		log.Error().Err(err).Str("path", c.Path()).Msg("ledger unavailable after retry")
		return http.StatusServiceUnavailable, "serviço temporariamente indisponível"
	case errors.Is(err, domain.ErrConstraint):
		log.Error().Err(err).Str("path", c.Path()).Msg("ledger constraint violation")
		return http.StatusInternalServerError, "internal server error"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
