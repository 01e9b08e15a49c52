package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/zonaazul/enforcement-system/internal/api/metrics"
	"github.com/zonaazul/enforcement-system/internal/core/domain"
	"github.com/zonaazul/enforcement-system/internal/core/ports"
)

// EnforcementHandler handles HTTP requests for inspection operations.
type EnforcementHandler struct {
	service ports.EnforcementService
}

func NewEnforcementHandler(service ports.EnforcementService) *EnforcementHandler {
	return &EnforcementHandler{service: service}
}

// FiscalSpots handles POST /fiscal_spot.
//
// @Summary      List active spots on a street
// @Tags         enforcement
// @Accept       json
// @Produce      json
// @Param        body  body      fiscalSpotRequest  true  "Inspector CPF and street name"
// @Success      200   {array}   spotResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /fiscal_spot [post]
func (h *EnforcementHandler) FiscalSpots(c echo.Context) error {
	var req fiscalSpotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.CPF == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "CPF do fiscal não fornecido.")
	}
	if req.NomeRua == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Nome da rua não fornecido.")
	}

	views, err := h.service.ListActiveOnStreet(c.Request().Context(), ports.ListActiveInput{
		InspectorCPF: req.CPF,
		StreetName:   req.NomeRua,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveSpots) {
			metrics.SpotListingsTotal.WithLabelValues("empty").Inc()
		} else {
			metrics.SpotListingsTotal.WithLabelValues("error").Inc()
		}
		return err
	}
	metrics.SpotListingsTotal.WithLabelValues("ok").Inc()

	resp := make([]spotResponse, len(views))
	for i, v := range views {
		resp[i] = toSpotResponse(v)
	}
	return c.JSON(http.StatusOK, resp)
}

// CheckParkingState handles POST /check_parking_state.
//
// Citation outcomes both answer 403 — authorized and denied-in-grace are
// distinguished only by message text. The legacy client depends on this.
//
// @Summary      Evaluate a vehicle's parking status on a street
// @Tags         enforcement
// @Accept       json
// @Produce      json
// @Param        body  body      checkParkingStateRequest  true  "Inspector CPF, plate, and street name"
// @Success      200   {object}  parkingStateResponse
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /check_parking_state [post]
func (h *EnforcementHandler) CheckParkingState(c echo.Context) error {
	var req checkParkingStateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.CPF == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "CPF do fiscal não fornecido.")
	}
	if req.PlacaDoCarro == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Placa do carro não fornecida.")
	}
	if req.NomeRua == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Nome da rua não fornecido.")
	}

	start := time.Now()
	result, err := h.service.Evaluate(c.Request().Context(), ports.EvaluateInput{
		InspectorCPF: req.CPF,
		Plate:        req.PlacaDoCarro,
		StreetName:   req.NomeRua,
	})
	if err != nil {
		metrics.EvaluationDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return err
	}

	metrics.EvaluationsTotal.WithLabelValues(string(result.Classification)).Inc()
	metrics.EvaluationDuration.WithLabelValues(string(result.Classification)).Observe(time.Since(start).Seconds())

	switch result.Classification {
	case domain.ClassValidHere:
		return c.JSON(http.StatusOK, parkingStateResponse{
			Message: "Veículo possui vaga ativa registrada nesta rua.",
			Vaga:    recordToSpotResponse(result.Record),
		})

	case domain.ClassValidElsewhere:
		return c.JSON(http.StatusOK, parkingStateResponse{
			Message: "Veículo possuía vaga ativa em outra rua. Rua atualizada com sucesso.",
			Vaga:    recordToSpotResponse(result.Record),
		})

	case domain.ClassFirstObservation:
		minutes := int(result.GraceDeadline.Sub(result.Record.EntryTime).Minutes())
		return c.JSON(http.StatusOK, parkingStateResponse{
			Message: fmt.Sprintf("Veículo não possui vaga ativa. O proprietário tem %d minutos para cadastrá-la, caso contrário você será solicitado para autuá-lo.", minutes),
			Vaga:    recordToSpotResponse(result.Record),
		})

	case domain.ClassPendingGrace:
		return c.JSON(http.StatusForbidden, messageResponse{
			Message: fmt.Sprintf("Autuação recusada. O proprietário tem até %s para cadastrá-la.", result.GraceDeadline.Local().Format("15:04:05")),
		})

	case domain.ClassGraceExpired:
		metrics.CitationsAuthorizedTotal.Inc()
		return c.JSON(http.StatusForbidden, messageResponse{
			Message: "Proprietário não registrou uma vaga a tempo. Você está autorizado a autuá-lo.",
		})
	}

	return echo.NewHTTPError(http.StatusInternalServerError, "unknown classification")
}
