package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zonaazul/enforcement-system/internal/core/ports"
)

// StreetHandler handles the administrative street endpoints.
type StreetHandler struct {
	service ports.StreetService
}

func NewStreetHandler(service ports.StreetService) *StreetHandler {
	return &StreetHandler{service: service}
}

type createStreetRequest struct {
	Name string `json:"name" validate:"required"`
}

// Create handles POST /streets.
//
// @Summary      Create an enforcement zone
// @Tags         streets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createStreetRequest  true  "Street name"
// @Success      201   {object}  domain.Street
// @Failure      400   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /streets [post]
func (h *StreetHandler) Create(c echo.Context) error {
	var req createStreetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	street, err := h.service.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, street)
}

// List handles GET /streets.
//
// @Summary      List enforcement zones
// @Tags         streets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Street
// @Router       /streets [get]
func (h *StreetHandler) List(c echo.Context) error {
	streets, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, streets)
}
