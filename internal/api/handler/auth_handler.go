package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zonaazul/enforcement-system/internal/core/domain"
	"github.com/zonaazul/enforcement-system/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	CPF    string `json:"cpf"    validate:"required"`
	Email  string `json:"email"  validate:"required,email"`
	Senha  string `json:"senha"  validate:"required"`
	Estado string `json:"estado"`
	Cidade string `json:"cidade"`
	Role   string `json:"role,omitempty"`
}

type loginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

type loginResponse struct {
	Message string `json:"message"`
	CPF     string `json:"cpf"`
	Token   string `json:"token"`
}

// Register creates a new inspector account.
//
// @Summary      Register a new inspector
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Inspector registration details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		CPF:      req.CPF,
		Email:    req.Email,
		Password: req.Senha,
		Role:     req.Role,
		State:    req.Estado,
		City:     req.Cidade,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInspectorExists) {
			return c.JSON(http.StatusConflict, messageResponse{Message: "Fiscal já registrado."})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "Erro ao registrar fiscal."})
		}
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: "Erro ao registrar fiscal."})
	}

	return c.JSON(http.StatusCreated, messageResponse{Message: "Fiscal registrado com sucesso!"})
}

// Login authenticates an inspector and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, inspector, err := h.authService.Login(c.Request().Context(), req.Email, req.Senha)
	if err != nil {
		if errors.Is(err, domain.ErrInspectorNotFound) {
			return c.JSON(http.StatusUnauthorized, messageResponse{Message: "Email não encontrado no sistema."})
		}
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, messageResponse{Message: "Senha incorreta."})
		}
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Message: "Login realizado com sucesso!",
		CPF:     inspector.CPF,
		Token:   token,
	})
}
