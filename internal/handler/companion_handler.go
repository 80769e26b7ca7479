package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirikit/companion-booking/internal/dto"
	"github.com/sirikit/companion-booking/internal/middleware"
	"github.com/sirikit/companion-booking/internal/service"
)

type CompanionHandler struct {
	svc service.CompanionService
}

func NewCompanionHandler(svc service.CompanionService) *CompanionHandler {
	return &CompanionHandler{svc: svc}
}

func (h *CompanionHandler) RegisterRoutes(g *echo.Group) {
	companions := g.Group("/companions")
	companions.GET("/:id", h.GetCompanion)
	companions.PUT("/me", h.UpdateOwn)
	companions.POST("/:id/verify", h.Verify)
}

func (h *CompanionHandler) GetCompanion(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid companion id")
	}

	companion, err := h.svc.Get(c.Request().Context(), uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "companion not found")
	}
	return c.JSON(http.StatusOK, companion)
}

func (h *CompanionHandler) UpdateOwn(c echo.Context) error {
	var req dto.UpdateCompanionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	companion, err := h.svc.UpdateOwn(c.Request().Context(), middleware.IdentityFrom(c), req)
	if err != nil {
		if errors.Is(err, service.ErrCompanionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, companion)
}

func (h *CompanionHandler) Verify(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid companion id")
	}

	companion, err := h.svc.Verify(c.Request().Context(), middleware.IdentityFrom(c), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrCompanionNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, companion)
}
