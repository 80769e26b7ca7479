package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirikit/companion-booking/internal/auth"
	"github.com/sirikit/companion-booking/internal/dto"
	"github.com/sirikit/companion-booking/internal/middleware"
	"github.com/sirikit/companion-booking/internal/models"
	"github.com/sirikit/companion-booking/internal/service"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(g *echo.Group) {
	bookings := g.Group("/bookings")
	bookings.POST("", h.CreateBooking)
	bookings.GET("/my", h.ListMyBookings)
	bookings.GET("/companion", h.ListCompanionBookings)
	bookings.GET("/:id", h.GetBooking)
	bookings.PUT("/:id/status", h.UpdateStatus)
	bookings.POST("/:id/checkin", h.CheckIn)
	bookings.POST("/:id/checkout", h.CheckOut)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.CompanionID == 0 || req.Activity == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "companion_id and activity are required")
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	if !validClock(req.StartTime) || !validClock(req.EndTime) {
		return echo.NewHTTPError(http.StatusBadRequest, "start_time and end_time must be HH:MM")
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), middleware.IdentityFrom(c), service.CreateBookingInput{
		CompanionID:     req.CompanionID,
		Activity:        req.Activity,
		Date:            date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Duration:        req.Duration,
		LocationAddress: req.LocationAddress,
		LocationCity:    req.LocationCity,
		LocationLat:     req.LocationLat,
		LocationLng:     req.LocationLng,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCompanionUnavailable):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidDuration), errors.Is(err, service.ErrInvalidTimeRange):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSlotTaken):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), middleware.IdentityFrom(c), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrForbidden):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListMyBookings(c echo.Context) error {
	status := statusFilter(c)
	page, limit := pagination(c)

	bookings, total, err := h.svc.ListUserBookings(c.Request().Context(), middleware.IdentityFrom(c), status, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, bookingPage(bookings, total, page, limit))
}

func (h *BookingHandler) ListCompanionBookings(c echo.Context) error {
	status := statusFilter(c)
	page, limit := pagination(c)

	bookings, total, err := h.svc.ListCompanionBookings(c.Request().Context(), middleware.IdentityFrom(c), status, page, limit)
	if err != nil {
		if errors.Is(err, service.ErrCompanionUnavailable) {
			return echo.NewHTTPError(http.StatusNotFound, "companion profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, bookingPage(bookings, total, page, limit))
}

func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	var req dto.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.svc.UpdateStatus(c.Request().Context(), middleware.IdentityFrom(c), uint(id), models.BookingStatus(req.Status), req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrForbidden):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrIllegalTransition):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) CheckIn(c echo.Context) error {
	return h.checkEvent(c, h.svc.CheckIn)
}

func (h *BookingHandler) CheckOut(c echo.Context) error {
	return h.checkEvent(c, h.svc.CheckOut)
}

type checkFunc func(ctx context.Context, actor auth.Identity, id uint, lat, lng *float64) (*models.Booking, error)

func (h *BookingHandler) checkEvent(c echo.Context, fn checkFunc) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	var req dto.CheckEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := fn(c.Request().Context(), middleware.IdentityFrom(c), uint(id), req.Lat, req.Lng)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrForbidden):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrIllegalTransition):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// validClock accepts zero-padded 24h HH:MM.
func validClock(s string) bool {
	if _, err := time.Parse("15:04", s); err != nil {
		return false
	}
	return len(s) == 5
}

func statusFilter(c echo.Context) *models.BookingStatus {
	if s := c.QueryParam("status"); s != "" {
		bs := models.BookingStatus(s)
		return &bs
	}
	return nil
}

func pagination(c echo.Context) (page, limit int) {
	page, limit = 1, 20
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(c.QueryParam("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}
	return page, limit
}

func bookingPage(bookings []models.Booking, total int64, page, limit int) map[string]interface{} {
	resp := make([]dto.BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = dto.ToBookingResponse(&b)
	}
	return map[string]interface{}{
		"bookings":   resp,
		"pagination": paginationMeta(total, page, limit),
	}
}

func paginationMeta(total int64, page, limit int) dto.Pagination {
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return dto.Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}
