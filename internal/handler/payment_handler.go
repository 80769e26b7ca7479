package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirikit/companion-booking/internal/dto"
	"github.com/sirikit/companion-booking/internal/middleware"
	"github.com/sirikit/companion-booking/internal/models"
	"github.com/sirikit/companion-booking/internal/service"
)

type PaymentHandler struct {
	svc service.PaymentService
}

func NewPaymentHandler(svc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

func (h *PaymentHandler) RegisterRoutes(g *echo.Group) {
	payments := g.Group("/payments")
	payments.POST("/intent", h.CreateIntent)
	payments.POST("/confirm", h.ConfirmPayment)
	payments.POST("/wallet/pay", h.PayWithWallet)
	payments.POST("/wallet/topup", h.TopUpWallet)
	payments.GET("/wallet", h.GetWallet)
	payments.GET("/history", h.History)
}

func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	var req dto.CreateIntentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.BookingID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "booking_id is required")
	}

	intent, err := h.svc.CreateIntent(c.Request().Context(), middleware.IdentityFrom(c), req.BookingID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrForbidden):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		default:
			return echo.NewHTTPError(http.StatusBadGateway, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.IntentResponse{
		Reference: intent.Reference,
		Amount:    intent.Amount,
		Currency:  intent.Currency,
	})
}

func (h *PaymentHandler) ConfirmPayment(c echo.Context) error {
	var req dto.ConfirmPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.BookingID == 0 || req.Reference == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "booking_id and reference are required")
	}

	payment, err := h.svc.ConfirmPayment(c.Request().Context(), middleware.IdentityFrom(c), req.BookingID, req.Reference)
	if err != nil {
		return paymentError(err)
	}
	return c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

func (h *PaymentHandler) PayWithWallet(c echo.Context) error {
	var req dto.WalletPayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.BookingID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "booking_id is required")
	}

	payment, err := h.svc.PayWithWallet(c.Request().Context(), middleware.IdentityFrom(c), req.BookingID)
	if err != nil {
		return paymentError(err)
	}
	return c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

func (h *PaymentHandler) TopUpWallet(c echo.Context) error {
	var req dto.TopupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	payment, user, err := h.svc.TopUpWallet(c.Request().Context(), middleware.IdentityFrom(c), req.Amount, req.Reference)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAmount) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return paymentError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"payment": dto.ToPaymentResponse(payment),
		"wallet":  walletResponse(user),
	})
}

func (h *PaymentHandler) GetWallet(c echo.Context) error {
	user, err := h.svc.GetWallet(c.Request().Context(), middleware.IdentityFrom(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, walletResponse(user))
}

func (h *PaymentHandler) History(c echo.Context) error {
	page, limit := pagination(c)

	payments, total, err := h.svc.History(c.Request().Context(), middleware.IdentityFrom(c), page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.PaymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = dto.ToPaymentResponse(&p)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"payments":   resp,
		"pagination": paginationMeta(total, page, limit),
	})
}

func walletResponse(user *models.User) dto.WalletResponse {
	return dto.WalletResponse{Balance: user.WalletBalance, Currency: user.WalletCurrency}
}

func paymentError(err error) error {
	switch {
	case errors.Is(err, service.ErrBookingNotFound), errors.Is(err, service.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInsufficientFunds), errors.Is(err, service.ErrPaymentFailed):
		return echo.NewHTTPError(http.StatusPaymentRequired, err.Error())
	case errors.Is(err, service.ErrAlreadyPaid), errors.Is(err, service.ErrIllegalTransition):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
