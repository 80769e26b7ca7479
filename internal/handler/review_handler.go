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

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

func (h *ReviewHandler) RegisterRoutes(g *echo.Group) {
	reviews := g.Group("/reviews")
	reviews.POST("", h.CreateReview)
	reviews.GET("/my", h.ListMyReviews)
	reviews.GET("/companion/:id", h.ListCompanionReviews)
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	var req dto.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.BookingID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "booking_id is required")
	}

	review, err := h.svc.CreateReview(c.Request().Context(), middleware.IdentityFrom(c), service.CreateReviewInput{
		BookingID: req.BookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Tags:      req.Tags,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidRating), errors.Is(err, service.ErrBookingNotCompleted):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotBookingOwner):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrReviewExists):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToReviewResponse(review))
}

func (h *ReviewHandler) ListCompanionReviews(c echo.Context) error {
	companionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid companion id")
	}
	page, limit := pagination(c)

	reviews, total, err := h.svc.ListByCompanion(c.Request().Context(), uint(companionID), page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.ReviewResponse, len(reviews))
	for i, r := range reviews {
		resp[i] = dto.ToReviewResponse(&r)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"reviews":    resp,
		"pagination": paginationMeta(total, page, limit),
	})
}

func (h *ReviewHandler) ListMyReviews(c echo.Context) error {
	reviews, err := h.svc.ListByUser(c.Request().Context(), middleware.IdentityFrom(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.ReviewResponse, len(reviews))
	for i, r := range reviews {
		resp[i] = dto.ToReviewResponse(&r)
	}
	return c.JSON(http.StatusOK, resp)
}
