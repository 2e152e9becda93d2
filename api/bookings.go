package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/itemshare/internal/apperr"
	"github.com/Domenick1991/itemshare/internal/service/bookings"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service bookings.BookingUseCase
}

func NewBookingHandler(service bookings.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.PATCH("/:bookingId", h.decide)
	router.GET("/owner", h.listForOwner)
	router.GET("/:bookingId", h.get)
	router.GET("", h.listForBooker)
}

func (h *BookingHandler) create(c *gin.Context) {
	bookerID, err := userID(c)
	if err != nil {
		renderError(c, err)
		return
	}

	var input bookings.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		renderError(c, apperr.BadRequest("invalid booking payload: %v", err))
		return
	}

	view, err := h.service.Create(c.Request.Context(), bookerID, input)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *BookingHandler) decide(c *gin.Context) {
	actingUserID, err := userID(c)
	if err != nil {
		renderError(c, err)
		return
	}
	bookingID, err := pathID(c, "bookingId")
	if err != nil {
		renderError(c, err)
		return
	}
	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		renderError(c, apperr.BadRequest("approved query parameter must be a boolean"))
		return
	}

	view, err := h.service.Decide(c.Request.Context(), actingUserID, bookingID, approved)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *BookingHandler) get(c *gin.Context) {
	viewerID, err := userID(c)
	if err != nil {
		renderError(c, err)
		return
	}
	bookingID, err := pathID(c, "bookingId")
	if err != nil {
		renderError(c, err)
		return
	}

	view, err := h.service.Get(c.Request.Context(), viewerID, bookingID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *BookingHandler) listForBooker(c *gin.Context) {
	bookerID, err := userID(c)
	if err != nil {
		renderError(c, err)
		return
	}

	views, err := h.service.ListForBooker(c.Request.Context(), bookerID, c.DefaultQuery("state", "ALL"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *BookingHandler) listForOwner(c *gin.Context) {
	ownerID, err := userID(c)
	if err != nil {
		renderError(c, err)
		return
	}

	views, err := h.service.ListForOwner(c.Request.Context(), ownerID, c.DefaultQuery("state", "ALL"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}
