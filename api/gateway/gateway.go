// Package gatewayapi exposes the gateway's HTTP surface: each handler
// checks the request shape and relays it to the server unchanged.
// Business rules live on the server side only.
package gatewayapi

import (
	"io"
	"net/http"

	"github.com/Domenick1991/itemshare/internal/apperr"
	"github.com/Domenick1991/itemshare/internal/gateway"
	"github.com/gin-gonic/gin"
)

const userHeader = "X-Sharer-User-Id"

type Handler struct {
	client *gateway.Client
}

func NewHandler(client *gateway.Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) Register(router *gin.Engine) {
	router.POST("/users", h.createUser)
	router.GET("/users/:userId", h.forward)
	router.PATCH("/users/:userId", h.forward)
	router.DELETE("/users/:userId", h.forward)

	router.POST("/items", h.createItem)
	router.PATCH("/items/:itemId", h.forward)
	router.GET("/items/search", h.forward)
	router.GET("/items/:itemId", h.forward)
	router.GET("/items", h.forward)
	router.POST("/items/:itemId/comment", h.comment)

	router.POST("/requests", h.createRequest)
	router.GET("/requests", h.forward)
	router.GET("/requests/all", h.forward)
	router.GET("/requests/:requestId", h.forward)

	router.POST("/bookings", h.createBooking)
	router.PATCH("/bookings/:bookingId", h.forward)
	router.GET("/bookings/owner", h.listBookings)
	router.GET("/bookings/:bookingId", h.forward)
	router.GET("/bookings", h.listBookings)
}

func (h *Handler) forward(c *gin.Context) {
	h.relay(c, nil)
}

// relay reads the body (or takes an already-read one) and passes the
// request through, mirroring the server's status and body.
func (h *Handler) relay(c *gin.Context, body []byte) {
	if body == nil {
		data, err := io.ReadAll(c.Request.Body)
		if err != nil {
			renderError(c, apperr.BadRequest("failed to read request body"))
			return
		}
		body = data
	}

	resp, err := h.client.Forward(
		c.Request.Context(),
		c.Request.Method,
		c.Request.URL.Path,
		c.Request.URL.Query(),
		userHeader,
		c.GetHeader(userHeader),
		body,
	)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "server unavailable"})
		return
	}
	c.Data(resp.Status, "application/json", resp.Body)
}

func renderError(c *gin.Context, err error) {
	c.JSON(apperr.StatusOf(err), gin.H{"error": err.Error()})
}
