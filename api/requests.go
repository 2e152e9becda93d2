package api

import (
	"net/http"

	"github.com/Domenick1991/itemshare/internal/apperr"
	"github.com/Domenick1991/itemshare/internal/service/requests"
	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	service requests.RequestUseCase
}

func NewRequestHandler(service requests.RequestUseCase) *RequestHandler {
	return &RequestHandler{service: service}
}

func (h *RequestHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.own)
	router.GET("/all", h.all)
	router.GET("/:requestId", h.get)
}

type createRequestBody struct {
	Description string `json:"description"`
}

func (h *RequestHandler) create(c *gin.Context) {
	requesterID, err := userID(c)
	if err != nil {
		renderError(c, err)
		return
	}

	var body createRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		renderError(c, apperr.BadRequest("invalid request payload: %v", err))
		return
	}

	dto, err := h.service.Create(c.Request.Context(), requesterID, body.Description)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto)
}

func (h *RequestHandler) own(c *gin.Context) {
	requesterID, err := userID(c)
	if err != nil {
		renderError(c, err)
		return
	}

	dtos, err := h.service.Own(c.Request.Context(), requesterID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos)
}

func (h *RequestHandler) all(c *gin.Context) {
	requesterID, err := userID(c)
	if err != nil {
		renderError(c, err)
		return
	}

	dtos, err := h.service.All(c.Request.Context(), requesterID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos)
}

func (h *RequestHandler) get(c *gin.Context) {
	requesterID, err := userID(c)
	if err != nil {
		renderError(c, err)
		return
	}
	requestID, err := pathID(c, "requestId")
	if err != nil {
		renderError(c, err)
		return
	}

	dto, err := h.service.Get(c.Request.Context(), requesterID, requestID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}
