package api

import (
	"net/http"

	"github.com/Domenick1991/itemshare/internal/apperr"
	"github.com/Domenick1991/itemshare/internal/service/items"
	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	service items.ItemUseCase
}

func NewItemHandler(service items.ItemUseCase) *ItemHandler {
	return &ItemHandler{service: service}
}

func (h *ItemHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("/search", h.search)
	router.PATCH("/:itemId", h.update)
	router.GET("/:itemId", h.get)
	router.GET("", h.listByOwner)
	router.POST("/:itemId/comment", h.comment)
}

func (h *ItemHandler) create(c *gin.Context) {
	ownerID, err := userID(c)
	if err != nil {
		renderError(c, err)
		return
	}

	var input items.CreateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		renderError(c, apperr.BadRequest("invalid item payload: %v", err))
		return
	}

	dto, err := h.service.Create(c.Request.Context(), ownerID, input)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto)
}

func (h *ItemHandler) update(c *gin.Context) {
	ownerID, err := userID(c)
	if err != nil {
		renderError(c, err)
		return
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		renderError(c, err)
		return
	}

	var input items.UpdateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		renderError(c, apperr.BadRequest("invalid item payload: %v", err))
		return
	}

	dto, err := h.service.Update(c.Request.Context(), ownerID, itemID, input)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *ItemHandler) get(c *gin.Context) {
	itemID, err := pathID(c, "itemId")
	if err != nil {
		renderError(c, err)
		return
	}

	view, err := h.service.Get(c.Request.Context(), itemID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ItemHandler) listByOwner(c *gin.Context) {
	ownerID, err := userID(c)
	if err != nil {
		renderError(c, err)
		return
	}

	views, err := h.service.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *ItemHandler) search(c *gin.Context) {
	dtos, err := h.service.Search(c.Request.Context(), c.Query("text"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos)
}

type commentRequest struct {
	Text string `json:"text"`
}

func (h *ItemHandler) comment(c *gin.Context) {
	authorID, err := userID(c)
	if err != nil {
		renderError(c, err)
		return
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		renderError(c, err)
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderError(c, apperr.BadRequest("invalid comment payload: %v", err))
		return
	}

	dto, err := h.service.Comment(c.Request.Context(), authorID, itemID, req.Text)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto)
}
