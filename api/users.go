package api

import (
	"net/http"

	"github.com/Domenick1991/itemshare/internal/apperr"
	"github.com/Domenick1991/itemshare/internal/service/users"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service users.UserUseCase
}

func NewUserHandler(service users.UserUseCase) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("/:userId", h.get)
	router.PATCH("/:userId", h.update)
	router.DELETE("/:userId", h.delete)
}

func (h *UserHandler) create(c *gin.Context) {
	var input users.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		renderError(c, apperr.BadRequest("invalid user payload: %v", err))
		return
	}

	dto, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto)
}

func (h *UserHandler) get(c *gin.Context) {
	id, err := pathID(c, "userId")
	if err != nil {
		renderError(c, err)
		return
	}

	dto, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *UserHandler) update(c *gin.Context) {
	id, err := pathID(c, "userId")
	if err != nil {
		renderError(c, err)
		return
	}

	var input users.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		renderError(c, apperr.BadRequest("invalid user payload: %v", err))
		return
	}

	dto, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *UserHandler) delete(c *gin.Context) {
	id, err := pathID(c, "userId")
	if err != nil {
		renderError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
