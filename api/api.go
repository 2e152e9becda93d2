// Package api holds the gin handlers for the server endpoints. Every
// error reaches the client through one status dispatch table in
// internal/apperr.
package api

import (
	"strconv"

	"github.com/Domenick1991/itemshare/internal/apperr"
	"github.com/gin-gonic/gin"
)

// UserHeader identifies the acting user on authenticated routes.
const UserHeader = "X-Sharer-User-Id"

func userID(c *gin.Context) (int64, error) {
	raw := c.GetHeader(UserHeader)
	if raw == "" {
		return 0, apperr.BadRequest("%s header is required", UserHeader)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.BadRequest("invalid %s header: %s", UserHeader, raw)
	}
	return id, nil
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.BadRequest("invalid %s", name)
	}
	return id, nil
}

func renderError(c *gin.Context, err error) {
	c.JSON(apperr.StatusOf(err), gin.H{"error": err.Error()})
}
