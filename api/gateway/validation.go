package gatewayapi

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/itemshare/internal/apperr"
	"github.com/Domenick1991/itemshare/internal/domain"
	"github.com/gin-gonic/gin"
)

// Shape checks only: ids positive, required fields present, dates
// parseable. Anything semantic is the server's call.

func (h *Handler) createUser(c *gin.Context) {
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	raw, err := decode(c, &body)
	if err != nil {
		renderError(c, err)
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		renderError(c, apperr.BadRequest("name is required"))
		return
	}
	if strings.TrimSpace(body.Email) == "" || !strings.Contains(body.Email, "@") {
		renderError(c, apperr.BadRequest("a valid email is required"))
		return
	}
	h.relay(c, raw)
}

func (h *Handler) createItem(c *gin.Context) {
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Available   *bool  `json:"available"`
		RequestID   *int64 `json:"requestId"`
	}
	raw, err := decode(c, &body)
	if err != nil {
		renderError(c, err)
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		renderError(c, apperr.BadRequest("name is required"))
		return
	}
	if strings.TrimSpace(body.Description) == "" {
		renderError(c, apperr.BadRequest("description is required"))
		return
	}
	if body.Available == nil {
		renderError(c, apperr.BadRequest("available is required"))
		return
	}
	if body.RequestID != nil && *body.RequestID <= 0 {
		renderError(c, apperr.BadRequest("requestId must be positive"))
		return
	}
	h.relay(c, raw)
}

func (h *Handler) createRequest(c *gin.Context) {
	var body struct {
		Description string `json:"description"`
	}
	raw, err := decode(c, &body)
	if err != nil {
		renderError(c, err)
		return
	}
	if strings.TrimSpace(body.Description) == "" {
		renderError(c, apperr.BadRequest("description is required"))
		return
	}
	h.relay(c, raw)
}

func (h *Handler) createBooking(c *gin.Context) {
	var body struct {
		ItemID int64      `json:"itemId"`
		Start  *time.Time `json:"start"`
		End    *time.Time `json:"end"`
	}
	raw, err := decode(c, &body)
	if err != nil {
		renderError(c, err)
		return
	}
	if body.ItemID <= 0 {
		renderError(c, apperr.BadRequest("itemId must be positive"))
		return
	}
	if body.Start == nil || body.End == nil {
		renderError(c, apperr.BadRequest("start and end are required"))
		return
	}
	h.relay(c, raw)
}

func (h *Handler) comment(c *gin.Context) {
	var body struct {
		Text string `json:"text"`
	}
	raw, err := decode(c, &body)
	if err != nil {
		renderError(c, err)
		return
	}
	if strings.TrimSpace(body.Text) == "" {
		renderError(c, apperr.BadRequest("text is required"))
		return
	}
	h.relay(c, raw)
}

func (h *Handler) listBookings(c *gin.Context) {
	state := c.DefaultQuery("state", "ALL")
	if _, ok := domain.ParseStateFilter(state); !ok {
		renderError(c, apperr.BadRequest("unknown state: %s", state))
		return
	}
	if raw := c.GetHeader(userHeader); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err != nil || id <= 0 {
			renderError(c, apperr.BadRequest("invalid %s header", userHeader))
			return
		}
	}
	h.relay(c, nil)
}

func decode(c *gin.Context, v any) ([]byte, error) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, apperr.BadRequest("failed to read request body")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return nil, apperr.BadRequest("invalid payload: %v", err)
	}
	return raw, nil
}
