package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"waitlist/internal/push"
	"waitlist/internal/response"
)

type PushHandler struct {
	push push.Dispatcher
}

func NewPushHandler(dispatcher push.Dispatcher) *PushHandler {
	return &PushHandler{push: dispatcher}
}

// SendPushHandler fans a message out to push tokens
// @Summary		Send push
// @Description	Best-effort delivery: every token gets its own result, invalid tokens are skipped
// @Tags			push
// @Accept			json
// @Produce		json
// @Param			body	body		response.PushRequest	true	"Tokens and message"
// @Success		200		{array}		push.Result
// @Failure		400		{object}	response.ErrorResponse	"Missing tokens or message (MALFORMED_REQUEST)"
// @Router			/api/push [post]
func (h *PushHandler) SendPushHandler(c *gin.Context) {
	var req response.PushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, h.push.SendPush(c.Request.Context(), req.Tokens, req.Message))
}
