package http

import (
	"github.com/gin-gonic/gin"

	"smart-todo/internal/middleware"
	"smart-todo/pkg/response"
)

// CreateSession godoc
// @Summary     Start a chat session
// @Tags        Chat
// @Produce     json
// @Param       X-User-ID header string false "Caller id (default anonymous)"
// @Success     201 {object} sessionResp
// @Router      /api/v1/chat/sessions [POST]
func (h *handler) CreateSession(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.CreateSession(ctx, middleware.GetScope(c))
	if err != nil {
		h.l.Errorf(ctx, "uc.CreateSession: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.Created(c, h.newSessionResp(output))
}

// GetSession godoc
// @Summary     Get a chat transcript
// @Tags        Chat
// @Produce     json
// @Param       X-User-ID header string false "Caller id (default anonymous)"
// @Param       id        path   string true  "Session ID"
// @Success     200 {object} sessionResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/chat/sessions/{id} [GET]
func (h *handler) GetSession(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processID(c)
	if err != nil {
		response.ValidationError(c, err)
		return
	}

	output, err := h.uc.GetSession(ctx, middleware.GetScope(c), id)
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newSessionResp(output))
}

// SendMessage godoc
// @Summary     Send a chat message
// @Description Runs one dialogue turn. Model failures still answer 200 with an apology reply and the previous draft.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string         false "Caller id (default anonymous)"
// @Param       id        path   string         true  "Session ID"
// @Param       body      body   sendMessageReq true  "Message"
// @Success     200 {object} turnResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/chat/sessions/{id}/messages [POST]
func (h *handler) SendMessage(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSendMessageReq(c)
	if err != nil {
		response.ValidationError(c, err)
		return
	}

	output, err := h.uc.SendMessage(ctx, middleware.GetScope(c), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.SendMessage: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newTurnResp(output))
}

// DeleteSession godoc
// @Summary     End a chat session
// @Tags        Chat
// @Produce     json
// @Param       X-User-ID header string false "Caller id (default anonymous)"
// @Param       id        path   string true  "Session ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/chat/sessions/{id} [DELETE]
func (h *handler) DeleteSession(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processID(c)
	if err != nil {
		response.ValidationError(c, err)
		return
	}

	if err := h.uc.DeleteSession(ctx, middleware.GetScope(c), id); err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, nil)
}
