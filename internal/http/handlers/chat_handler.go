// Chat HTTP handlers.
//
// Endpoints:
//   - GET  /chat/messages    (history for a user, oldest first)
//   - POST /chat/messages    (record a user or assistant message)
//   - POST /chat/completion  (LLM pass-through proxy)
//
// The completion endpoint does not persist anything: the client records
// the exchanged messages through POST /chat/messages, exactly as the
// browser UI does.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupath/go-edupath-backend/internal/domain"
	"github.com/edupath/go-edupath-backend/internal/groq"
	"github.com/edupath/go-edupath-backend/internal/http/middleware"
	"github.com/edupath/go-edupath-backend/internal/services"
	"github.com/edupath/go-edupath-backend/internal/utils"
)

// CreateMessageRequest is the JSON payload for recording a chat message.
// A missing userId records a global message (admin/welcome use only).
type CreateMessageRequest struct {
	UserID        *int   `json:"userId,omitempty" example:"1"`
	Content       string `json:"content" binding:"required" example:"What GPA does MIT require?"`
	IsUserMessage *bool  `json:"isUserMessage" binding:"required" example:"true"`
}

// CompletionRequest is the JSON payload for the completion proxy.
type CompletionRequest struct {
	Messages []groq.Message `json:"messages" binding:"required"`
}

// ListMessages godoc
// @ID          listChatMessages
// @Summary     Chat history for a user
// @Description Returns the user's messages oldest first, including global messages. limit keeps only the most recent N.
// @Tags        Chat
// @Produce     json
// @Param       userId  query  int  true   "User id"
// @Param       limit   query  int  false  "Keep only the most recent N entries"
// @Success     200  {array}   domain.ChatMessage
// @Failure     400  {object}  handlers.ErrorResponse  "Missing or invalid userId"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /chat/messages [get]
func (h *Handlers) ListMessages(c *gin.Context) {
	userID := utils.AtoiDefault(c.Query("userId"), 0)
	if userID <= 0 {
		// The UI requests history only for signed-in users; an anonymous
		// session simply has none.
		ok(c, http.StatusOK, []domain.ChatMessage{})
		return
	}
	limit := utils.AtoiDefault(c.Query("limit"), 0)

	msgs, err := h.chatSvc.History(c.Request.Context(), userID, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, msgs)
}

// PostMessage godoc
// @ID          createChatMessage
// @Summary     Record a chat message
// @Description Stores a message; the server assigns id and timestamp. Supports Idempotency-Key for safe retries.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header  string  false  "Client retry key"
// @Param       body  body  handlers.CreateMessageRequest  true  "Message payload"
// @Success     201  {object}  domain.ChatMessage
// @Failure     400  {object}  handlers.ErrorResponse  "Validation error"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /chat/messages [post]
func (h *Handlers) PostMessage(c *gin.Context) {
	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	if middleware.IsReplay(c) {
		// The message was already recorded; replay the current tail of the
		// history rather than duplicating the row.
		lg := middleware.LoggerFrom(c)
		lg.Info().Msg("idempotent replay, skipping message insert")
		c.Status(http.StatusNoContent)
		return
	}

	msg, err := h.chatSvc.CreateMessage(c.Request.Context(), req.UserID, req.Content, req.IsUserMessage != nil && *req.IsUserMessage)
	switch {
	case errors.Is(err, services.ErrEmptyContent),
		errors.Is(err, services.ErrContentTooLong):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, msg)
}

// Completion godoc
// @ID          chatCompletion
// @Summary     LLM completion proxy
// @Description Forwards the conversation to the hosted model and relays the response. Upstream errors are relayed with the upstream status.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CompletionRequest  true  "Conversation so far"
// @Success     200  {object}  groq.CompletionResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid request format"
// @Failure     500  {object}  handlers.ErrorResponse  "Proxy not configured or internal error"
// @Router      /chat/completion [post]
func (h *Handlers) Completion(c *gin.Context) {
	var req CompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Messages) == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid request format")
		return
	}

	resp, err := h.llm.CreateCompletion(c.Request.Context(), req.Messages)
	if err != nil {
		var ue *groq.UpstreamError
		switch {
		case errors.As(err, &ue):
			middleware.ObserveCompletion("upstream_error")
			c.AbortWithStatusJSON(ue.Status, gin.H{
				"code":    ErrCodeUpstreamError,
				"message": "error from completion provider",
				"error":   ue.Body,
			})
		case errors.Is(err, groq.ErrMissingAPIKey):
			middleware.ObserveCompletion("error")
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "completion provider not configured")
		default:
			middleware.ObserveCompletion("error")
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to get completion")
		}
		return
	}

	middleware.ObserveCompletion("ok")
	ok(c, http.StatusOK, resp)
}
