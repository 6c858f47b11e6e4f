// Chat HTTP handlers.
//
// This file exposes the document-aware assistant endpoint:
//   - POST /chat   (ask a question about the account's documents)
//
// The handler validates the prompt and proxies it to the external
// retrieval-augmented chat capability via the chat service.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/documind/go-documind-backend/internal/clients/ragchat"
	"github.com/documind/go-documind-backend/internal/services"
)

// ChatRequest is the JSON payload for asking the assistant a question.
type ChatRequest struct {
	Message string `json:"message" binding:"required" example:"Which vendor did I spend the most with?"`
}

// ChatResponse carries the assistant's reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// Chat godoc
// @ID          chat
// @Summary     Ask the document assistant
// @Description Sends a question to the assistant, answered against the account's saved documents.
// @Tags        Chat
// @Accept      json
// @Produce     json
//
// @Param       Authorization  header  string  true  "Bearer token"
// @Param       body           body    handlers.ChatRequest  true  "Question payload"
//
// @Success     200  {object}  handlers.ChatResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     502  {object}  handlers.ErrorResponse  "Assistant unavailable"
// @Router      /chat [post]
func (h *Handlers) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message required")
		return
	}

	reply, err := h.chatSvc.Ask(c.Request.Context(), userID(c), req.Message)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyPrompt):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message required")
		case errors.Is(err, services.ErrTooLong):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message too long")
		case errors.Is(err, ragchat.ErrUnavailable):
			fail(c, http.StatusBadGateway, ErrCodeUpstreamDown, "assistant unavailable")
		default:
			fail(c, http.StatusBadGateway, ErrCodeAnswerFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, ChatResponse{Reply: reply})
}
