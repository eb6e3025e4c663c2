package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-lifecycle/internal/interface/http/dto"
	"github.com/ignatzorin/freelance-lifecycle/internal/interface/http/response"
	"github.com/ignatzorin/freelance-lifecycle/internal/usecase/message"
)

type MessageHandler struct {
	sendUC *message.SendMessageUseCase
	listUC *message.ListMessagesUseCase
}

func NewMessageHandler(sendUC *message.SendMessageUseCase, listUC *message.ListMessagesUseCase) *MessageHandler {
	return &MessageHandler{sendUC: sendUC, listUC: listUC}
}

// Send обрабатывает POST /api/jobs/:id/messages.
func (h *MessageHandler) Send(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	sent, err := h.sendUC.Execute(c.Request.Context(), actor, jobID, req.Body)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToMessageResponse(sent))
}

// List обрабатывает GET /api/jobs/:id/messages и отмечает входящие прочитанными.
func (h *MessageHandler) List(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	msgs, err := h.listUC.Execute(c.Request.Context(), actor, jobID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToMessageResponses(msgs))
}
