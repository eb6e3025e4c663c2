package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-lifecycle/internal/interface/http/dto"
	"github.com/ignatzorin/freelance-lifecycle/internal/interface/http/response"
	"github.com/ignatzorin/freelance-lifecycle/internal/usecase/dispute"
)

type DisputeHandler struct {
	openUC    *dispute.OpenDisputeUseCase
	getUC     *dispute.GetDisputeUseCase
	listUC    *dispute.ListDisputesUseCase
	resolveUC *dispute.ResolveDisputeUseCase
	closeUC   *dispute.CloseDisputeUseCase
	deleteUC  *dispute.DeleteDisputeUseCase
}

func NewDisputeHandler(
	openUC *dispute.OpenDisputeUseCase,
	getUC *dispute.GetDisputeUseCase,
	listUC *dispute.ListDisputesUseCase,
	resolveUC *dispute.ResolveDisputeUseCase,
	closeUC *dispute.CloseDisputeUseCase,
	deleteUC *dispute.DeleteDisputeUseCase,
) *DisputeHandler {
	return &DisputeHandler{
		openUC:    openUC,
		getUC:     getUC,
		listUC:    listUC,
		resolveUC: resolveUC,
		closeUC:   closeUC,
		deleteUC:  deleteUC,
	}
}

// Open обрабатывает POST /api/orders/:id/disputes.
func (h *DisputeHandler) Open(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.OpenDisputeRequest
	if !bindJSON(c, &req) {
		return
	}

	opened, err := h.openUC.Execute(c.Request.Context(), actor, orderID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToDisputeResponse(opened))
}

func (h *DisputeHandler) Get(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}
	disputeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	found, err := h.getUC.Execute(c.Request.Context(), actor, disputeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToDisputeResponse(found))
}

// List обрабатывает GET /api/admin/disputes?search=&status=
func (h *DisputeHandler) List(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}
	limit, offset := pageParams(c)

	page, err := h.listUC.Execute(c.Request.Context(), actor, dispute.ListDisputesInput{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, dto.ToDisputeViewResponses(page.Disputes), page.Total, limit, offset)
}

func (h *DisputeHandler) Resolve(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}
	disputeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ResolveDisputeRequest
	if !bindJSON(c, &req) {
		return
	}

	resolved, err := h.resolveUC.Execute(c.Request.Context(), actor, disputeID, req.Resolution)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToDisputeResponse(resolved))
}

func (h *DisputeHandler) Close(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}
	disputeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	closed, err := h.closeUC.Execute(c.Request.Context(), actor, disputeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToDisputeResponse(closed))
}

func (h *DisputeHandler) Delete(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}
	disputeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), actor, disputeID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
