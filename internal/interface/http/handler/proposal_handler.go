package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-lifecycle/internal/interface/http/dto"
	"github.com/ignatzorin/freelance-lifecycle/internal/interface/http/response"
	"github.com/ignatzorin/freelance-lifecycle/internal/usecase/proposal"
)

type ProposalHandler struct {
	submitUC  *proposal.SubmitProposalUseCase
	listJobUC *proposal.ListJobProposalsUseCase
	listMyUC  *proposal.ListMyProposalsUseCase
	acceptUC  *proposal.AcceptProposalUseCase
	rejectUC  *proposal.RejectProposalUseCase
	editUC    *proposal.EditProposalUseCase
	deleteUC  *proposal.DeleteProposalUseCase
}

func NewProposalHandler(
	submitUC *proposal.SubmitProposalUseCase,
	listJobUC *proposal.ListJobProposalsUseCase,
	listMyUC *proposal.ListMyProposalsUseCase,
	acceptUC *proposal.AcceptProposalUseCase,
	rejectUC *proposal.RejectProposalUseCase,
	editUC *proposal.EditProposalUseCase,
	deleteUC *proposal.DeleteProposalUseCase,
) *ProposalHandler {
	return &ProposalHandler{
		submitUC:  submitUC,
		listJobUC: listJobUC,
		listMyUC:  listMyUC,
		acceptUC:  acceptUC,
		rejectUC:  rejectUC,
		editUC:    editUC,
		deleteUC:  deleteUC,
	}
}

// Submit обрабатывает POST /api/jobs/:id/proposals.
func (h *ProposalHandler) Submit(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ProposalRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.submitUC.Execute(c.Request.Context(), actor, jobID, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToProposalResponse(created))
}

// ListForJob обрабатывает GET /api/jobs/:id/proposals. Только владелец вакансии или администратор.
func (h *ProposalHandler) ListForJob(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	proposals, err := h.listJobUC.Execute(c.Request.Context(), actor, jobID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProposalResponses(proposals))
}

func (h *ProposalHandler) ListMy(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}

	proposals, err := h.listMyUC.Execute(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProposalResponses(proposals))
}

// Accept принимает предложение и возвращает созданный заказ.
func (h *ProposalHandler) Accept(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}
	proposalID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	created, err := h.acceptUC.Execute(c.Request.Context(), actor, proposalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToOrderResponse(created))
}

func (h *ProposalHandler) Reject(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}
	proposalID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	rejected, err := h.rejectUC.Execute(c.Request.Context(), actor, proposalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProposalResponse(rejected))
}

func (h *ProposalHandler) Edit(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}
	proposalID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ProposalRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.editUC.Execute(c.Request.Context(), actor, proposalID, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProposalResponse(updated))
}

func (h *ProposalHandler) Delete(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}
	proposalID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), actor, proposalID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
