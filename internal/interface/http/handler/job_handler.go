package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-lifecycle/internal/interface/http/dto"
	"github.com/ignatzorin/freelance-lifecycle/internal/interface/http/response"
	"github.com/ignatzorin/freelance-lifecycle/internal/usecase/job"
)

type JobHandler struct {
	createJobUC   *job.CreateJobUseCase
	editJobUC     *job.EditJobUseCase
	getJobUC      *job.GetJobUseCase
	listOpenUC    *job.ListOpenJobsUseCase
	listMyUC      *job.ListMyJobsUseCase
	adminListUC   *job.AdminListJobsUseCase
	setApprovalUC *job.SetApprovalUseCase
	cancelJobUC   *job.CancelJobUseCase
	deleteJobUC   *job.DeleteJobUseCase
}

func NewJobHandler(
	createJobUC *job.CreateJobUseCase,
	editJobUC *job.EditJobUseCase,
	getJobUC *job.GetJobUseCase,
	listOpenUC *job.ListOpenJobsUseCase,
	listMyUC *job.ListMyJobsUseCase,
	adminListUC *job.AdminListJobsUseCase,
	setApprovalUC *job.SetApprovalUseCase,
	cancelJobUC *job.CancelJobUseCase,
	deleteJobUC *job.DeleteJobUseCase,
) *JobHandler {
	return &JobHandler{
		createJobUC:   createJobUC,
		editJobUC:     editJobUC,
		getJobUC:      getJobUC,
		listOpenUC:    listOpenUC,
		listMyUC:      listMyUC,
		adminListUC:   adminListUC,
		setApprovalUC: setApprovalUC,
		cancelJobUC:   cancelJobUC,
		deleteJobUC:   deleteJobUC,
	}
}

// CreateJob обрабатывает POST /api/jobs.
func (h *JobHandler) CreateJob(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req dto.JobRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.createJobUC.Execute(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToJobResponse(created))
}

// EditJob обслуживает PUT /api/jobs/:id и PUT /api/admin/jobs/:id.
func (h *JobHandler) EditJob(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.JobRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.editJobUC.Execute(c.Request.Context(), actor, jobID, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToJobResponse(updated))
}

func (h *JobHandler) GetJob(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	found, err := h.getJobUC.Execute(c.Request.Context(), actor, jobID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToJobResponse(found))
}

// ListOpenJobs обрабатывает GET /api/jobs?search=&min_budget=&max_budget=&skill=&limit=&offset=
func (h *JobHandler) ListOpenJobs(c *gin.Context) {
	limit, offset := pageParams(c)

	page, err := h.listOpenUC.Execute(c.Request.Context(), job.ListOpenJobsInput{
		Search:    c.Query("search"),
		Skill:     c.Query("skill"),
		BudgetMin: parseFloatQuery(c, "min_budget"),
		BudgetMax: parseFloatQuery(c, "max_budget"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, dto.ToJobResponses(page.Jobs), page.Total, limit, offset)
}

func (h *JobHandler) ListMyJobs(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}

	jobs, err := h.listMyUC.Execute(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToJobResponses(jobs))
}

// AdminListJobs обрабатывает GET /api/admin/jobs?search=&status=&approval=
func (h *JobHandler) AdminListJobs(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}
	limit, offset := pageParams(c)

	page, err := h.adminListUC.Execute(c.Request.Context(), actor, job.AdminListJobsInput{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Approval: c.Query("approval"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, dto.ToJobResponses(page.Jobs), page.Total, limit, offset)
}

func (h *JobHandler) SetApproval(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ApprovalRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.setApprovalUC.Execute(c.Request.Context(), actor, jobID, req.Approval)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToJobResponse(updated))
}

func (h *JobHandler) CancelJob(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	cancelled, err := h.cancelJobUC.Execute(c.Request.Context(), actor, jobID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToJobResponse(cancelled))
}

// DeleteJob обрабатывает DELETE /api/admin/jobs/:id. Удаляет вакансию вместе со всеми зависимыми данными.
func (h *JobHandler) DeleteJob(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.deleteJobUC.Execute(c.Request.Context(), actor, jobID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
