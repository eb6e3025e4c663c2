package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-lifecycle/internal/interface/http/dto"
	"github.com/ignatzorin/freelance-lifecycle/internal/interface/http/response"
	"github.com/ignatzorin/freelance-lifecycle/internal/usecase/admin"
)

type AdminHandler struct {
	statsUC       *admin.GetStatsUseCase
	listSkillsUC  *admin.ListSkillsUseCase
	renameSkillUC *admin.RenameSkillUseCase
	deleteSkillUC *admin.DeleteSkillUseCase
}

func NewAdminHandler(
	statsUC *admin.GetStatsUseCase,
	listSkillsUC *admin.ListSkillsUseCase,
	renameSkillUC *admin.RenameSkillUseCase,
	deleteSkillUC *admin.DeleteSkillUseCase,
) *AdminHandler {
	return &AdminHandler{
		statsUC:       statsUC,
		listSkillsUC:  listSkillsUC,
		renameSkillUC: renameSkillUC,
		deleteSkillUC: deleteSkillUC,
	}
}

// Stats обрабатывает GET /api/admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}

	stats, err := h.statsUC.Execute(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}

// ListSkills обрабатывает GET /api/admin/skills?search=.
func (h *AdminHandler) ListSkills(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}

	skills, err := h.listSkillsUC.Execute(c.Request.Context(), actor, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToSkillResponses(skills))
}

// RenameSkill обрабатывает PUT /api/admin/skills/:name.
func (h *AdminHandler) RenameSkill(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req dto.RenameSkillRequest
	if !bindJSON(c, &req) {
		return
	}

	n, err := h.renameSkillUC.Execute(c.Request.Context(), actor, c.Param("name"), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.SkillChangeResponse{Skill: strings.TrimSpace(req.Name), JobsAffected: n})
}

// DeleteSkill обрабатывает DELETE /api/admin/skills/:name.
func (h *AdminHandler) DeleteSkill(c *gin.Context) {
	actor, ok := currentIdentity(c)
	if !ok {
		return
	}

	skill := c.Param("name")
	n, err := h.deleteSkillUC.Execute(c.Request.Context(), actor, skill)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.SkillChangeResponse{Skill: skill, JobsAffected: n})
}
