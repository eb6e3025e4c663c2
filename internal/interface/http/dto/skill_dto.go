package dto

import "github.com/ignatzorin/freelance-lifecycle/internal/domain/repository"

type RenameSkillRequest struct {
	Name string `json:"name" binding:"required,notblank"`
}

type SkillResponse struct {
	Skill    string `json:"skill"`
	JobCount int    `json:"job_count"`
}

// SkillChangeResponse: итог переименования или удаления навыка.
type SkillChangeResponse struct {
	Skill        string `json:"skill"`
	JobsAffected int64  `json:"jobs_affected"`
}

func ToSkillResponses(skills []repository.SkillCount) []SkillResponse {
	result := make([]SkillResponse, len(skills))
	for i, s := range skills {
		result[i] = SkillResponse{Skill: s.Skill, JobCount: s.JobCount}
	}
	return result
}
