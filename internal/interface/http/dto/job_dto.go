package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-lifecycle/internal/usecase/job"
	"github.com/ignatzorin/freelance-lifecycle/internal/validation"
)

// SkillList принимает навыки массивом или строкой через запятую.
type SkillList []string

func (s *SkillList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return apperror.Validation("skills должен быть массивом строк или строкой через запятую")
	}
	*s = validation.SplitSkills(raw)
	return nil
}

type JobRequest struct {
	Title       string    `json:"title" binding:"required,notblank"`
	Description string    `json:"description" binding:"required,notblank"`
	Budget      float64   `json:"budget" binding:"gte=0"`
	Skills      SkillList `json:"skills"`
}

func (r JobRequest) ToInput() job.JobInput {
	return job.JobInput{
		Title:       r.Title,
		Description: r.Description,
		Budget:      r.Budget,
		Skills:      []string(r.Skills),
	}
}

type ApprovalRequest struct {
	Approval string `json:"approval" binding:"required,oneof=approved rejected pending"`
}

type JobResponse struct {
	ID          uuid.UUID `json:"id"`
	ClientID    uuid.UUID `json:"client_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Budget      float64   `json:"budget"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	Approval    string    `json:"approval"`
	Skills      []string  `json:"skills"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToJobResponse(j *entity.Job) JobResponse {
	skills := j.Skills
	if skills == nil {
		skills = []string{}
	}
	return JobResponse{
		ID:          j.ID,
		ClientID:    j.ClientID,
		Title:       j.Title,
		Description: j.Description,
		Budget:      j.Budget.Amount,
		Currency:    j.Budget.Currency,
		Status:      string(j.Status),
		Approval:    string(j.Approval),
		Skills:      skills,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

func ToJobResponses(jobs []*entity.Job) []JobResponse {
	result := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		result = append(result, ToJobResponse(j))
	}
	return result
}
