package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
	"github.com/ignatzorin/freelance-lifecycle/internal/usecase/proposal"
)

type ProposalRequest struct {
	CoverLetter   string  `json:"cover_letter" binding:"required,notblank"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	EstimatedDays int     `json:"estimated_days" binding:"required,gt=0"`
}

func (r ProposalRequest) ToInput() proposal.ProposalInput {
	return proposal.ProposalInput{
		CoverLetter:   r.CoverLetter,
		Amount:        r.Amount,
		EstimatedDays: r.EstimatedDays,
	}
}

type ProposalResponse struct {
	ID            uuid.UUID `json:"id"`
	JobID         uuid.UUID `json:"job_id"`
	FreelancerID  uuid.UUID `json:"freelancer_id"`
	CoverLetter   string    `json:"cover_letter"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	EstimatedDays int       `json:"estimated_days"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ToProposalResponse(p *entity.Proposal) ProposalResponse {
	return ProposalResponse{
		ID:            p.ID,
		JobID:         p.JobID,
		FreelancerID:  p.FreelancerID,
		CoverLetter:   p.CoverLetter,
		Amount:        p.Amount.Amount,
		Currency:      p.Amount.Currency,
		EstimatedDays: p.EstimatedDays,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func ToProposalResponses(proposals []*entity.Proposal) []ProposalResponse {
	result := make([]ProposalResponse, 0, len(proposals))
	for _, p := range proposals {
		result = append(result, ToProposalResponse(p))
	}
	return result
}
