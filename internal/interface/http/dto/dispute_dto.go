package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/repository"
)

type OpenDisputeRequest struct {
	Reason string `json:"reason" binding:"required,notblank"`
}

type ResolveDisputeRequest struct {
	Resolution string `json:"resolution" binding:"required,notblank"`
}

type DisputeResponse struct {
	ID           uuid.UUID  `json:"id"`
	OrderID      uuid.UUID  `json:"order_id"`
	JobID        *uuid.UUID `json:"job_id,omitempty"`
	JobTitle     string     `json:"job_title,omitempty"`
	ClientID     uuid.UUID  `json:"client_id"`
	FreelancerID uuid.UUID  `json:"freelancer_id"`
	OpenedBy     uuid.UUID  `json:"opened_by"`
	Reason       string     `json:"reason"`
	Status       string     `json:"status"`
	Resolution   *string    `json:"resolution"`
	ResolvedAt   *time.Time `json:"resolved_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

func ToDisputeResponse(d *entity.Dispute) DisputeResponse {
	return DisputeResponse{
		ID:           d.ID,
		OrderID:      d.OrderID,
		ClientID:     d.ClientID,
		FreelancerID: d.FreelancerID,
		OpenedBy:     d.OpenedBy,
		Reason:       d.Reason,
		Status:       string(d.Status),
		Resolution:   d.Resolution,
		ResolvedAt:   d.ResolvedAt,
		CreatedAt:    d.CreatedAt,
	}
}

func ToDisputeViewResponses(views []*repository.DisputeView) []DisputeResponse {
	result := make([]DisputeResponse, 0, len(views))
	for _, v := range views {
		resp := ToDisputeResponse(v.Dispute)
		jobID := v.JobID
		resp.JobID = &jobID
		resp.JobTitle = v.JobTitle
		result = append(result, resp)
	}
	return result
}
