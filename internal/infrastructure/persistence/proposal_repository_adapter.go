package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
)

const proposalColumns = `id, job_id, freelancer_id, cover_letter, amount, estimated_days, status, created_at, updated_at`

type ProposalRepositoryAdapter struct {
	q sqlx.ExtContext
}

func NewProposalRepositoryAdapter(q sqlx.ExtContext) *ProposalRepositoryAdapter {
	return &ProposalRepositoryAdapter{q: q}
}

func (r *ProposalRepositoryAdapter) Create(ctx context.Context, proposal *entity.Proposal) error {
	query := `
		INSERT INTO proposals (id, job_id, freelancer_id, cover_letter, amount, estimated_days, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.q.ExecContext(ctx, query,
		proposal.ID, proposal.JobID, proposal.FreelancerID, proposal.CoverLetter,
		proposal.Amount.Amount, proposal.EstimatedDays, string(proposal.Status),
		proposal.CreatedAt, proposal.UpdatedAt,
	)
	if err != nil {
		return mapWriteErr(err, apperror.ErrDuplicateProposal, "не удалось создать предложение")
	}
	return nil
}

func (r *ProposalRepositoryAdapter) Update(ctx context.Context, proposal *entity.Proposal) error {
	query := `
		UPDATE proposals SET cover_letter = $2, amount = $3, estimated_days = $4, status = $5, updated_at = $6
		WHERE id = $1
	`
	res, err := r.q.ExecContext(ctx, query,
		proposal.ID, proposal.CoverLetter, proposal.Amount.Amount, proposal.EstimatedDays,
		string(proposal.Status), proposal.UpdatedAt,
	)
	if err != nil {
		return mapWriteErr(err, apperror.ErrAlreadyAccepted, "не удалось обновить предложение")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.ErrProposalNotFound
	}
	return nil
}

func (r *ProposalRepositoryAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM proposals WHERE id = $1`, id)
	if err != nil {
		return apperror.Database(err, "не удалось удалить предложение")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.ErrProposalNotFound
	}
	return nil
}

func (r *ProposalRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Proposal, error) {
	var p proposalRow
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE id = $1`
	if err := sqlx.GetContext(ctx, r.q, &p, query, id); err != nil {
		return nil, mapGetErr(err, apperror.ErrProposalNotFound, "не удалось получить предложение")
	}
	return p.toEntity(), nil
}

func (r *ProposalRepositoryAdapter) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Proposal, error) {
	var p proposalRow
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE id = $1 FOR UPDATE`
	if err := sqlx.GetContext(ctx, r.q, &p, query, id); err != nil {
		return nil, mapGetErr(err, apperror.ErrProposalNotFound, "не удалось получить предложение")
	}
	return p.toEntity(), nil
}

func (r *ProposalRepositoryAdapter) FindByJobID(ctx context.Context, jobID uuid.UUID) ([]*entity.Proposal, error) {
	var rows []proposalRow
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE job_id = $1 ORDER BY created_at DESC`
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, jobID); err != nil {
		return nil, apperror.Database(err, "не удалось получить предложения")
	}
	return toProposalEntities(rows), nil
}

func (r *ProposalRepositoryAdapter) FindByFreelancerID(ctx context.Context, freelancerID uuid.UUID) ([]*entity.Proposal, error) {
	var rows []proposalRow
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE freelancer_id = $1 ORDER BY created_at DESC`
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, freelancerID); err != nil {
		return nil, apperror.Database(err, "не удалось получить предложения")
	}
	return toProposalEntities(rows), nil
}

func (r *ProposalRepositoryAdapter) FindByJobAndFreelancer(ctx context.Context, jobID, freelancerID uuid.UUID) (*entity.Proposal, error) {
	var p proposalRow
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE job_id = $1 AND freelancer_id = $2`
	if err := sqlx.GetContext(ctx, r.q, &p, query, jobID, freelancerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Database(err, "не удалось получить предложение")
	}
	return p.toEntity(), nil
}

func (r *ProposalRepositoryAdapter) FindAcceptedByJob(ctx context.Context, jobID uuid.UUID) (*entity.Proposal, error) {
	var p proposalRow
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE job_id = $1 AND status = 'accepted'`
	if err := sqlx.GetContext(ctx, r.q, &p, query, jobID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Database(err, "не удалось получить принятое предложение")
	}
	return p.toEntity(), nil
}

func (r *ProposalRepositoryAdapter) RejectPendingByJob(ctx context.Context, jobID, exceptID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `
		UPDATE proposals SET status = 'rejected', updated_at = NOW()
		WHERE job_id = $1 AND id <> $2 AND status = 'pending'
		RETURNING id
	`
	if err := sqlx.SelectContext(ctx, r.q, &ids, query, jobID, exceptID); err != nil {
		return nil, apperror.Database(err, "не удалось отклонить остальные предложения")
	}
	return ids, nil
}

type proposalRow struct {
	ID            uuid.UUID `db:"id"`
	JobID         uuid.UUID `db:"job_id"`
	FreelancerID  uuid.UUID `db:"freelancer_id"`
	CoverLetter   string    `db:"cover_letter"`
	Amount        float64   `db:"amount"`
	EstimatedDays int       `db:"estimated_days"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (p *proposalRow) toEntity() *entity.Proposal {
	return &entity.Proposal{
		ID:            p.ID,
		JobID:         p.JobID,
		FreelancerID:  p.FreelancerID,
		CoverLetter:   p.CoverLetter,
		Amount:        valueobject.MoneyFromDB(p.Amount),
		EstimatedDays: p.EstimatedDays,
		Status:        valueobject.ProposalStatus(p.Status),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toProposalEntities(rows []proposalRow) []*entity.Proposal {
	result := make([]*entity.Proposal, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result
}
