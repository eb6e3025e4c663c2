package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/repository"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
)

const disputeColumns = `d.id, d.order_id, d.client_id, d.freelancer_id, d.opened_by, d.reason, d.status,
	d.resolution, d.resolved_at, d.created_at`

type DisputeRepositoryAdapter struct {
	q sqlx.ExtContext
}

func NewDisputeRepositoryAdapter(q sqlx.ExtContext) *DisputeRepositoryAdapter {
	return &DisputeRepositoryAdapter{q: q}
}

func (r *DisputeRepositoryAdapter) Create(ctx context.Context, d *entity.Dispute) error {
	query := `
		INSERT INTO disputes (id, order_id, client_id, freelancer_id, opened_by, reason, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.q.ExecContext(ctx, query,
		d.ID, d.OrderID, d.ClientID, d.FreelancerID, d.OpenedBy, d.Reason, string(d.Status), d.CreatedAt,
	)
	if err != nil {
		return mapWriteErr(err, apperror.ErrDisputeOpen, "не удалось открыть спор")
	}
	return nil
}

func (r *DisputeRepositoryAdapter) Update(ctx context.Context, d *entity.Dispute) error {
	query := `UPDATE disputes SET status = $2, resolution = $3, resolved_at = $4 WHERE id = $1`
	res, err := r.q.ExecContext(ctx, query, d.ID, string(d.Status), d.Resolution, d.ResolvedAt)
	if err != nil {
		return apperror.Database(err, "не удалось обновить спор")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.ErrDisputeNotFound
	}
	return nil
}

func (r *DisputeRepositoryAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM disputes WHERE id = $1`, id)
	if err != nil {
		return apperror.Database(err, "не удалось удалить спор")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.ErrDisputeNotFound
	}
	return nil
}

func (r *DisputeRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Dispute, error) {
	return r.findOne(ctx, `SELECT `+disputeColumns+` FROM disputes d WHERE d.id = $1`, id)
}

func (r *DisputeRepositoryAdapter) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Dispute, error) {
	return r.findOne(ctx, `SELECT `+disputeColumns+` FROM disputes d WHERE d.id = $1 FOR UPDATE`, id)
}

func (r *DisputeRepositoryAdapter) findOne(ctx context.Context, query string, id uuid.UUID) (*entity.Dispute, error) {
	var d disputeRow
	if err := sqlx.GetContext(ctx, r.q, &d, query, id); err != nil {
		return nil, mapGetErr(err, apperror.ErrDisputeNotFound, "не удалось получить спор")
	}
	return d.toEntity(), nil
}

func (r *DisputeRepositoryAdapter) FindOpenByOrder(ctx context.Context, orderID uuid.UUID) (*entity.Dispute, error) {
	var d disputeRow
	query := `SELECT ` + disputeColumns + ` FROM disputes d WHERE d.order_id = $1 AND d.status = 'open'`
	if err := sqlx.GetContext(ctx, r.q, &d, query, orderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Database(err, "не удалось получить спор")
	}
	return d.toEntity(), nil
}

func (r *DisputeRepositoryAdapter) List(ctx context.Context, filter repository.DisputeFilter) ([]*repository.DisputeView, int, error) {
	var w whereBuilder
	if filter.Status != "" {
		w.add("d.status = ?", filter.Status)
	}
	if filter.Search != "" {
		w.add("(d.reason ILIKE ? OR j.title ILIKE ?)", likePattern(filter.Search))
	}

	from := ` FROM disputes d JOIN orders o ON o.id = d.order_id JOIN jobs j ON j.id = o.job_id`

	var total int
	if err := sqlx.GetContext(ctx, r.q, &total, `SELECT COUNT(*)`+from+w.String(), w.args...); err != nil {
		return nil, 0, apperror.Database(err, "не удалось посчитать споры")
	}

	tail, args := w.page(filter.Limit, filter.Offset)
	query := `SELECT ` + disputeColumns + `, j.id AS job_id, j.title AS job_title` + from + w.String() +
		` ORDER BY d.created_at DESC` + tail

	var rows []disputeViewRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, 0, apperror.Database(err, "не удалось получить споры")
	}
	result := make([]*repository.DisputeView, len(rows))
	for i := range rows {
		result[i] = &repository.DisputeView{
			Dispute:  rows[i].toEntity(),
			JobID:    rows[i].JobID,
			JobTitle: rows[i].JobTitle,
		}
	}
	return result, total, nil
}

func (r *DisputeRepositoryAdapter) CountOpen(ctx context.Context) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.q, &n, `SELECT COUNT(*) FROM disputes WHERE status = 'open'`); err != nil {
		return 0, apperror.Database(err, "не удалось посчитать открытые споры")
	}
	return n, nil
}

type disputeRow struct {
	ID           uuid.UUID  `db:"id"`
	OrderID      uuid.UUID  `db:"order_id"`
	ClientID     uuid.UUID  `db:"client_id"`
	FreelancerID uuid.UUID  `db:"freelancer_id"`
	OpenedBy     uuid.UUID  `db:"opened_by"`
	Reason       string     `db:"reason"`
	Status       string     `db:"status"`
	Resolution   *string    `db:"resolution"`
	ResolvedAt   *time.Time `db:"resolved_at"`
	CreatedAt    time.Time  `db:"created_at"`
}

type disputeViewRow struct {
	disputeRow
	JobID    uuid.UUID `db:"job_id"`
	JobTitle string    `db:"job_title"`
}

func (d *disputeRow) toEntity() *entity.Dispute {
	return &entity.Dispute{
		ID:           d.ID,
		OrderID:      d.OrderID,
		ClientID:     d.ClientID,
		FreelancerID: d.FreelancerID,
		OpenedBy:     d.OpenedBy,
		Reason:       d.Reason,
		Status:       valueobject.DisputeStatus(d.Status),
		Resolution:   d.Resolution,
		ResolvedAt:   d.ResolvedAt,
		CreatedAt:    d.CreatedAt,
	}
}
