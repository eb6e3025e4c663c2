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

const orderColumns = `o.id, o.job_id, o.proposal_id, o.client_id, o.freelancer_id, o.amount, o.status,
	o.delivery_message, o.delivery_file, o.delivered_at, o.client_feedback, o.created_at, o.updated_at`

type OrderRepositoryAdapter struct {
	q sqlx.ExtContext
}

func NewOrderRepositoryAdapter(q sqlx.ExtContext) *OrderRepositoryAdapter {
	return &OrderRepositoryAdapter{q: q}
}

func (r *OrderRepositoryAdapter) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (id, job_id, proposal_id, client_id, freelancer_id, amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.q.ExecContext(ctx, query,
		order.ID, order.JobID, order.ProposalID, order.ClientID, order.FreelancerID,
		order.Amount.Amount, string(order.Status), order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return mapWriteErr(err, apperror.ErrAlreadyAccepted, "не удалось создать заказ")
	}
	return nil
}

func (r *OrderRepositoryAdapter) Update(ctx context.Context, order *entity.Order) error {
	query := `
		UPDATE orders SET status = $2, delivery_message = $3, delivery_file = $4, delivered_at = $5,
		client_feedback = $6, updated_at = $7
		WHERE id = $1
	`
	res, err := r.q.ExecContext(ctx, query,
		order.ID, string(order.Status), order.DeliveryMessage, order.DeliveryFile, order.DeliveredAt,
		order.ClientFeedback, order.UpdatedAt,
	)
	if err != nil {
		return apperror.Database(err, "не удалось обновить заказ")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.ErrOrderNotFound
	}
	return nil
}

// Delete удаляет только строку заказа, споры уходят каскадом.
func (r *OrderRepositoryAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return apperror.Database(err, "не удалось удалить заказ")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var o orderRow
	query := `SELECT ` + orderColumns + ` FROM orders o WHERE o.id = $1`
	if err := sqlx.GetContext(ctx, r.q, &o, query, id); err != nil {
		return nil, mapGetErr(err, apperror.ErrOrderNotFound, "не удалось получить заказ")
	}
	return o.toEntity(), nil
}

func (r *OrderRepositoryAdapter) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var o orderRow
	query := `SELECT ` + orderColumns + ` FROM orders o WHERE o.id = $1 FOR UPDATE`
	if err := sqlx.GetContext(ctx, r.q, &o, query, id); err != nil {
		return nil, mapGetErr(err, apperror.ErrOrderNotFound, "не удалось получить заказ")
	}
	return o.toEntity(), nil
}

func (r *OrderRepositoryAdapter) FindActiveByJobForUpdate(ctx context.Context, jobID uuid.UUID) (*entity.Order, error) {
	var o orderRow
	query := `SELECT ` + orderColumns + ` FROM orders o
		WHERE o.job_id = $1 AND o.status NOT IN ('completed', 'cancelled')
		ORDER BY o.created_at DESC LIMIT 1 FOR UPDATE`
	if err := sqlx.GetContext(ctx, r.q, &o, query, jobID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Database(err, "не удалось получить заказ вакансии")
	}
	return o.toEntity(), nil
}

func (r *OrderRepositoryAdapter) List(ctx context.Context, filter repository.OrderFilter) ([]*repository.OrderView, int, error) {
	var w whereBuilder
	if filter.ClientID != nil {
		w.add("o.client_id = ?", *filter.ClientID)
	}
	if filter.FreelancerID != nil {
		w.add("o.freelancer_id = ?", *filter.FreelancerID)
	}
	if filter.Status != "" {
		w.add("o.status = ?", filter.Status)
	}
	if filter.Search != "" {
		w.add("j.title ILIKE ?", likePattern(filter.Search))
	}

	from := ` FROM orders o JOIN jobs j ON j.id = o.job_id`

	var total int
	if err := sqlx.GetContext(ctx, r.q, &total, `SELECT COUNT(*)`+from+w.String(), w.args...); err != nil {
		return nil, 0, apperror.Database(err, "не удалось посчитать заказы")
	}

	tail, args := w.page(filter.Limit, filter.Offset)
	query := `SELECT ` + orderColumns + `, j.title AS job_title` + from + w.String() + ` ORDER BY o.created_at DESC` + tail

	var rows []orderViewRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, 0, apperror.Database(err, "не удалось получить заказы")
	}
	result := make([]*repository.OrderView, len(rows))
	for i := range rows {
		result[i] = &repository.OrderView{Order: rows[i].toEntity(), JobTitle: rows[i].JobTitle}
	}
	return result, total, nil
}

func (r *OrderRepositoryAdapter) CountByStatus(ctx context.Context) (map[string]int, error) {
	return countBy(ctx, r.q, `SELECT status AS key, COUNT(*) AS count FROM orders GROUP BY status`, "не удалось посчитать заказы")
}

type orderRow struct {
	ID              uuid.UUID  `db:"id"`
	JobID           uuid.UUID  `db:"job_id"`
	ProposalID      uuid.UUID  `db:"proposal_id"`
	ClientID        uuid.UUID  `db:"client_id"`
	FreelancerID    uuid.UUID  `db:"freelancer_id"`
	Amount          float64    `db:"amount"`
	Status          string     `db:"status"`
	DeliveryMessage *string    `db:"delivery_message"`
	DeliveryFile    *string    `db:"delivery_file"`
	DeliveredAt     *time.Time `db:"delivered_at"`
	ClientFeedback  *string    `db:"client_feedback"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

type orderViewRow struct {
	orderRow
	JobTitle string `db:"job_title"`
}

func (o *orderRow) toEntity() *entity.Order {
	return &entity.Order{
		ID:              o.ID,
		JobID:           o.JobID,
		ProposalID:      o.ProposalID,
		ClientID:        o.ClientID,
		FreelancerID:    o.FreelancerID,
		Amount:          valueobject.MoneyFromDB(o.Amount),
		Status:          valueobject.OrderStatus(o.Status),
		DeliveryMessage: o.DeliveryMessage,
		DeliveryFile:    o.DeliveryFile,
		DeliveredAt:     o.DeliveredAt,
		ClientFeedback:  o.ClientFeedback,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
