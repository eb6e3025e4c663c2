package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
)

type MessageRepositoryAdapter struct {
	q sqlx.ExtContext
}

func NewMessageRepositoryAdapter(q sqlx.ExtContext) *MessageRepositoryAdapter {
	return &MessageRepositoryAdapter{q: q}
}

func (r *MessageRepositoryAdapter) Create(ctx context.Context, msg *entity.Message) error {
	query := `INSERT INTO messages (id, job_id, sender_id, receiver_id, body, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.ExecContext(ctx, query, msg.ID, msg.JobID, msg.SenderID, msg.ReceiverID, msg.Body, msg.IsRead, msg.CreatedAt)
	if err != nil {
		return apperror.Database(err, "не удалось создать сообщение")
	}
	return nil
}

func (r *MessageRepositoryAdapter) ListByJob(ctx context.Context, jobID uuid.UUID) ([]*entity.Message, error) {
	var rows []messageRow
	query := `SELECT id, job_id, sender_id, receiver_id, body, is_read, created_at
		FROM messages WHERE job_id = $1 ORDER BY created_at ASC`
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, jobID); err != nil {
		return nil, apperror.Database(err, "не удалось получить сообщения")
	}
	result := make([]*entity.Message, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

func (r *MessageRepositoryAdapter) MarkRead(ctx context.Context, jobID, receiverID uuid.UUID) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE messages SET is_read = TRUE WHERE job_id = $1 AND receiver_id = $2 AND is_read = FALSE`,
		jobID, receiverID)
	if err != nil {
		return 0, apperror.Database(err, "не удалось отметить сообщения прочитанными")
	}
	n, _ := res.RowsAffected()
	return n, nil
}

type messageRow struct {
	ID         uuid.UUID `db:"id"`
	JobID      uuid.UUID `db:"job_id"`
	SenderID   uuid.UUID `db:"sender_id"`
	ReceiverID uuid.UUID `db:"receiver_id"`
	Body       string    `db:"body"`
	IsRead     bool      `db:"is_read"`
	CreatedAt  time.Time `db:"created_at"`
}

func (m *messageRow) toEntity() *entity.Message {
	return &entity.Message{
		ID:         m.ID,
		JobID:      m.JobID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Body:       m.Body,
		IsRead:     m.IsRead,
		CreatedAt:  m.CreatedAt,
	}
}
