package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
)

type WalletRepositoryAdapter struct {
	q sqlx.ExtContext
}

func NewWalletRepositoryAdapter(q sqlx.ExtContext) *WalletRepositoryAdapter {
	return &WalletRepositoryAdapter{q: q}
}

// GetOrCreate: пустое обновление при конфликте нужно, чтобы RETURNING вернул уже существующую строку.
func (r *WalletRepositoryAdapter) GetOrCreate(ctx context.Context, userID uuid.UUID) (*entity.Wallet, error) {
	var w walletRow
	query := `
		INSERT INTO wallets (user_id, balance, created_at, updated_at)
		VALUES ($1, 0, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET updated_at = wallets.updated_at
		RETURNING user_id, balance, created_at, updated_at
	`
	if err := sqlx.GetContext(ctx, r.q, &w, query, userID); err != nil {
		return nil, apperror.Database(err, "не удалось получить кошелёк")
	}
	return &entity.Wallet{
		UserID:    w.UserID,
		Balance:   valueobject.MoneyFromDB(w.Balance),
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}, nil
}

func (r *WalletRepositoryAdapter) ListTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Transaction, error) {
	var rows []transactionRow
	query := `
		SELECT id, user_id, type, amount, description, created_at
		FROM wallet_transactions WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2
	`
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, userID, limit); err != nil {
		return nil, apperror.Database(err, "не удалось получить операции кошелька")
	}
	result := make([]*entity.Transaction, len(rows))
	for i, row := range rows {
		result[i] = &entity.Transaction{
			ID:          row.ID,
			UserID:      row.UserID,
			Type:        valueobject.TransactionType(row.Type),
			Amount:      valueobject.MoneyFromDB(row.Amount),
			Description: row.Description,
			CreatedAt:   row.CreatedAt,
		}
	}
	return result, nil
}

type walletRow struct {
	UserID    uuid.UUID `db:"user_id"`
	Balance   float64   `db:"balance"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type transactionRow struct {
	ID          uuid.UUID `db:"id"`
	UserID      uuid.UUID `db:"user_id"`
	Type        string    `db:"type"`
	Amount      float64   `db:"amount"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}
