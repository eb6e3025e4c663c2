package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
)

type WalletRepository interface {
	// GetOrCreate создаёт кошелёк с нулевым балансом одной идемпотентной вставкой.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*entity.Wallet, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Transaction, error)
}
