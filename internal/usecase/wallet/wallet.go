package wallet

import (
	"context"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/repository"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
)

const MaxTransactions = 50

type Overview struct {
	Wallet       *entity.Wallet
	Transactions []*entity.Transaction
}

type GetWalletUseCase struct {
	repo repository.WalletRepository
}

func NewGetWalletUseCase(repo repository.WalletRepository) *GetWalletUseCase {
	return &GetWalletUseCase{repo: repo}
}

// Execute создаёт кошелёк при первом обращении и отдаёт последние операции.
func (uc *GetWalletUseCase) Execute(ctx context.Context, actor valueobject.Identity) (*Overview, error) {
	w, err := uc.repo.GetOrCreate(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	txs, err := uc.repo.ListTransactions(ctx, actor.UserID, MaxTransactions)
	if err != nil {
		return nil, err
	}
	return &Overview{Wallet: w, Transactions: txs}, nil
}

type ListTransactionsUseCase struct {
	repo repository.WalletRepository
}

func NewListTransactionsUseCase(repo repository.WalletRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{repo: repo}
}

func (uc *ListTransactionsUseCase) Execute(ctx context.Context, actor valueobject.Identity, limit int) ([]*entity.Transaction, error) {
	return uc.repo.ListTransactions(ctx, actor.UserID, ClampLimit(limit))
}

// ClampLimit приводит limit к 1..50, ноль и отрицательные значения дают 50.
func ClampLimit(limit int) int {
	if limit <= 0 || limit > MaxTransactions {
		return MaxTransactions
	}
	return limit
}
