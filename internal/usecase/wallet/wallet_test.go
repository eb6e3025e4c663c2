package wallet_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/usecase/wallet"
)

type mockWalletRepository struct {
	mock.Mock
}

func (m *mockWalletRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*entity.Wallet, error) {
	args := m.Called(ctx, userID)
	if w := args.Get(0); w != nil {
		return w.(*entity.Wallet), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWalletRepository) ListTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Transaction, error) {
	args := m.Called(ctx, userID, limit)
	if txs := args.Get(0); txs != nil {
		return txs.([]*entity.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

var user = valueobject.Identity{UserID: uuid.New(), Role: valueobject.RoleFreelancer}

func TestGetWallet_FirstAccess(t *testing.T) {
	repo := &mockWalletRepository{}
	repo.On("GetOrCreate", mock.Anything, user.UserID).Return(&entity.Wallet{UserID: user.UserID}, nil)
	repo.On("ListTransactions", mock.Anything, user.UserID, 50).Return([]*entity.Transaction{}, nil)

	got, err := wallet.NewGetWalletUseCase(repo).Execute(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.Wallet.Balance.Amount)
	assert.Empty(t, got.Transactions)
	repo.AssertExpectations(t)
}

func TestGetWallet_Error(t *testing.T) {
	repo := &mockWalletRepository{}
	repo.On("GetOrCreate", mock.Anything, user.UserID).Return(nil, errors.New("db down"))

	_, err := wallet.NewGetWalletUseCase(repo).Execute(context.Background(), user)
	assert.Error(t, err)
	repo.AssertNotCalled(t, "ListTransactions", mock.Anything, mock.Anything, mock.Anything)
}

func TestListTransactions_ClampsLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"default", 0, 50},
		{"negative", -3, 50},
		{"in range", 10, 10},
		{"upper bound", 50, 50},
		{"too large", 500, 50},
		{"minimum", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockWalletRepository{}
			repo.On("ListTransactions", mock.Anything, user.UserID, tt.want).Return([]*entity.Transaction{}, nil)

			_, err := wallet.NewListTransactionsUseCase(repo).Execute(context.Background(), user, tt.limit)
			require.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}
