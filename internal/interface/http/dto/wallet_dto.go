package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/entity"
	"github.com/ignatzorin/freelance-lifecycle/internal/usecase/wallet"
)

type TransactionResponse struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type WalletResponse struct {
	UserID       uuid.UUID             `json:"user_id"`
	Balance      float64               `json:"balance"`
	Currency     string                `json:"currency"`
	UpdatedAt    time.Time             `json:"updated_at"`
	Transactions []TransactionResponse `json:"transactions"`
}

func ToTransactionResponses(txs []*entity.Transaction) []TransactionResponse {
	result := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		result = append(result, TransactionResponse{
			ID:          tx.ID,
			Type:        string(tx.Type),
			Amount:      tx.Amount.Amount,
			Currency:    tx.Amount.Currency,
			Description: tx.Description,
			CreatedAt:   tx.CreatedAt,
		})
	}
	return result
}

func ToWalletResponse(o *wallet.Overview) WalletResponse {
	return WalletResponse{
		UserID:       o.Wallet.UserID,
		Balance:      o.Wallet.Balance.Amount,
		Currency:     o.Wallet.Balance.Currency,
		UpdatedAt:    o.Wallet.UpdatedAt,
		Transactions: ToTransactionResponses(o.Transactions),
	}
}
