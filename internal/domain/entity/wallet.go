package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
)

type Wallet struct {
	UserID    uuid.UUID
	Balance   valueobject.Money
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Type        valueobject.TransactionType
	Amount      valueobject.Money
	Description string
	CreatedAt   time.Time
}
