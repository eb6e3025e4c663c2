package valueobject

import (
	"fmt"
	"math"

	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
)

const DefaultCurrency = "USD"

type Money struct {
	Amount   float64
	Currency string
}

// NewMoney округляет сумму до центов и запрещает отрицательные значения.
func NewMoney(amount float64) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, apperror.Validation("некорректная сумма")
	}
	if amount < 0 {
		return Money{}, apperror.Validation("сумма не может быть отрицательной")
	}
	return Money{Amount: math.Round(amount*100) / 100, Currency: DefaultCurrency}, nil
}

// NewPositiveMoney работает как NewMoney, но ноль тоже запрещён.
func NewPositiveMoney(amount float64) (Money, error) {
	m, err := NewMoney(amount)
	if err != nil {
		return Money{}, err
	}
	if m.Amount <= 0 {
		return Money{}, apperror.Validation("сумма должна быть положительной")
	}
	return m, nil
}

// MoneyFromDB не валидирует значение, уже сохранённое в базе.
func MoneyFromDB(amount float64) Money {
	return Money{Amount: amount, Currency: DefaultCurrency}
}

func (m Money) String() string {
	return fmt.Sprintf("%s %.2f", m.Currency, m.Amount)
}
