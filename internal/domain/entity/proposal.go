package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-lifecycle/internal/validation"
)

type Proposal struct {
	ID            uuid.UUID
	JobID         uuid.UUID
	FreelancerID  uuid.UUID
	CoverLetter   string
	Amount        valueobject.Money
	EstimatedDays int
	Status        valueobject.ProposalStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func validateProposalFields(coverLetter string, amount float64, days int) (string, valueobject.Money, error) {
	letter, err := validation.RequiredText("сопроводительное письмо", coverLetter, validation.MaxCoverLetterLength)
	if err != nil {
		return "", valueobject.Money{}, apperror.Validation(err.Error())
	}
	money, err := valueobject.NewPositiveMoney(amount)
	if err != nil {
		return "", valueobject.Money{}, err
	}
	if days <= 0 {
		return "", valueobject.Money{}, apperror.Validation("срок выполнения должен быть положительным")
	}
	if days > validation.MaxEstimatedDays {
		return "", valueobject.Money{}, apperror.Validation("срок выполнения слишком большой")
	}
	return letter, money, nil
}

func NewProposal(jobID, freelancerID uuid.UUID, coverLetter string, amount float64, days int) (*Proposal, error) {
	letter, money, err := validateProposalFields(coverLetter, amount, days)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Proposal{
		ID:            uuid.New(),
		JobID:         jobID,
		FreelancerID:  freelancerID,
		CoverLetter:   letter,
		Amount:        money,
		EstimatedDays: days,
		Status:        valueobject.ProposalStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (p *Proposal) Accept() error {
	switch p.Status {
	case valueobject.ProposalStatusAccepted:
		return apperror.ErrAlreadyAccepted
	case valueobject.ProposalStatusRejected:
		return apperror.InvalidState("отклонённое предложение нельзя принять")
	}
	p.Status = valueobject.ProposalStatusAccepted
	p.UpdatedAt = time.Now()
	return nil
}

func (p *Proposal) Reject() error {
	switch p.Status {
	case valueobject.ProposalStatusRejected:
		return apperror.New(apperror.ErrCodeConflict, "предложение уже отклонено")
	case valueobject.ProposalStatusAccepted:
		return apperror.InvalidState("принятое предложение нельзя отклонить")
	}
	p.Status = valueobject.ProposalStatusRejected
	p.UpdatedAt = time.Now()
	return nil
}

// Edit доступен только пока предложение ожидает решения.
func (p *Proposal) Edit(coverLetter string, amount float64, days int) error {
	if !p.IsPending() {
		return apperror.InvalidState("изменить можно только ожидающее предложение")
	}
	letter, money, err := validateProposalFields(coverLetter, amount, days)
	if err != nil {
		return err
	}
	p.CoverLetter = letter
	p.Amount = money
	p.EstimatedDays = days
	p.UpdatedAt = time.Now()
	return nil
}

func (p *Proposal) IsOwnedBy(userID uuid.UUID) bool {
	return p.FreelancerID == userID
}

func (p *Proposal) IsPending() bool {
	return p.Status == valueobject.ProposalStatusPending
}

func (p *Proposal) IsAccepted() bool {
	return p.Status == valueobject.ProposalStatusAccepted
}
