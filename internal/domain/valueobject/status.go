package valueobject

import "github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"

type JobStatus string

const (
	JobStatusOpen       JobStatus = "open"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
)

var jobTransitions = map[JobStatus][]JobStatus{
	JobStatusOpen:       {JobStatusInProgress, JobStatusCancelled},
	JobStatusInProgress: {JobStatusCompleted, JobStatusCancelled},
	JobStatusCompleted:  {},
	JobStatusCancelled:  {},
}

func (s JobStatus) IsValid() bool {
	_, ok := jobTransitions[s]
	return ok
}

func (s JobStatus) CanTransitionTo(newStatus JobStatus) bool {
	for _, status := range jobTransitions[s] {
		if status == newStatus {
			return true
		}
	}
	return false
}

func NewJobStatus(status string) (JobStatus, error) {
	s := JobStatus(status)
	if !s.IsValid() {
		return "", apperror.Validation("некорректный статус вакансии")
	}
	return s, nil
}

// JobApproval: модерация вакансии, не зависит от JobStatus.
type JobApproval string

const (
	JobApprovalPending  JobApproval = "pending"
	JobApprovalApproved JobApproval = "approved"
	JobApprovalRejected JobApproval = "rejected"
)

func NewJobApproval(approval string) (JobApproval, error) {
	switch a := JobApproval(approval); a {
	case JobApprovalPending, JobApprovalApproved, JobApprovalRejected:
		return a, nil
	}
	return "", apperror.Validation("некорректный статус модерации")
}

type ProposalStatus string

const (
	ProposalStatusPending  ProposalStatus = "pending"
	ProposalStatusAccepted ProposalStatus = "accepted"
	ProposalStatusRejected ProposalStatus = "rejected"
)

func (s ProposalStatus) IsValid() bool {
	switch s {
	case ProposalStatusPending, ProposalStatusAccepted, ProposalStatusRejected:
		return true
	}
	return false
}

func NewProposalStatus(status string) (ProposalStatus, error) {
	s := ProposalStatus(status)
	if !s.IsValid() {
		return "", apperror.Validation("некорректный статус предложения")
	}
	return s, nil
}

type DisputeStatus string

const (
	DisputeStatusOpen     DisputeStatus = "open"
	DisputeStatusResolved DisputeStatus = "resolved"
	DisputeStatusClosed   DisputeStatus = "closed"
)

func NewDisputeStatus(status string) (DisputeStatus, error) {
	switch s := DisputeStatus(status); s {
	case DisputeStatusOpen, DisputeStatusResolved, DisputeStatusClosed:
		return s, nil
	}
	return "", apperror.Validation("некорректный статус спора")
}

type TransactionType string

const (
	TransactionCredit TransactionType = "credit"
	TransactionDebit  TransactionType = "debit"
)
