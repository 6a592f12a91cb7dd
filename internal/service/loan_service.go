package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"creditsea/internal/events"
	"creditsea/internal/metrics"
	"creditsea/internal/model"
	"creditsea/internal/policy"
	"creditsea/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LoanService implements the loan application workflow
type LoanService interface {
	Submit(ctx context.Context, identity *policy.Identity, req model.SubmitLoanRequest) (*model.LoanApplication, error)
	ListOwn(ctx context.Context, identity *policy.Identity) ([]model.LoanApplication, error)
	ListByOwner(ctx context.Context, identity *policy.Identity, ownerID uuid.UUID) ([]model.LoanApplication, error)
	ListAll(ctx context.Context, identity *policy.Identity) ([]model.LoanApplication, error)
	Review(ctx context.Context, identity *policy.Identity, loanID uuid.UUID, status string) (*model.LoanApplication, error)
	Stats(ctx context.Context, identity *policy.Identity) (*model.LoanStats, error)
}

type loanService struct {
	repo      repository.LoanRepository
	publisher events.Publisher
	log       logrus.FieldLogger
	now       func() time.Time
}

// LoanOption customizes a LoanService
type LoanOption func(*loanService)

// WithEvents publishes a loan event after every successful submission and review.
func WithEvents(p events.Publisher) LoanOption {
	return func(s *loanService) { s.publisher = p }
}

// WithLogger sets the logger used for non-fatal failures.
func WithLogger(log logrus.FieldLogger) LoanOption {
	return func(s *loanService) { s.log = log }
}

// NewLoanService creates a new LoanService
func NewLoanService(repo repository.LoanRepository, opts ...LoanOption) LoanService {
	s := &loanService{
		repo:      repo,
		publisher: events.Nop(),
		log:       logrus.StandardLogger(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// publish logs publisher failures and never fails the caller.
func (s *loanService) publish(ctx context.Context, eventType string, actor *policy.Identity, loan *model.LoanApplication) {
	event := events.LoanEvent{
		Type:       eventType,
		LoanID:     loan.ID,
		UserID:     loan.UserID,
		Status:     loan.Status,
		LoanAmount: loan.LoanAmount,
		ActorID:    actor.UserID,
		OccurredAt: s.now(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"event":   eventType,
			"loan_id": loan.ID,
		}).Warn("failed to publish loan event")
	}
}

// Amounts are stored as NUMERIC(14,2).
const (
	minLoanAmount = 0.01
	maxLoanAmount = 1e12
)

func roundToCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

func validateSubmission(req model.SubmitLoanRequest) error {
	required := []struct {
		name, value string
	}{
		{"fullName", req.FullName},
		{"employmentStatus", req.EmploymentStatus},
		{"reasonForLoan", req.ReasonForLoan},
		{"employmentAddress", req.EmploymentAddress},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return validationError("%s is required", f.name)
		}
	}
	amount := roundToCents(req.LoanAmount)
	if amount < minLoanAmount {
		return validationError("loanAmount must be at least %.2f", minLoanAmount)
	}
	if amount >= maxLoanAmount {
		return validationError("loanAmount must be less than %.0f", maxLoanAmount)
	}
	if req.LoanTenure <= 0 || req.LoanTenure > math.MaxInt32 {
		return validationError("loanTenure must be a positive number of months")
	}
	if !req.HasReadInformation || !req.AgreeToDisclosure {
		return validationError("hasReadInformation and agreeToDisclosure must both be accepted")
	}
	return nil
}

func (s *loanService) Submit(ctx context.Context, identity *policy.Identity, req model.SubmitLoanRequest) (*model.LoanApplication, error) {
	if err := policy.Authorize(identity, policy.SubmitLoan); err != nil {
		return nil, err
	}
	if err := validateSubmission(req); err != nil {
		return nil, err
	}

	now := s.now()
	loan := &model.LoanApplication{
		ID:                 uuid.New(),
		UserID:             identity.UserID,
		FullName:           strings.TrimSpace(req.FullName),
		LoanAmount:         roundToCents(req.LoanAmount),
		LoanTenure:         req.LoanTenure,
		EmploymentStatus:   strings.TrimSpace(req.EmploymentStatus),
		ReasonForLoan:      strings.TrimSpace(req.ReasonForLoan),
		EmploymentAddress:  strings.TrimSpace(req.EmploymentAddress),
		HasReadInformation: req.HasReadInformation,
		AgreeToDisclosure:  req.AgreeToDisclosure,
		Status:             model.LoanStatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Create(ctx, loan); err != nil {
		return nil, fmt.Errorf("failed to create loan application in repo: %w", err)
	}
	metrics.LoanSubmitted()
	s.publish(ctx, events.LoanSubmitted, identity, loan)
	return loan, nil
}

func (s *loanService) ListOwn(ctx context.Context, identity *policy.Identity) ([]model.LoanApplication, error) {
	if err := policy.Authorize(identity, policy.ViewOwnLoans); err != nil {
		return nil, err
	}
	loans, err := s.repo.FindByUser(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user loan applications from repo: %w", err)
	}
	return loans, nil
}

// ListByOwner lists ownerID's applications. Reviewers may read anyone's; a
// user may only read their own.
func (s *loanService) ListByOwner(ctx context.Context, identity *policy.Identity, ownerID uuid.UUID) ([]model.LoanApplication, error) {
	if policy.Permit(identity, policy.ViewAllLoans) {
		loans, err := s.repo.FindByUser(ctx, ownerID)
		if err != nil {
			return nil, fmt.Errorf("failed to get loan applications for owner: %w", err)
		}
		return loans, nil
	}
	if err := policy.Authorize(identity, policy.ViewOwnLoans); err != nil {
		return nil, err
	}
	if identity.UserID != ownerID {
		return nil, ErrForbidden
	}
	return s.ListOwn(ctx, identity)
}

func (s *loanService) ListAll(ctx context.Context, identity *policy.Identity) ([]model.LoanApplication, error) {
	if err := policy.Authorize(identity, policy.ViewAllLoans); err != nil {
		return nil, err
	}
	loans, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all loan applications: %w", err)
	}
	return loans, nil
}

// Review sets the status of a loan. Any status may move to any other.
func (s *loanService) Review(ctx context.Context, identity *policy.Identity, loanID uuid.UUID, status string) (*model.LoanApplication, error) {
	if err := policy.Authorize(identity, policy.ReviewLoan); err != nil {
		return nil, err
	}
	if !model.IsValidLoanStatus(status) {
		return nil, validationError("status must be one of %s", strings.Join(model.LoanStatuses, ", "))
	}

	loan, err := s.repo.UpdateStatus(ctx, loanID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update loan status in repo: %w", err)
	}
	if loan == nil {
		return nil, ErrLoanNotFound
	}
	metrics.LoanReviewed(status)
	s.publish(ctx, events.LoanReviewed, identity, loan)
	return loan, nil
}

func (s *loanService) Stats(ctx context.Context, identity *policy.Identity) (*model.LoanStats, error) {
	if err := policy.Authorize(identity, policy.ViewAllLoans); err != nil {
		return nil, err
	}
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get loan stats: %w", err)
	}
	return stats, nil
}
