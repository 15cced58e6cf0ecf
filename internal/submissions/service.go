package submissions

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobapply-backend/internal/mailer"
	"jobapply-backend/internal/shared/metrics"
	"jobapply-backend/internal/shared/telemetry"
)

// emailRe is deliberately loose: one @, no whitespace, a dot in the domain.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Dispatcher sends the application email for a saved submission.
type Dispatcher interface {
	Dispatch(ctx context.Context, req mailer.Request) error
}

// Input carries an inbound application record before validation.
type Input struct {
	CompanyName        string
	HRName             string
	HREmail            string
	PositionAppliedFor string
	ResumeType         string
}

// Result is the composite outcome of one intake: the saved record plus
// whether the follow-up email went out. Partial means the record persisted
// but the email failed; callers must surface both facts.
type Result struct {
	Submission Submission
	Message    string
	Partial    bool
	EmailErr   error
}

// Service validates, persists, and dispatches application submissions.
type Service struct {
	Repo       Repo
	Dispatcher Dispatcher
}

func NewService(repo Repo, dispatcher Dispatcher) *Service {
	return &Service{Repo: repo, Dispatcher: dispatcher}
}

// Submit runs the intake pipeline: validate, persist, email. Validation
// failures return before any side effect. A persistence failure is terminal
// and the email is never attempted. An email failure after a successful save
// comes back as a partial result, not an error.
func (s *Service) Submit(ctx context.Context, in Input) (Result, error) {
	metrics.IncSubmissionReceived()

	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.HRName = strings.TrimSpace(in.HRName)
	in.HREmail = strings.TrimSpace(in.HREmail)
	in.PositionAppliedFor = strings.TrimSpace(in.PositionAppliedFor)
	in.ResumeType = strings.TrimSpace(in.ResumeType)

	if in.CompanyName == "" || in.HREmail == "" || in.PositionAppliedFor == "" || in.ResumeType == "" {
		return Result{}, ErrMissingFields
	}
	if !emailRe.MatchString(in.HREmail) {
		return Result{}, ErrInvalidEmail
	}

	sub := Submission{
		ID:                 uuid.NewString(),
		CompanyName:        in.CompanyName,
		HRName:             in.HRName,
		HREmail:            in.HREmail,
		PositionAppliedFor: in.PositionAppliedFor,
		ResumeType:         in.ResumeType,
		CreatedAt:          time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, sub); err != nil {
		telemetry.Error("submission.persist_failed", map[string]any{
			"company": sub.CompanyName,
			"error":   err.Error(),
		})
		return Result{}, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}
	metrics.IncSubmissionSaved()

	if err := s.Dispatcher.Dispatch(ctx, mailer.Request{
		HRName:      sub.HRName,
		HREmail:     sub.HREmail,
		Position:    sub.PositionAppliedFor,
		CompanyName: sub.CompanyName,
		ResumeType:  sub.ResumeType,
	}); err != nil {
		return Result{
			Submission: sub,
			Message:    "Your application was saved, but the email could not be sent.",
			Partial:    true,
			EmailErr:   err,
		}, nil
	}

	return Result{
		Submission: sub,
		Message:    fmt.Sprintf("Thank you! Your application has been submitted successfully and sent to %s.", sub.HREmail),
	}, nil
}

// List returns all submissions ordered newest first.
func (s *Service) List(ctx context.Context) ([]Submission, error) {
	return s.Repo.List(ctx)
}
