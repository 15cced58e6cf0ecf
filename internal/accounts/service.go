package accounts

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"jobapply-backend/internal/mailer"
	"jobapply-backend/internal/shared/auth"
	"jobapply-backend/internal/shared/telemetry"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLength = 6

const purposeTokenTTL = time.Hour

// Session is an authenticated identity handed back to the client.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// SignUpOutcome distinguishes an immediate session from a pending email
// confirmation.
type SignUpOutcome struct {
	Session           *Session
	NeedsConfirmation bool
}

// Service implements account sign-up, sign-in, and password recovery.
type Service struct {
	Repo     Repo
	Sessions *Broadcaster
	// Mail sends confirmation and reset emails; nil disables them, which
	// also disables confirmation-gated sign-up.
	Mail                mailer.Sender
	RequireConfirmation bool
	ResetBaseURL        string
}

func NewService(repo Repo, sessions *Broadcaster) *Service {
	return &Service{Repo: repo, Sessions: sessions}
}

// SignUp registers a new email/password account. With confirmation enabled
// the account is stored unconfirmed and a confirmation email is sent instead
// of a session.
func (s *Service) SignUp(ctx context.Context, email, password, fullName string) (SignUpOutcome, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return SignUpOutcome{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}
	if !emailRe.MatchString(email) {
		return SignUpOutcome{}, fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return SignUpOutcome{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return SignUpOutcome{}, err
	}

	requireConfirmation := s.RequireConfirmation && s.Mail != nil
	now := time.Now().UTC()
	account := Account{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: string(hash),
		Provider:     ProviderEmail,
		Confirmed:    !requireConfirmation,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, account); err != nil {
		if requireConfirmation && errors.Is(err, ErrEmailTaken) {
			return s.resendConfirmation(ctx, email, err)
		}
		return SignUpOutcome{}, err
	}

	if requireConfirmation {
		if err := s.sendConfirmationEmail(ctx, account); err != nil {
			telemetry.Error("accounts.confirmation_email_failed", map[string]any{
				"email": email,
				"error": err.Error(),
			})
			return SignUpOutcome{}, fmt.Errorf("send confirmation email: %w", err)
		}
		return SignUpOutcome{NeedsConfirmation: true}, nil
	}

	session, err := s.openSession(account)
	if err != nil {
		return SignUpOutcome{}, err
	}
	return SignUpOutcome{Session: &session}, nil
}

// SignIn authenticates an email/password account. Unknown emails,
// provider-only accounts, and wrong passwords all collapse into
// ErrInvalidCredentials.
func (s *Service) SignIn(ctx context.Context, email, password string) (Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return Session{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	account, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return Session{}, ErrInvalidCredentials
	}
	if account.PasswordHash == "" {
		return Session{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return Session{}, ErrInvalidCredentials
	}
	if !account.Confirmed {
		return Session{}, ErrNotConfirmed
	}

	return s.openSession(account)
}

// SignOut ends the caller's session. Tokens are stateless, so this only
// notifies session listeners.
func (s *Service) SignOut(email string) {
	if s.Sessions != nil {
		s.Sessions.Publish(SignedOut, normalizeEmail(email))
	}
}

// Confirm completes email confirmation from the emailed token.
func (s *Service) Confirm(ctx context.Context, token string) error {
	claims, err := auth.Verify(token)
	if err != nil || auth.IsExpired(claims) || claims.Purpose != auth.PurposeConfirm {
		return auth.ErrInvalidToken
	}
	return s.Repo.MarkConfirmed(ctx, claims.Email)
}

// RequestPasswordReset emails a reset link. It reports success whether or
// not the account exists, to avoid account enumeration.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	account, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || account.PasswordHash == "" || s.Mail == nil {
		return nil
	}

	token, err := auth.IssueFor(email, auth.PurposeReset, purposeTokenTTL)
	if err != nil {
		return nil
	}
	if err := s.Mail.Send(ctx, mailer.Message{
		To:      email,
		Subject: "Reset your password",
		HTMLBody: fmt.Sprintf(
			"<p>Hi,</p><p>Use the link below to reset your password. It expires in one hour.</p><p><a href=%q>Reset password</a></p>",
			s.ResetBaseURL+"/reset-password?token="+token,
		),
	}); err != nil {
		telemetry.Error("accounts.reset_email_failed", map[string]any{
			"email": email,
			"error": err.Error(),
		})
	}
	return nil
}

// ConfirmPasswordReset applies a new password from the emailed reset token.
func (s *Service) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	claims, err := auth.Verify(token)
	if err != nil || auth.IsExpired(claims) || claims.Purpose != auth.PurposeReset {
		return auth.ErrInvalidToken
	}
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdatePassword(ctx, claims.Email, string(hash)); err != nil {
		return err
	}
	if s.Sessions != nil {
		s.Sessions.Publish(Refreshed, claims.Email)
	}
	return nil
}

// VerifyToken validates a session token and returns the identity it names.
func (s *Service) VerifyToken(ctx context.Context, token string) (User, error) {
	claims, err := auth.Verify(token)
	if err != nil || auth.IsExpired(claims) || claims.Purpose != "" {
		return User{}, auth.ErrInvalidToken
	}

	account, err := s.Repo.GetByEmail(ctx, claims.Email)
	if err != nil {
		// Tokens can outlive provider-side accounts; the claim still names
		// a verified identity.
		return User{Email: claims.Email}, nil
	}
	return account.User(), nil
}

// UpsertFromProvider records an externally authenticated identity and opens
// a session for it.
func (s *Service) UpsertFromProvider(ctx context.Context, provider, email, fullName string) (Session, error) {
	email = normalizeEmail(email)
	if email == "" {
		return Session{}, fmt.Errorf("%w: provider identity has no email", ErrInvalidInput)
	}

	account, err := s.Repo.Upsert(ctx, Account{
		ID:       uuid.NewString(),
		Email:    email,
		FullName: strings.TrimSpace(fullName),
		Provider: provider,
	})
	if err != nil {
		return Session{}, err
	}
	return s.openSession(account)
}

func (s *Service) openSession(account Account) (Session, error) {
	token, err := auth.Issue(account.Email)
	if err != nil {
		return Session{}, err
	}
	if s.Sessions != nil {
		s.Sessions.Publish(SignedIn, account.Email)
	}
	return Session{Token: token, User: account.User()}, nil
}

// resendConfirmation handles a repeated signup for an address that never
// finished confirming: the confirmation email is sent again instead of
// surfacing the duplicate error, so a failed first send cannot strand the
// account. Confirmed accounts keep the duplicate error.
func (s *Service) resendConfirmation(ctx context.Context, email string, createErr error) (SignUpOutcome, error) {
	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || existing.Confirmed || existing.Provider != ProviderEmail {
		return SignUpOutcome{}, createErr
	}

	if err := s.sendConfirmationEmail(ctx, existing); err != nil {
		telemetry.Error("accounts.confirmation_email_failed", map[string]any{
			"email": email,
			"error": err.Error(),
		})
		return SignUpOutcome{}, fmt.Errorf("send confirmation email: %w", err)
	}
	return SignUpOutcome{NeedsConfirmation: true}, nil
}

func (s *Service) sendConfirmationEmail(ctx context.Context, account Account) error {
	token, err := auth.IssueFor(account.Email, auth.PurposeConfirm, purposeTokenTTL)
	if err != nil {
		return err
	}
	return s.Mail.Send(ctx, mailer.Message{
		To:      account.Email,
		Subject: "Confirm your email address",
		HTMLBody: fmt.Sprintf(
			"<p>Hi,</p><p>Confirm your email address to finish creating your account. The link expires in one hour.</p><p><a href=%q>Confirm email</a></p>",
			s.ResetBaseURL+"/confirm?token="+token,
		),
	})
}
