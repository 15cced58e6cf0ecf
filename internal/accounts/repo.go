package accounts

import "context"

// Repo persists accounts.
type Repo interface {
	GetByEmail(ctx context.Context, email string) (Account, error)
	Create(ctx context.Context, a Account) error
	// Upsert inserts or refreshes a provider-backed account keyed by email.
	Upsert(ctx context.Context, a Account) (Account, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
	MarkConfirmed(ctx context.Context, email string) error
}
