package accounts

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo for dev mode and tests.
type MemoryRepo struct {
	mu       sync.RWMutex
	accounts map[string]Account
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{accounts: make(map[string]Account)}
}

func (r *MemoryRepo) GetByEmail(_ context.Context, email string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[normalizeEmail(email)]
	if !ok {
		return Account{}, ErrNotFound
	}
	return a, nil
}

func (r *MemoryRepo) Create(_ context.Context, a Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := normalizeEmail(a.Email)
	if _, exists := r.accounts[key]; exists {
		return ErrEmailTaken
	}
	r.accounts[key] = a
	return nil
}

func (r *MemoryRepo) Upsert(_ context.Context, a Account) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := normalizeEmail(a.Email)
	now := time.Now().UTC()
	if existing, ok := r.accounts[key]; ok {
		if a.FullName != "" {
			existing.FullName = a.FullName
		}
		existing.Provider = a.Provider
		existing.Confirmed = true
		existing.UpdatedAt = now
		r.accounts[key] = existing
		return existing, nil
	}
	a.Confirmed = true
	a.CreatedAt = now
	a.UpdatedAt = now
	r.accounts[key] = a
	return a, nil
}

func (r *MemoryRepo) UpdatePassword(_ context.Context, email, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := normalizeEmail(email)
	a, ok := r.accounts[key]
	if !ok {
		return ErrNotFound
	}
	a.PasswordHash = passwordHash
	a.UpdatedAt = time.Now().UTC()
	r.accounts[key] = a
	return nil
}

func (r *MemoryRepo) MarkConfirmed(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := normalizeEmail(email)
	a, ok := r.accounts[key]
	if !ok {
		return ErrNotFound
	}
	a.Confirmed = true
	a.UpdatedAt = time.Now().UTC()
	r.accounts[key] = a
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
