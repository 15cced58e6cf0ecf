package accounts

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const uniqueViolation = "23505"

const selectColumns = `id, email, full_name, password_hash, provider, confirmed, created_at, updated_at`

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (Account, error) {
	const query = `
SELECT ` + selectColumns + `
FROM accounts
WHERE email = $1
LIMIT 1`
	a, err := scanAccount(r.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	return a, nil
}

func (r *PGRepo) Create(ctx context.Context, a Account) error {
	const query = `
INSERT INTO accounts (id, email, full_name, password_hash, provider, confirmed, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`

	_, err := r.DB.ExecContext(ctx, query,
		a.ID,
		a.Email,
		nullableString(a.FullName),
		nullableString(a.PasswordHash),
		a.Provider,
		a.Confirmed,
		a.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

func (r *PGRepo) Upsert(ctx context.Context, a Account) (Account, error) {
	const query = `
INSERT INTO accounts (id, email, full_name, password_hash, provider, confirmed, created_at, updated_at)
VALUES ($1, $2, $3, NULL, $4, TRUE, now(), now())
ON CONFLICT (email) DO UPDATE SET
  full_name = COALESCE(EXCLUDED.full_name, accounts.full_name),
  provider = EXCLUDED.provider,
  confirmed = TRUE,
  updated_at = now()
RETURNING ` + selectColumns

	return scanAccount(r.DB.QueryRowContext(ctx, query,
		a.ID,
		a.Email,
		nullableString(a.FullName),
		a.Provider,
	))
}

func (r *PGRepo) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	const query = `
UPDATE accounts
SET password_hash = $2, updated_at = now()
WHERE email = $1`

	res, err := r.DB.ExecContext(ctx, query, email, passwordHash)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) MarkConfirmed(ctx context.Context, email string) error {
	const query = `
UPDATE accounts
SET confirmed = TRUE, updated_at = now()
WHERE email = $1`

	res, err := r.DB.ExecContext(ctx, query, email)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (Account, error) {
	var a Account
	var fullName sql.NullString
	var passwordHash sql.NullString
	err := row.Scan(
		&a.ID,
		&a.Email,
		&fullName,
		&passwordHash,
		&a.Provider,
		&a.Confirmed,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return Account{}, err
	}
	if fullName.Valid {
		a.FullName = fullName.String
	}
	if passwordHash.Valid {
		a.PasswordHash = passwordHash.String
	}
	return a, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
