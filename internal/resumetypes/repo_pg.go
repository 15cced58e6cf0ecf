package resumetypes

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const uniqueViolation = "23505"

const selectColumns = `id, name, display_name, link, description, is_active, created_at, updated_at`

// ListActive returns active resume types ordered by display name.
func (r *PGRepo) ListActive(ctx context.Context) ([]ResumeType, error) {
	const query = `
SELECT ` + selectColumns + `
FROM resume_types
WHERE is_active = TRUE
ORDER BY display_name ASC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ResumeType
	for rows.Next() {
		rt, err := scanResumeType(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

// GetByID fetches a resume type regardless of its active flag.
func (r *PGRepo) GetByID(ctx context.Context, id string) (ResumeType, error) {
	const query = `
SELECT ` + selectColumns + `
FROM resume_types
WHERE id = $1
LIMIT 1`
	rt, err := scanResumeType(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ResumeType{}, ErrNotFound
		}
		return ResumeType{}, err
	}
	return rt, nil
}

// GetActiveByName fetches an active resume type by its unique name.
func (r *PGRepo) GetActiveByName(ctx context.Context, name string) (ResumeType, error) {
	const query = `
SELECT ` + selectColumns + `
FROM resume_types
WHERE name = $1 AND is_active = TRUE
LIMIT 1`
	rt, err := scanResumeType(r.DB.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ResumeType{}, ErrNotFound
		}
		return ResumeType{}, err
	}
	return rt, nil
}

// Create inserts a new resume type.
func (r *PGRepo) Create(ctx context.Context, rt ResumeType) error {
	const query = `
INSERT INTO resume_types (id, name, display_name, link, description, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`

	_, err := r.DB.ExecContext(ctx, query,
		rt.ID,
		rt.Name,
		rt.DisplayName,
		rt.Link,
		nullableString(rt.Description),
		rt.IsActive,
		rt.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

// Update applies only the provided fields and returns the updated row.
func (r *PGRepo) Update(ctx context.Context, id string, fields UpdateFields) (ResumeType, error) {
	setClauses := []string{"updated_at = now()"}
	args := []any{id}
	arg := 2
	appendSet := func(column string, value any) {
		setClauses = append(setClauses, column+" = $"+strconv.Itoa(arg))
		args = append(args, value)
		arg++
	}
	if fields.Name != nil {
		appendSet("name", *fields.Name)
	}
	if fields.DisplayName != nil {
		appendSet("display_name", *fields.DisplayName)
	}
	if fields.Link != nil {
		appendSet("link", *fields.Link)
	}
	if fields.Description != nil {
		appendSet("description", nullableString(*fields.Description))
	}
	if fields.IsActive != nil {
		appendSet("is_active", *fields.IsActive)
	}

	query := `
UPDATE resume_types
SET ` + strings.Join(setClauses, ", ") + `
WHERE id = $1
RETURNING ` + selectColumns

	rt, err := scanResumeType(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ResumeType{}, ErrNotFound
		}
		if isUniqueViolation(err) {
			return ResumeType{}, ErrConflict
		}
		return ResumeType{}, err
	}
	return rt, nil
}

// Deactivate flips is_active off and returns the updated row. Repeating it
// on an already-inactive row succeeds.
func (r *PGRepo) Deactivate(ctx context.Context, id string) (ResumeType, error) {
	const query = `
UPDATE resume_types
SET is_active = FALSE, updated_at = now()
WHERE id = $1
RETURNING ` + selectColumns

	rt, err := scanResumeType(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ResumeType{}, ErrNotFound
		}
		return ResumeType{}, err
	}
	return rt, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResumeType(row rowScanner) (ResumeType, error) {
	var rt ResumeType
	var description sql.NullString
	err := row.Scan(
		&rt.ID,
		&rt.Name,
		&rt.DisplayName,
		&rt.Link,
		&description,
		&rt.IsActive,
		&rt.CreatedAt,
		&rt.UpdatedAt,
	)
	if err != nil {
		return ResumeType{}, err
	}
	if description.Valid {
		rt.Description = description.String
	}
	return rt, nil
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
