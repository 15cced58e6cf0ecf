package submissions

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `id, company_name, hr_name, hr_email, position_applied_for, resume_type, created_at`

// Create inserts a new submission row.
func (r *PGRepo) Create(ctx context.Context, s Submission) error {
	const query = `
INSERT INTO submissions (id, company_name, hr_name, hr_email, position_applied_for, resume_type, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.DB.ExecContext(ctx, query,
		s.ID,
		s.CompanyName,
		nullableString(s.HRName),
		s.HREmail,
		s.PositionAppliedFor,
		s.ResumeType,
		s.CreatedAt,
	)
	return err
}

// List returns all submissions ordered newest first.
func (r *PGRepo) List(ctx context.Context) ([]Submission, error) {
	const query = `
SELECT ` + selectColumns + `
FROM submissions
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		var s Submission
		var hrName sql.NullString
		if err := rows.Scan(
			&s.ID,
			&s.CompanyName,
			&hrName,
			&s.HREmail,
			&s.PositionAppliedFor,
			&s.ResumeType,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		if hrName.Valid {
			s.HRName = hrName.String
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
