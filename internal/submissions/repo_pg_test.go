package submissions

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	sub := Submission{
		ID:                 "sub-1",
		CompanyName:        "Acme",
		HREmail:            "hr@acme.com",
		PositionAppliedFor: "Engineer",
		ResumeType:         "backend-developer",
		CreatedAt:          time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO submissions").
		WithArgs(sub.ID, sub.CompanyName, nil, sub.HREmail, sub.PositionAppliedFor, sub.ResumeType, sub.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), sub); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListScansRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "company_name", "hr_name", "hr_email", "position_applied_for", "resume_type", "created_at"}).
		AddRow("sub-2", "Beta", "Jordan", "jobs@beta.com", "SRE", "backend-developer", now).
		AddRow("sub-1", "Acme", nil, "hr@acme.com", "Engineer", "frontend-developer", now.Add(-time.Hour))
	mock.ExpectQuery("SELECT (.+) FROM submissions").WillReturnRows(rows)

	subs, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(subs))
	}
	if subs[0].ID != "sub-2" || subs[0].HRName != "Jordan" {
		t.Fatalf("unexpected first row: %+v", subs[0])
	}
	if subs[1].HRName != "" {
		t.Fatalf("expected empty hr_name for NULL column, got %q", subs[1].HRName)
	}
}
