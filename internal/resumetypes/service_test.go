package resumetypes

import (
	"context"
	"errors"
	"testing"
)

func TestCreateRejectsMissingFields(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	_, err := svc.Create(context.Background(), CreateFields{Name: "backend-developer"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreateDuplicateNameConflicts(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	fields := CreateFields{
		Name:        "backend-developer",
		DisplayName: "Backend Developer",
		Link:        "https://example.com/r.pdf",
	}
	if _, err := svc.Create(ctx, fields); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(ctx, fields); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate name, got %v", err)
	}
}

func TestDeactivateIsIdempotent(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	rt, err := svc.Create(ctx, CreateFields{
		Name:        "backend-developer",
		DisplayName: "Backend Developer",
		Link:        "https://example.com/r.pdf",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := svc.Deactivate(ctx, rt.ID)
	if err != nil {
		t.Fatalf("first deactivate: %v", err)
	}
	if first.IsActive {
		t.Fatalf("expected is_active=false after first deactivate")
	}

	second, err := svc.Deactivate(ctx, rt.ID)
	if err != nil {
		t.Fatalf("second deactivate: %v", err)
	}
	if second.IsActive {
		t.Fatalf("expected is_active=false after second deactivate")
	}
}

func TestListActiveExcludesDeactivatedAndSorts(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	for _, fields := range []CreateFields{
		{Name: "frontend-developer", DisplayName: "Frontend Developer", Link: "https://example.com/f.pdf"},
		{Name: "backend-developer", DisplayName: "Backend Developer", Link: "https://example.com/b.pdf"},
	} {
		if _, err := svc.Create(ctx, fields); err != nil {
			t.Fatalf("create %s: %v", fields.Name, err)
		}
	}

	fs, err := svc.ResolveActive(ctx, "frontend-developer")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if _, err := svc.Deactivate(ctx, fs.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	active, err := svc.ListActive(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 1 || active[0].Name != "backend-developer" {
		t.Fatalf("unexpected active list: %+v", active)
	}

	if _, err := svc.ResolveActive(ctx, "frontend-developer"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for deactivated type, got %v", err)
	}
}
