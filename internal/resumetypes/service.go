package resumetypes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service wraps the catalog repo with input validation.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// CreateFields carries input for a new resume type.
type CreateFields struct {
	Name        string
	DisplayName string
	Link        string
	Description string
	IsActive    *bool
}

// ListActive returns active resume types ordered by display name.
func (s *Service) ListActive(ctx context.Context) ([]ResumeType, error) {
	return s.Repo.ListActive(ctx)
}

// GetByID returns a resume type by id, active or not.
func (s *Service) GetByID(ctx context.Context, id string) (ResumeType, error) {
	if strings.TrimSpace(id) == "" {
		return ResumeType{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, id)
}

// ResolveActive resolves an active resume type by its unique name.
func (s *Service) ResolveActive(ctx context.Context, name string) (ResumeType, error) {
	if strings.TrimSpace(name) == "" {
		return ResumeType{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return s.Repo.GetActiveByName(ctx, name)
}

// Create validates and persists a new resume type.
func (s *Service) Create(ctx context.Context, fields CreateFields) (ResumeType, error) {
	fields.Name = strings.TrimSpace(fields.Name)
	fields.DisplayName = strings.TrimSpace(fields.DisplayName)
	fields.Link = strings.TrimSpace(fields.Link)
	if fields.Name == "" || fields.DisplayName == "" || fields.Link == "" {
		return ResumeType{}, fmt.Errorf("%w: name, display_name, and link are required fields", ErrInvalidInput)
	}

	rt := ResumeType{
		ID:          uuid.NewString(),
		Name:        fields.Name,
		DisplayName: fields.DisplayName,
		Link:        fields.Link,
		Description: strings.TrimSpace(fields.Description),
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	if fields.IsActive != nil {
		rt.IsActive = *fields.IsActive
	}
	rt.UpdatedAt = rt.CreatedAt

	if err := s.Repo.Create(ctx, rt); err != nil {
		return ResumeType{}, err
	}
	return rt, nil
}

// Update applies a partial update to a resume type.
func (s *Service) Update(ctx context.Context, id string, fields UpdateFields) (ResumeType, error) {
	if strings.TrimSpace(id) == "" {
		return ResumeType{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if fields.Name != nil && strings.TrimSpace(*fields.Name) == "" {
		return ResumeType{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
	}
	if fields.Link != nil && strings.TrimSpace(*fields.Link) == "" {
		return ResumeType{}, fmt.Errorf("%w: link cannot be empty", ErrInvalidInput)
	}
	return s.Repo.Update(ctx, id, fields)
}

// Deactivate soft-deletes a resume type; repeating it is a no-op on the flag.
func (s *Service) Deactivate(ctx context.Context, id string) (ResumeType, error) {
	if strings.TrimSpace(id) == "" {
		return ResumeType{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	return s.Repo.Deactivate(ctx, id)
}
