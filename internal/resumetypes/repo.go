package resumetypes

import "context"

// Repo defines persistence operations for resume types.
type Repo interface {
	ListActive(ctx context.Context) ([]ResumeType, error)
	GetByID(ctx context.Context, id string) (ResumeType, error)
	GetActiveByName(ctx context.Context, name string) (ResumeType, error)
	Create(ctx context.Context, rt ResumeType) error
	Update(ctx context.Context, id string, fields UpdateFields) (ResumeType, error)
	Deactivate(ctx context.Context, id string) (ResumeType, error)
}
