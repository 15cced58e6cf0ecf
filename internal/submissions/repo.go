package submissions

import "context"

// Repo persists and lists submissions.
type Repo interface {
	Create(ctx context.Context, s Submission) error
	List(ctx context.Context) ([]Submission, error)
}
