package resumetypes

import "time"

// ResumeType is a named, user-selectable category mapping to a downloadable
// resume document link. Rows are never physically deleted; deactivation
// flips is_active instead.
type ResumeType struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Link        string    `json:"link"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdateFields carries a partial update; nil fields are left unchanged.
type UpdateFields struct {
	Name        *string
	DisplayName *string
	Link        *string
	Description *string
	IsActive    *bool
}
