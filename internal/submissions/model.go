package submissions

import "time"

// Submission is one application record as stored and returned to clients.
type Submission struct {
	ID                 string    `json:"id"`
	CompanyName        string    `json:"company_name"`
	HRName             string    `json:"hr_name,omitempty"`
	HREmail            string    `json:"hr_email"`
	PositionAppliedFor string    `json:"position_applied_for"`
	ResumeType         string    `json:"resume_type"`
	CreatedAt          time.Time `json:"created_at"`
}
