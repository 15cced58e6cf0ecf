package mailer

import (
	"fmt"
	"strings"

	"jobapply-backend/internal/shared/util"
)

// skillAreas maps resume type names to the skill area named in the email body.
var skillAreas = map[string]string{
	"full-stack-developer": "Full Stack Development",
	"frontend-developer":   "Frontend Development",
	"backend-developer":    "Backend Development",
}

const defaultSkillArea = "Software Development"

// SkillAreaFor returns the skill area for a resume type name, with a
// generic fallback for unmapped types.
func SkillAreaFor(resumeType string) string {
	if area, ok := skillAreas[resumeType]; ok {
		return area
	}
	return defaultSkillArea
}

// TemplateData carries the variables rendered into the application email.
type TemplateData struct {
	HRName      string
	Position    string
	CompanyName string
	ResumeType  string
	SenderName  string
}

// Subject renders the email subject line.
func Subject(data TemplateData) string {
	return fmt.Sprintf("Application for %s at %s", data.Position, data.CompanyName)
}

// HTMLBody renders the HTML email body. An absent HR name falls back to a
// generic greeting.
func HTMLBody(data TemplateData) string {
	greeting := strings.TrimSpace(data.HRName)
	if greeting == "" {
		greeting = "there"
	}
	sender := strings.TrimSpace(data.SenderName)
	if sender == "" {
		sender = "Hiring Candidate"
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString(`<meta charset="UTF-8">` + "\n")
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0">` + "\n")
	b.WriteString("</head>\n<body>\n<div class=\"container\">\n")
	fmt.Fprintf(&b, "<p>Hi %s,</p>\n", greeting)
	fmt.Fprintf(&b,
		"<p>I came across your post about the hiring of a <strong>%s</strong> at <strong>%s</strong>. "+
			"I am very interested in this opportunity and believe my background makes me a strong candidate. "+
			"With experience in %s, I have honed my skills in building scalable, high-performance web applications.</p>\n",
		data.Position, data.CompanyName, SkillAreaFor(data.ResumeType))
	b.WriteString("<p>I have attached my resume for your review. I would love to discuss how my experience and skills align with the needs of your team.</p>\n")
	b.WriteString("<p>Looking forward to the possibility of working together.</p>\n")
	b.WriteString("<div class=\"footer\">\n<p>Best regards,</p>\n")
	fmt.Fprintf(&b, "<p>%s</p>\n", sender)
	b.WriteString("</div>\n</div>\n</body>\n</html>\n")
	return b.String()
}

// AttachmentFilename builds the deterministic attachment name from the
// submission fields: sanitized company and position joined with the resume
// type and a fixed suffix.
func AttachmentFilename(companyName, position, resumeType string) string {
	return fmt.Sprintf("%s-%s-%s-Resume.pdf",
		util.FileToken(companyName),
		util.FileToken(position),
		resumeType,
	)
}
