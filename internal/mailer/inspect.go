package mailer

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// InspectPDF parses the attachment as a PDF and reports the page count.
// Callers treat a failure as a warning: hosts occasionally serve HTML
// interstitials or truncated bodies, and a broken attachment is still
// worth more to the applicant than no email at all.
func InspectPDF(data []byte) (int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("parse pdf: %w", err)
	}
	pages := reader.NumPage()
	if pages < 1 {
		return 0, fmt.Errorf("pdf has no pages")
	}
	return pages, nil
}
