package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"jobapply-backend/internal/resumetypes"
	"jobapply-backend/internal/shared/metrics"
	"jobapply-backend/internal/shared/storage/object"
	"jobapply-backend/internal/shared/telemetry"
)

// Catalog resolves submission resume type names against the active catalog.
type Catalog interface {
	ResolveActive(ctx context.Context, name string) (resumetypes.ResumeType, error)
}

// Request carries the submission fields the email is built from.
type Request struct {
	HRName      string
	HREmail     string
	Position    string
	CompanyName string
	ResumeType  string
}

// Dispatcher turns a submission into an application email: it resolves the
// resume type, downloads the resume binary, and sends it as an attachment.
type Dispatcher struct {
	catalog Catalog
	fetcher *Fetcher
	sender  Sender
	cache   object.Store

	// SenderName signs the email body; empty falls back to the template default.
	SenderName string
}

func NewDispatcher(catalog Catalog, fetcher *Fetcher, sender Sender, cache object.Store) *Dispatcher {
	return &Dispatcher{
		catalog: catalog,
		fetcher: fetcher,
		sender:  sender,
		cache:   cache,
	}
}

// Dispatch sends the application email for one submission. The resume binary
// is fetched from the catalog link, with the object store serving as a
// write-through cache: fresh fetches are stored under the resume type name,
// and a failed fetch falls back to the last cached copy.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) error {
	rt, err := d.catalog.ResolveActive(ctx, req.ResumeType)
	if err != nil {
		if errors.Is(err, resumetypes.ErrNotFound) {
			return ErrResumeNotFound
		}
		return fmt.Errorf("resolve resume type %q: %w", req.ResumeType, err)
	}

	content, contentType, err := d.fetchResume(ctx, rt)
	if err != nil {
		return err
	}
	if len(content) == 0 {
		return ErrEmptyAttachment
	}

	if pages, err := InspectPDF(content); err != nil {
		telemetry.Warn("resume.pdf_inspect_failed", map[string]any{
			"resume_type": rt.Name,
			"error":       err.Error(),
		})
	} else {
		telemetry.Info("resume.pdf_inspected", map[string]any{
			"resume_type": rt.Name,
			"pages":       pages,
			"bytes":       len(content),
		})
	}

	data := TemplateData{
		HRName:      req.HRName,
		Position:    req.Position,
		CompanyName: req.CompanyName,
		ResumeType:  rt.Name,
		SenderName:  d.SenderName,
	}
	msg := Message{
		To:       req.HREmail,
		Subject:  Subject(data),
		HTMLBody: HTMLBody(data),
		Attachment: &Attachment{
			Filename:    AttachmentFilename(req.CompanyName, req.Position, rt.Name),
			ContentType: attachmentContentType(contentType),
			Content:     content,
		},
	}

	start := time.Now()
	err = d.sender.Send(ctx, msg)
	metrics.ObserveEmailSendDurationMs(float64(time.Since(start)) / float64(time.Millisecond))
	if err != nil {
		metrics.IncEmailFailed()
		telemetry.Error("email.send_failed", map[string]any{
			"to":          req.HREmail,
			"resume_type": rt.Name,
			"error":       err.Error(),
		})
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	metrics.IncEmailSent()
	telemetry.Info("email.sent", map[string]any{
		"to":          req.HREmail,
		"subject":     msg.Subject,
		"attachment":  msg.Attachment.Filename,
		"resume_type": rt.Name,
	})
	return nil
}

// fetchResume downloads the resume for the given catalog entry, falling back
// to the cached copy when the origin fails, and refreshing the cache after a
// successful fetch.
func (d *Dispatcher) fetchResume(ctx context.Context, rt resumetypes.ResumeType) ([]byte, string, error) {
	url := NormalizeDriveLink(rt.Link)

	content, contentType, fetchErr := d.fetcher.Fetch(ctx, url)
	if fetchErr == nil && len(content) > 0 {
		d.cacheResume(ctx, rt.Name, contentType, content)
		return content, contentType, nil
	}

	if cached, cachedType, ok := d.cachedResume(ctx, rt.Name); ok {
		telemetry.Warn("resume.fetch_failed_using_cache", map[string]any{
			"resume_type": rt.Name,
			"url":         url,
			"error":       errString(fetchErr),
		})
		return cached, cachedType, nil
	}

	if fetchErr != nil {
		return nil, "", fetchErr
	}
	return content, contentType, nil
}

func (d *Dispatcher) cacheResume(ctx context.Context, name, contentType string, content []byte) {
	if d.cache == nil {
		return
	}
	if _, err := d.cache.Put(ctx, cacheKey(name), contentType, bytes.NewReader(content)); err != nil {
		telemetry.Warn("resume.cache_write_failed", map[string]any{
			"resume_type": name,
			"error":       err.Error(),
		})
	}
}

func (d *Dispatcher) cachedResume(ctx context.Context, name string) ([]byte, string, bool) {
	if d.cache == nil {
		return nil, "", false
	}
	rc, err := d.cache.Open(ctx, cacheKey(name))
	if err != nil {
		return nil, "", false
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil || len(content) == 0 {
		return nil, "", false
	}
	return content, "application/pdf", true
}

func cacheKey(resumeType string) string {
	return resumeType + ".pdf"
}

func attachmentContentType(fetched string) string {
	if fetched == "" || fetched == "application/octet-stream" {
		return "application/pdf"
	}
	return fetched
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
