package mailer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"jobapply-backend/internal/resumetypes"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type memoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: make(map[string][]byte)}
}

func (m *memoryStore) Put(_ context.Context, key, _ string, r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return int64(len(data)), nil
}

func (m *memoryStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func seedCatalog(t *testing.T, link string) *resumetypes.Service {
	t.Helper()
	svc := resumetypes.NewService(resumetypes.NewMemoryRepo())
	_, err := svc.Create(context.Background(), resumetypes.CreateFields{
		Name:        "backend-developer",
		DisplayName: "Backend Developer",
		Link:        link,
	})
	if err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	return svc
}

func TestDispatchSendsEmailWithAttachment(t *testing.T) {
	payload := []byte("%PDF-1.4 fake resume body")
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != fetchUserAgent {
			t.Errorf("unexpected User-Agent: %q", got)
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(payload)
	}))
	defer origin.Close()

	sender := &fakeSender{}
	d := NewDispatcher(seedCatalog(t, origin.URL), NewFetcher(5*time.Second), sender, nil)

	err := d.Dispatch(context.Background(), Request{
		HRName:      "Jordan",
		HREmail:     "hr@acme.com",
		Position:    "Engineer",
		CompanyName: "Acme",
		ResumeType:  "backend-developer",
	})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sender.sent))
	}
	msg := sender.sent[0]
	if msg.To != "hr@acme.com" {
		t.Fatalf("unexpected recipient: %q", msg.To)
	}
	if msg.Subject != "Application for Engineer at Acme" {
		t.Fatalf("unexpected subject: %q", msg.Subject)
	}
	if msg.Attachment == nil {
		t.Fatalf("expected an attachment")
	}
	if msg.Attachment.Filename != "Acme-Engineer-backend-developer-Resume.pdf" {
		t.Fatalf("unexpected attachment name: %q", msg.Attachment.Filename)
	}
	if !bytes.Equal(msg.Attachment.Content, payload) {
		t.Fatalf("attachment content does not match origin payload")
	}
}

func TestDispatchUnknownResumeType(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(seedCatalog(t, "https://example.com/r.pdf"), NewFetcher(time.Second), sender, nil)

	err := d.Dispatch(context.Background(), Request{
		HREmail:     "hr@acme.com",
		Position:    "Engineer",
		CompanyName: "Acme",
		ResumeType:  "devops-engineer",
	})
	if !errors.Is(err, ErrResumeNotFound) {
		t.Fatalf("expected ErrResumeNotFound, got %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("expected no email for unknown resume type")
	}
}

func TestDispatchEmptyAttachment(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer origin.Close()

	sender := &fakeSender{}
	d := NewDispatcher(seedCatalog(t, origin.URL), NewFetcher(time.Second), sender, nil)

	err := d.Dispatch(context.Background(), Request{
		HREmail:     "hr@acme.com",
		Position:    "Engineer",
		CompanyName: "Acme",
		ResumeType:  "backend-developer",
	})
	if !errors.Is(err, ErrEmptyAttachment) {
		t.Fatalf("expected ErrEmptyAttachment, got %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("expected no email for empty attachment")
	}
}

func TestDispatchFetchFailureWithoutCache(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer origin.Close()

	sender := &fakeSender{}
	d := NewDispatcher(seedCatalog(t, origin.URL), NewFetcher(time.Second), sender, nil)

	err := d.Dispatch(context.Background(), Request{
		HREmail:     "hr@acme.com",
		Position:    "Engineer",
		CompanyName: "Acme",
		ResumeType:  "backend-developer",
	})
	if err == nil {
		t.Fatalf("expected error when origin returns 404")
	}
	if len(sender.sent) != 0 {
		t.Fatalf("expected no email when fetch fails")
	}
}

func TestDispatchFallsBackToCachedResume(t *testing.T) {
	payload := []byte("%PDF-1.4 cached resume")
	var fail bool
	var mu sync.Mutex
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		if fail {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(payload)
	}))
	defer origin.Close()

	sender := &fakeSender{}
	store := newMemoryStore()
	d := NewDispatcher(seedCatalog(t, origin.URL), NewFetcher(time.Second), sender, store)

	req := Request{
		HREmail:     "hr@acme.com",
		Position:    "Engineer",
		CompanyName: "Acme",
		ResumeType:  "backend-developer",
	}

	if err := d.Dispatch(context.Background(), req); err != nil {
		t.Fatalf("first dispatch: %v", err)
	}
	if _, err := store.Open(context.Background(), "backend-developer.pdf"); err != nil {
		t.Fatalf("expected cached copy after successful fetch: %v", err)
	}

	mu.Lock()
	fail = true
	mu.Unlock()

	if err := d.Dispatch(context.Background(), req); err != nil {
		t.Fatalf("second dispatch with dead origin: %v", err)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("expected 2 emails, got %d", len(sender.sent))
	}
	if !bytes.Equal(sender.sent[1].Attachment.Content, payload) {
		t.Fatalf("expected cached payload on fallback")
	}
}

func TestDispatchEmptyBodyUsesCachedResume(t *testing.T) {
	payload := []byte("%PDF-1.4 cached resume")
	var empty bool
	var mu sync.Mutex
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		if empty {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(payload)
	}))
	defer origin.Close()

	sender := &fakeSender{}
	store := newMemoryStore()
	d := NewDispatcher(seedCatalog(t, origin.URL), NewFetcher(time.Second), sender, store)

	req := Request{
		HREmail:     "hr@acme.com",
		Position:    "Engineer",
		CompanyName: "Acme",
		ResumeType:  "backend-developer",
	}

	if err := d.Dispatch(context.Background(), req); err != nil {
		t.Fatalf("first dispatch: %v", err)
	}

	// An empty 2xx body counts as a failed fetch once a copy is cached.
	mu.Lock()
	empty = true
	mu.Unlock()

	if err := d.Dispatch(context.Background(), req); err != nil {
		t.Fatalf("second dispatch with empty origin body: %v", err)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("expected 2 emails, got %d", len(sender.sent))
	}
	if !bytes.Equal(sender.sent[1].Attachment.Content, payload) {
		t.Fatalf("expected cached payload when origin body is empty")
	}
}

func TestDispatchSendFailure(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("%PDF-1.4 body"))
	}))
	defer origin.Close()

	sender := &fakeSender{err: errors.New("smtp down")}
	d := NewDispatcher(seedCatalog(t, origin.URL), NewFetcher(time.Second), sender, nil)

	err := d.Dispatch(context.Background(), Request{
		HREmail:     "hr@acme.com",
		Position:    "Engineer",
		CompanyName: "Acme",
		ResumeType:  "backend-developer",
	})
	if !errors.Is(err, ErrSendFailed) {
		t.Fatalf("expected ErrSendFailed, got %v", err)
	}
}
