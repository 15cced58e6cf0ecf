package local

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestPutAndOpenRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	n, err := store.Put(ctx, "backend-developer.pdf", "application/pdf", strings.NewReader("%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if n != int64(len("%PDF-1.4 fake")) {
		t.Fatalf("expected %d bytes written, got %d", len("%PDF-1.4 fake"), n)
	}

	rc, err := store.Open(ctx, "backend-developer.pdf")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "%PDF-1.4 fake" {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestPutRejectsTraversalKey(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Put(context.Background(), "../escape.pdf", "", strings.NewReader("x")); err == nil {
		t.Fatalf("expected error for traversal key")
	}
	if _, err := store.Open(context.Background(), "/abs/path.pdf"); err == nil {
		t.Fatalf("expected error for absolute key")
	}
}
