package mailer

import (
	"strings"
	"testing"
)

func TestNormalizeDriveLinkRewritesShareableForm(t *testing.T) {
	got := NormalizeDriveLink("https://drive.google.com/file/d/1aB_c-9/view?usp=sharing")
	want := "https://drive.google.com/uc?export=download&id=1aB_c-9"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormalizeDriveLinkPreservesHost(t *testing.T) {
	got := NormalizeDriveLink("https://drive.example.com/file/d/ABC123/view")
	if !strings.Contains(got, "id=ABC123") {
		t.Fatalf("expected direct-download form with id=ABC123, got %q", got)
	}
	if !strings.HasPrefix(got, "https://drive.example.com/") {
		t.Fatalf("expected host preserved, got %q", got)
	}
}

func TestNormalizeDriveLinkPassesThroughOtherURLs(t *testing.T) {
	for _, url := range []string{
		"https://example.com/resume.pdf",
		"https://drive.google.com/uc?export=download&id=already",
		"http://drive.google.com/file/d/notHTTPS",
		"",
	} {
		if got := NormalizeDriveLink(url); got != url {
			t.Fatalf("expected %q unchanged, got %q", url, got)
		}
	}
}
