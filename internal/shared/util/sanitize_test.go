package util

import "testing"

func TestFileToken(t *testing.T) {
	cases := map[string]string{
		"Acme":           "Acme",
		"Acme Corp.":     "Acme_Corp_",
		"Sr. Engineer/2": "Sr__Engineer_2",
		"":               "",
	}
	for in, want := range cases {
		if got := FileToken(in); got != want {
			t.Fatalf("FileToken(%q) = %q, want %q", in, got, want)
		}
	}
}
