package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFetchStripsNoise(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><style>body{color:red}</style></head><body>
			<nav>Site Menu</nav>
			<script>trackUser();</script>
			<h1>Lentil Soup</h1>
			<ul><li>1 cup lentils</li><li>1 onion</li></ul>
			<footer>Copyright</footer>
		</body></html>`))
	}))
	defer server.Close()

	text, err := NewPageFetcher().Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	for _, want := range []string{"Lentil Soup", "1 cup lentils", "1 onion"} {
		if !strings.Contains(text, want) {
			t.Errorf("cleaned text missing %q", want)
		}
	}
	for _, gone := range []string{"trackUser", "color:red", "Site Menu", "Copyright"} {
		if strings.Contains(text, gone) {
			t.Errorf("cleaned text still contains %q", gone)
		}
	}
}

func TestFetchNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	if _, err := NewPageFetcher().Fetch(context.Background(), server.URL); err == nil {
		t.Error("expected an error for a 404 page")
	}
}

func TestFetchTruncatesHugePages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>"))
		w.Write([]byte(strings.Repeat("filler text ", 10_000)))
		w.Write([]byte("</body></html>"))
	}))
	defer server.Close()

	text, err := NewPageFetcher().Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(text) > maxPageChars {
		t.Errorf("page text not truncated: %d chars", len(text))
	}
}

func TestFetchTruncatesOnRuneBoundary(t *testing.T) {
	// Three-byte runes never align with the byte cap, so a byte-index slice
	// would split one at the cut point.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>"))
		w.Write([]byte(strings.Repeat("…", maxPageChars)))
		w.Write([]byte("</body></html>"))
	}))
	defer server.Close()

	text, err := NewPageFetcher().Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(text) > maxPageChars {
		t.Errorf("page text not truncated: %d bytes", len(text))
	}
	if !utf8.ValidString(text) {
		t.Error("truncation split a multi-byte rune")
	}
}
