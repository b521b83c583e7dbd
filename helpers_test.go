package neuron

import (
	"strings"
	"testing"
)

func TestValidEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"reader@example.com", true},
		{"first.last@sub.example.co", true},
		{"", false},
		{"no-at-sign", false},
		{"@example.com", false},
		{"reader@", false},
		{"reader@localhost", false},
		{"two words@example.com", false},
	}
	for _, tc := range cases {
		if got := ValidEmail(tc.email); got != tc.want {
			t.Errorf("ValidEmail(%q) = %v, want %v", tc.email, got, tc.want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	cases := []struct {
		base     string
		segments []string
		want     string
	}{
		{"https://example.com", nil, "https://example.com"},
		{"https://example.com", []string{"content", "abc"}, "https://example.com/content/abc/"},
		{"https://example.com/", []string{"content", "abc"}, "https://example.com/content/abc/"},
		{"https://example.com/base", []string{"admin"}, "https://example.com/base/admin/"},
	}
	for _, tc := range cases {
		if got := BuildURL(tc.base, tc.segments...); got != tc.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tc.base, tc.segments, got, tc.want)
		}
	}
}

func TestArticleJsonLDMarksGatedItems(t *testing.T) {
	cfg := SiteConfig{Name: "Site", URL: "https://example.com", Author: "Writer"}

	gated := ArticleJsonLD(ContentItem{ID: "x", Title: "T", IsPublic: false}, cfg)
	if !strings.Contains(gated, `"isAccessibleForFree":false`) {
		t.Errorf("gated item JSON-LD: %s", gated)
	}
	open := ArticleJsonLD(ContentItem{ID: "x", Title: "T", IsPublic: true}, cfg)
	if !strings.Contains(open, `"isAccessibleForFree":true`) {
		t.Errorf("public item JSON-LD: %s", open)
	}
}
