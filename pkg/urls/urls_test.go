package urls_test

import (
	"testing"

	"savestream/pkg/urls"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{name: "https", raw: "https://example.com/video", want: true},
		{name: "http", raw: "http://example.com", want: true},
		{name: "surrounding spaces", raw: "  https://example.com  ", want: true},
		{name: "empty", raw: "", want: false},
		{name: "whitespace only", raw: "   ", want: false},
		{name: "no scheme", raw: "example.com/video", want: false},
		{name: "ftp scheme", raw: "ftp://example.com", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := urls.IsValid(tt.raw); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	if got := urls.Normalize("  https://example.com/a  "); got != "https://example.com/a" {
		t.Errorf("Normalize() = %q", got)
	}
}
