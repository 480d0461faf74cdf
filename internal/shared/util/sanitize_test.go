package util

import (
	"errors"
	"strings"
	"testing"
)

func TestSanitizeDomain(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "campus", want: "campus"},
		{in: "  Travel ", want: "travel"},
		{in: "retail_v2", want: "retail_v2"},
		{in: "city-guide", want: "city-guide"},
		{in: "", wantErr: true},
		{in: "../etc", wantErr: true},
		{in: "a/b", wantErr: true},
		{in: "campus.json", wantErr: true},
		{in: "café", wantErr: true},
		{in: strings.Repeat("a", 65), wantErr: true},
	}
	for _, tt := range tests {
		got, err := SanitizeDomain(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidDomain) {
				t.Fatalf("SanitizeDomain(%q): expected ErrInvalidDomain, got %q, %v", tt.in, got, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("SanitizeDomain(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}
