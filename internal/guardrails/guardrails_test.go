package guardrails

import (
	"strings"
	"testing"
)

func TestCheckInput(t *testing.T) {
	g := New(10)
	cases := []struct {
		in   string
		want error
	}{
		{"", ErrEmptyMessage},
		{"  \n\t", ErrEmptyMessage},
		{"area?", nil},
		{strings.Repeat("π", 10), nil},
		{strings.Repeat("x", 11), ErrMessageTooLong},
	}
	for _, tc := range cases {
		if got := g.CheckInput(tc.in); got != tc.want {
			t.Fatalf("CheckInput(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNewDefaultsLimit(t *testing.T) {
	g := New(0)
	if err := g.CheckInput(strings.Repeat("a", defaultMaxLength)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.CheckInput(strings.Repeat("a", defaultMaxLength+1)); err != ErrMessageTooLong {
		t.Fatalf("expected ErrMessageTooLong, got %v", err)
	}
}
