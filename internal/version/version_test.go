package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	oldCommit, oldDate := Commit, Date
	t.Cleanup(func() { Commit, Date = oldCommit, oldDate })

	tests := []struct {
		name   string
		commit string
		date   string
		want   string
	}{
		{"dev build", "unknown", "unknown", "swatches version " + Version + " ("},
		{"release", "0123456789abcdef", "2026-01-02T03:04:05Z", "(commit: 01234567, built: 2026-01-02T03:04:05Z"},
		{"short commit", "abc", "2026-01-02T03:04:05Z", "(commit: abc,"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Commit, Date = tt.commit, tt.date
			if got := String(); !strings.Contains(got, tt.want) {
				t.Errorf("String() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestUserAgent(t *testing.T) {
	if got, want := UserAgent(), "swatches/"+Version; got != want {
		t.Errorf("UserAgent() = %q, want %q", got, want)
	}
}
