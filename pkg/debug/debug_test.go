package debug

import (
	"log/slog"
	"testing"
)

func TestParseCategories(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"stream", []string{"stream"}},
		{"stream,oauth", []string{"stream", "oauth"}},
		{" Stream , OAUTH ", []string{"stream", "oauth"}},
		{"all", []string{"all"}},
	}
	for _, tt := range tests {
		m := parseCategories(tt.input)
		if len(m) != len(tt.want) {
			t.Errorf("parseCategories(%q) = %v, want %v", tt.input, m, tt.want)
			continue
		}
		for _, cat := range tt.want {
			if !m[cat] {
				t.Errorf("parseCategories(%q) missing %q", tt.input, cat)
			}
		}
	}
}

func TestEnabledAllWildcard(t *testing.T) {
	old := categories
	defer func() { categories = old }()

	categories = parseCategories("all")
	if !Enabled("stream") || !Enabled("oauth") {
		t.Error("all should enable every category")
	}

	categories = parseCategories("stream")
	if !Enabled("stream") {
		t.Error("stream should be enabled")
	}
	if Enabled("oauth") {
		t.Error("oauth should not be enabled")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"TRACE", LevelTrace},
		{"trace", LevelTrace},
		{"DEBUG", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Errorf("Truncate short = %q", got)
	}
	if got := Truncate("hello world", 5); got != "hello..." {
		t.Errorf("Truncate long = %q", got)
	}
}
