package provider

import "testing"

func TestParseKindKnown(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(string(k))
		if err != nil {
			t.Errorf("ParseKind(%q) error: %v", k, err)
		}
		if got != k {
			t.Errorf("ParseKind(%q) = %q", k, got)
		}
	}
}

func TestParseKindUnknown(t *testing.T) {
	for _, s := range []string{"", "azure", "OPENAI", "open ai"} {
		if _, err := ParseKind(s); err == nil {
			t.Errorf("ParseKind(%q) = nil error, want failure", s)
		}
	}
}
