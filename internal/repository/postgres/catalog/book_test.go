package catalog

import (
	"testing"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text untouched", input: "lighthouse", want: "lighthouse"},
		{name: "percent escaped", input: "100%", want: `100\%`},
		{name: "underscore escaped", input: "tide_ledger", want: `tide\_ledger`},
		{name: "backslash escaped first", input: `a\b`, want: `a\\b`},
		{name: "mixed metacharacters", input: `50%_\`, want: `50\%\_\\`},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeLike(tt.input); got != tt.want {
				t.Errorf("escapeLike(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
