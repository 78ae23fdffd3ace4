package cli

import (
	"io"
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "yes word", input: "YES\n", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "empty line declines", input: "\n", want: false},
		{name: "eof declines", input: "", want: false},
		{name: "garbage declines", input: "maybe\n", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Confirm(strings.NewReader(tt.input), io.Discard, "Proceed?")
			if got != tt.want {
				t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestConfirmWritesQuestion(t *testing.T) {
	var out strings.Builder
	Confirm(strings.NewReader("n\n"), &out, "Delete policy retention?")
	if !strings.Contains(out.String(), "Delete policy retention? [y/N]:") {
		t.Errorf("prompt output = %q", out.String())
	}
}
