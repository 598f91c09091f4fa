package errors

import (
	"testing"
)

func TestValidateGraphName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "petersen", false},
		{"valid dimacs", "myciel3.col", false},
		{"valid with dash", "random-20-0.3", false},
		{"valid with underscore", "queen5_5", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 200)), true},
		{"leading dot", ".hidden", true},
		{"slash", "a/b", true},
		{"space", "a b", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGraphName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGraphName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateGraphName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}
