package errors

import (
	"testing"
)

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "Arabidopsis", false},
		{"valid with underscore", "A_thaliana", false},
		{"valid with dot", "sp.1", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"reticulation marker", "A#H1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLabel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "results/grampa/tree.nwk", false},
		{"absolute", "/data/run1/network.tre", false},

		{"empty", "", true},
		{"null byte", "tree\x00.nwk", true},
		{"too long", string(make([]byte, 5000)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
