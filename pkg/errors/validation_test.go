package errors

import (
	"testing"
)

func TestValidateParams(t *testing.T) {
	tests := []struct {
		name      string
		nodes     int
		coverage  int
		isographs int
		wantErr   bool
	}{
		{"defaults", 10, 30, 1, false},
		{"single node", 1, 10, 1, false},
		{"full coverage", 50, 100, 8, false},
		{"node bound", MaxNodes, 10, 1, false},

		{"zero nodes", 0, 30, 1, true},
		{"negative nodes", -4, 30, 1, true},
		{"nodes above bound", MaxNodes + 1, 30, 1, true},
		{"nodes overflow edge math", 2_000_000_000, 30, 1, true},
		{"coverage below range", 10, 9, 1, true},
		{"coverage above range", 10, 101, 1, true},
		{"no isographs", 10, 30, 0, true},
		{"too many isographs", 10, 30, 9, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateParams(tt.nodes, tt.coverage, tt.isographs)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateParams(%d, %d, %d) error = %v, wantErr %v",
					tt.nodes, tt.coverage, tt.isographs, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidParameter) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidParameter)
			}
		})
	}
}

func TestValidateBaseName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid pattern base", "G_Iso_n10_c30", false},
		{"valid with dot", "graph.v2", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"with path /", "path/to/file", true},
		{"with path \\", "path\\to\\file", true},
		{"dot", ".", true},
		{"dotdot", "..", true},
		{"control char", "foo\x01bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBaseName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBaseName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
