package names

import "testing"

func TestKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Rock", "rock"},
		{"  ROCK ", "rock"},
		{"Forêt", "forêt"},
		{"FORÊT", "forêt"},
	}

	for _, tt := range tests {
		if got := Key(tt.input); got != tt.expected {
			t.Errorf("Key(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal("Jacob", "jACOB") {
		t.Error("Expected Jacob and jACOB to be equal")
	}
	if Equal("Jacob", "Jacobs") {
		t.Error("Expected Jacob and Jacobs to differ")
	}
}
