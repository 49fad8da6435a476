package namefilter

import (
	"testing"
)

func TestNilAndDisabledFiltersAllowEverything(t *testing.T) {
	var nilFilter *NameFilter
	if err := nilFilter.Check("admin"); err != nil {
		t.Errorf("Expected a nil filter to allow everything, got %v", err)
	}
	if nilFilter.IsEnabled() {
		t.Error("Expected a nil filter to report disabled")
	}

	nf := New(&Config{Enabled: false, BannedWords: []string{"admin"}, BannedNames: []string{"root"}})
	for _, name := range []string{"admin", "root"} {
		if err := nf.Check(name); err != nil {
			t.Errorf("Check(%q) on a disabled filter = %v, want nil", name, err)
		}
	}

	if New(nil).IsEnabled() {
		t.Error("Expected New(nil) to be disabled")
	}
}

func TestCheck_BannedWords(t *testing.T) {
	nf := New(&Config{Enabled: true, BannedWords: []string{"admin", "Moderator", ""}})

	tests := []struct {
		name    string
		allowed bool
	}{
		{"admin", false},
		{"ADMIN", false},
		{"superadmin", false},
		{"gamemoderator", false},
		{"Robinson", true},
		{"admi", true},
	}

	for _, tc := range tests {
		err := nf.Check(tc.name)
		if (err == nil) != tc.allowed {
			t.Errorf("Check(%q) = %v, want allowed=%v", tc.name, err, tc.allowed)
		}
		if err != nil && err != ErrBannedWord {
			t.Errorf("Check(%q) = %v, want ErrBannedWord", tc.name, err)
		}
	}
}

func TestCheck_BannedNamesAreExact(t *testing.T) {
	nf := New(&Config{Enabled: true, BannedNames: []string{"root"}})

	if err := nf.Check("Root"); err != ErrNameNotAllowed {
		t.Errorf("Expected ErrNameNotAllowed, got %v", err)
	}
	if err := nf.Check("rooted"); err != nil {
		t.Errorf("Expected partial matches of banned names to pass, got %v", err)
	}
}

func TestReserveFoldsAccents(t *testing.T) {
	nf := New(&Config{Enabled: true})
	nf.Reserve("Jacob", "Élodie")

	for _, name := range []string{"jacob", " JACOB ", "élodie", "ÉLODIE"} {
		if err := nf.Check(name); err != ErrNameNotAllowed {
			t.Errorf("Check(%q) = %v, want ErrNameNotAllowed", name, err)
		}
	}
	if err := nf.Check("Jacobs"); err != nil {
		t.Errorf("Expected 'Jacobs' to pass, got %v", err)
	}
}
