package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-01-10"); !ok {
		t.Error(`IsValidDate("2025-01-10") = false, want true`)
	}
	for _, bad := range []string{"10-01-2025", "2025-13-01", "2025-01-32", "", "yesterday"} {
		if _, ok := IsValidDate(bad); ok {
			t.Errorf("IsValidDate(%q) = true, want false", bad)
		}
	}
}

func TestIsValidClockTime(t *testing.T) {
	for _, good := range []string{"09:00", "00:00", "23:59"} {
		if !IsValidClockTime(good) {
			t.Errorf("IsValidClockTime(%q) = false, want true", good)
		}
	}
	for _, bad := range []string{"24:00", "9am", "09:60", ""} {
		if IsValidClockTime(bad) {
			t.Errorf("IsValidClockTime(%q) = true, want false", bad)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("b", slice) {
		t.Error(`IsInSlice("b") = false, want true`)
	}
	if IsInSlice("d", slice) {
		t.Error(`IsInSlice("d") = true, want false`)
	}
}
