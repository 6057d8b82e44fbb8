package core

import "testing"

func TestCleanString(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		lower bool
		want  string
	}{
		{name: "trim", s: "  Nebras \t", want: "Nebras"},
		{name: "trim & lower", s: " ADMIN@Test.IO ", lower: true, want: "admin@test.io"},
		{name: "empty", s: "   ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanString(tt.s, tt.lower); got != tt.want {
				t.Errorf("CleanString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "  First   Grade ", want: "First Grade"},
		{name: "Spring\t\tCup\n", want: "Spring Cup"},
		{name: "Nebras", want: "Nebras"},
		{name: " \t ", want: ""},
	}
	for _, tt := range tests {
		if got := CleanName(tt.name); got != tt.want {
			t.Errorf("CleanName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		phone string
		want  string
	}{
		{phone: "+966 55 123 4567", want: "+966551234567"},
		{phone: " 0551234567\n", want: "0551234567"},
		{phone: "05\t51 23", want: "055123"},
		{phone: "", want: ""},
	}
	for _, tt := range tests {
		if got := NormalizePhone(tt.phone); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.phone, got, tt.want)
		}
	}
}
