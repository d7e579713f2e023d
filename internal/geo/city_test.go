package geo

import "testing"

func TestExtractCity(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"377 River St, Troy, NY", "troy"},
		{"2850 River Rd, Niskayuna, NY 12309", "niskayuna"},
		{"Downtown Troy, NY", "downtown troy"},
		{"Troy NY, USA", "troy"},
		{"Albany", "albany"},
		{"Proctors Theatre, 432 State St, Schenectady, NY", "schenectady"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExtractCity(tt.in); got != tt.want {
			t.Errorf("ExtractCity(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCitiesMatch(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"troy", "troy", true},
		{"downtown troy", "troy", true},
		{"troy", "downtown troy", true},
		{"new albany", "albany", true},
		{"west troy", "troy", true},
		{"troyan", "troy", false},
		{"troy", "albany", false},
		{"schenectady", "niskayuna", false},
	}
	for _, tt := range tests {
		if got := CitiesMatch(tt.a, tt.b); got != tt.want {
			t.Errorf("CitiesMatch(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
