package statement

import "testing"

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"dmy slash", "01/01/2024", "2024-01-01"},
		{"dmy dash", "15-03-2024", "2024-03-15"},
		{"dmy short year", "05/06/24", "2024-06-05"},
		{"dmy old short year", "05/06/99", "1999-06-05"},
		{"short year boundary low", "01/01/50", "2050-01-01"},
		{"short year boundary high", "01/01/51", "1951-01-01"},
		{"ymd slash", "2024/01/15", "2024-01-15"},
		{"ymd dash", "2024-1-5", "2024-01-05"},
		{"single digit day and month", "1/2/2024", "2024-02-01"},
		{"unrecognized passes through", "Jan 5, 2024", "Jan 5, 2024"},
		{"empty passes through", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDate(tt.in); got != tt.want {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
