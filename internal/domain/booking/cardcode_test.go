package booking

import "testing"

func TestNextCardCode(t *testing.T) {
	tests := []struct {
		last string
		want string
	}{
		{"", "BBX-001"},
		{"BBX-001", "BBX-002"},
		{"BBX-009", "BBX-010"},
		{"BBX-099", "BBX-100"},
		{"BBX-999", "BBX-1000"},
		{"BBX-1000", "BBX-1001"},
		{"garbage", "BBX-001"},
		{"OLD-042", "BBX-001"}, // foreign prefix restarts the sequence
	}
	for _, tt := range tests {
		if got := NextCardCode(tt.last); got != tt.want {
			t.Errorf("NextCardCode(%q) = %q, want %q", tt.last, got, tt.want)
		}
	}
}

func TestSlugForCardCode(t *testing.T) {
	if got := SlugForCardCode("BBX-007"); got != "bbx-007" {
		t.Errorf("SlugForCardCode = %q", got)
	}
}
