package device

import "testing"

func TestPagePath(t *testing.T) {
	tests := []struct {
		page Page
		want string
	}{
		{PageRealtime, "realtime01.html"},
		{PagePowerQuality, "pq01.html"},
		{PageRevenue, "revenue01.html"},
		{Page("harmonics"), ""},
	}
	for _, tc := range tests {
		if got := tc.page.Path(); got != tc.want {
			t.Errorf("%s.Path() = %q, want %q", tc.page, got, tc.want)
		}
	}
}
