package service

import "testing"

func TestClampPage(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		offset     int
		def        int
		wantLimit  int
		wantOffset int
	}{
		{"defaults on zero limit", 0, 0, 20, 20, 0},
		{"defaults on negative limit", -5, 0, 20, 20, 0},
		{"caps oversized limit", 5000, 0, 20, 100, 0},
		{"passes sane values", 30, 60, 20, 30, 60},
		{"negative offset becomes zero", 30, -10, 20, 30, 0},
		{"both out of range", -1, -1, 50, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := clampPage(tt.limit, tt.offset, tt.def)
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Errorf("clampPage(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.limit, tt.offset, tt.def, limit, offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}
