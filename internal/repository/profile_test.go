package repository

import "testing"

func TestClampDebit(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		delta   int64
		want    int64
	}{
		{"credit passes through", 100, 500, 500},
		{"credit on empty balance", 0, 500, 500},
		{"zero delta", 100, 0, 0},
		{"covered debit", 1000, -500, -500},
		{"exact debit", 500, -500, -500},
		{"debit over balance clamps", 300, -500, -300},
		{"debit on empty balance clamps to zero", 0, -500, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampDebit(tt.balance, tt.delta); got != tt.want {
				t.Errorf("clampDebit(%d, %d) = %d, want %d", tt.balance, tt.delta, got, tt.want)
			}
		})
	}
}
