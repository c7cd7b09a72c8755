package service

import "testing"

func TestValidSupplierRating(t *testing.T) {
	tests := []struct {
		rating int
		want   bool
	}{
		{0, true},
		{1, true},
		{5, true},
		{6, false},
		{-1, false},
	}

	for _, tt := range tests {
		if got := validSupplierRating(tt.rating); got != tt.want {
			t.Errorf("validSupplierRating(%d) = %v, want %v", tt.rating, got, tt.want)
		}
	}
}
