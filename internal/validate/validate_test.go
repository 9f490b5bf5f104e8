package validate_test

import (
	"testing"

	"github.com/kmansoor/sims-backend/internal/validate"
)

func TestUAEMobile(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		mobile string
		want   bool
	}{
		{"+971501234567", true},
		{"+971412345678", true},
		{"+97150123456", false},   // too short
		{"+9715012345678", false}, // too long
		{"971501234567", false},   // missing plus
		{"+972501234567", false},  // wrong country code
		{"+97150123456a", false},
		{"", false},
	} {
		if got := validate.UAEMobile(tt.mobile); got != tt.want {
			t.Errorf("UAEMobile(%q) = %v, want %v", tt.mobile, got, tt.want)
		}
	}
}

func TestTRN(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		trn  string
		want bool
	}{
		{"100000000000003", true},
		{"123456789012345", true},
		{"200000000000003", false}, // must start with 1
		{"10000000000000", false},  // 14 digits
		{"1000000000000034", false},
		{"10000000000000a", false},
		{"", false},
	} {
		if got := validate.TRN(tt.trn); got != tt.want {
			t.Errorf("TRN(%q) = %v, want %v", tt.trn, got, tt.want)
		}
	}
}
