package utils

import "testing"

func TestValidatePhone(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"13812345678", true},
		{"19900000000", true},
		{"12812345678", false}, // 12 开头不是有效号段
		{"1381234567", false},  // 位数不足
		{"138123456789", false},
		{"abc12345678", false},
		{"", false},
	}
	for _, c := range cases {
		if got := ValidatePhone(c.phone); got != c.want {
			t.Errorf("ValidatePhone(%q) = %v, want %v", c.phone, got, c.want)
		}
	}
}
