package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalcLevel(t *testing.T) {
	tests := []struct {
		name        string
		referrals   int
		totalEarned int
		expected    string
	}{
		{
			name:        "fresh user holds the lowest tier",
			referrals:   0,
			totalEarned: 0,
			expected:    "Novice",
		},
		{
			name:        "both minimums satisfied",
			referrals:   20,
			totalEarned: 2500,
			expected:    "Amateur",
		},
		{
			name:        "earnings alone are not enough",
			referrals:   19,
			totalEarned: 2500,
			expected:    "Novice",
		},
		{
			name:        "referrals alone are not enough",
			referrals:   30,
			totalEarned: 1999,
			expected:    "Novice",
		},
		{
			name:        "top tier",
			referrals:   100,
			totalEarned: 10000,
			expected:    "Guru",
		},
		{
			name:        "one short of the top tier falls to the next",
			referrals:   100,
			totalEarned: 9999,
			expected:    "Master",
		},
		{
			name:        "exact middle tier",
			referrals:   50,
			totalEarned: 5000,
			expected:    "Pro",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalcLevel(tt.referrals, tt.totalEarned))
		})
	}
}
