package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		name     string
		term     string
		expected string
	}{
		{
			name:     "plain term",
			term:     "golang",
			expected: "%golang%",
		},
		{
			name:     "percent sign matches literally",
			term:     "100% complete",
			expected: `%100\% complete%`,
		},
		{
			name:     "underscore matches literally",
			term:     "snake_case",
			expected: `%snake\_case%`,
		},
		{
			name:     "backslash is doubled",
			term:     `C:\path`,
			expected: `%C:\\path%`,
		},
		{
			name:     "empty term",
			term:     "",
			expected: "%%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, containsPattern(tt.term))
		})
	}
}
