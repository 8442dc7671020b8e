package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewObjectID(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		id := NewObjectID()
		assert.Len(t, id, 24)
		assert.True(t, IsValidObjectID(id), "generated id should validate: %s", id)

		_, dup := seen[id]
		assert.False(t, dup, "generated ids should not repeat")
		seen[id] = struct{}{}
	}
}

func TestIsValidObjectID(t *testing.T) {
	cases := []struct {
		name  string
		id    string
		valid bool
	}{
		{"valid lowercase hex", "663fed2ac3bb554bca098c59", true},
		{"too short", "663fed2ac3bb554bca098c5", false},
		{"too long", "663fed2ac3bb554bca098c590", false},
		{"non-hex characters", "663fed2ac3bb554bca098czz", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, IsValidObjectID(tc.id))
		})
	}
}
