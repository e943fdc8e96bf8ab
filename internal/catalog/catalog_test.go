package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllSortedByPriority(t *testing.T) {
	all := All()
	assert.Len(t, all, 10)
	for i := 1; i < len(all); i++ {
		assert.LessOrEqual(t, all[i-1].Priority, all[i].Priority)
	}
}

func TestByPriority(t *testing.T) {
	p1 := ByPriority(1)
	keys := make([]string, 0, len(p1))
	for _, c := range p1 {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{"topTier", "general"}, keys)
}

func TestGet(t *testing.T) {
	c, ok := Get("community")
	assert.True(t, ok)
	assert.Equal(t, "Community Management", c.Name)
	assert.Equal(t, 2, c.Priority)

	_, ok = Get("nope")
	assert.False(t, ok)
}

func TestMapToOutputIsTotal(t *testing.T) {
	tests := []struct {
		key      string
		expected string
	}{
		{"topTier", "ambassador"},
		{"socialMedia", "content"},
		{"contentCreation", "creator"},
		{"internships", "internship"},
		{"operations", "other"},
		{"general", "other"},
		{"somethingUnknown", "other"},
		{"", "other"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, MapToOutput(tt.key), "key %q", tt.key)
	}

	// every declared category must land inside the output taxonomy
	valid := map[string]bool{
		"ambassador": true, "community": true, "content": true,
		"creator": true, "marketing": true, "writing": true,
		"design": true, "internship": true, "other": true,
	}
	for _, c := range All() {
		assert.True(t, valid[MapToOutput(c.Key)], "category %q maps outside the output taxonomy", c.Key)
	}
}
