// internal/utils/slug_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name     string
		expected string
	}{
		{"Half-Life 2", "half-life-2"},
		{"Chai Quest", "chai-quest"},
		{"  Sid Meier's Civilization VI  ", "sid-meier-s-civilization-vi"},
		{"DOOM", "doom"},
		{"Counter‐Strike: Global Offensive", "counter-strike-global-offensive"},
		{"!!!", ""},
		{"", ""},
		{"already-a-slug", "already-a-slug"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, Slugify(tc.name), "input %q", tc.name)
	}
}

func TestSlugifyCollapsesRuns(t *testing.T) {
	assert.Equal(t, "a-b", Slugify("a --- b"))
	assert.Equal(t, "a", Slugify("---a---"))
}
