package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Work", "work"},
		{"Work Stuff", "work-stuff"},
		{"  Meeting -- Notes!!  ", "meeting-notes"},
		{"2024 Q1 / Planning", "2024-q1-planning"},
		{"---", ""},
		{"", ""},
		{"Déjà Vu", "d-j-vu"},
		{"日記", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, slugify(tc.name), "slugify(%q)", tc.name)
	}
}
