package wordcount

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCount(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"plain text", "one two three", 3},
		{"empty", "", 0},
		{"only markup", "<div><br/></div>", 0},
		{"tags removed", "<p>Hello <strong>world</strong></p>", 2},
		{"adjacent elements separated", "<p>first</p><p>second</p>", 2},
		{"entities decoded", "fish &amp; chips", 3},
		{"attributes ignored", `<a href="https://example.com/words words">link</a>`, 1},
		{"collapsed whitespace", "  a \n\t b  ", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Count(tt.body))
		})
	}
}

func TestStrip(t *testing.T) {
	assert.Equal(t, " Hello  world  ", Strip("<p>Hello <em>world</em></p>"))
}
