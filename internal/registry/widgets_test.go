package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWidgetsUsed(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		expected []string
	}{
		{
			name:     "single call",
			body:     `ui.Button(p, "X")`,
			expected: []string{"Button"},
		},
		{
			name:     "nested and chained",
			body:     "ui.Row(p, func() {\n\tui.Label(p, \"a\").Classes(\"x\")\n\tui.Button(p, \"b\")\n})",
			expected: []string{"Button", "Label", "Row"},
		},
		{
			name:     "other packages ignored",
			body:     "fmt.Println(\"x\")\nui.Label(p, strings.ToUpper(\"y\"))",
			expected: []string{"Label"},
		},
		{
			name:     "unexported ignored",
			body:     `ui.helper(p)`,
			expected: []string{},
		},
		{
			name:     "unparsable falls back to scanning",
			body:     "ui.Label(p, \"a\"\n// ui.Button(p)\nui.Card(p, nil)",
			expected: []string{"Card", "Label"},
		},
		{
			name:     "empty",
			body:     "",
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, WidgetsUsed(tc.body, "ui"))
		})
	}
}

func TestUsingAndWidgetIndex(t *testing.T) {
	registry := NewExampleRegistry()
	registry.Register(newExample("home", 0, "Button", "Label"))
	registry.Register(newExample("label", 0, "Label"))
	registry.Register(newExample("chat", 0, "ChatMessage"))

	using := registry.Using("Label")
	assert.Len(t, using, 2)
	assert.Equal(t, "home-0", using[0].ID)
	assert.Empty(t, registry.Using("Slider"))

	index := registry.WidgetIndex()
	assert.Equal(t, []string{"home-0", "label-0"}, index["Label"])
	assert.Equal(t, []string{"chat-0"}, index["ChatMessage"])
	assert.Len(t, index, 3)
}
