package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateEngine_Render(t *testing.T) {
	engine := NewTemplateEngine()

	tests := []struct {
		name     string
		template string
		data     map[string]any
		expected string
		wantErr  bool
	}{
		{
			name:     "single variable",
			template: "Hello {name}",
			data:     map[string]any{"name": "World"},
			expected: "Hello World",
		},
		{
			name:     "nested field",
			template: "Email: {user.email}",
			data:     map[string]any{"user": map[string]any{"email": "neo@example.com"}},
			expected: "Email: neo@example.com",
		},
		{
			name:     "expression",
			template: "next {{offset + limit}}",
			data:     map[string]any{"offset": 20, "limit": 20},
			expected: "next 40",
		},
		{
			name:     "empty",
			template: "",
			expected: "",
		},
		{
			name:     "missing variable",
			template: "Hello {nobody}",
			data:     map[string]any{},
			wantErr:  true,
		},
		{
			name:     "bad expression",
			template: "{{offset +}}",
			data:     map[string]any{"offset": 1},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Render(tt.template, tt.data)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPageHint(t *testing.T) {
	h := PageHint{Command: "feed", Limit: 20, Offset: 0, Count: 20, Total: 45}
	assert.Equal(t, "Showing 1-20 of 45", h.Showing())
	assert.Equal(t, "Use: feed --limit 20 --offset 20 for more", h.More())

	h = PageHint{Command: "user-posts alice", Limit: 5, Offset: 10, Count: 3, Total: 13}
	assert.Equal(t, "Showing 11-13 of 13", h.Showing())
	assert.Equal(t, "Use: user-posts alice --limit 5 --offset 15 for more", h.More())
}
