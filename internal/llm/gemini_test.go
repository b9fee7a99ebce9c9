package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(personSchema().Definition)

	assert.Equal(t, genai.TypeObject, s.Type)
	assert.ElementsMatch(t, []string{"name", "age"}, s.Required)
	require.Contains(t, s.Properties, "age")
	assert.Equal(t, genai.TypeInteger, s.Properties["age"].Type)
	assert.Equal(t, []string{"A", "B", "AB", "O"}, s.Properties["blood"].Enum)

	tags := s.Properties["tags"]
	require.NotNil(t, tags.Items)
	assert.Equal(t, genai.TypeArray, tags.Type)
	assert.Equal(t, genai.TypeString, tags.Items.Type)
}

func TestGeminiSchema_JSONDecodedDefinition(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type":     "object",
		"required": []any{"summary", 3},
		"properties": map[string]any{
			"summary": map[string]any{"type": "string", "description": "one paragraph"},
			"score":   map[string]any{"type": "number"},
			"urgent":  map[string]any{"type": "boolean"},
		},
	})
	assert.Equal(t, []string{"summary"}, s.Required)
	assert.Equal(t, "one paragraph", s.Properties["summary"].Description)
	assert.Equal(t, genai.TypeNumber, s.Properties["score"].Type)
	assert.Equal(t, genai.TypeBoolean, s.Properties["urgent"].Type)
}

func TestGeminiModelAliases(t *testing.T) {
	assert.Equal(t, "gemini-2.0-flash", resolveModel("gemini-flash", geminiModels))
	assert.Equal(t, "gemini-2.5-flash", resolveModel("gemini-2.5-flash", geminiModels))
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	_, err := NewGeminiProvider(t.Context(), GeminiConfig{Model: "gemini-flash"})
	assert.Error(t, err)
}
