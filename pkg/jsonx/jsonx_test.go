package jsonx_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navdisha/career-advisor/pkg/jsonx"
)

func TestExtractObject_PlainObject(t *testing.T) {
	t.Parallel()
	got, ok := jsonx.ExtractObject(`{"a":1}`)
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, got)
}

func TestExtractObject_SurroundingProse(t *testing.T) {
	t.Parallel()
	in := "Sure! Here is the data you asked for:\n{\"institutes\":[]}\nLet me know if you need more."
	got, ok := jsonx.ExtractObject(in)
	require.True(t, ok)
	assert.Equal(t, `{"institutes":[]}`, got)
}

func TestExtractObject_MarkdownFences(t *testing.T) {
	t.Parallel()
	in := "```json\n{\"streams\": [1, 2]}\n```"
	got, ok := jsonx.ExtractObject(in)
	require.True(t, ok)
	assert.JSONEq(t, `{"streams":[1,2]}`, got)
}

func TestExtractObject_NestedBraces(t *testing.T) {
	t.Parallel()
	in := `prefix {"outer":{"inner":{"deep":true}}} suffix`
	got, ok := jsonx.ExtractObject(in)
	require.True(t, ok)
	assert.Equal(t, `{"outer":{"inner":{"deep":true}}}`, got)
}

func TestExtractObject_FirstOfSeveralWins(t *testing.T) {
	t.Parallel()
	in := `{"first":1} and also {"second":2}`
	got, ok := jsonx.ExtractObject(in)
	require.True(t, ok)
	assert.Equal(t, `{"first":1}`, got)
}

func TestExtractObject_BracesInsideStrings(t *testing.T) {
	t.Parallel()
	in := `{"note":"use {curly} braces","quote":"she said \"hi\" {"}`
	got, ok := jsonx.ExtractObject(in)
	require.True(t, ok)
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &m))
	assert.Equal(t, "use {curly} braces", m["note"])
}

func TestExtractObject_NoBraces(t *testing.T) {
	t.Parallel()
	got, ok := jsonx.ExtractObject("  no json here  ")
	assert.False(t, ok)
	assert.Equal(t, "no json here", got)
}

func TestExtractObject_Unterminated(t *testing.T) {
	t.Parallel()
	_, ok := jsonx.ExtractObject(`{"broken": [1, 2`)
	assert.False(t, ok)
}
