package cli_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema(t *testing.T) {
	env := newTestEnv(t)

	t.Run("default is hook response", func(t *testing.T) {
		stdout, _, err := env.run("schema")
		require.NoError(t, err)

		var doc map[string]any
		require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
		assert.Contains(t, doc["$id"], "hook-response.schema.json")

		props, ok := doc["properties"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, props, "decision")
		assert.Contains(t, props, "reason")
	})

	t.Run("list", func(t *testing.T) {
		stdout, _, err := env.run("schema", "--list")
		require.NoError(t, err)

		names := strings.Fields(stdout)
		assert.Contains(t, names, "hook-response")
		assert.Contains(t, names, "verdict")
		assert.Contains(t, names, "claude-code-hook-input")
		assert.Contains(t, names, "gemini-hook-input")
	})

	t.Run("named", func(t *testing.T) {
		stdout, _, err := env.run("schema", "verdict")
		require.NoError(t, err)
		assert.Contains(t, stdout, "verdict.schema.json")
	})

	t.Run("unknown", func(t *testing.T) {
		_, _, err := env.run("schema", "nope")
		require.Error(t, err)
	})
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := env.run("version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "toolgate dev")
	assert.Contains(t, stdout, "commit: none")
}
