package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/safedep/toolgate/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultTestConfig = `display:
  colors: never
`

type testEnv struct {
	t          *testing.T
	tmpDir     string
	home       string
	configPath string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithConfig(t, defaultTestConfig)
}

func newTestEnvWithConfig(t *testing.T, configYAML string) *testEnv {
	t.Helper()

	tmpDir := t.TempDir()
	home := filepath.Join(tmpDir, "home")
	require.NoError(t, os.MkdirAll(home, 0o700))

	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg-config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmpDir, "xdg-data"))
	t.Setenv("PATH", "")

	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(configYAML), 0o600))

	return &testEnv{
		t:          t,
		tmpDir:     tmpDir,
		home:       home,
		configPath: configPath,
	}
}

func (env *testEnv) run(args ...string) (stdout, stderr string, err error) {
	env.t.Helper()
	return env.runWithInput(nil, args...)
}

func (env *testEnv) runWithInput(stdin []byte, args ...string) (stdout, stderr string, err error) {
	env.t.Helper()

	var outBuf, errBuf bytes.Buffer
	rootCmd := cli.NewRootCmd()
	rootCmd.SetIn(bytes.NewReader(stdin))
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)

	fullArgs := append([]string{"--config", env.configPath, "--no-color"}, args...)
	rootCmd.SetArgs(fullArgs)
	err = rootCmd.ExecuteContext(context.Background())
	return outBuf.String(), errBuf.String(), err
}

func (env *testEnv) runHook(agentName, hookType string, payload []byte) (stdout, stderr string, err error) {
	env.t.Helper()
	return env.runWithInput(payload, "_hook", agentName, hookType)
}

// installAgent creates the agent's home directory so it is detected.
func (env *testEnv) installAgent(dir string) string {
	env.t.Helper()
	path := filepath.Join(env.home, dir)
	require.NoError(env.t, os.MkdirAll(path, 0o700))
	return path
}

func loadFixture(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err, "Failed to read fixture: %s", path)
	return data
}

func claudePayload(t *testing.T, toolName string, toolInput map[string]any) []byte {
	t.Helper()
	data, err := json.Marshal(map[string]any{
		"session_id":      "e2e-session",
		"cwd":             "/home/user/project",
		"hook_event_name": "PreToolUse",
		"tool_name":       toolName,
		"tool_input":      toolInput,
	})
	require.NoError(t, err)
	return data
}

// --- Assertion helpers ---

func assertExitCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	var coder cli.ExitCoder
	require.True(t, errors.As(err, &coder), "error %v does not carry an exit code", err)
	assert.Equal(t, code, coder.ExitCode())
}

func decodeDecision(t *testing.T, stdout string) map[string]string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &out), "stdout: %q", stdout)
	return out
}
