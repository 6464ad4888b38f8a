package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := runSplit(t, args...)
	return out, err
}

// runSplit executes the root command with separate stdout and stderr.
func runSplit(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	color.NoColor = true
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "e2e.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestEnvsCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "e2e.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
environments:
  qa:
    url: https://qa.hr2.test
  stg:
    url: https://stg.hr2.test
    email: admin@hr2.test
    password: secret
`), 0o600))

	out, err := run(t, "--config", path, "envs")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "qa")
	assert.Contains(t, lines[0], "https://qa.hr2.test")
	assert.Contains(t, lines[0], "no credentials")
	assert.Contains(t, lines[1], "credentials set")
	assert.Contains(t, lines[2], "prod")
	assert.Contains(t, lines[2], "not configured")
}

func TestEnvsCommand_MissingConfigFile(t *testing.T) {
	_, err := run(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "envs")
	assert.Error(t, err)
}

func TestShortIDCommand(t *testing.T) {
	out, err := run(t, "shortid", "DEPT")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^DEPT_[0-9a-z]+$`), strings.TrimSpace(out))

	out, err = run(t, "shortid")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-z]+$`), strings.TrimSpace(out))

	_, err = run(t, "shortid", "a", "b")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "hr2-e2e "))
}

func TestSmokeRejectsInvalidEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "e2e.yaml")
	require.NoError(t, os.WriteFile(path, []byte("browser:\n  name: chromium\n"), 0o600))

	_, err := run(t, "--config", path, "smoke", "--env", "dev")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid environment")
}

func TestConfigWarningsGoToStderr(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: info
environments:
  dev:
    url: https://dev.hr2.test
`)

	t.Run("smoke", func(t *testing.T) {
		out, errOut, err := runSplit(t, "--config", path, "smoke", "--env", "stg")
		require.Error(t, err)
		assert.Empty(t, out)
		assert.Contains(t, errOut, "environments.dev is ignored")
		assert.Contains(t, errOut, "environments.stg.url is not set")
		assert.Contains(t, errOut, "WARN")
	})

	t.Run("envs", func(t *testing.T) {
		out, errOut, err := runSplit(t, "--config", path, "envs")
		require.NoError(t, err)
		assert.Contains(t, errOut, "environments.dev is ignored")
		assert.Contains(t, errOut, "environments.qa.url is not set")
		assert.NotContains(t, out, "ignored")
		assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 3)
	})
}

func TestConfigErrorsFailEnvs(t *testing.T) {
	path := writeConfig(t, `
environments:
  qa:
    url: qa.hr2.test
`)
	_, _, err := runSplit(t, "--config", path, "envs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "environments.qa.url must start with http")
}
