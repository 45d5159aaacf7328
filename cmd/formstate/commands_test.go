package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testForm = `
mode: sign-up
fields:
  - name: email
    rule: required,email
  - name: password
    rule: required,min=8
  - name: confirmPassword
    rule: required
confirm:
  field: confirmPassword
  reference: password
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCheckCommand(t *testing.T) {
	form := writeTemp(t, "form.yaml", testForm)

	out, err := execute(t, "", "check", "--form", form, "--env-prefix", "FORMSTATE_TEST_")
	require.NoError(t, err)
	assert.Equal(t, "ok: 3 fields, mode sign-up\n", out)
}

func TestCheckCommand_InvalidDefinition(t *testing.T) {
	form := writeTemp(t, "form.yaml", "mode: sign-up\nfields:\n  - name: email\n    rule: required,bogus\n")

	_, err := execute(t, "", "check", "--form", form, "--env-prefix", "FORMSTATE_TEST_")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compile rules")
}

func TestReplayCommand_Text(t *testing.T) {
	form := writeTemp(t, "form.yaml", testForm)
	script := writeTemp(t, "events.txt", strings.Join([]string{
		"focus email",
		"change email ada@example.com",
		"blur email",
		"focus password",
		"change password Abc12345",
		"blur password",
		"focus confirmPassword",
		"change confirmPassword Abc1234",
		"blur confirmPassword",
	}, "\n"))

	out, err := execute(t, "", "replay", "--form", form, "--env-prefix", "FORMSTATE_TEST_",
		"--script", script, "--json=false", "--mask", "password,confirmPassword")
	require.NoError(t, err)

	assert.Contains(t, out, "ada@example.com")
	assert.Contains(t, out, "********")
	assert.NotContains(t, out, "Abc12345")
	assert.Contains(t, out, "must match password")
	assert.Contains(t, out, "[sign-up] not ready to submit")
}

func TestReplayCommand_JSONFromStdin(t *testing.T) {
	form := writeTemp(t, "form.yaml", testForm)
	stdin := "change email ada@example.com\nblur email\nsubmit-error\n"

	out, err := execute(t, stdin, "replay", "--form", form, "--env-prefix", "FORMSTATE_TEST_",
		"--script", "", "--json=true", "--mask", "")
	require.NoError(t, err)

	var snap struct {
		Mode   string `json:"mode"`
		Fields []struct {
			Name    string `json:"name"`
			Display string `json:"display"`
			State   struct {
				Touched     bool `json:"touched"`
				Valid       bool `json:"valid"`
				SubmitError bool `json:"submitError"`
			} `json:"state"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &snap))

	assert.Equal(t, "sign-up", snap.Mode)
	require.Len(t, snap.Fields, 3)
	assert.Equal(t, "email", snap.Fields[0].Name)
	assert.True(t, snap.Fields[0].State.Touched)
	for _, f := range snap.Fields {
		assert.True(t, f.State.SubmitError, f.Name)
		assert.False(t, f.State.Valid, f.Name)
		assert.Equal(t, "error", f.Display, f.Name)
	}
}

func TestReplayCommand_UnknownField(t *testing.T) {
	form := writeTemp(t, "form.yaml", testForm)

	_, err := execute(t, "focus nickname\n", "replay", "--form", form, "--env-prefix", "FORMSTATE_TEST_",
		"--script", "", "--json=false", "--mask", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "script line 1")
	assert.Contains(t, err.Error(), "nickname")
}
