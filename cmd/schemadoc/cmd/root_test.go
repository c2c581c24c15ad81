package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemadoc/schemadoc/internal/retriever"
)

const billingUsersDoc = `# Table: users

## Purpose
Stores user accounts with a login email per account.

## Columns

### email
Login email address, unique across the table.
`

func writeDocsRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	corpus := filepath.Join(root, "billing")
	require.NoError(t, os.MkdirAll(corpus, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(corpus, "users.md"), []byte(billingUsersDoc), 0o644))
	return root
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCmd_Help(t *testing.T) {
	out, err := runCommand(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "schemadoc")
	assert.Contains(t, out, "retrieve")
	assert.Contains(t, out, "chunks")
}

func TestVersionCmd(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "schemadoc")

	out, err = runCommand(t, "version", "--short")
	require.NoError(t, err)
	assert.Contains(t, out, "dev")
}

func TestRetrieveCmd_JSON(t *testing.T) {
	root := writeDocsRoot(t)

	out, err := runCommand(t,
		"retrieve", "billing", "login email",
		"--docs-root", root, "--format", "json", "--threshold", "0.01")
	require.NoError(t, err)

	var results []*retriever.Result
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.NotEmpty(t, results)
	assert.Equal(t, "users", results[0].Chunk.Table)
}

func TestRetrieveCmd_MissingCorpus(t *testing.T) {
	root := writeDocsRoot(t)

	out, err := runCommand(t,
		"retrieve", "unknown", "anything", "--docs-root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "No relevant documentation found")
}

func TestRetrieveCmd_RequiresArgs(t *testing.T) {
	_, err := runCommand(t, "retrieve", "billing")
	assert.Error(t, err)
}

func TestInitCmd(t *testing.T) {
	oldWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(oldWD) })

	out, err := runCommand(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, ".schemadoc.yaml")

	data, err := os.ReadFile(".schemadoc.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "docs_root")

	// A second run without --force refuses to overwrite.
	_, err = runCommand(t, "init")
	require.Error(t, err)

	_, err = runCommand(t, "init", "--force")
	require.NoError(t, err)
}

func TestChunksCmd(t *testing.T) {
	root := writeDocsRoot(t)

	out, err := runCommand(t, "chunks", "billing", "--docs-root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "users / overview")
	assert.Contains(t, out, "users / column (email)")
}
