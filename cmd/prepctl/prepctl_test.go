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

var sampleJD = "We need React and AWS experience. " + strings.Repeat("Strong communication skills required for this role. ", 4)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestAnalyzeJSON(t *testing.T) {
	path := writeFile(t, "jd.txt", sampleJD)

	out, err := runCmd(t, "analyze", "--file", path, "--company", "Acme", "--role", "SDE")
	require.NoError(t, err)

	var entry struct {
		Company   string `json:"company"`
		BaseScore int    `json:"baseScore"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &entry))
	assert.Equal(t, "Acme", entry.Company)
	assert.Greater(t, entry.BaseScore, 0)
}

func TestAnalyzeText(t *testing.T) {
	path := writeFile(t, "jd.md", sampleJD)

	out, err := runCmd(t, "analyze", "-f", path, "--format", "text")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "PLACEMENT PREPARATION PLAN\n"))
}

func TestAnalyzeRejectsShortJD(t *testing.T) {
	path := writeFile(t, "jd.txt", "React")
	_, err := runCmd(t, "analyze", "--file", path)
	assert.Error(t, err)
}

func TestAnalyzeRejectsUnknownFormat(t *testing.T) {
	path := writeFile(t, "jd.txt", sampleJD)
	_, err := runCmd(t, "analyze", "--file", path, "--format", "yaml")
	assert.Error(t, err)
}

func TestATS(t *testing.T) {
	path := writeFile(t, "resume.json", `{"personal":{"fullName":"Sam","email":"s@x.io"}}`)

	out, err := runCmd(t, "ats", "--file", path)
	require.NoError(t, err)

	var score struct {
		Score        int      `json:"score"`
		Improvements []string `json:"improvements"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &score))
	assert.Equal(t, 20, score.Score)
	assert.Equal(t, "Write a summary > 50 chars (+10)", score.Improvements[0])
}

func TestATSRejectsInvalidResume(t *testing.T) {
	path := writeFile(t, "resume.json", `{"summary":1}`)
	_, err := runCmd(t, "ats", "--file", path)
	assert.Error(t, err)
}

func TestToken(t *testing.T) {
	t.Setenv("ENV", "dev")
	t.Setenv("JWT_SECRET", "cli-secret")

	out, err := runCmd(t, "token", "--sub", "u-1")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(strings.TrimSpace(out), "."))
}
