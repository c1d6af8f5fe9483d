package commands

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the command tree against a private SQLite file and returns
// what it printed.
func run(t *testing.T, dbPath string, args ...string) (string, string, error) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var out, errOut bytes.Buffer
	root := NewRootCmd("test")
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--env-file", "", "--db", dbPath}, args...))
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func tempDB(t *testing.T) string {
	return filepath.Join(t.TempDir(), "archive.db")
}

func TestRootShowsHelp(t *testing.T) {
	out, _, err := run(t, tempDB(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "init-db")
}

func TestRootRejectsUnknownFlags(t *testing.T) {
	_, _, err := run(t, tempDB(t), "--goal", "x")
	assert.Error(t, err)
}

func TestInitDB(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "root")
	t.Setenv("ADMIN_PASSWORD", "s3cret")
	path := tempDB(t)

	out, _, err := run(t, path, "init-db")
	require.NoError(t, err)
	assert.Contains(t, out, "demo categories, appeals and news loaded")
	assert.Contains(t, out, `administrator "root" created`)
	assert.NotContains(t, out, "default password")

	out, _, err = run(t, path, "init-db")
	require.NoError(t, err)
	assert.Contains(t, out, "demo data skipped")
	assert.NotContains(t, out, "administrator")
}

func TestCreateUser(t *testing.T) {
	path := tempDB(t)

	out, _, err := run(t, path, "create-user", "--username", "clerk", "--password", "pw")
	require.NoError(t, err)
	assert.Contains(t, out, `user "clerk" created`)

	_, errOut, err := run(t, path, "create-user", "--username", "clerk", "--password", "pw", "--admin")
	require.EqualError(t, err, "User already exists")
	assert.Contains(t, errOut, "clerk is already registered")

	_, _, err = run(t, path, "create-user", "--username", "nopass")
	assert.EqualError(t, err, "Username and password are required")
}

func TestAppealsListing(t *testing.T) {
	path := tempDB(t)
	_, _, err := run(t, path, "init-db")
	require.NoError(t, err)

	out, _, err := run(t, path, "appeals", "--status", "на рассмотрении")
	require.NoError(t, err)
	assert.Contains(t, out, "ОБ-2026-0142")
	assert.Contains(t, out, "ОБ-2026-0054")
	assert.NotContains(t, out, "ОБ-2023-0012")
	assert.Contains(t, out, "2 appeal(s)")
	assert.Contains(t, out, "statuses: закрыто, на рассмотрении, открыто")

	out, _, err = run(t, path, "appeals", "--category", "all", "--date-from", "2024-01-01", "--date-to", "2024-12-31")
	require.NoError(t, err)
	assert.Contains(t, out, "ОБ-2024-0061")
	assert.Contains(t, out, "4 appeal(s)")

	out, _, err = run(t, path, "appeals", "--status", "all", "--category", "bogus")
	require.NoError(t, err)
	assert.Contains(t, out, "15 appeal(s)")
}
