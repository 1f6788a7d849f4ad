package importer

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadUsersRejectsUnknownRole(t *testing.T) {
	path := writeCSV(t, "users.csv",
		"id,username,email,role,bio,first_name,last_name\n"+
			"1,alice,alice@example.com,superuser,,,\n")

	imp := New(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := imp.loadUsers(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "superuser")
}

func TestRunReportsMissingFile(t *testing.T) {
	imp := New(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := imp.Run(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "users.csv")
}
