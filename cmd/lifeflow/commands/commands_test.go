package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/lifeflow/core/internal/domain/schema"
)

func useTempStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store", "lifeflow.db")
	t.Setenv("LIFEFLOW_STORE_PATH", path)
	t.Setenv("LIFEFLOW_STORE_MEMORY", "false")
	t.Setenv("LOG_LEVEL", "error")
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheckMarksVersion(t *testing.T) {
	is := is.New(t)
	path := useTempStore(t)

	out, err := run(t, "check")
	is.NoErr(err)
	is.True(strings.Contains(out, "(changed: true)"))
	is.True(strings.Contains(out, "tasks"))

	_, err = os.Stat(path)
	is.NoErr(err) // store file created

	out, err = run(t, "check")
	is.NoErr(err)
	is.True(strings.Contains(out, "(changed: false)"))
}

func TestMigrateVersion(t *testing.T) {
	is := is.New(t)
	useTempStore(t)

	out, err := run(t, "migrate", "version")
	is.NoErr(err)
	is.True(strings.Contains(out, "Migration version: 0"))

	out, err = run(t, "migrate", "up")
	is.NoErr(err)
	is.True(strings.Contains(out, "completed successfully"))

	out, err = run(t, "migrate", "up")
	is.NoErr(err)
	is.True(strings.Contains(out, "No migrations to run"))

	out, err = run(t, "migrate", "version")
	is.NoErr(err)
	is.True(strings.Contains(out, "Migration version: 1"))
}

func TestExport(t *testing.T) {
	is := is.New(t)
	useTempStore(t)

	file := filepath.Join(t.TempDir(), "export.json")
	_, err := run(t, "export", "-o", file)
	is.NoErr(err)

	data, err := os.ReadFile(file)
	is.NoErr(err)
	var dump map[string][]map[string]any
	is.NoErr(json.Unmarshal(data, &dump))
	is.Equal(len(dump), len(schema.Names()))
	for _, name := range schema.Names() {
		records, ok := dump[name]
		is.True(ok)
		is.Equal(len(records), 0)
	}
}

func TestDashboardJSON(t *testing.T) {
	is := is.New(t)
	useTempStore(t)

	out, err := run(t, "dashboard")
	is.NoErr(err)
	var d map[string]any
	is.NoErr(json.Unmarshal([]byte(out), &d))
	is.True(d["greeting"] != nil)

	out, err = run(t, "dashboard", "--insights")
	is.NoErr(err)
	var in map[string]any
	is.NoErr(json.Unmarshal([]byte(out), &in))
	is.Equal(in["totalTasks"], 0.0)
}

func TestVersion(t *testing.T) {
	is := is.New(t)
	out, err := run(t, "version")
	is.NoErr(err)
	is.True(strings.HasPrefix(out, "LifeFlow v"))
}
