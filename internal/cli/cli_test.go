package cli

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/daybook/internal/storage"
)

func TestBuildParser_RegistersAllCommands(t *testing.T) {
	parser, globals, cmds := buildParser("test")
	require.NotNil(t, globals)
	require.NotNil(t, cmds)

	expected := []string{
		"generate", "week", "export", "categories", "top",
		"bookmarks", "status", "prune", "purge", "schedule",
	}
	for _, name := range expected {
		assert.NotNil(t, parser.Find(name), "command %s should be registered", name)
	}
	assert.Equal(t, "daybook", parser.Name)
}

func TestBuildParser_SharedGlobals(t *testing.T) {
	_, globals, cmds := buildParser("test")

	// Every command sees the same globals instance.
	assert.Same(t, globals, cmds.Generate.globals)
	assert.Same(t, globals, cmds.Status.globals)
	assert.Same(t, globals, cmds.Purge.globals)
}

func TestRunWithArgs_Version(t *testing.T) {
	err := RunWithArgs("1.2.3", []string{"--version"})
	assert.NoError(t, err)
}

func TestRunWithArgs_UnknownCommand(t *testing.T) {
	err := RunWithArgs("test", []string{"definitely-not-a-command"})
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	loc := time.UTC

	day, err := parseDate("2026-08-31", loc)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-31", day.Format(storage.DateFormat))
	assert.Equal(t, loc, day.Location())

	for _, s := range []string{"", "today"} {
		day, err := parseDate(s, loc)
		require.NoError(t, err)
		assert.Equal(t, time.Now().In(loc).Format(storage.DateFormat), day.Format(storage.DateFormat))
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, s := range []string{"31-08-2026", "2026/08/31", "yesterday", "2026-13-01"} {
		_, err := parseDate(s, time.UTC)
		require.Error(t, err, "date %q should be rejected", s)
		assert.Contains(t, err.Error(), "use YYYY-MM-DD")
	}
}

func TestMondayOf(t *testing.T) {
	tests := []struct {
		day  string
		want string
	}{
		{"2026-08-31", "2026-08-31"}, // a Monday maps to itself
		{"2026-09-01", "2026-08-31"},
		{"2026-09-06", "2026-08-31"}, // Sunday belongs to the preceding Monday
	}
	for _, tc := range tests {
		day, err := time.Parse(storage.DateFormat, tc.day)
		require.NoError(t, err)
		assert.Equal(t, tc.want, mondayOf(day).Format(storage.DateFormat), "monday of %s", tc.day)
	}
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "45m", formatMinutes(45))
	assert.Equal(t, "1h 0m", formatMinutes(60))
	assert.Equal(t, "2h 5m", formatMinutes(125))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.0 KB", formatBytes(1024))
	assert.Equal(t, "1.5 MB", formatBytes(3<<20/2))
	assert.Equal(t, "2.0 GB", formatBytes(2<<30))
}

func TestPurgeCommand_RequiresAll(t *testing.T) {
	cmd := &PurgeCommand{globals: &GlobalFlags{}}
	err := cmd.Execute(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--all")
}

func TestPurgeCommand_ForceWithInjectedDB(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, storage.NewMigrationRunner(db).Run())

	_, err = db.Exec("INSERT INTO journal_entries (date) VALUES ('2026-08-31')")
	require.NoError(t, err)

	cmd := (&PurgeCommand{All: true, Force: true, globals: &GlobalFlags{}}).withDB(db)
	require.NoError(t, cmd.Execute(nil))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM journal_entries").Scan(&count))
	assert.Equal(t, 0, count)

	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM site_categories").Scan(&count))
	assert.Equal(t, 0, count, "seeded categories go too")
}
