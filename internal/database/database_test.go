package database

import (
	"context"
	"database/sql"
	"testing"

	"github.com/mauv0809/slackelo/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	for _, table := range []string{"players", "channels", "channel_players", "games", "player_games"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "Querying for %s table should not produce an error", table)
		assert.Equal(t, table, name, "The '%s' table should be created", table)
	}
}

func TestInitDB_AppliesLaterColumns(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err)
	defer teardown()

	_, err = db.Exec(`INSERT INTO channels (channel_id) VALUES ('C1')`)
	require.NoError(t, err)

	var kFactor int
	err = db.QueryRow(`SELECT k_factor FROM channels WHERE channel_id = 'C1'`).Scan(&kFactor)
	require.NoError(t, err)
	assert.Equal(t, 32, kFactor, "k_factor should default to 32")

	_, err = db.Exec(`INSERT INTO players (user_id) VALUES ('U1')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO channel_players (user_id, channel_id) VALUES ('U1', 'C1')`)
	require.NoError(t, err)

	var rating, gambling int
	err = db.QueryRow(`SELECT rating, gambling FROM channel_players WHERE user_id = 'U1'`).Scan(&rating, &gambling)
	require.NoError(t, err)
	assert.Equal(t, 1000, rating)
	assert.Equal(t, 0, gambling)
}

func TestMigrate_IsIdempotent(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err)
	defer teardown()

	require.NoError(t, Migrate(context.Background(), db, goose.DialectSQLite3))

	statuses, err := Status(context.Background(), db, goose.DialectSQLite3)
	require.NoError(t, err)
	require.Len(t, statuses, 3)
	for i, s := range statuses {
		assert.Equal(t, int64(i+1), s.Version)
		assert.True(t, s.Applied, "migration %s should be applied", s.File)
	}
}

func TestDialectFor(t *testing.T) {
	assert.Equal(t, goose.DialectSQLite3, DialectFor(""))
	assert.Equal(t, goose.Dialect("turso"), DialectFor("libsql://example.turso.io"))

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	// The provider must accept both dialects without touching the database.
	for _, url := range []string{"", "libsql://example.turso.io"} {
		_, err := goose.NewProvider(DialectFor(url), db, migrations.FS)
		assert.NoError(t, err, "dialect for %q should be supported", url)
	}
}
