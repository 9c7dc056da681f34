package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Running migrations a second time should succeed without error.
	err := Migrate(db)
	require.NoError(t, err)

	// Third time for good measure.
	err = Migrate(db)
	require.NoError(t, err)
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"athletes", "plan_versions", "session_records"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_athletes_email",
		"idx_athletes_chat_id",
		"idx_plan_versions_athlete",
		"idx_session_records_plan",
		"idx_session_records_date",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_WALModeRequested(t *testing.T) {
	// In-memory SQLite uses "memory" journal mode; WAL only applies to file DBs.
	// This test verifies OpenDB issues the PRAGMA (a no-op for :memory:).
	db := openTestDB(t)

	var mode string
	err := db.QueryRow(`PRAGMA journal_mode`).Scan(&mode)
	require.NoError(t, err)
	// In-memory DBs report "memory" instead of "wal".
	assert.Equal(t, "memory", mode)
}

func TestMigrate_PlanVersionUniquePerAthlete(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO athletes (id, email, created_at)
		VALUES ('a1', 'ana@example.com', '2025-06-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO plan_versions (id, athlete_id, version, weeks, created_at)
		VALUES ('pv1', 'a1', 1, '[]', '2025-06-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO plan_versions (id, athlete_id, version, weeks, created_at)
		VALUES ('pv2', 'a1', 1, '[]', '2025-06-01T00:00:00Z')`)
	assert.Error(t, err, "duplicate (athlete_id, version) pair should be rejected")

	_, err = db.Exec(`INSERT INTO plan_versions (id, athlete_id, version, weeks, created_at)
		VALUES ('pv3', 'a1', 2, '[]', '2025-06-01T00:00:00Z')`)
	assert.NoError(t, err, "next version number should be accepted")
}

func TestMigrate_SessionStatusCheckConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO athletes (id, email, created_at)
		VALUES ('a1', 'ana@example.com', '2025-06-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO plan_versions (id, athlete_id, version, weeks, created_at)
		VALUES ('pv1', 'a1', 1, '[]', '2025-06-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO session_records (id, plan_id, date, session_type, status)
		VALUES ('s1', 'pv1', '2025-06-02', 'run', 'INVALID')`)
	assert.Error(t, err, "invalid status should be rejected by CHECK constraint")

	_, err = db.Exec(`INSERT INTO session_records (id, plan_id, date, session_type, status)
		VALUES ('s1', 'pv1', '2025-06-02', 'run', 'completed')`)
	assert.NoError(t, err)
}

func TestMigrate_SessionDefaults(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO athletes (id, email, created_at)
		VALUES ('a1', 'ana@example.com', '2025-06-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO plan_versions (id, athlete_id, version, weeks, created_at)
		VALUES ('pv1', 'a1', 1, '[]', '2025-06-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO session_records (id, plan_id, date, session_type)
		VALUES ('s1', 'pv1', '2025-06-02', 'run')`)
	require.NoError(t, err)

	var status, skipReason, rpe, notes string
	err = db.QueryRow(`SELECT status, skip_reason, rpe, notes FROM session_records WHERE id = 's1'`).
		Scan(&status, &skipReason, &rpe, &notes)
	require.NoError(t, err)
	assert.Equal(t, "pending", status)
	assert.Equal(t, "", skipReason)
	assert.Equal(t, "", rpe)
	assert.Equal(t, "", notes)
}

func TestMigrate_CascadeDeletePlanVersions(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO athletes (id, email, created_at)
		VALUES ('a1', 'ana@example.com', '2025-06-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO plan_versions (id, athlete_id, version, weeks, created_at)
		VALUES ('pv1', 'a1', 1, '[]', '2025-06-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO session_records (id, plan_id, date, session_type)
		VALUES ('s1', 'pv1', '2025-06-02', 'run')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM athletes WHERE id = 'a1'`)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM plan_versions`).Scan(&count))
	assert.Equal(t, 0, count, "plan versions should cascade on athlete delete")
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM session_records`).Scan(&count))
	assert.Equal(t, 0, count, "session records should cascade through plan versions")
}

func TestMigrate_EmptyChatIDNotUnique(t *testing.T) {
	db := openTestDB(t)

	// Empty chat IDs may repeat; the unique index only covers non-empty values.
	_, err := db.Exec(`INSERT INTO athletes (id, email, chat_id, created_at)
		VALUES ('a1', 'ana@example.com', '', '2025-06-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO athletes (id, email, chat_id, created_at)
		VALUES ('a2', 'ben@example.com', '', '2025-06-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO athletes (id, email, chat_id, created_at)
		VALUES ('a3', 'cho@example.com', 'chat-9', '2025-06-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO athletes (id, email, chat_id, created_at)
		VALUES ('a4', 'dee@example.com', 'chat-9', '2025-06-01T00:00:00Z')`)
	assert.Error(t, err, "duplicate non-empty chat_id should be rejected")
}
