package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stridecoach/stride/internal/chatstate"
	"github.com/stridecoach/stride/internal/repository"
	"github.com/stridecoach/stride/internal/service"
	"github.com/stridecoach/stride/internal/testutil"
)

const testPlanJSON = `{
	"macro_plan": {"phases": ["base"]},
	"weeks": [
		{"week_number": 1, "days": {
			"monday": {"session_type": "run", "title": "Easy run", "duration_minutes": 40,
				"cue": "relaxed shoulders", "structure": [{"segment": "main", "minutes": 40, "intensity": "easy"}]},
			"saturday": {"session_type": "rest", "title": "Rest"}
		}}
	]
}`

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	athleteRepo := repository.NewSQLiteAthleteRepo(database)
	planRepo := repository.NewSQLitePlanRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	uow := testutil.NewTestUoW(database)

	return &App{
		Athletes: service.NewAthleteService(athleteRepo),
		Plans:    service.NewPlanService(planRepo, uow),
		Checkins: service.NewCheckinService(sessionRepo, chatstate.NewMemoryStore(time.Hour)),
		Feedback: service.NewFeedbackService(sessionRepo, planRepo),
	}
}

// executeCmd runs a cobra command and captures cobra-level output.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// writePlanFile drops the test plan JSON into a temp file.
func writePlanFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(testPlanJSON), 0o644))
	return path
}

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, output, "stride")
}

func TestAthleteCmd_RegisterAndList(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "athlete", "register", "--email", "runner@example.com")
	require.NoError(t, err)

	a, err := app.Athletes.GetByEmail(context.Background(), "runner@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)

	_, err = executeCmd(t, app, "athlete", "list")
	require.NoError(t, err)
}

func TestAthleteCmd_RegisterRequiresEmail(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "athlete", "register")
	assert.Error(t, err)
}

func TestPlanCmd_SubmitAndShow(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "athlete", "register", "--email", "runner@example.com")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "plan", "submit",
		"--athlete", "runner@example.com", "--file", writePlanFile(t))
	require.NoError(t, err)

	_, err = executeCmd(t, app, "plan", "show", "--athlete", "runner@example.com")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "plan", "versions", "--athlete", "runner@example.com")
	require.NoError(t, err)
}

func TestPlanCmd_SubmitRejectedPlan(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "athlete", "register", "--email", "runner@example.com")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"weeks": []}`), 0o644))

	_, err = executeCmd(t, app, "plan", "submit",
		"--athlete", "runner@example.com", "--file", path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "rejected")
}

func TestPlanCmd_SubmitUnknownAthlete(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "plan", "submit",
		"--athlete", "nobody@example.com", "--file", writePlanFile(t))
	assert.Error(t, err)
}

func TestValidateCmd_AcceptsFile(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "validate", "--file", writePlanFile(t))
	require.NoError(t, err)
}

func TestValidateCmd_RejectsInvalidFile(t *testing.T) {
	app := testApp(t)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0o644))

	_, err := executeCmd(t, app, "validate", "--file", path)
	assert.Error(t, err)
}

func TestSessionCmd_CheckinFlow(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	_, err := executeCmd(t, app, "athlete", "register", "--email", "runner@example.com")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "plan", "submit",
		"--athlete", "runner@example.com", "--file", writePlanFile(t))
	require.NoError(t, err)

	a, err := app.Athletes.GetByEmail(ctx, "runner@example.com")
	require.NoError(t, err)
	records, err := app.Plans.MaterializeWeek(ctx, a.ID, 1, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotEmpty(t, records)

	_, err = executeCmd(t, app, "session", "checkin",
		"--session", records[0].ID, "--status", "completed", "--rpe", "6-7")
	require.NoError(t, err)
}

func TestSessionCmd_CheckinInvalidRPE(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "session", "checkin",
		"--session", "missing", "--rpe", "7")
	assert.Error(t, err)
}

func TestFeedbackCmd_EmptyWindow(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "athlete", "register", "--email", "runner@example.com")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "feedback", "--athlete", "runner@example.com")
	require.NoError(t, err)
}

func TestMaterializeCmd_CreatesRecords(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "athlete", "register", "--email", "runner@example.com")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "plan", "submit",
		"--athlete", "runner@example.com", "--file", writePlanFile(t))
	require.NoError(t, err)

	_, err = executeCmd(t, app, "plan", "materialize",
		"--athlete", "runner@example.com", "--week", "1", "--start", "2025-06-02")
	require.NoError(t, err)
}
