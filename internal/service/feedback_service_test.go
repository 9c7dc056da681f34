package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stridecoach/stride/internal/domain"
	"github.com/stridecoach/stride/internal/repository"
	"github.com/stridecoach/stride/internal/service"
	"github.com/stridecoach/stride/internal/testutil"
)

func newFeedbackFixture(t *testing.T) (service.FeedbackService, *repository.SQLiteSessionRepo, string, string) {
	t.Helper()
	db := testutil.NewTestDB(t)
	athletes := repository.NewSQLiteAthleteRepo(db)
	plans := repository.NewSQLitePlanRepo(db)
	sessions := repository.NewSQLiteSessionRepo(db)
	ctx := context.Background()

	a := testutil.NewTestAthlete()
	require.NoError(t, athletes.Create(ctx, a))
	pv := testutil.NewTestPlanVersion(a.ID)
	require.NoError(t, plans.CreateVersion(ctx, pv))

	return service.NewFeedbackService(sessions, plans), sessions, a.ID, pv.ID
}

func TestFeedbackService_RecentAggregatesWindow(t *testing.T) {
	svc, sessions, athleteID, planID := newFeedbackFixture(t)
	ctx := context.Background()

	recent := time.Now().UTC().AddDate(0, 0, -3)
	old := time.Now().UTC().AddDate(0, 0, -30)
	require.NoError(t, sessions.Create(ctx, testutil.NewTestSession(planID,
		testutil.WithDate(recent), testutil.WithStatus(domain.StatusCompleted), testutil.WithRPE("6-7"))))
	require.NoError(t, sessions.Create(ctx, testutil.NewTestSession(planID,
		testutil.WithDate(recent), testutil.WithSkipReason("life"))))
	require.NoError(t, sessions.Create(ctx, testutil.NewTestSession(planID,
		testutil.WithDate(old), testutil.WithStatus(domain.StatusCompleted))))

	report, err := svc.Recent(ctx, athleteID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Summary.TotalSessions, "month-old record is outside the window")
	assert.Equal(t, 1, report.Summary.Completed)
	assert.Equal(t, 1, report.Summary.Skipped)
	assert.Equal(t, 50, report.Summary.CompletionRate)
	assert.Contains(t, report.Block, "EXECUTION DATA")
	assert.Contains(t, report.Block, "Sessions completed: 1 of 2 (50%)")
}

func TestFeedbackService_RecentNoData(t *testing.T) {
	svc, _, athleteID, _ := newFeedbackFixture(t)

	report, err := svc.Recent(context.Background(), athleteID, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Summary.TotalSessions)
	assert.Contains(t, report.Block, "No sessions completed yet.")
}

func TestFeedbackService_RecentWindowBounds(t *testing.T) {
	svc, _, athleteID, _ := newFeedbackFixture(t)

	report, err := svc.Recent(context.Background(), athleteID, 2)
	require.NoError(t, err)
	assert.Equal(t, 14, int(report.To.Sub(report.From).Hours()/24))
}

func TestFeedbackService_WeekLabelsFromPlanAge(t *testing.T) {
	db := testutil.NewTestDB(t)
	athletes := repository.NewSQLiteAthleteRepo(db)
	plans := repository.NewSQLitePlanRepo(db)
	sessions := repository.NewSQLiteSessionRepo(db)
	svc := service.NewFeedbackService(sessions, plans)
	ctx := context.Background()

	a := testutil.NewTestAthlete()
	require.NoError(t, athletes.Create(ctx, a))
	pv := testutil.NewTestPlanVersion(a.ID)
	pv.CreatedAt = time.Now().UTC().AddDate(0, 0, -22) // planning week 4
	require.NoError(t, plans.CreateVersion(ctx, pv))

	report, err := svc.Recent(ctx, a.ID, 2)
	require.NoError(t, err)
	assert.True(t, strings.Contains(report.Block, "Weeks 3-4"), "block was: %s", report.Block)
}

func TestFeedbackService_MinimumOneWeekWindow(t *testing.T) {
	svc, _, athleteID, _ := newFeedbackFixture(t)

	report, err := svc.Recent(context.Background(), athleteID, 0)
	require.NoError(t, err)
	assert.Equal(t, 7, int(report.To.Sub(report.From).Hours()/24))
}
