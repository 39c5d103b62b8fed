package contest_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/pick36/contest"
	"github.com/padraicbc/pick36/testutil"
)

func TestLeaderboardOrdering(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	alice := testutil.CreateUser(t, db, "alice", false)
	bob := testutil.CreateUser(t, db, "bob", false)
	carol := testutil.CreateUser(t, db, "carol", false)
	testutil.CreateUser(t, db, "admin", true)

	race1 := testutil.CreateRace(t, db, 1, "2026-02-15", false)
	race2 := testutil.CreateRace(t, db, 2, "2026-02-22", false)

	require.NoError(t, contest.Submit(ctx, db, alice.ID, race1.ID, "Kyle Larson"))
	require.NoError(t, contest.Submit(ctx, db, bob.ID, race1.ID, "Chase Elliott"))
	require.NoError(t, contest.Submit(ctx, db, alice.ID, race2.ID, "Denny Hamlin"))

	require.NoError(t, contest.EnterResults(ctx, db, race1.ID, []contest.ResultRow{
		{DriverName: "Kyle Larson", FinishPosition: 1, Points: 55},
		{DriverName: "Chase Elliott", FinishPosition: 2, Points: 35},
	}))
	require.NoError(t, contest.EnterResults(ctx, db, race2.ID, []contest.ResultRow{
		{DriverName: "Denny Hamlin", FinishPosition: 1, Points: 55},
	}))

	standings, err := contest.Leaderboard(ctx, db)
	require.NoError(t, err)
	require.Len(t, standings, 3, "admin accounts are excluded")

	assert.Equal(t, "alice", standings[0].Username)
	assert.Equal(t, 110, standings[0].TotalPoints)
	assert.Equal(t, 2, standings[0].PicksMade)

	assert.Equal(t, "bob", standings[1].Username)
	assert.Equal(t, 35, standings[1].TotalPoints)

	// No picks at all still shows up with zero points.
	assert.Equal(t, carol.Username, standings[2].Username)
	assert.Equal(t, 0, standings[2].TotalPoints)
	assert.Equal(t, 0, standings[2].PicksMade)
}

func TestLeaderboardTiesBrokenByUsername(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	zoe := testutil.CreateUser(t, db, "zoe", false)
	amy := testutil.CreateUser(t, db, "amy", false)
	race := testutil.CreateRace(t, db, 1, "2026-02-15", false)

	require.NoError(t, contest.Submit(ctx, db, zoe.ID, race.ID, "Kyle Larson"))
	require.NoError(t, contest.Submit(ctx, db, amy.ID, race.ID, "Chase Elliott"))

	require.NoError(t, contest.EnterResults(ctx, db, race.ID, []contest.ResultRow{
		{DriverName: "Kyle Larson", FinishPosition: 1, Points: 40},
		{DriverName: "Chase Elliott", FinishPosition: 2, Points: 40},
	}))

	standings, err := contest.Leaderboard(ctx, db)
	require.NoError(t, err)
	require.Len(t, standings, 2)
	assert.Equal(t, "amy", standings[0].Username)
	assert.Equal(t, "zoe", standings[1].Username)
}
