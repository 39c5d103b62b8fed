package contest_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/pick36/contest"
	"github.com/padraicbc/pick36/testutil"
)

func TestSubmitRejectsUsedDriver(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	alice := testutil.CreateUser(t, db, "alice", false)
	race1 := testutil.CreateRace(t, db, 1, "2026-02-15", false)
	race2 := testutil.CreateRace(t, db, 2, "2026-02-22", false)

	require.NoError(t, contest.Submit(ctx, db, alice.ID, race1.ID, "Kyle Larson"))

	err := contest.Submit(ctx, db, alice.ID, race2.ID, "Kyle Larson")
	require.ErrorIs(t, err, contest.ErrDriverUsed)
	assert.Contains(t, err.Error(), "already used")

	// A fresh driver for race 2 is fine.
	require.NoError(t, contest.Submit(ctx, db, alice.ID, race2.ID, "Chase Elliott"))
}

func TestSubmitSameDriverSameRaceRejected(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	alice := testutil.CreateUser(t, db, "alice", false)
	race := testutil.CreateRace(t, db, 1, "2026-02-15", false)

	require.NoError(t, contest.Submit(ctx, db, alice.ID, race.ID, "Kyle Larson"))

	// The season-wide check runs before the race check, so re-submitting the
	// pick already on file is rejected rather than treated as a no-op.
	err := contest.Submit(ctx, db, alice.ID, race.ID, "Kyle Larson")
	require.ErrorIs(t, err, contest.ErrDriverUsed)
}

func TestSubmitReplacesPickWhileOpen(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	alice := testutil.CreateUser(t, db, "alice", false)
	race := testutil.CreateRace(t, db, 1, "2026-02-15", false)

	require.NoError(t, contest.Submit(ctx, db, alice.ID, race.ID, "Kyle Larson"))
	require.NoError(t, contest.Submit(ctx, db, alice.ID, race.ID, "Chase Elliott"))

	pick, err := contest.PickForRace(ctx, db, alice.ID, race.ID)
	require.NoError(t, err)
	require.NotNil(t, pick)
	assert.Equal(t, "Chase Elliott", pick.DriverName)

	// The replaced driver is available again.
	used, err := contest.UsedDrivers(ctx, db, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Chase Elliott"}, used)
}

func TestSubmitRaceChecks(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	alice := testutil.CreateUser(t, db, "alice", false)
	closed := testutil.CreateRace(t, db, 1, "2026-02-15", true)

	err := contest.Submit(ctx, db, alice.ID, closed.ID, "Kyle Larson")
	require.ErrorIs(t, err, contest.ErrRaceCompleted)

	err = contest.Submit(ctx, db, alice.ID, 9999, "Kyle Larson")
	require.ErrorIs(t, err, contest.ErrRaceNotFound)

	err = contest.Submit(ctx, db, alice.ID, closed.ID, "   ")
	require.Error(t, err)
}

func TestUsedDriversSpansSeason(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	alice := testutil.CreateUser(t, db, "alice", false)
	race1 := testutil.CreateRace(t, db, 1, "2026-02-15", false)
	race2 := testutil.CreateRace(t, db, 2, "2026-02-22", false)

	require.NoError(t, contest.Submit(ctx, db, alice.ID, race1.ID, "Kyle Larson"))
	require.NoError(t, contest.Submit(ctx, db, alice.ID, race2.ID, "Chase Elliott"))

	used, err := contest.UsedDrivers(ctx, db, alice.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Kyle Larson", "Chase Elliott"}, used)
}

func TestPickForRaceNone(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	alice := testutil.CreateUser(t, db, "alice", false)
	race := testutil.CreateRace(t, db, 1, "2026-02-15", false)

	pick, err := contest.PickForRace(ctx, db, alice.ID, race.ID)
	require.NoError(t, err)
	assert.Nil(t, pick)
}

func TestPicksByUserOrderedByRaceNumber(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	alice := testutil.CreateUser(t, db, "alice", false)
	race2 := testutil.CreateRace(t, db, 2, "2026-02-22", false)
	race1 := testutil.CreateRace(t, db, 1, "2026-02-15", false)

	require.NoError(t, contest.Submit(ctx, db, alice.ID, race2.ID, "Chase Elliott"))
	require.NoError(t, contest.Submit(ctx, db, alice.ID, race1.ID, "Kyle Larson"))

	picks, err := contest.PicksByUser(ctx, db, alice.ID)
	require.NoError(t, err)
	require.Len(t, picks, 2)
	assert.Equal(t, 1, picks[0].RaceNumber)
	assert.Equal(t, "Kyle Larson", picks[0].DriverName)
	assert.Equal(t, 2, picks[1].RaceNumber)
}

func TestAllPicksForRaceExcludesAdmins(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	alice := testutil.CreateUser(t, db, "alice", false)
	bob := testutil.CreateUser(t, db, "bob", false)
	admin := testutil.CreateUser(t, db, "admin", true)
	race := testutil.CreateRace(t, db, 1, "2026-02-15", false)

	require.NoError(t, contest.Submit(ctx, db, bob.ID, race.ID, "Denny Hamlin"))
	require.NoError(t, contest.Submit(ctx, db, alice.ID, race.ID, "Kyle Larson"))
	require.NoError(t, contest.Submit(ctx, db, admin.ID, race.ID, "Ryan Blaney"))

	picks, err := contest.AllPicksForRace(ctx, db, race.ID)
	require.NoError(t, err)
	require.Len(t, picks, 2)
	assert.Equal(t, "alice", picks[0].Username)
	assert.Equal(t, "bob", picks[1].Username)
}
