package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stratum01/parliment-watch-sub000/src/pwapi/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return NewStore(db)
}

func TestUpsertVoteIdempotent(t *testing.T) {
	s := testStore(t)

	first := &types.Vote{Number: 928, Session: "44-1", Result: "Passed", YeaTotal: 170}
	require.NoError(t, s.UpsertVote(first, 48*time.Hour))

	firstUpdated := first.LastUpdated

	second := &types.Vote{Number: 928, Session: "44-1", Result: "Passed", YeaTotal: 177, NayTotal: 140}
	require.NoError(t, s.UpsertVote(second, 48*time.Hour))

	var count int64
	require.NoError(t, s.db.Model(&types.Vote{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err := s.FindVote("44-1", 928)
	require.NoError(t, err)
	assert.Equal(t, 177, got.YeaTotal)
	assert.Equal(t, 140, got.NayTotal)
	assert.GreaterOrEqual(t, got.LastUpdated.UnixNano(), firstUpdated.UnixNano())
}

func TestUpsertBillIdempotent(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.UpsertBill(&types.Bill{Number: "C-45", Session: "44-1", Status: "Committee"}, 72*time.Hour))
	require.NoError(t, s.UpsertBill(&types.Bill{Number: "C-45", Session: "44-1", Status: "Third Reading"}, 72*time.Hour))

	var count int64
	require.NoError(t, s.db.Model(&types.Bill{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err := s.FindBill("44-1", "C-45")
	require.NoError(t, err)
	assert.Equal(t, "Third Reading", got.Status)
}

func TestUpsertMemberIdempotent(t *testing.T) {
	s := testStore(t)

	url := "/politicians/jane-doe/"
	require.NoError(t, s.UpsertMember(&types.Member{URL: url, Party: "NDP"}, 7*24*time.Hour))
	require.NoError(t, s.UpsertMember(&types.Member{URL: url, Party: "Independent"}, 7*24*time.Hour))

	var count int64
	require.NoError(t, s.db.Model(&types.Member{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err := s.FindMember(url)
	require.NoError(t, err)
	assert.Equal(t, "Independent", got.Party)
}

func TestFindMissingReturnsNotFound(t *testing.T) {
	s := testStore(t)

	_, err := s.FindVote("44-1", 1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.FindBill("44-1", "C-1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.FindMember("/politicians/nobody/")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExpiresAtComputedAtWriteTime(t *testing.T) {
	s := testStore(t)

	now := time.Now()
	s.now = func() time.Time { return now }

	v := &types.Vote{Number: 1, Session: "44-1"}
	require.NoError(t, s.UpsertVote(v, 48*time.Hour))
	assert.Equal(t, now.Add(48*time.Hour).Unix(), v.ExpiresAt.Unix())
}

func TestDeleteExpiredPurgesOnlyPastRecords(t *testing.T) {
	s := testStore(t)

	now := time.Now()
	s.now = func() time.Time { return now }

	require.NoError(t, s.UpsertVote(&types.Vote{Number: 1, Session: "44-1"}, -time.Minute))
	require.NoError(t, s.UpsertVote(&types.Vote{Number: 2, Session: "44-1"}, 48*time.Hour))
	require.NoError(t, s.UpsertBill(&types.Bill{Number: "C-1", Session: "44-1"}, -time.Minute))
	require.NoError(t, s.UpsertMember(&types.Member{URL: "/politicians/a/"}, 7*24*time.Hour))

	// present before the sweep
	_, err := s.FindVote("44-1", 1)
	require.NoError(t, err)

	removed, err := s.DeleteExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	_, err = s.FindVote("44-1", 1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.FindBill("44-1", "C-1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.FindVote("44-1", 2)
	assert.NoError(t, err)
	_, err = s.FindMember("/politicians/a/")
	assert.NoError(t, err)
}

func TestListVotesOrdersNewestFirst(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.UpsertVote(&types.Vote{Number: 1, Session: "44-1", Date: "2024-01-01"}, time.Hour))
	require.NoError(t, s.UpsertVote(&types.Vote{Number: 2, Session: "44-1", Date: "2024-06-01"}, time.Hour))

	got, err := s.ListVotes(10, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Number)
}
