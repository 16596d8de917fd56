package datasource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixtureSourceVotes(t *testing.T) {
	src := NewFixtureSource("testdata")
	ctx := context.Background()

	votes, err := src.Votes(ctx, 20, 0)
	require.NoError(t, err)
	require.Len(t, votes, 2)

	vote, err := src.Vote(ctx, "44-1", 928)
	require.NoError(t, err)
	assert.Equal(t, "Passed", vote.Result)
	assert.Equal(t, 177, vote.YeaTotal)

	_, err = src.Vote(ctx, "44-1", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFixtureSourcePaging(t *testing.T) {
	src := NewFixtureSource("testdata")

	votes, err := src.Votes(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Len(t, votes, 1)
	assert.Equal(t, 928, votes[0].Number)

	votes, err = src.Votes(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Len(t, votes, 1)
	assert.Equal(t, 927, votes[0].Number)

	votes, err = src.Votes(context.Background(), 10, 5)
	require.NoError(t, err)
	assert.Empty(t, votes)
}

func TestFixtureSourceBills(t *testing.T) {
	src := NewFixtureSource("testdata")
	ctx := context.Background()

	bill, err := src.Bill(ctx, "44-1", "C-45")
	require.NoError(t, err)
	assert.Equal(t, "Royal Assent", bill.Status)

	bill, err = src.Bill(ctx, "44-1", "C-2")
	require.NoError(t, err)
	assert.Equal(t, "Committee", bill.Status)

	_, err = src.Bill(ctx, "43-2", "C-45")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFixtureSourceMembers(t *testing.T) {
	src := NewFixtureSource("testdata")
	ctx := context.Background()

	member, err := src.Member(ctx, "jane-doe")
	require.NoError(t, err)
	assert.Equal(t, "NDP", member.Party)
	assert.Equal(t, "Halifax", member.Constituency)

	_, err = src.Member(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFixtureSourceMemberVotesFiltersByMember(t *testing.T) {
	src := NewFixtureSource("testdata")

	ballots, err := src.MemberVotes(context.Background(), "jane-doe")
	require.NoError(t, err)
	assert.Len(t, ballots, 2)
}

func TestFixtureSourceMissingDir(t *testing.T) {
	src := NewFixtureSource("no-such-dir")

	_, err := src.Votes(context.Background(), 20, 0)
	assert.Error(t, err)
}
