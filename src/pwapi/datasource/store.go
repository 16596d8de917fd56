package datasource

import (
	"context"

	"github.com/stratum01/parliment-watch-sub000/src/pwapi/data"
	"github.com/stratum01/parliment-watch-sub000/src/pwapi/types"
)

// StoreSource serves reads from the persistent record store kept warm by the
// refresh jobs. A member's vote history is never persisted (too volatile and
// too large per member), so that one call delegates to the live source.
type StoreSource struct {
	store *data.Store
	live  *LiveSource
}

func NewStoreSource(store *data.Store, live *LiveSource) *StoreSource {
	return &StoreSource{store: store, live: live}
}

func (s *StoreSource) Votes(_ context.Context, limit, offset int) ([]types.Vote, error) {
	return s.store.ListVotes(limit, offset)
}

func (s *StoreSource) Vote(_ context.Context, session string, number int) (*types.Vote, error) {
	return s.store.FindVote(session, number)
}

func (s *StoreSource) Bills(_ context.Context, limit, offset int) ([]types.Bill, error) {
	return s.store.ListBills(limit, offset)
}

func (s *StoreSource) Bill(_ context.Context, session, number string) (*types.Bill, error) {
	return s.store.FindBill(session, number)
}

func (s *StoreSource) Members(_ context.Context, limit, offset int) ([]types.Member, error) {
	return s.store.ListMembers(limit, offset)
}

func (s *StoreSource) Member(_ context.Context, id string) (*types.Member, error) {
	return s.store.FindMember("/politicians/" + id + "/")
}

func (s *StoreSource) MemberVotes(ctx context.Context, id string) ([]types.Ballot, error) {
	return s.live.MemberVotes(ctx, id)
}
