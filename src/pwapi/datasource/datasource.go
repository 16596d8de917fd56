package datasource

import (
	"context"

	"github.com/stratum01/parliment-watch-sub000/src/pwapi/data"
	"github.com/stratum01/parliment-watch-sub000/src/pwapi/types"
)

// ErrNotFound is what every source returns for a key with no current record,
// whether it was never fetched or purged after expiry.
var ErrNotFound = data.ErrNotFound

// Source is the read surface the webserver is built against. Exactly one
// implementation is selected at startup from configuration: store-backed,
// live-fetch or fixture-backed. Handlers never branch on deployment mode.
type Source interface {
	Votes(ctx context.Context, limit, offset int) ([]types.Vote, error)
	Vote(ctx context.Context, session string, number int) (*types.Vote, error)
	Bills(ctx context.Context, limit, offset int) ([]types.Bill, error)
	Bill(ctx context.Context, session, number string) (*types.Bill, error)
	Members(ctx context.Context, limit, offset int) ([]types.Member, error)
	Member(ctx context.Context, id string) (*types.Member, error)
	MemberVotes(ctx context.Context, id string) ([]types.Ballot, error)
}
