package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/stratum01/parliment-watch-sub000/src/pwapi/openparliament"
	"github.com/stratum01/parliment-watch-sub000/src/pwapi/types"
)

// FixtureSource serves canned upstream payloads from disk for development,
// replacing the old per-handler "dev mode" branches. The fixture directory
// holds votes.json, bills.json, members.json and member_votes.json, each an
// upstream-shaped collection envelope.
type FixtureSource struct {
	dir string
}

func NewFixtureSource(dir string) *FixtureSource {
	return &FixtureSource{dir: dir}
}

func (s *FixtureSource) page(name string) (*openparliament.Paginated, error) {
	body, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", name, err)
	}
	var page openparliament.Paginated
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("fixture %s: %w", name, err)
	}
	return &page, nil
}

func window(n, limit, offset int) (int, int) {
	if offset >= n {
		return 0, 0
	}
	end := offset + limit
	if limit <= 0 || end > n {
		end = n
	}
	return offset, end
}

func (s *FixtureSource) Votes(_ context.Context, limit, offset int) ([]types.Vote, error) {
	page, err := s.page("votes.json")
	if err != nil {
		return nil, err
	}
	var out []types.Vote
	lo, hi := window(len(page.Objects), limit, offset)
	for _, obj := range page.Objects[lo:hi] {
		v, _, err := openparliament.NormalizeVote(obj)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

func (s *FixtureSource) Vote(ctx context.Context, session string, number int) (*types.Vote, error) {
	votes, err := s.Votes(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	for i := range votes {
		if votes[i].Session == session && votes[i].Number == number {
			return &votes[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *FixtureSource) Bills(_ context.Context, limit, offset int) ([]types.Bill, error) {
	page, err := s.page("bills.json")
	if err != nil {
		return nil, err
	}
	var out []types.Bill
	lo, hi := window(len(page.Objects), limit, offset)
	for _, obj := range page.Objects[lo:hi] {
		b, _, err := openparliament.NormalizeBill(obj)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, nil
}

func (s *FixtureSource) Bill(ctx context.Context, session, number string) (*types.Bill, error) {
	bills, err := s.Bills(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	for i := range bills {
		if bills[i].Session == session && bills[i].Number == number {
			return &bills[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *FixtureSource) Members(_ context.Context, limit, offset int) ([]types.Member, error) {
	page, err := s.page("members.json")
	if err != nil {
		return nil, err
	}
	var out []types.Member
	lo, hi := window(len(page.Objects), limit, offset)
	for _, obj := range page.Objects[lo:hi] {
		m, _, err := openparliament.NormalizeMember(obj)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, nil
}

func (s *FixtureSource) Member(ctx context.Context, id string) (*types.Member, error) {
	members, err := s.Members(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	want := "/politicians/" + id + "/"
	for i := range members {
		if members[i].URL == want {
			return &members[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *FixtureSource) MemberVotes(_ context.Context, id string) ([]types.Ballot, error) {
	page, err := s.page("member_votes.json")
	if err != nil {
		return nil, err
	}
	want := "/politicians/" + id + "/"
	var out []types.Ballot
	for _, obj := range page.Objects {
		var b types.Ballot
		if err := json.Unmarshal(obj, &b); err != nil {
			return nil, fmt.Errorf("fixture ballot: %w", err)
		}
		if b.PoliticianURL == "" || b.PoliticianURL == want {
			out = append(out, b)
		}
	}
	return out, nil
}
