package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/stratum01/parliment-watch-sub000/src/pwapi/cache"
	"github.com/stratum01/parliment-watch-sub000/src/pwapi/openparliament"
	"github.com/stratum01/parliment-watch-sub000/src/pwapi/policy"
	"github.com/stratum01/parliment-watch-sub000/src/pwapi/types"
)

// LiveSource proxies reads straight to the upstream API through the
// ephemeral response cache, so equivalent requests inside a TTL window hit
// upstream once. An upstream 404 maps to ErrNotFound.
type LiveSource struct {
	client *openparliament.Client
	cache  cache.ResponseCache
	pol    policy.Policy
}

func NewLiveSource(client *openparliament.Client, c cache.ResponseCache, pol policy.Policy) *LiveSource {
	return &LiveSource{client: client, cache: c, pol: pol}
}

// fetch runs one cached upstream request.
func (s *LiveSource) fetch(ctx context.Context, path string, params url.Values) ([]byte, error) {
	sig := cache.Signature(path, params)
	if body, ok := s.cache.Get(ctx, sig); ok {
		return body, nil
	}

	body, err := s.client.Fetch(ctx, path, params)
	if err != nil {
		var ue *openparliament.UpstreamError
		if errors.As(err, &ue) && ue.Status == 404 {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.cache.Set(ctx, sig, body, s.pol.ResponseTTL(path))
	return body, nil
}

func pageParams(limit, offset int) url.Values {
	p := url.Values{}
	p.Set("limit", fmt.Sprint(limit))
	p.Set("offset", fmt.Sprint(offset))
	return p
}

func (s *LiveSource) Votes(ctx context.Context, limit, offset int) ([]types.Vote, error) {
	body, err := s.fetch(ctx, "/votes/", pageParams(limit, offset))
	if err != nil {
		return nil, err
	}
	var page openparliament.Paginated
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("parse votes page: %w", err)
	}
	out := make([]types.Vote, 0, len(page.Objects))
	for _, obj := range page.Objects {
		v, _, err := openparliament.NormalizeVote(obj)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

func (s *LiveSource) Vote(ctx context.Context, session string, number int) (*types.Vote, error) {
	body, err := s.fetch(ctx, fmt.Sprintf("/votes/%s/%d/", session, number), nil)
	if err != nil {
		return nil, err
	}
	v, _, err := openparliament.NormalizeVote(body)
	return v, err
}

func (s *LiveSource) Bills(ctx context.Context, limit, offset int) ([]types.Bill, error) {
	body, err := s.fetch(ctx, "/bills/", pageParams(limit, offset))
	if err != nil {
		return nil, err
	}
	var page openparliament.Paginated
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("parse bills page: %w", err)
	}
	out := make([]types.Bill, 0, len(page.Objects))
	for _, obj := range page.Objects {
		b, _, err := openparliament.NormalizeBill(obj)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, nil
}

func (s *LiveSource) Bill(ctx context.Context, session, number string) (*types.Bill, error) {
	body, err := s.fetch(ctx, fmt.Sprintf("/bills/%s/%s/", session, number), nil)
	if err != nil {
		return nil, err
	}
	b, _, err := openparliament.NormalizeBill(body)
	return b, err
}

func (s *LiveSource) Members(ctx context.Context, limit, offset int) ([]types.Member, error) {
	body, err := s.fetch(ctx, "/politicians/", pageParams(limit, offset))
	if err != nil {
		return nil, err
	}
	var page openparliament.Paginated
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("parse members page: %w", err)
	}
	out := make([]types.Member, 0, len(page.Objects))
	for _, obj := range page.Objects {
		m, _, err := openparliament.NormalizeMember(obj)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, nil
}

func (s *LiveSource) Member(ctx context.Context, id string) (*types.Member, error) {
	body, err := s.fetch(ctx, "/politicians/"+id+"/", nil)
	if err != nil {
		return nil, err
	}
	m, _, err := openparliament.NormalizeMember(body)
	return m, err
}

func (s *LiveSource) MemberVotes(ctx context.Context, id string) ([]types.Ballot, error) {
	body, err := s.fetch(ctx, "/politicians/"+id+"/votes/", nil)
	if err != nil {
		return nil, err
	}
	var page openparliament.Paginated
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("parse member votes: %w", err)
	}
	out := make([]types.Ballot, 0, len(page.Objects))
	for _, obj := range page.Objects {
		var b types.Ballot
		if err := json.Unmarshal(obj, &b); err != nil {
			return nil, fmt.Errorf("parse ballot: %w", err)
		}
		out = append(out, b)
	}
	return out, nil
}
