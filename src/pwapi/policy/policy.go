package policy

import (
	"strings"
	"time"
)

// Policy holds the cache TTLs and store expiry horizons. Response TTLs bound
// how often upstream is re-polled; store horizons bound how long stale data
// may be served at all. The two sets are independent knobs.
type Policy struct {
	ListTTL        time.Duration
	DetailTTL      time.Duration
	MemberVotesTTL time.Duration

	VoteHorizon   time.Duration
	BillHorizon   time.Duration
	MemberHorizon time.Duration
}

// Default returns the stock policy.
func Default() Policy {
	return Policy{
		ListTTL:        5 * time.Minute,
		DetailTTL:      30 * time.Minute,
		MemberVotesTTL: 10 * time.Minute,
		VoteHorizon:    48 * time.Hour,
		BillHorizon:    72 * time.Hour,
		MemberHorizon:  7 * 24 * time.Hour,
	}
}

// ResponseTTL maps a request path to a response-cache TTL. Rules are checked
// in order, first match wins. Anything unrecognized falls back to the list
// TTL so unknown paths err toward shorter staleness.
func (p Policy) ResponseTTL(path string) time.Duration {
	switch {
	case isMemberVotesPath(path):
		return p.MemberVotesTTL
	case isDetailPath(path, "/votes/"):
		return p.DetailTTL
	case isDetailPath(path, "/bills/"):
		return p.DetailTTL
	case isDetailPath(path, "/politicians/") || isDetailPath(path, "/members/"):
		return p.DetailTTL
	default:
		return p.ListTTL
	}
}

func isMemberVotesPath(path string) bool {
	if !strings.Contains(path, "/votes/") {
		return false
	}
	return strings.Contains(path, "/politicians/") || strings.Contains(path, "/members/")
}

// isDetailPath reports whether path addresses a single entity under root,
// i.e. it contains the collection segment but is not the bare collection.
func isDetailPath(path, root string) bool {
	if !strings.Contains(path, root) {
		return false
	}
	trimmed := strings.TrimSuffix(strings.TrimPrefix(path, "/"), "/")
	rootTrimmed := strings.Trim(root, "/")
	return trimmed != rootTrimmed
}
