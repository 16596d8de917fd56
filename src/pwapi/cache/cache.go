package cache

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"time"
)

// ResponseCache memoizes upstream response bodies for a short window. It is
// a plumbing optimization over the upstream call site, unrelated to the
// persistent record store. Implementations never surface errors: any backend
// failure degrades to a miss.
type ResponseCache interface {
	Get(ctx context.Context, sig string) ([]byte, bool)
	Set(ctx context.Context, sig string, body []byte, ttl time.Duration)
	Delete(ctx context.Context, sig string)
	SweepExpired(ctx context.Context) int
}

// Signature derives a deterministic key from a request path and its query
// parameters. Parameter order never matters: equivalent requests collide.
func Signature(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(path)
	b.WriteByte('?')
	for i, k := range keys {
		vs := append([]string(nil), params[k]...)
		sort.Strings(vs)
		for j, v := range vs {
			if i > 0 || j > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(k))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	return b.String()
}
