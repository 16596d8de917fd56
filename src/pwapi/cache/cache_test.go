package cache

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureParamOrderIrrelevant(t *testing.T) {
	a := url.Values{}
	a.Set("limit", "50")
	a.Set("offset", "100")
	a.Set("format", "json")

	b := url.Values{}
	b.Set("format", "json")
	b.Set("offset", "100")
	b.Set("limit", "50")

	assert.Equal(t, Signature("/votes/", a), Signature("/votes/", b))
}

func TestSignatureDistinguishesRequests(t *testing.T) {
	p := url.Values{}
	p.Set("limit", "50")

	assert.NotEqual(t, Signature("/votes/", p), Signature("/bills/", p))
	assert.NotEqual(t, Signature("/votes/", p), Signature("/votes/", nil))

	q := url.Values{}
	q.Set("limit", "25")
	assert.NotEqual(t, Signature("/votes/", p), Signature("/votes/", q))
}

func TestMemoryHitThenExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	now := time.Now()
	m.now = func() time.Time { return now }

	m.Set(ctx, "sig", []byte("body"), 100*time.Millisecond)

	got, ok := m.Get(ctx, "sig")
	require.True(t, ok)
	assert.Equal(t, []byte("body"), got)

	// past the TTL a present entry is a miss and gets lazily evicted
	now = now.Add(150 * time.Millisecond)
	_, ok = m.Get(ctx, "sig")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	m.Set(ctx, "sig", []byte("body"), time.Minute)
	m.Delete(ctx, "sig")

	_, ok := m.Get(ctx, "sig")
	assert.False(t, ok)
}

func TestMemoryOverwrite(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	m.Set(ctx, "sig", []byte("old"), time.Minute)
	m.Set(ctx, "sig", []byte("new"), time.Minute)

	got, ok := m.Get(ctx, "sig")
	require.True(t, ok)
	assert.Equal(t, []byte("new"), got)
	assert.Equal(t, 1, m.Len())
}

func TestMemorySweepExpired(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	now := time.Now()
	m.now = func() time.Time { return now }

	m.Set(ctx, "stale-1", []byte("a"), time.Second)
	m.Set(ctx, "stale-2", []byte("b"), time.Second)
	m.Set(ctx, "fresh", []byte("c"), time.Hour)

	now = now.Add(2 * time.Second)

	assert.Equal(t, 2, m.SweepExpired(ctx))
	assert.Equal(t, 1, m.Len())

	_, ok := m.Get(ctx, "fresh")
	assert.True(t, ok)
}
