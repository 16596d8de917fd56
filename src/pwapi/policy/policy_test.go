package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResponseTTL(t *testing.T) {
	p := Default()

	tests := []struct {
		path string
		want time.Duration
	}{
		{"/votes/", p.ListTTL},
		{"/bills/", p.ListTTL},
		{"/politicians/", p.ListTTL},
		{"/votes/44-1/928/", p.DetailTTL},
		{"/bills/44-1/C-45/", p.DetailTTL},
		{"/politicians/pierre-poilievre/", p.DetailTTL},
		{"/members/123/", p.DetailTTL},
		{"/politicians/123/votes/", p.MemberVotesTTL},
		{"/members/123/votes/", p.MemberVotesTTL},
		// unknown paths err toward shorter staleness
		{"/sessions/", p.ListTTL},
		{"/", p.ListTTL},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, p.ResponseTTL(tt.path), "path %s", tt.path)
	}
}

func TestDefaultValues(t *testing.T) {
	p := Default()

	assert.Equal(t, 5*time.Minute, p.ListTTL)
	assert.Equal(t, 30*time.Minute, p.DetailTTL)
	assert.Equal(t, 10*time.Minute, p.MemberVotesTTL)
	assert.Equal(t, 48*time.Hour, p.VoteHorizon)
	assert.Equal(t, 72*time.Hour, p.BillHorizon)
	assert.Equal(t, 7*24*time.Hour, p.MemberHorizon)
}
