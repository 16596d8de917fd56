package refresh

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/stratum01/parliment-watch-sub000/src/pwapi/data"
	"github.com/stratum01/parliment-watch-sub000/src/pwapi/openparliament"
	"github.com/stratum01/parliment-watch-sub000/src/pwapi/policy"
)

const (
	votesPath       = "/votes/"
	billsPath       = "/bills/"
	politiciansPath = "/politicians/"

	// recent-window size for votes and bills; members always walk the
	// whole roster
	recentLimit = 50
	pageLimit   = 50
)

// Jobs holds the three refresh procedures. Each is idempotent and safely
// re-runnable: all writes are natural-key upserts. A single item failure
// aborts the rest of the run and propagates; the next scheduled run retries
// the same window.
type Jobs struct {
	client *openparliament.Client
	store  *data.Store
	pol    policy.Policy
}

func NewJobs(client *openparliament.Client, store *data.Store, pol policy.Policy) *Jobs {
	return &Jobs{client: client, store: store, pol: pol}
}

// selfRef is the one field every collection object is guaranteed to carry.
type selfRef struct {
	URL string `json:"url"`
}

// RefreshVotes pulls the most recent votes, follows each item's source URL
// for full detail and upserts with the vote horizon.
func (j *Jobs) RefreshVotes(ctx context.Context) error {
	run := uuid.New().String()[:8]
	log.Printf("refresh[%s]: votes starting", run)

	page, err := j.client.FetchPage(ctx, votesPath, recentLimit, 0)
	if err != nil {
		return fmt.Errorf("votes page: %w", err)
	}

	for i, obj := range page.Objects {
		var ref selfRef
		if err := json.Unmarshal(obj, &ref); err != nil || ref.URL == "" {
			return fmt.Errorf("votes item %d: no source url", i)
		}

		detail, err := j.client.FetchDetail(ctx, ref.URL)
		if err != nil {
			return fmt.Errorf("vote detail %s: %w", ref.URL, err)
		}

		vote, warnings, err := openparliament.NormalizeVote(detail)
		if err != nil {
			return fmt.Errorf("vote %s: %w", ref.URL, err)
		}
		for _, w := range warnings {
			log.Printf("refresh[%s]: %s", run, w)
		}

		if err := j.store.UpsertVote(vote, j.pol.VoteHorizon); err != nil {
			return err
		}
	}

	log.Printf("refresh[%s]: votes done, %d records", run, len(page.Objects))
	return nil
}

// RefreshBills is the same shape as RefreshVotes with the bill horizon.
func (j *Jobs) RefreshBills(ctx context.Context) error {
	run := uuid.New().String()[:8]
	log.Printf("refresh[%s]: bills starting", run)

	page, err := j.client.FetchPage(ctx, billsPath, recentLimit, 0)
	if err != nil {
		return fmt.Errorf("bills page: %w", err)
	}

	for i, obj := range page.Objects {
		var ref selfRef
		if err := json.Unmarshal(obj, &ref); err != nil || ref.URL == "" {
			return fmt.Errorf("bills item %d: no source url", i)
		}

		detail, err := j.client.FetchDetail(ctx, ref.URL)
		if err != nil {
			return fmt.Errorf("bill detail %s: %w", ref.URL, err)
		}

		bill, warnings, err := openparliament.NormalizeBill(detail)
		if err != nil {
			return fmt.Errorf("bill %s: %w", ref.URL, err)
		}
		for _, w := range warnings {
			log.Printf("refresh[%s]: %s", run, w)
		}

		if err := j.store.UpsertBill(bill, j.pol.BillHorizon); err != nil {
			return err
		}
	}

	log.Printf("refresh[%s]: bills done, %d records", run, len(page.Objects))
	return nil
}

// RefreshMembers walks the entire politician roster with offset/limit
// paging. Rosters are not "most recent N", so the walk continues only while
// the page came back full AND upstream reports a further page. Both checks
// are deliberate: either one failing stops pagination.
func (j *Jobs) RefreshMembers(ctx context.Context) error {
	run := uuid.New().String()[:8]
	log.Printf("refresh[%s]: members starting", run)

	total := 0
	for offset := 0; ; offset += pageLimit {
		page, err := j.client.FetchPage(ctx, politiciansPath, pageLimit, offset)
		if err != nil {
			return fmt.Errorf("members page offset=%d: %w", offset, err)
		}

		for i, obj := range page.Objects {
			var ref selfRef
			if err := json.Unmarshal(obj, &ref); err != nil || ref.URL == "" {
				return fmt.Errorf("members item %d at offset %d: no source url", i, offset)
			}

			detail, err := j.client.FetchDetail(ctx, ref.URL)
			if err != nil {
				return fmt.Errorf("member detail %s: %w", ref.URL, err)
			}

			member, warnings, err := openparliament.NormalizeMember(detail)
			if err != nil {
				return fmt.Errorf("member %s: %w", ref.URL, err)
			}
			for _, w := range warnings {
				log.Printf("refresh[%s]: %s", run, w)
			}

			if err := j.store.UpsertMember(member, j.pol.MemberHorizon); err != nil {
				return err
			}
		}

		total += len(page.Objects)
		if len(page.Objects) < pageLimit || page.Pagination.NextURL == "" {
			break
		}
	}

	log.Printf("refresh[%s]: members done, %d records", run, total)
	return nil
}
