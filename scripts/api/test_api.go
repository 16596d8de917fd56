package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/stratum01/parliment-watch-sub000/src/pwapi/openparliament"
)

func main() {
	contact := os.Getenv("CONTACT_EMAIL")
	if contact == "" {
		contact = "ops@parliamentwatch.example"
	}

	client := openparliament.NewClient(os.Getenv("UPSTREAM_URL"), contact)
	ctx := context.Background()

	page, err := client.FetchPage(ctx, "/votes/", 5, 0)
	if err != nil {
		log.Fatalf("Failed to fetch votes: %v", err)
	}

	log.Printf("Fetched %d of %d votes", len(page.Objects), page.Pagination.Count)

	for _, obj := range page.Objects {
		var ref struct {
			URL string `json:"url"`
		}
		if err := json.Unmarshal(obj, &ref); err != nil {
			log.Fatalf("Bad object: %v", err)
		}

		detail, err := client.FetchDetail(ctx, ref.URL)
		if err != nil {
			log.Fatalf("Failed to fetch %s: %v", ref.URL, err)
		}

		vote, warnings, err := openparliament.NormalizeVote(detail)
		if err != nil {
			log.Fatalf("Failed to normalize %s: %v", ref.URL, err)
		}
		for _, w := range warnings {
			log.Printf("  warning: %s", w)
		}

		log.Printf("Vote %d (%s):", vote.Number, vote.Session)
		log.Printf("  Date: %s", vote.Date)
		log.Printf("  Result: %s", vote.Result)
		log.Printf("  Yea/Nay/Paired: %d/%d/%d", vote.YeaTotal, vote.NayTotal, vote.PairedTotal)
	}
}
