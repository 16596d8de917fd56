package main

import (
	"log"
	"time"

	"github.com/stratum01/parliment-watch-sub000/src/pwapi/config"
	"github.com/stratum01/parliment-watch-sub000/src/pwapi/data"
	"github.com/stratum01/parliment-watch-sub000/src/pwapi/types"
)

func main() {
	cfg := config.Load()

	db := data.MustMySQL(cfg.MySQLDSN)
	if err := data.Migrate(db); err != nil {
		log.Fatalf("Migrate failed: %v", err)
	}
	store := data.NewStore(db)

	vote := &types.Vote{
		Number:        999999,
		Session:       "0-0",
		Date:          "2024-01-01",
		Result:        "Passed",
		YeaTotal:      1,
		DescriptionEn: "storage smoke test",
	}
	if err := store.UpsertVote(vote, time.Minute); err != nil {
		log.Fatalf("Upsert failed: %v", err)
	}
	log.Printf("Upserted vote %d/%s, expires %s", vote.Number, vote.Session, vote.ExpiresAt)

	got, err := store.FindVote("0-0", 999999)
	if err != nil {
		log.Fatalf("Find failed: %v", err)
	}
	log.Printf("Read back vote %d/%s: %s", got.Number, got.Session, got.Result)

	// second upsert must not add a row
	if err := store.UpsertVote(&types.Vote{Number: 999999, Session: "0-0", Result: "Failed"}, time.Minute); err != nil {
		log.Fatalf("Second upsert failed: %v", err)
	}

	var count int64
	db.Model(&types.Vote{}).Where("session = ?", "0-0").Count(&count)
	log.Printf("Rows for test key: %d", count)

	removed, err := store.DeleteExpired()
	if err != nil {
		log.Fatalf("Reap failed: %v", err)
	}
	log.Printf("Reaper removed %d records", removed)
}
