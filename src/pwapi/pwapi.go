package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stratum01/parliment-watch-sub000/src/pwapi/cache"
	"github.com/stratum01/parliment-watch-sub000/src/pwapi/config"
	"github.com/stratum01/parliment-watch-sub000/src/pwapi/data"
	"github.com/stratum01/parliment-watch-sub000/src/pwapi/datasource"
	"github.com/stratum01/parliment-watch-sub000/src/pwapi/openparliament"
	"github.com/stratum01/parliment-watch-sub000/src/pwapi/policy"
	"github.com/stratum01/parliment-watch-sub000/src/pwapi/refresh"
	"github.com/stratum01/parliment-watch-sub000/src/pwapi/webserver"
)

func main() {
	cfg := config.Load()
	pol := policy.Default()

	db := data.MustMySQL(cfg.MySQLDSN)
	if err := data.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	store := data.NewStore(db)

	client := openparliament.NewClient(cfg.UpstreamURL, cfg.ContactEmail)

	// Response cache: in-process by default, redis when configured so
	// several proxy instances share one memoization window.
	var respCache cache.ResponseCache
	if cfg.RedisURL != "" {
		respCache = cache.NewRedis(data.MustRedis(cfg.RedisURL))
		log.Printf("response cache: redis")
	} else {
		respCache = cache.NewMemory()
		log.Printf("response cache: in-process")
	}

	ctx, cancel := context.WithCancel(context.Background())

	live := datasource.NewLiveSource(client, respCache, pol)
	var src datasource.Source
	switch cfg.DataSource {
	case "live":
		src = live
	case "fixture":
		src = datasource.NewFixtureSource(cfg.FixtureDir)
	default:
		src = datasource.NewStoreSource(store, live)
	}
	log.Printf("data source: %s", cfg.DataSource)

	// Background services: store warm-up and refresh cadence, expired
	// record reaper, cache sweeper.
	jobs := refresh.NewJobs(client, store, pol)
	scheduler := refresh.NewScheduler(jobs, refresh.Schedule{
		WarmDelay:    cfg.WarmDelay,
		VotesEvery:   cfg.VotesEvery,
		BillsEvery:   cfg.BillsEvery,
		MembersEvery: cfg.MembersEvery,
	})
	scheduler.Run(ctx)
	go data.RunReaper(ctx, store, cfg.ReapInterval)
	go cache.RunSweeper(ctx, respCache, cfg.SweepInterval)

	router := webserver.New(cfg, src)

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("ParliamentWatch API listening on %s", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	cancel()
	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
